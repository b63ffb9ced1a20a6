package probe

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestStateString(t *testing.T) {
	cases := map[State]string{
		Absent:          "absent",
		Present:         "present",
		PresentWithData: "present-with-data",
		State(42):       "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestNewDefaultsRunner(t *testing.T) {
	p := New(Config{})
	if _, ok := p.runner.(ExecRunner); !ok {
		t.Errorf("default runner = %T, want ExecRunner", p.runner)
	}
	if p.logger == nil {
		t.Error("default logger is nil")
	}
}

func TestLookupAbsent(t *testing.T) {
	p := New(Config{Runner: NewMockRunner()})
	res := p.Lookup("papi_avail")
	if res.State != Absent {
		t.Errorf("State = %v, want absent", res.State)
	}
	if res.Found() {
		t.Error("Found() = true for absent tool")
	}
	if res.Path != "" {
		t.Errorf("Path = %q, want empty", res.Path)
	}
}

func TestLookupPresent(t *testing.T) {
	p := New(Config{Runner: NewMockRunner(WithTool("perf", ""))})
	res := p.Lookup("perf")
	if res.State != Present {
		t.Errorf("State = %v, want present", res.State)
	}
	if res.Path != "/mock/bin/perf" {
		t.Errorf("Path = %q", res.Path)
	}
}

func TestLookupDoesNotRunTool(t *testing.T) {
	runner := NewMockRunner(WithTool("perf", "ignored"))
	p := New(Config{Runner: runner})
	p.Lookup("perf")
	if calls := runner.Calls(); len(calls) != 0 {
		t.Errorf("Lookup ran the tool: %v", calls)
	}
}

func TestQueryAbsentSkipsInvocation(t *testing.T) {
	runner := NewMockRunner()
	p := New(Config{Runner: runner})
	res := p.Query(context.Background(), "nvidia-smi", "--query-gpu=name")
	if res.State != Absent {
		t.Errorf("State = %v, want absent", res.State)
	}
	if calls := runner.Calls(); len(calls) != 0 {
		t.Errorf("absent tool was invoked: %v", calls)
	}
}

func TestQueryPresentWithData(t *testing.T) {
	runner := NewMockRunner(WithTool("nvidia-smi", "NVIDIA A100\n"))
	p := New(Config{Runner: runner})
	res := p.Query(context.Background(), "nvidia-smi", "--query-gpu=name", "--format=csv,noheader")
	if res.State != PresentWithData {
		t.Fatalf("State = %v, want present-with-data", res.State)
	}
	if res.Output != "NVIDIA A100\n" {
		t.Errorf("Output = %q", res.Output)
	}
	if res.Err != nil {
		t.Errorf("Err = %v, want nil", res.Err)
	}
	calls := runner.Calls()
	if len(calls) != 1 || calls[0] != "nvidia-smi --query-gpu=name --format=csv,noheader" {
		t.Errorf("Calls = %v", calls)
	}
}

func TestQueryFailureIsPresentWithoutData(t *testing.T) {
	boom := errors.New("driver not loaded")
	p := New(Config{Runner: NewMockRunner(WithFailingTool("nvidia-smi", boom))})
	res := p.Query(context.Background(), "nvidia-smi")
	if res.State != Present {
		t.Errorf("State = %v, want present", res.State)
	}
	if !errors.Is(res.Err, boom) {
		t.Errorf("Err = %v, want %v", res.Err, boom)
	}
	if res.Output != "" {
		t.Errorf("Output = %q, want empty", res.Output)
	}
}

func TestQueryAppliesTimeout(t *testing.T) {
	runner := NewMockRunner(WithToolFunc("nvidia-smi", func(ctx context.Context, _ []string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}))
	p := New(Config{Runner: runner, Timeout: 20 * time.Millisecond})

	start := time.Now()
	res := p.Query(context.Background(), "nvidia-smi")
	if time.Since(start) > 5*time.Second {
		t.Fatal("timeout was not applied")
	}
	if res.State != Present {
		t.Errorf("State = %v, want present", res.State)
	}
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("Err = %v, want deadline exceeded", res.Err)
	}
}

func TestQueryWithoutTimeoutHasNoDeadline(t *testing.T) {
	var hadDeadline bool
	runner := NewMockRunner(WithToolFunc("perf", func(ctx context.Context, _ []string) ([]byte, error) {
		_, hadDeadline = ctx.Deadline()
		return []byte("ok"), nil
	}))
	p := New(Config{Runner: runner})
	p.Query(context.Background(), "perf")
	if hadDeadline {
		t.Error("query context has a deadline although Timeout is zero")
	}
}

func TestQueryHonoursCancelledContext(t *testing.T) {
	runner := NewMockRunner(WithToolFunc("nvidia-smi", func(ctx context.Context, _ []string) ([]byte, error) {
		return nil, ctx.Err()
	}))
	p := New(Config{Runner: runner})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := p.Query(ctx, "nvidia-smi")
	if res.State != Present {
		t.Errorf("State = %v, want present", res.State)
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", res.Err)
	}
}

// --- ExecRunner tests (run on actual host) ---

func TestExecRunnerLookPathMissing(t *testing.T) {
	_, err := ExecRunner{}.LookPath("mincer-definitely-not-installed-tool")
	if err == nil {
		t.Error("expected error for missing executable")
	}
}

func TestExecRunnerQueryShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	p := New(Config{})
	res := p.Query(context.Background(), "sh", "-c", "echo hello")
	if res.State != PresentWithData {
		t.Fatalf("State = %v (err %v), want present-with-data", res.State, res.Err)
	}
	if strings.TrimSpace(res.Output) != "hello" {
		t.Errorf("Output = %q", res.Output)
	}
}

func TestExecRunnerNonZeroExitIsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	p := New(Config{})
	res := p.Query(context.Background(), "sh", "-c", "exit 3")
	if res.State != Present {
		t.Errorf("State = %v, want present", res.State)
	}
	if res.Err == nil {
		t.Error("expected error for non-zero exit")
	}
}
