package sysinfo

import (
	"context"
	"math"
	"runtime"
	"testing"
)

// --- Collect tests (run on actual host) ---

func TestCollectReturnsNonNil(t *testing.T) {
	info, err := Collect(context.Background(), nil)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if info == nil {
		t.Fatal("Collect returned nil Info")
	}
}

func TestCollectHasSystemName(t *testing.T) {
	info, _ := Collect(context.Background(), nil)
	if info.System == "" {
		t.Error("Collect returned empty System")
	}
	if info.OS() == "" {
		t.Error("OS() returned empty descriptor")
	}
}

func TestCollectHasCPU(t *testing.T) {
	info, _ := Collect(context.Background(), nil)
	if info.CPU == "" {
		t.Error("Collect returned empty CPU; machine fallback should apply")
	}
}

func TestCollectHasMachine(t *testing.T) {
	info, _ := Collect(context.Background(), nil)
	if info.Machine == "" {
		t.Errorf("Collect returned empty Machine on %s", runtime.GOOS)
	}
}

func TestCollectRAMIsRoundedAndNonNegative(t *testing.T) {
	info, _ := Collect(context.Background(), nil)
	if info.RAMGB < 0 {
		t.Errorf("RAMGB = %f, want >= 0", info.RAMGB)
	}
	if scaled := info.RAMGB * 100; math.Abs(scaled-math.Round(scaled)) > 1e-6 {
		t.Errorf("RAMGB = %v has more than 2 decimals", info.RAMGB)
	}
}

// --- helper tests ---

func TestBytesToGBExact(t *testing.T) {
	if got := siBytesToGB(16 * bytesPerGB); got != 16 {
		t.Errorf("siBytesToGB(16GiB) = %v, want 16", got)
	}
}

func TestBytesToGBRounds(t *testing.T) {
	// 16.5 GiB + a little.
	b := uint64(16.5*bytesPerGB) + 12345
	if got := siBytesToGB(b); got != 16.5 {
		t.Errorf("siBytesToGB = %v, want 16.5", got)
	}
	// 7.777 GiB rounds to 7.78.
	gb := 7.777
	b = uint64(gb * bytesPerGB)
	if got := siBytesToGB(b); got != 7.78 {
		t.Errorf("siBytesToGB = %v, want 7.78", got)
	}
}

func TestBytesToGBZero(t *testing.T) {
	if got := siBytesToGB(0); got != 0 {
		t.Errorf("siBytesToGB(0) = %v, want 0", got)
	}
}

func TestFormatOS(t *testing.T) {
	if got := siFormatOS("Linux", "6.1.0-27-amd64"); got != "Linux 6.1.0-27-amd64" {
		t.Errorf("siFormatOS = %q", got)
	}
	if got := siFormatOS("Darwin", ""); got != "Darwin" {
		t.Errorf("siFormatOS with empty release = %q, want Darwin", got)
	}
	if got := siFormatOS("", ""); got != "" {
		t.Errorf("siFormatOS empty = %q", got)
	}
}

func TestCPUNamePrefersProcessor(t *testing.T) {
	got := siCPUName("AMD EPYC 7763 64-Core Processor", "x86_64")
	if got != "AMD EPYC 7763 64-Core Processor" {
		t.Errorf("siCPUName = %q", got)
	}
}

func TestCPUNameFallsBackToMachine(t *testing.T) {
	if got := siCPUName("", "aarch64"); got != "aarch64" {
		t.Errorf("siCPUName blank = %q, want aarch64", got)
	}
	if got := siCPUName("   ", "arm64"); got != "arm64" {
		t.Errorf("siCPUName whitespace = %q, want arm64", got)
	}
}

func TestInfoOS(t *testing.T) {
	info := &Info{System: "Linux", Release: "5.15.0"}
	if got := info.OS(); got != "Linux 5.15.0" {
		t.Errorf("OS() = %q", got)
	}
}

func TestTitle(t *testing.T) {
	if got := siTitle("windows"); got != "Windows" {
		t.Errorf("siTitle = %q", got)
	}
	if got := siTitle(""); got != "" {
		t.Errorf("siTitle empty = %q", got)
	}
}
