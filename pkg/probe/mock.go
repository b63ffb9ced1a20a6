package probe

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrNotFound is returned by MockRunner.LookPath for tools it was not told
// about.
var ErrNotFound = errors.New("executable file not found")

// MockRunner implements Runner for testing. Tools are registered with
// options; unregistered tools are reported as absent. It records every
// invocation.
type MockRunner struct {
	mu    sync.Mutex
	tools map[string]mockTool
	calls []string
}

type mockTool struct {
	output string
	err    error
	fn     func(ctx context.Context, args []string) ([]byte, error)
}

// MockRunnerOption configures a MockRunner.
type MockRunnerOption func(*MockRunner)

// WithTool registers a tool that exists and whose queries print output.
func WithTool(name, output string) MockRunnerOption {
	return func(m *MockRunner) { m.tools[name] = mockTool{output: output} }
}

// WithFailingTool registers a tool that exists but whose queries fail
// with err.
func WithFailingTool(name string, err error) MockRunnerOption {
	return func(m *MockRunner) { m.tools[name] = mockTool{err: err} }
}

// WithToolFunc registers a tool whose queries are answered by fn.
func WithToolFunc(name string, fn func(ctx context.Context, args []string) ([]byte, error)) MockRunnerOption {
	return func(m *MockRunner) { m.tools[name] = mockTool{fn: fn} }
}

// NewMockRunner creates a MockRunner with the given options.
func NewMockRunner(opts ...MockRunnerOption) *MockRunner {
	m := &MockRunner{tools: make(map[string]mockTool)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LookPath resolves registered tools to "/mock/bin/<name>".
func (m *MockRunner) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tools[name]; !ok {
		return "", ErrNotFound
	}
	return "/mock/bin/" + name, nil
}

// Output answers a query for a registered tool.
func (m *MockRunner) Output(ctx context.Context, path string, args ...string) ([]byte, error) {
	name := strings.TrimPrefix(path, "/mock/bin/")

	m.mu.Lock()
	m.calls = append(m.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	tool, ok := m.tools[name]
	m.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}
	if tool.fn != nil {
		return tool.fn(ctx, args)
	}
	if tool.err != nil {
		return nil, tool.err
	}
	return []byte(tool.output), nil
}

// Calls returns the recorded invocations as "name arg1 arg2" strings.
func (m *MockRunner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}
