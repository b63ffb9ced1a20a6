// Package probe detects optional external executables. A probe never
// returns an error to its caller: lookup and invocation failures are folded
// into a tri-state Result so that detection code stays free of error-driven
// control flow.
package probe

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// State is the outcome of probing one tool.
type State int

const (
	// Absent means the executable could not be found.
	Absent State = iota

	// Present means the executable exists but produced no usable data,
	// either because no query was requested or because the query failed.
	Present

	// PresentWithData means the executable exists and its query output
	// was captured.
	PresentWithData
)

// String returns the lower-case state name used in logs.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case PresentWithData:
		return "present-with-data"
	default:
		return "unknown"
	}
}

// Result describes a single probe.
type Result struct {
	Tool   string
	State  State
	Path   string // resolved executable path, empty when Absent
	Output string // query stdout, set only for PresentWithData

	// Err records why a query failed. It is informational; callers map
	// State to their own sentinel values.
	Err error
}

// Found reports whether the tool exists on the host.
func (r Result) Found() bool {
	return r.State != Absent
}

// Config controls a Prober.
type Config struct {
	// Runner executes lookups and queries. Defaults to ExecRunner.
	Runner Runner

	// Timeout bounds each query. Zero means no timeout.
	Timeout time.Duration

	// Logger receives probe outcomes at debug level. Defaults to a
	// discarding logger.
	Logger *slog.Logger
}

// Prober runs capability probes against the host.
type Prober struct {
	runner  Runner
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Prober. Zero-value fields in cfg are replaced with
// defaults.
func New(cfg Config) *Prober {
	if cfg.Runner == nil {
		cfg.Runner = ExecRunner{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Prober{
		runner:  cfg.Runner,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// Lookup checks whether tool is available without running it.
func (p *Prober) Lookup(tool string) Result {
	path, err := p.runner.LookPath(tool)
	if err != nil {
		p.logger.Debug("tool not found", "tool", tool, "error", err)
		return Result{Tool: tool, State: Absent}
	}
	p.logger.Debug("tool found", "tool", tool, "path", path)
	return Result{Tool: tool, State: Present, Path: path}
}

// Query looks tool up and, when it exists, runs it with args and captures
// its standard output.
func (p *Prober) Query(ctx context.Context, tool string, args ...string) Result {
	res := p.Lookup(tool)
	if !res.Found() {
		return res
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := p.runner.Output(ctx, res.Path, args...)
	if err != nil {
		p.logger.Debug("tool query failed",
			"tool", tool,
			"args", args,
			"elapsed", time.Since(start),
			"error", err,
		)
		res.Err = err
		return res
	}

	p.logger.Debug("tool query succeeded",
		"tool", tool,
		"elapsed", time.Since(start),
		"bytes", len(out),
	)
	res.State = PresentWithData
	res.Output = string(out)
	return res
}
