package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gitlab.com/tinyland/lab/mincer-manifest/pkg/metrics"
	"gitlab.com/tinyland/lab/mincer-manifest/pkg/scripts"
	"gitlab.com/tinyland/lab/mincer-manifest/pkg/sysinfo"
)

// ErrNotDirectory is returned by Generate when the target is missing or is
// not a directory.
var ErrNotDirectory = errors.New("provided path is not a directory")

// Options configures Generate.
type Options struct {
	// Detector probes measurement tools. Required.
	Detector *metrics.Detector

	// Extensions selects script files. Empty means
	// scripts.DefaultExtensions.
	Extensions []string

	// Logger receives step timings at debug level.
	Logger *slog.Logger
}

// Generate runs the four collection steps against target and returns the
// assembled manifest: host facts, tool detection, script discovery, then
// assembly. If ctx is cancelled during collection, Generate returns the
// context error and no manifest.
func Generate(ctx context.Context, target string, opts Options) (*Manifest, error) {
	if opts.Detector == nil {
		return nil, fmt.Errorf("detector must not be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if !IsDir(target) {
		return nil, ErrNotDirectory
	}

	start := time.Now()
	host, err := sysinfo.Collect(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("collecting host info: %w", err)
	}
	logger.Debug("step complete", "step", "sysinfo", "elapsed", time.Since(start))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collecting host info: %w", err)
	}

	start = time.Now()
	detected := opts.Detector.Detect(ctx)
	logger.Debug("step complete", "step", "metrics", "elapsed", time.Since(start), "detected", detected)
	// A cancelled query reads as a failed one; do not record it.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("detecting metrics: %w", err)
	}

	start = time.Now()
	found, err := scripts.Find(target, opts.Extensions...)
	if err != nil {
		return nil, fmt.Errorf("finding scripts: %w", err)
	}
	logger.Debug("step complete", "step", "scripts", "elapsed", time.Since(start), "count", len(found))

	return New(target, host, detected, found)
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
