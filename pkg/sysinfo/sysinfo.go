// Package sysinfo gathers the static host facts recorded in a manifest: the
// OS descriptor, a CPU identifier, and total physical memory. Individual
// host queries that fail are logged and degrade to empty values so that a
// manifest can always be produced.
package sysinfo

import (
	"context"
	"io"
	"log/slog"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Info holds the host facts that end up in a manifest.
type Info struct {
	System  string  // "Linux", "Darwin", "Windows"
	Release string  // kernel release, e.g. "6.1.0-27-amd64"
	Machine string  // hardware architecture, e.g. "x86_64"
	CPU     string  // processor model name, or Machine when unknown
	RAMGB   float64 // total physical memory in GiB, rounded to 2 decimals
}

// OS returns the "<system> <release>" descriptor.
func (i *Info) OS() string {
	return siFormatOS(i.System, i.Release)
}

// Collect queries the host. A failed query is logged at debug level and
// leaves its field empty; the returned error is currently always nil.
func Collect(ctx context.Context, logger *slog.Logger) (*Info, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	system, release, machine := siUname(ctx, logger)
	info := &Info{
		System:  system,
		Release: release,
		Machine: machine,
		CPU:     siCPUName(siProcessorName(ctx, logger), machine),
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		logger.Debug("virtual memory query failed", "error", err)
	} else {
		info.RAMGB = siBytesToGB(vm.Total)
	}

	logger.Debug("host facts collected",
		"os", info.OS(),
		"cpu", info.CPU,
		"ram_gb", info.RAMGB,
	)
	return info, nil
}

// siProcessorName returns the model name of the first CPU reported by
// gopsutil, or an empty string.
func siProcessorName(ctx context.Context, logger *slog.Logger) string {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		logger.Debug("cpu info query failed", "error", err)
		return ""
	}
	if len(infos) == 0 {
		return ""
	}
	return infos[0].ModelName
}
