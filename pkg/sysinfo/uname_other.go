//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package sysinfo

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// siUname derives the system name, kernel release, and machine
// architecture from gopsutil on hosts without uname(2).
func siUname(ctx context.Context, logger *slog.Logger) (system, release, machine string) {
	system = siTitle(runtime.GOOS)
	machine = runtime.GOARCH

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		logger.Debug("host info query failed", "error", err)
		return system, "", machine
	}
	if info.OS != "" {
		system = siTitle(info.OS)
	}
	if info.KernelArch != "" {
		machine = info.KernelArch
	}
	return system, info.KernelVersion, machine
}
