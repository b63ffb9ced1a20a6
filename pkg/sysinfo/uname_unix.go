//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package sysinfo

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sys/unix"
)

// siUname returns the system name, kernel release, and machine
// architecture from uname(2).
func siUname(_ context.Context, logger *slog.Logger) (system, release, machine string) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		logger.Debug("uname failed", "error", err)
		return siTitle(runtime.GOOS), "", runtime.GOARCH
	}
	system = unix.ByteSliceToString(u.Sysname[:])
	release = unix.ByteSliceToString(u.Release[:])
	machine = unix.ByteSliceToString(u.Machine[:])
	if machine == "" {
		machine = runtime.GOARCH
	}
	return system, release, machine
}
