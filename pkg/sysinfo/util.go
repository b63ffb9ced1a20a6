package sysinfo

import (
	"math"
	"strings"
)

const bytesPerGB = 1024 * 1024 * 1024

// siBytesToGB converts a byte count to GiB rounded to two decimal places.
func siBytesToGB(b uint64) float64 {
	return math.Round(float64(b)/bytesPerGB*100) / 100
}

// siFormatOS joins system and release with a single space. Either part may
// be empty; the result is trimmed so no stray space remains.
func siFormatOS(system, release string) string {
	return strings.TrimSpace(strings.TrimSpace(system) + " " + strings.TrimSpace(release))
}

// siCPUName prefers the processor name and falls back to the machine
// architecture when the name is blank.
func siCPUName(processor, machine string) string {
	if p := strings.TrimSpace(processor); p != "" {
		return p
	}
	return strings.TrimSpace(machine)
}

// siTitle upper-cases the first letter of a GOOS-style name ("windows" ->
// "Windows").
func siTitle(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
