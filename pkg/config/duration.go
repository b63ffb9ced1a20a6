package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Bounds for a non-zero probe timeout.
const (
	MinProbeTimeout = time.Millisecond
	MaxProbeTimeout = 10 * time.Minute
)

// Duration is a probe timeout read from TOML or the environment. It accepts
// Go duration strings ("750ms", "5s", "1m") and bare integers, which are
// taken as seconds. Zero disables the timeout; non-zero values must lie
// within [MinProbeTimeout, MaxProbeTimeout].
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := parseProbeTimeout(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func parseProbeTimeout(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}

	var parsed time.Duration
	if secs, err := strconv.Atoi(s); err == nil {
		parsed = time.Duration(secs) * time.Second
	} else {
		parsed, err = time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid probe timeout %q: %w", s, err)
		}
	}

	switch {
	case parsed < 0:
		return 0, fmt.Errorf("probe timeout %q must not be negative", s)
	case parsed == 0:
		return 0, nil
	case parsed < MinProbeTimeout:
		return 0, fmt.Errorf("probe timeout %q is below %s", s, MinProbeTimeout)
	case parsed > MaxProbeTimeout:
		return 0, fmt.Errorf("probe timeout %q exceeds %s", s, MaxProbeTimeout)
	}
	return parsed, nil
}
