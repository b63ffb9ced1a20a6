// Package metrics detects the measurement tools available on the host and
// turns them into manifest entries. The built-in checks run in a fixed
// order (PAPI, GPU, perf) followed by any configured extra tools, so the
// result is deterministic for a given set of installed tools.
package metrics

import (
	"context"
	"strings"

	"gitlab.com/tinyland/lab/mincer-manifest/pkg/probe"
)

// Built-in tool executables.
const (
	PAPITool = "papi_avail"
	GPUTool  = "nvidia-smi"
	PerfTool = "perf"
)

// Manifest entries for the built-in tools.
const (
	PAPIEntry  = "PAPI"
	PerfEntry  = "perf"
	GPUPrefix  = "GPU::"
	GPUUnknown = GPUPrefix + "Unknown"
)

// gpuQueryArgs asks nvidia-smi for one GPU name per line.
var gpuQueryArgs = []string{"--query-gpu=name", "--format=csv,noheader"}

// Tool is an additional executable to probe after the built-in checks.
type Tool struct {
	// Name is the executable looked up on PATH.
	Name string

	// Label is the manifest entry. Empty means Name.
	Label string

	// Query, when non-empty, is passed to the tool and each output line
	// becomes "Label::<line>". A failed or empty query yields
	// "Label::Unknown", mirroring the GPU check.
	Query []string
}

// Detector runs the metric checks.
type Detector struct {
	prober *probe.Prober
	extra  []Tool
}

// NewDetector creates a Detector that probes through p. Extra tools are
// checked in the given order after perf.
func NewDetector(p *probe.Prober, extra ...Tool) *Detector {
	return &Detector{prober: p, extra: extra}
}

// Detect returns the manifest entries for every detected tool. The slice
// is never nil.
func (d *Detector) Detect(ctx context.Context) []string {
	detected := []string{}

	if d.prober.Lookup(PAPITool).Found() {
		detected = append(detected, PAPIEntry)
	}

	detected = append(detected, d.detectGPUs(ctx)...)

	if d.prober.Lookup(PerfTool).Found() {
		detected = append(detected, PerfEntry)
	}

	for _, t := range d.extra {
		detected = append(detected, d.detectExtra(ctx, t)...)
	}

	return detected
}

// detectGPUs returns one "GPU::<name>" entry per GPU reported by
// nvidia-smi, GPUUnknown when nvidia-smi exists but its query fails, and
// nothing when nvidia-smi is absent.
func (d *Detector) detectGPUs(ctx context.Context) []string {
	return labelled(d.prober.Query(ctx, GPUTool, gpuQueryArgs...), GPUPrefix)
}

func (d *Detector) detectExtra(ctx context.Context, t Tool) []string {
	label := t.Label
	if label == "" {
		label = t.Name
	}
	if len(t.Query) == 0 {
		if d.prober.Lookup(t.Name).Found() {
			return []string{label}
		}
		return nil
	}
	return labelled(d.prober.Query(ctx, t.Name, t.Query...), label+"::")
}

// labelled maps a query result to prefixed entries.
func labelled(res probe.Result, prefix string) []string {
	switch res.State {
	case probe.PresentWithData:
		lines := ParseLines(res.Output)
		if len(lines) == 0 {
			return []string{prefix + "Unknown"}
		}
		entries := make([]string, len(lines))
		for i, l := range lines {
			entries[i] = prefix + l
		}
		return entries
	case probe.Present:
		return []string{prefix + "Unknown"}
	default:
		return nil
	}
}

// ParseLines splits line-oriented tool output into trimmed, non-empty
// lines. It accepts both LF and CRLF line endings.
func ParseLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
