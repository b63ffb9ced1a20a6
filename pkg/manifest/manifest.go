// Package manifest assembles, renders, and writes the reproducibility
// manifest for an experiment directory.
package manifest

import (
	"fmt"
	"path/filepath"

	"gitlab.com/tinyland/lab/mincer-manifest/pkg/sysinfo"
)

// Notes is the fixed reminder stored in every manifest.
const Notes = "Auto-generated manifest. Please edit to add measurement tools and details."

// Manifest is the record written to disk. Field order is the serialized
// key order.
type Manifest struct {
	ExperimentName       string   `json:"experiment_name" yaml:"experiment_name"`
	Hardware             Hardware `json:"hardware" yaml:"hardware"`
	OS                   string   `json:"os" yaml:"os"`
	Metrics              []string `json:"metrics" yaml:"metrics"`
	Scripts              []string `json:"scripts" yaml:"scripts"`
	ReproducibilityNotes string   `json:"reproducibility_notes" yaml:"reproducibility_notes"`
}

// Hardware describes the host machine.
type Hardware struct {
	CPU   string  `json:"cpu" yaml:"cpu"`
	RAMGB float64 `json:"ram_gb" yaml:"ram_gb"`
}

// New assembles a Manifest for the experiment at target. Nil metrics or
// scripts are stored as empty lists.
func New(target string, host *sysinfo.Info, metrics, scripts []string) (*Manifest, error) {
	if host == nil {
		return nil, fmt.Errorf("host info must not be nil")
	}
	name, err := ExperimentName(target)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = []string{}
	}
	if scripts == nil {
		scripts = []string{}
	}
	return &Manifest{
		ExperimentName: name,
		Hardware: Hardware{
			CPU:   host.CPU,
			RAMGB: host.RAMGB,
		},
		OS:                   host.OS(),
		Metrics:              metrics,
		Scripts:              scripts,
		ReproducibilityNotes: Notes,
	}, nil
}

// ExperimentName returns the final component of the absolute form of
// path. Trailing separators and relative spellings do not change the
// result.
func ExperimentName(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return filepath.Base(abs), nil
}
