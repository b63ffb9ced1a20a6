package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialization of a rendered manifest.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat maps a user-supplied name to a Format. Matching is
// case-insensitive and "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (supported: json, yaml)", s)
	}
}

// Render serializes m. JSON output is indented with two spaces, does not
// HTML-escape, and ends with a newline.
func Render(m *Manifest, f Format) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("manifest must not be nil")
	}
	switch f {
	case JSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return nil, fmt.Errorf("marshalling manifest: %w", err)
		}
		return buf.Bytes(), nil
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, fmt.Errorf("marshalling manifest: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshalling manifest: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}
