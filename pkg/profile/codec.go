package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialisation used by Decode and Encode.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Decode reads a profile document, normalises missing lists and validates
// the result.
func Decode(r io.Reader, format Format) (Profile, error) {
	if r == nil {
		return Profile{}, fmt.Errorf("profile: reader is required")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Profile{}, fmt.Errorf("profile: read document: %w", err)
	}

	var out Profile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&out); err != nil {
			return Profile{}, fmt.Errorf("profile: decode json: %w", err)
		}
	case FormatYAML, "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&out); err != nil && err != io.EOF {
			return Profile{}, fmt.Errorf("profile: decode yaml: %w", err)
		}
	default:
		return Profile{}, fmt.Errorf("profile: unsupported format %q", format)
	}

	out = out.Normalize()
	if err := Validate(out); err != nil {
		return Profile{}, err
	}
	return out, nil
}

// Encode writes the profile in the requested format.
func Encode(w io.Writer, p Profile, format Format) error {
	if w == nil {
		return fmt.Errorf("profile: writer is required")
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("profile: encode json: %w", err)
		}
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("profile: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("profile: encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("profile: unsupported format %q", format)
	}
	return nil
}
