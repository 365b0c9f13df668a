// Package testsupport holds profile fixtures and golden-file helpers for
// package tests.
package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// LoadProfile decodes the YAML or JSON fixture at path and fails t on error.
func LoadProfile(t *testing.T, path string) profile.Profile {
	t.Helper()

	p, err := LoadProfileFromPath(path)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	return p
}

// LoadProfileFromPath is LoadProfile for setup code without a testing.T.
func LoadProfileFromPath(path string) (profile.Profile, error) {
	if path == "" {
		return profile.Profile{}, errors.New("testsupport: profile path is required")
	}

	file, err := os.Open(path)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("testsupport: open profile: %w", err)
	}
	defer file.Close()

	p, err := profile.Decode(file, profile.FormatFromPath(path))
	if err != nil {
		return profile.Profile{}, fmt.Errorf("testsupport: decode profile: %w", err)
	}
	return p, nil
}

// SampleProfile returns a fully populated profile used across package tests.
func SampleProfile() profile.Profile {
	return profile.Profile{
		PersonalInfo: profile.PersonalInfo{
			Name:     "Jane Doe",
			Title:    "Software Engineer",
			Email:    "jane@example.com",
			Phone:    "+1 555 0100",
			Location: "Lisbon, Portugal",
			Website:  "https://jane.dev",
			LinkedIn: "linkedin.com/in/janedoe",
			GitHub:   "github.com/janedoe",
			Bio:      "I build reliable web services.",
		},
		Skills: []string{"Go", "PostgreSQL", "Kubernetes"},
		Experience: []profile.Experience{
			{Title: "Senior Engineer", Company: "Acme", Duration: "2021 - Present", Description: "Platform team lead."},
			{Title: "Engineer", Company: "Globex", Duration: "2017 - 2021", Description: "Payments APIs."},
		},
		Education: []profile.Education{
			{Degree: "BSc Computer Science", Institution: "University of Lisbon", Year: "2017"},
		},
		Projects: []profile.Project{
			{Name: "go-portfolio", Description: "Portfolio generator.", Technologies: "Go, HTMX", Link: "https://github.com/janedoe/go-portfolio"},
		},
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// rendered string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// Context returns the context used by package tests.
func Context() context.Context {
	return context.Background()
}
