package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/profile"
)

// Target addresses one editable field of the profile.
type Target struct {
	Section profile.Section
	Index   int
	Field   string
}

// ParsePath resolves dotted or bracketed paths such as "personalInfo.name",
// "experience[0].title", "projects.1.link" or "skills[2]" into a Target.
// JSON pointer prefixes ("#/", "/") are accepted as well.
func ParsePath(path string) (Target, error) {
	segments := pathSegments(path)
	if len(segments) == 0 {
		return Target{}, fmt.Errorf("editor: empty path")
	}

	section, err := profile.ParseSection(segments[0])
	if err != nil {
		return Target{}, fmt.Errorf("%w: %q", ErrUnknownSection, segments[0])
	}
	rest := segments[1:]

	if section == profile.SectionPersonalInfo {
		if len(rest) != 1 {
			return Target{}, fmt.Errorf("editor: path %q must name one personal field", path)
		}
		return Target{Section: section, Field: rest[0]}, nil
	}

	if len(rest) == 0 {
		return Target{}, fmt.Errorf("editor: path %q is missing an index", path)
	}
	index, err := strconv.Atoi(rest[0])
	if err != nil {
		return Target{}, fmt.Errorf("editor: path %q has invalid index %q", path, rest[0])
	}

	target := Target{Section: section, Index: index}
	switch len(rest) {
	case 1:
		if section != profile.SectionSkills {
			return Target{}, fmt.Errorf("editor: path %q must name a field", path)
		}
		target.Field = profile.FieldValue
	case 2:
		target.Field = rest[1]
	default:
		return Target{}, fmt.Errorf("editor: path %q is too deep", path)
	}
	return target, nil
}

// UpdatePath parses path and applies UpdateField.
func (e *Editor) UpdatePath(path, value string) error {
	target, err := ParsePath(path)
	if err != nil {
		return err
	}
	return e.UpdateField(target.Section, target.Index, target.Field, value)
}

func pathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$.")
	clean = strings.TrimLeft(clean, "#/.$")

	replacer := strings.NewReplacer("[", ".", "]", "")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			out = append(out, segment)
		}
	}
	return out
}
