package profile

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// ValidationError lists constraint violations keyed by JSON field path
// (for example "experience[1].title").
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "profile: invalid profile"
	}
	paths := make([]string, 0, len(e.Fields))
	for path := range e.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, path := range paths {
		parts = append(parts, path+": "+strings.Join(e.Fields[path], ", "))
	}
	return "profile: invalid profile: " + strings.Join(parts, "; ")
}

// Validate checks structural constraints: every repeatable list has at least
// one entry, free-text fields stay within their length caps and the profile
// image, when present, is a data URL.
func Validate(p Profile) error {
	err := structValidator().Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("profile: validate: %w", err)
	}

	out := &ValidationError{Fields: make(map[string][]string, len(verrs))}
	for _, fe := range verrs {
		path := strings.TrimPrefix(fe.Namespace(), "Profile.")
		out.Fields[path] = append(out.Fields[path], describe(fe))
	}
	return out
}

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate = v
	})
	return validate
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return "must contain at least " + fe.Param() + " entry"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "datauri":
		return "must be an inline data URL"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
