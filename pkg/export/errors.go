package export

// ValidationError reports a profile that cannot be exported.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "export: invalid profile"
	}
	return "export: " + e.Field + " " + e.Message
}

// ErrMissingName is returned when the profile has no name. No artifact is
// produced.
var ErrMissingName error = &ValidationError{
	Field:   "personalInfo.name",
	Message: "is required",
}
