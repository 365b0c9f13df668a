package render

import "errors"

var (
	// ErrUnknownRenderer is returned when no renderer has the requested name.
	ErrUnknownRenderer = errors.New("render: unknown renderer")
	// ErrDuplicateRenderer is returned when a name is registered twice.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
)
