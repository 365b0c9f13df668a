package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidSelection is returned when the driver reports an option index
	// outside the offered list.
	ErrInvalidSelection = errors.New("tui: invalid selection")
)
