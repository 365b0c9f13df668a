package editor

import "errors"

var (
	// ErrLastEntry is returned when removing the only entry of a list.
	ErrLastEntry = errors.New("editor: cannot remove the last entry")
	// ErrIndexOutOfRange is returned when an index does not address an entry.
	ErrIndexOutOfRange = errors.New("editor: index out of range")
	// ErrUnknownSection is returned for sections the profile does not have.
	ErrUnknownSection = errors.New("editor: unknown section")
	// ErrUnknownField is returned for fields the section does not have.
	ErrUnknownField = errors.New("editor: unknown field")
	// ErrNotRepeatable is returned when list operations target a scalar section.
	ErrNotRepeatable = errors.New("editor: section is not repeatable")
)
