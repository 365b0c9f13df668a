package catalog

import "errors"

var (
	// ErrEmptyCatalog indicates a catalog document without templates.
	ErrEmptyCatalog = errors.New("catalog: no templates defined")
	// ErrUnknownDefault indicates the default id does not name a template.
	ErrUnknownDefault = errors.New("catalog: default template not defined")
)
