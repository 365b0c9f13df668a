package shell

import "github.com/goliatone/go-portfolio/pkg/export"

// ErrMissingName is returned by Generate and Download when the profile has no
// name. It is the same value as export.ErrMissingName.
var ErrMissingName = export.ErrMissingName
