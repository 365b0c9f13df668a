package shell

import "github.com/goliatone/go-portfolio/pkg/export"

// Saver persists exported artifacts. export.DirSaver and export.WriterSaver
// satisfy it.
type Saver = export.Saver
