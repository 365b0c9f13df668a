package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed catalog.yaml
var embedded embed.FS

// EmbeddedPath is the name of the bundled catalog document inside EmbeddedFS.
const EmbeddedPath = "catalog.yaml"

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// EmbeddedFS returns the filesystem holding the bundled catalog document.
func EmbeddedFS() fs.FS {
	return embedded
}

// Default returns the built-in catalog. The embedded document is parsed once.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load(embedded, EmbeddedPath)
	})
	if defaultErr != nil {
		// The embedded document ships with the binary and is covered by tests.
		panic(defaultErr)
	}
	return defaultCat
}
