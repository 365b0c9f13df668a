// Package template defines the template engine seam used for document shells
// and server pages. The gotemplate subpackage provides the pongo2 engine.
package template
