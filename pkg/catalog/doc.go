// Package catalog describes the selectable portfolio templates: their display
// metadata, category, layout family, sanitised SVG thumbnail and go-theme
// manifest. The built-in catalog is embedded; callers may load their own
// document from any fs.FS.
package catalog
