// Package static renders a profile into an HTML fragment. The fragment is the
// body of both the live preview and the exported document; the per-layout
// stylesheets it relies on are embedded and exposed through Stylesheet.
package static
