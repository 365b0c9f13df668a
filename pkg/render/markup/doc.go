// Package markup is a small typed document tree shared by every portfolio
// output. Layouts build a Node tree once; RenderHTML serialises it through
// golang.org/x/net/html (which escapes all text and attribute values) and
// ToComponent converts it into a JSON-friendly component tree for interactive
// previews. Both adapters walk the same nodes, so they cannot drift apart.
package markup
