// Package component renders a profile into a JSON component tree for
// interactive previews. The tree is converted from the same markup nodes the
// static renderer serialises, and carries the visible sections and resolved
// theme so a client can re-render without a round trip through HTML.
package component
