// Package render defines the Renderer contract, the renderer Registry and
// BuildView, the single place where a Profile is turned into the sections and
// entries a portfolio displays. Layouts in render/layout arrange a View into a
// markup tree; renderers under pkg/renderers serialise that tree.
package render
