// Package layout arranges a render.View into a markup tree. Each layout family
// decides structure and class names only; visibility and filtering are
// already settled by render.BuildView.
package layout
