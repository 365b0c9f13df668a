package template

import "io"

// TemplateRenderer renders named templates, or inline template text, with a
// data context. When writers are given the output is copied to each of them
// as well as returned.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
