package layout

import (
	"sort"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/render/markup"
)

const (
	Modern     = "modern"
	Minimalist = "minimalist"
)

// Options carry the template identity and theme variables into the root
// element.
type Options struct {
	Template string
	Variant  string
	// Style is an inline declaration list, usually render.InlineStyle.
	Style string
}

// Layout builds the markup tree for a view.
type Layout interface {
	Name() string
	Build(view render.View, opts Options) *markup.Node
}

var layouts = map[string]Layout{
	Modern:     modernLayout{},
	Minimalist: minimalistLayout{},
}

// Get returns the named layout, falling back to Modern for unknown names.
func Get(name string) Layout {
	if l, ok := layouts[strings.ToLower(strings.TrimSpace(name))]; ok {
		return l
	}
	return layouts[Modern]
}

// Names lists the available layout families.
func Names() []string {
	out := make([]string, 0, len(layouts))
	for name := range layouts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Build is shorthand for Get(name).Build(view, opts).
func Build(name string, view render.View, opts Options) *markup.Node {
	return Get(name).Build(view, opts)
}

func container(layout string, opts Options, children ...*markup.Node) *markup.Node {
	template := opts.Template
	if template == "" {
		template = layout
	}
	attrs := markup.Attrs(
		"class", "portfolio-container",
		"data-layout", layout,
		"data-template", template,
		"data-variant", opts.Variant,
		"style", opts.Style,
	)
	return markup.El("div", attrs, children...)
}

func emptyState() *markup.Node {
	return markup.El("div", markup.Class("portfolio-empty"),
		markup.El("div", markup.Attrs("class", "portfolio-empty-icon", "aria-hidden", "true"), markup.Text("📝")),
		markup.El("p", nil, markup.Text(render.EmptyMessage)),
	)
}

func section(id render.Section, class, heading string, body ...*markup.Node) *markup.Node {
	children := append([]*markup.Node{
		markup.El("h2", markup.Class("section-title"), markup.Text(heading)),
	}, body...)
	return markup.El("section", markup.Attrs("id", string(id), "class", class), children...)
}

// textEl returns nil when value is empty so optional fields vanish.
func textEl(tag, class, value string) *markup.Node {
	if value == "" {
		return nil
	}
	return markup.El(tag, markup.Class(class), markup.Text(value))
}

func avatarImage(header render.Header, class string) *markup.Node {
	if !header.Avatar.HasImage() {
		return nil
	}
	return markup.El("div", markup.Class(class),
		markup.El("img", markup.Attrs("src", header.Avatar.ImageURL, "alt", header.Name)),
	)
}

func contactList(contacts []render.Contact, class string) *markup.Node {
	if len(contacts) == 0 {
		return nil
	}
	list := markup.El("div", markup.Class(class))
	for _, c := range contacts {
		list.Append(markup.El("span", markup.Class("contact", "contact-"+c.Kind), markup.Text(c.Value)))
	}
	return list
}

func linkList(links []render.Link, class string) *markup.Node {
	if len(links) == 0 {
		return nil
	}
	list := markup.El("nav", markup.Attrs("class", class, "aria-label", "Links"))
	for _, l := range links {
		list.Append(markup.El("a",
			markup.Attrs("href", l.Href, "class", "social-link social-"+l.Kind, "rel", "noopener noreferrer"),
			markup.Text(l.Label),
		))
	}
	return list
}

func projectLink(href, class string, newTab bool) *markup.Node {
	if href == "" {
		return nil
	}
	attrs := markup.Attrs("href", href, "class", class)
	if newTab {
		attrs = append(attrs, markup.Attrs("target", "_blank", "rel", "noopener noreferrer")...)
	}
	return markup.El("a", attrs, markup.Text("View project"))
}
