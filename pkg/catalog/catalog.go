package catalog

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// CategoryAll selects every template when used as a filter.
const CategoryAll = "All"

// DefaultTemplateID is used when a catalog document omits a default.
const DefaultTemplateID = "modern"

// Template is one selectable portfolio template.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	// Layout names the layout family that builds the markup.
	Layout string `json:"layout"`
	// Thumbnail is a sanitised inline SVG preview.
	Thumbnail string          `json:"thumbnail"`
	Theme     *theme.Manifest `json:"-"`
}

// Variants lists the theme variants declared for the template, sorted.
func (t Template) Variants() []string {
	if t.Theme == nil || len(t.Theme.Variants) == 0 {
		return nil
	}
	out := make([]string, 0, len(t.Theme.Variants))
	for name := range t.Theme.Variants {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Catalog is an immutable, ordered set of templates.
type Catalog struct {
	templates  []Template
	index      map[string]int
	categories []string
	defaultID  string
}

type document struct {
	Default    string             `yaml:"default"`
	Categories []string           `yaml:"categories"`
	Templates  []templateDocument `yaml:"templates"`
}

type templateDocument struct {
	ID          string                       `yaml:"id"`
	Name        string                       `yaml:"name"`
	Description string                       `yaml:"description"`
	Category    string                       `yaml:"category"`
	Layout      string                       `yaml:"layout"`
	Thumbnail   string                       `yaml:"thumbnail"`
	Version     string                       `yaml:"version"`
	Tokens      map[string]string            `yaml:"tokens"`
	Variants    map[string]map[string]string `yaml:"variants"`
}

// Load parses the YAML catalog stored at path inside fsys.
func Load(fsys fs.FS, path string) (*Catalog, error) {
	if fsys == nil {
		return nil, fmt.Errorf("catalog: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalog from a YAML document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return build(doc)
}

func build(doc document) (*Catalog, error) {
	if len(doc.Templates) == 0 {
		return nil, ErrEmptyCatalog
	}

	registry := theme.NewRegistry()
	c := &Catalog{
		templates: make([]Template, 0, len(doc.Templates)),
		index:     make(map[string]int, len(doc.Templates)),
		defaultID: strings.TrimSpace(doc.Default),
	}

	for i, raw := range doc.Templates {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog: template %d has an empty id", i)
		}
		if _, exists := c.index[id]; exists {
			return nil, fmt.Errorf("catalog: duplicate template %q", id)
		}

		manifest := manifestFor(id, raw)
		tpl := Template{
			ID:          id,
			Name:        strings.TrimSpace(raw.Name),
			Description: strings.TrimSpace(raw.Description),
			Category:    strings.TrimSpace(raw.Category),
			Layout:      strings.TrimSpace(raw.Layout),
			Thumbnail:   sanitizeThumbnail(raw.Thumbnail),
			Theme:       manifest,
		}
		if tpl.Name == "" {
			tpl.Name = id
		}
		if tpl.Layout == "" {
			tpl.Layout = DefaultTemplateID
		}

		c.index[id] = len(c.templates)
		c.templates = append(c.templates, tpl)
	}

	if c.defaultID == "" {
		c.defaultID = DefaultTemplateID
	}
	if _, ok := c.index[c.defaultID]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefault, c.defaultID)
	}

	// The go-theme registry rejects malformed manifests and duplicate names.
	for _, tpl := range c.templates {
		if err := registry.Register(tpl.Theme); err != nil {
			return nil, fmt.Errorf("catalog: register theme %q: %w", tpl.ID, err)
		}
	}

	c.categories = categoriesFor(doc.Categories, c.templates)
	return c, nil
}

func manifestFor(id string, raw templateDocument) *theme.Manifest {
	version := strings.TrimSpace(raw.Version)
	if version == "" {
		version = "1.0.0"
	}
	manifest := &theme.Manifest{
		Name:    id,
		Version: version,
		Tokens:  copyTokens(raw.Tokens),
	}
	if len(raw.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(raw.Variants))
		for name, tokens := range raw.Variants {
			manifest.Variants[strings.TrimSpace(name)] = theme.Variant{Tokens: copyTokens(tokens)}
		}
	}
	return manifest
}

func categoriesFor(declared []string, templates []Template) []string {
	seen := map[string]bool{CategoryAll: true}
	out := []string{CategoryAll}
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	for _, name := range declared {
		add(name)
	}
	for _, tpl := range templates {
		add(tpl.Category)
	}
	return out
}

func copyTokens(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// List returns every template in catalog order.
func (c *Catalog) List() []Template {
	return append([]Template(nil), c.templates...)
}

// Filter returns the templates whose category equals category, keeping
// catalog order. "All" (or an empty string) returns every template.
func (c *Catalog) Filter(category string) []Template {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return c.List()
	}
	out := make([]Template, 0, len(c.templates))
	for _, tpl := range c.templates {
		if strings.EqualFold(tpl.Category, category) {
			out = append(out, tpl)
		}
	}
	return out
}

// Categories returns the filter options, "All" first.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// Get looks up a template by id.
func (c *Catalog) Get(id string) (Template, bool) {
	idx, ok := c.index[strings.TrimSpace(id)]
	if !ok {
		return Template{}, false
	}
	return c.templates[idx], true
}

// Has reports whether id names a template.
func (c *Catalog) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// Resolve returns the template for id, falling back to the default template
// for empty or unknown ids.
func (c *Catalog) Resolve(id string) Template {
	if tpl, ok := c.Get(id); ok {
		return tpl
	}
	return c.templates[c.index[c.defaultID]]
}

// DefaultID returns the id used for fallbacks.
func (c *Catalog) DefaultID() string {
	return c.defaultID
}
