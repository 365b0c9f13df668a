package catalog

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Select implements theme.ThemeSelector. Theme names are template ids;
// unknown names resolve to the default template and unknown variants to the
// base tokens.
func (c *Catalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	tpl := c.Resolve(name)
	variant = strings.TrimSpace(variant)
	if tpl.Theme == nil {
		return &theme.Selection{Theme: tpl.ID}, nil
	}
	if _, ok := tpl.Theme.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{
		Theme:    tpl.ID,
		Variant:  variant,
		Manifest: tpl.Theme,
	}, nil
}

var _ theme.ThemeSelector = (*Catalog)(nil)
