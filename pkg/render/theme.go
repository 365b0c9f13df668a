package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// CSSVars returns sanitised CSS custom properties from cfg. Keys are kept only
// when they look like "--name"; values lose every character that could close
// a declaration or a style element.
func CSSVars(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return nil
	}
	out := make(map[string]string, len(cfg.CSSVars))
	for key, value := range cfg.CSSVars {
		key = strings.TrimSpace(key)
		if !validVarName(key) {
			continue
		}
		if value = cleanCSSValue(value); value != "" {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// InlineStyle renders the theme variables as a style attribute value.
func InlineStyle(cfg *theme.RendererConfig) string {
	vars := CSSVars(cfg)
	keys := sortedKeys(vars)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}

// RootStyle renders the theme variables as a ":root" rule.
func RootStyle(cfg *theme.RendererConfig) string {
	vars := CSSVars(cfg)
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range sortedKeys(vars) {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func validVarName(key string) bool {
	if !strings.HasPrefix(key, "--") || len(key) == 2 {
		return false
	}
	for _, r := range key[2:] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func cleanCSSValue(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune("#%.,()- /", r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
