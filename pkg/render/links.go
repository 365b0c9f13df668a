package render

import (
	"net/url"
	"strings"
)

const secureScheme = "https://"

// SafeHref returns raw as a link target, replacing targets with script-capable
// schemes (javascript:, vbscript:, non-image data:) or unparsable values with
// "#". Empty input yields "".
func SafeHref(raw string) string {
	trimmed := strings.TrimFunc(raw, func(r rune) bool { return r <= ' ' })
	if trimmed == "" {
		return ""
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "javascript", "vbscript", "file":
		return "#"
	case "data":
		if !IsImageDataURL(trimmed) {
			return "#"
		}
	}
	return trimmed
}

// SocialHref turns a bare profile handle such as "linkedin.com/in/jane" into a
// link by prefixing https://. Values that already carry http:// or https://
// are left as they are.
func SocialHref(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return SafeHref(trimmed)
	}
	return SafeHref(secureScheme + trimmed)
}

// IsImageDataURL reports whether raw is a data URL carrying an image.
func IsImageDataURL(raw string) bool {
	return strings.HasPrefix(strings.ToLower(raw), "data:image/")
}
