// Package target normalizes user-supplied target addresses into full URLs.
package target

import (
	"errors"
	"net/url"
	"strings"
)

// Normalize completes a target address so the load workers always receive a
// URL with a scheme and a path. Bare hosts and IPs get an http:// scheme, and
// a URL with no path gets a trailing slash.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("target is required")
	}

	if !hasHTTPScheme(trimmed) {
		trimmed = "http://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", errors.New("target has no host")
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
