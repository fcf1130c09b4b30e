package validate

import (
	"net/url"
	"regexp"
)

// Format patterns. The email pattern is the ECMA-derived expression covering
// local@domain with a dotted-quad or DNS hostname and quoted local parts.
var (
	colorHexPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3,4}|([0-9A-Fa-f]{2}){3,4})$`)
	emailPattern    = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)
)

// checkURI validates a uri or uri-reference format value, returning a
// problem detail message or "" when the value is acceptable. Empty strings
// always fail; the uri format additionally requires a scheme.
func checkURI(value string, requireScheme bool) string {
	if value == "" {
		return "URI expected."
	}
	u, err := url.Parse(value)
	if err != nil {
		return "URI is expected."
	}
	if requireScheme && u.Scheme == "" {
		return "URI with a scheme is expected."
	}
	return ""
}
