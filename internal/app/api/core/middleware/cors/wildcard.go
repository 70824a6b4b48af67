package cors

import "strings"

// wildcard is an origin pattern with exactly one "*", e.g. https://*.netlify.app.
// Matching compares prefix and suffix, which is faster than a regex.
type wildcard struct {
	prefix string
	suffix string
}

// match returns true if the origin has the prefix and suffix of the wildcard.
// The wildcard part must not contain a path separator or userinfo, so https://*.example.com
// does not match https://evil.com/.example.com.
func (w wildcard) match(origin string) bool {
	if len(origin) < len(w.prefix)+len(w.suffix) ||
		!strings.HasPrefix(origin, w.prefix) ||
		!strings.HasSuffix(origin, w.suffix) {
		return false
	}

	middle := origin[len(w.prefix) : len(origin)-len(w.suffix)]
	return !strings.ContainsAny(middle, "/@")
}

func newWildcard(pattern string) wildcard {
	prefix, suffix, _ := strings.Cut(pattern, "*")
	return wildcard{
		prefix: prefix,
		suffix: suffix,
	}
}
