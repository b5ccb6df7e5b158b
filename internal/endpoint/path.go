package endpoint

import (
	"net/url"
	"strings"
)

// queryStart locates the byte offset at which the query-string search for
// a URL begins (the byte after its first '/', or 0 if it has none), and the
// byte offset at which the path component ends (its first '?' at-or-after
// queryStart, or the end of the string).
func queryStart(raw string) (start, end int) {
	start = 0
	if idx := strings.IndexByte(raw, '/'); idx >= 0 {
		start = idx + 1
	}
	end = len(raw)
	if idx := strings.IndexByte(raw[start:], '?'); idx >= 0 {
		end = start + idx
	}
	return start, end
}

// PathFromURL reduces a caller-supplied URL string to its certified path:
// locate the first '/' (the query search resumes at the byte after it, or at
// 0 if there is none), locate the first '?' at-or-after that point (or the
// end of the string if there is none), take the prefix of the original
// string up to that point, percent-decode it, then drop one trailing '/' if
// present. The result never has a query string or a trailing slash; anything
// before the path (a scheme or host) is kept as given, not stripped.
func PathFromURL(raw string) (string, error) {
	_, end := queryStart(raw)
	decoded, err := url.PathUnescape(raw[:end])
	if err != nil {
		return "", err
	}
	decoded = strings.TrimSuffix(decoded, "/")
	return decoded, nil
}

// OriginalPath extracts a URL's path component up to (not including) its
// first '?', with no percent-decoding and no trailing-slash trim — the
// platform's url.path.original, used by the v1 response binder path. It is
// deliberately a different string than PathFromURL's result whenever the
// path carries percent-encoding or a trailing slash; that asymmetry between
// the (decoded) tree key certify writes and the (original) key v1 lookups
// read is a property of the platform's legacy certification scheme, not a
// bug in this package.
func OriginalPath(raw string) string {
	_, end := queryStart(raw)
	return raw[:end]
}

// ParseQuery splits a URL's query string (the portion after '?', if any)
// into ordered, percent-decoded (name, value) pairs.
func ParseQuery(raw string) []NameValue {
	qIdx := strings.IndexByte(raw, '?')
	if qIdx < 0 {
		return nil
	}
	query := raw[qIdx+1:]
	if query == "" {
		return nil
	}
	var params []NameValue
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		name, errN := url.QueryUnescape(name)
		value, errV := url.QueryUnescape(value)
		if errN != nil || errV != nil {
			continue
		}
		params = append(params, NameValue{Name: name, Value: value})
	}
	return params
}
