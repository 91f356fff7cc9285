package preload

import "strings"

// ResolveBaseURL returns the prefix applied to every resolved path.
//
// A non-empty base is used verbatim, with a trailing "/" appended when it is
// missing. Otherwise the directory of location is used: everything up to and
// including its last "/", ignoring any query string or fragment.
func ResolveBaseURL(base, location string) string {
	if base != "" {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		return base
	}
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	return location[:strings.LastIndex(location, "/")+1]
}
