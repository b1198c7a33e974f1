package utils

import (
	"net/url"
	"strings"
)

// QueryString returns the trimmed query parameter, or def when it is empty.
func QueryString(q url.Values, key, def string) string {
	if v := strings.TrimSpace(q.Get(key)); v != "" {
		return v
	}
	return def
}
