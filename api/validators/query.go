package validators

import (
	"net/http"
	"strings"
)

// QueryString returns a trimmed query parameter, or the fallback when absent.
func QueryString(r *http.Request, key, fallback string) string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	return raw
}
