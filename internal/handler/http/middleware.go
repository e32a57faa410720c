package http

import (
	"net/http"
	"strings"

	"github.com/sbecom/storeapi/internal/config"
	"github.com/sbecom/storeapi/pkg/httputil"
)

// ContentTypeJSON enforces that requests with a body have
// Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// pagingParams holds the raw listing parameters after defaulting.
type pagingParams struct {
	number    int
	size      int
	sortBy    string
	sortOrder string
}

// parsePaging reads pageNumber/pageSize/sortBy/sortOrder query parameters,
// applying the configured defaults for anything omitted. On a malformed
// number it writes a 400 and returns ok=false.
func parsePaging(w http.ResponseWriter, r *http.Request) (pagingParams, bool) {
	number, ok := httputil.QueryInt(w, r, "pageNumber", config.DefaultPageNumber)
	if !ok {
		return pagingParams{}, false
	}
	size, ok := httputil.QueryInt(w, r, "pageSize", config.DefaultPageSize)
	if !ok {
		return pagingParams{}, false
	}

	sortBy := r.URL.Query().Get("sortBy")
	if sortBy == "" {
		sortBy = config.DefaultSortBy
	}
	sortOrder := r.URL.Query().Get("sortOrder")
	if sortOrder == "" {
		sortOrder = config.DefaultSortOrder
	}

	return pagingParams{number: number, size: size, sortBy: sortBy, sortOrder: sortOrder}, true
}
