package utils

import (
	"net/http"
	"strconv"
)

// ParsePagination reads skip/limit from query parameters, clamping limit
// to maxLimit.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int64) (skip, limit int64) {
	q := r.URL.Query()

	limit = defaultLimit
	if v, err := strconv.ParseInt(q.Get("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	if v, err := strconv.ParseInt(q.Get("skip"), 10, 64); err == nil && v > 0 {
		skip = v
	}
	return skip, limit
}
