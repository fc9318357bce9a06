package utils

import (
	"net/http"
	"strconv"
)

// DefaultListLimit is the number of records returned when no limit is given
const DefaultListLimit = 50

// MaxListLimit caps list requests
const MaxListLimit = 500

// ListParams contains the list query parameters shared by record endpoints
type ListParams struct {
	Limit  int
	Status string
}

// ParseListParams reads limit and status from the query string
func ParseListParams(r *http.Request) ListParams {
	q := r.URL.Query()
	limit := parseIntQuery(q.Get("limit"), DefaultListLimit)

	if limit < 1 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	return ListParams{
		Limit:  limit,
		Status: q.Get("status"),
	}
}

func parseIntQuery(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}
