package models

// DefaultLimit is applied to list queries that do not specify a limit.
const DefaultLimit = 100

// MaxLimit caps the page size a client may request.
const MaxLimit = 500

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
	TotalCount int `json:"totalCount"`
}

// NormalizePage clamps limit and offset to usable values.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
