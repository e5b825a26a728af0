package illustration

import (
	"strconv"

	"github.com/kbukum/gallery/gallery"
	"github.com/kbukum/gallery/validation"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SortColumns are the columns a listing may be ordered by.
var SortColumns = []string{"created_at", "title", "id"}

// Query is a validated listing request.
type Query struct {
	Page          int
	Limit         int
	SortBy        string
	SortDirection string
}

// ParseQuery reads the raw query parameters, applying defaults for empty
// values. Non-numeric or non-positive page/limit values are rejected; limit
// is capped at MaxLimit.
func ParseQuery(page, limit, sortBy, sortDirection string) (Query, error) {
	q := Query{Page: DefaultPage, Limit: DefaultLimit, SortBy: gallery.DefaultSortBy, SortDirection: gallery.DefaultSortDirection}

	v := validation.New()
	q.Page = v.Int("page", page, DefaultPage, 1)
	q.Limit = min(v.Int("limit", limit, DefaultLimit, 1), MaxLimit)
	if sortBy != "" {
		q.SortBy = sortBy
	}
	if sortDirection != "" {
		q.SortDirection = sortDirection
	}
	v.OneOf("sortBy", q.SortBy, SortColumns...)
	v.OneOf("sortDirection", q.SortDirection, "asc", "desc")

	if err := v.Err(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// FromPageRequest converts a gallery request, filling defaults and
// validating it like an HTTP query.
func FromPageRequest(req gallery.PageRequest) (Query, error) {
	var page, limit string
	if req.Page != 0 {
		page = strconv.Itoa(req.Page)
	}
	if req.Limit != 0 {
		limit = strconv.Itoa(req.Limit)
	}
	return ParseQuery(page, limit, req.SortBy, req.SortDirection)
}

// Offset is the index of the first row of the page.
func (q Query) Offset() int { return (q.Page - 1) * q.Limit }

// End is the inclusive index of the last row of the page.
func (q Query) End() int { return q.Page*q.Limit - 1 }

// Ascending reports the sort direction.
func (q Query) Ascending() bool { return q.SortDirection == "asc" }

// TotalPages is ceil(count/limit).
func TotalPages(count, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (count + limit - 1) / limit
}
