package gallery

import (
	"context"
	"time"
)

// Illustration is one listing row. Identity is ID.
type Illustration struct {
	ID          string     `json:"id" db:"id"`
	FilePath    string     `json:"file_path" db:"file_path"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	CreatedAt   *time.Time `json:"created_at,omitempty" db:"created_at"`
}

// ListingPage is the listing API's response body.
type ListingPage struct {
	Items       []Illustration `json:"items"`
	TotalCount  int            `json:"totalCount"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
}

// PageRequest selects one page of the listing.
type PageRequest struct {
	Page          int
	Limit         int
	SortBy        string
	SortDirection string
}

// Lister returns listing pages. It is satisfied by the in-process listing
// service and by the remote API client.
type Lister interface {
	List(ctx context.Context, req PageRequest) (*ListingPage, error)
}

// ListerFunc adapts a function to Lister.
type ListerFunc func(ctx context.Context, req PageRequest) (*ListingPage, error)

// List calls f.
func (f ListerFunc) List(ctx context.Context, req PageRequest) (*ListingPage, error) {
	return f(ctx, req)
}
