package illustration

import (
	"context"

	"github.com/kbukum/gallery/gallery"
)

// Repository reads illustration rows.
type Repository interface {
	// List returns the rows of one page and the exact total row count.
	List(ctx context.Context, q Query) ([]gallery.Illustration, int, error)
	// Get returns one row by id. A missing row is an AppError with code
	// NOT_FOUND.
	Get(ctx context.Context, id string) (*gallery.Illustration, error)
}
