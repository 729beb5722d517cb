package inventory

import (
	"context"
)

// Repository defines read access to inventory rows.
// Writes belong to the inventory CRUD flows and are not part of this package.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Record, error)

	// Get returns apperror NotFound when the row does not exist.
	Get(ctx context.Context, id int64) (*Record, error)
}
