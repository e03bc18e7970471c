package catalog

import "context"

// BoilerPartRepository defines the interface for boiler part persistence
type BoilerPartRepository interface {
	// FindAndCount returns one page of parts matching the filter and the
	// total number of matching parts
	FindAndCount(ctx context.Context, filter PartFilter) ([]BoilerPart, int64, error)

	// FindBestsellers returns every part flagged as bestseller
	FindBestsellers(ctx context.Context) ([]BoilerPart, error)

	// FindNew returns every part flagged as new
	FindNew(ctx context.Context) ([]BoilerPart, error)

	// FindByID finds a part by ID
	FindByID(ctx context.Context, id int64) (*BoilerPart, error)

	// FindByName finds a part by exact name
	FindByName(ctx context.Context, name string) (*BoilerPart, error)

	// SearchByName returns up to limit parts whose name contains s
	SearchByName(ctx context.Context, s string, limit int) ([]BoilerPart, error)

	// CreateBatch inserts parts and assigns their IDs
	CreateBatch(ctx context.Context, parts []*BoilerPart) error

	// DeleteAll removes every part and returns the number removed
	DeleteAll(ctx context.Context) (int64, error)
}
