package cart

import "context"

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByUserID returns every item in the user's cart
	FindByUserID(ctx context.Context, userID int64) ([]CartItem, error)

	// FindOneByPartID returns one item referencing the part
	FindOneByPartID(ctx context.Context, partID int64) (*CartItem, error)

	// AddOrIncrement atomically inserts item, or when a row for
	// (item.UserID, item.PartID) already exists increments its count and
	// recomputes total_price from the stored price. It returns the stored row.
	AddOrIncrement(ctx context.Context, item *CartItem) (*CartItem, error)

	// UpdateCountByPartID sets count on every item referencing the part and
	// returns the number of rows affected
	UpdateCountByPartID(ctx context.Context, partID int64, count int) (int64, error)

	// UpdateTotalPriceByPartID sets total_price on every item referencing the
	// part and returns the number of rows affected
	UpdateTotalPriceByPartID(ctx context.Context, partID int64, totalPrice int64) (int64, error)

	// Delete removes one item by ID
	Delete(ctx context.Context, id int64) error

	// DeleteByUserID removes every item of the user and returns the number removed
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
}
