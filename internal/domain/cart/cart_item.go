// Package cart holds the per-user shopping cart.
package cart

import (
	"github.com/boilerparts/backend/internal/domain/catalog"
	"github.com/boilerparts/backend/internal/domain/shared"
)

// PartSnapshot is the copy of catalog data taken when a part is first added
// to a cart. It is immutable: later catalog changes never reach existing
// cart items.
type PartSnapshot struct {
	boilerManufacturer string
	partsManufacturer  string
	price              int64
	inStock            int
	image              string
	name               string
}

// SnapshotOf captures the cart-relevant fields of a part.
func SnapshotOf(p *catalog.BoilerPart) PartSnapshot {
	return PartSnapshot{
		boilerManufacturer: p.BoilerManufacturer,
		partsManufacturer:  p.PartsManufacturer,
		price:              p.Price,
		inStock:            p.InStock,
		image:              p.FirstImage(),
		name:               p.Name,
	}
}

// RestoreSnapshot rebuilds a snapshot from stored values.
func RestoreSnapshot(boilerManufacturer, partsManufacturer string, price int64, inStock int, image, name string) PartSnapshot {
	return PartSnapshot{
		boilerManufacturer: boilerManufacturer,
		partsManufacturer:  partsManufacturer,
		price:              price,
		inStock:            inStock,
		image:              image,
		name:               name,
	}
}

func (s PartSnapshot) BoilerManufacturer() string { return s.boilerManufacturer }
func (s PartSnapshot) PartsManufacturer() string  { return s.partsManufacturer }
func (s PartSnapshot) Price() int64               { return s.price }
func (s PartSnapshot) InStock() int               { return s.inStock }
func (s PartSnapshot) Image() string              { return s.image }
func (s PartSnapshot) Name() string               { return s.name }

// CartItem is one line of a user's cart. There is at most one item per
// (UserID, PartID).
type CartItem struct {
	shared.BaseEntity
	UserID     int64
	PartID     int64
	Snapshot   PartSnapshot
	Count      int
	TotalPrice int64
}

// NewCartItem creates the first cart line for a part: count 1 at the
// snapshot price.
func NewCartItem(userID int64, part *catalog.BoilerPart) *CartItem {
	snapshot := SnapshotOf(part)
	return &CartItem{
		UserID:     userID,
		PartID:     part.ID,
		Snapshot:   snapshot,
		Count:      1,
		TotalPrice: snapshot.Price(),
	}
}

// ValidateCount rejects counts below one. A line with no units is removed,
// not kept at zero.
func ValidateCount(count int) error {
	if count < 1 {
		return shared.InvalidInputf("count must be at least 1")
	}
	return nil
}

// ValidateTotalPrice rejects negative totals.
func ValidateTotalPrice(totalPrice int64) error {
	if totalPrice < 0 {
		return shared.InvalidInputf("total_price cannot be negative")
	}
	return nil
}
