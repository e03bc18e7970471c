package cart

import (
	"time"

	"github.com/boilerparts/backend/internal/domain/cart"
)

// AddToCartRequest is the body of an add-to-cart call
type AddToCartRequest struct {
	Username string `json:"username" binding:"required"`
	PartID   int64  `json:"partId" binding:"required,min=1"`
}

// UpdateCountRequest carries the new count. Count is a pointer so a missing
// field can be told apart from zero.
type UpdateCountRequest struct {
	Count *int `json:"count" binding:"omitempty,min=1"`
}

// UpdateTotalPriceRequest carries the new total price
type UpdateTotalPriceRequest struct {
	TotalPrice *int64 `json:"total_price" binding:"omitempty,min=0"`
}

// UpdateCountResponse is the stored count after an update
type UpdateCountResponse struct {
	Count int `json:"count"`
}

// UpdateTotalPriceResponse is the stored total price after an update
type UpdateTotalPriceResponse struct {
	TotalPrice int64 `json:"total_price"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"userId"`
	PartID             int64     `json:"partId"`
	BoilerManufacturer string    `json:"boiler_manufacturer"`
	PartsManufacturer  string    `json:"parts_manufacturer"`
	Price              int64     `json:"price"`
	Name               string    `json:"name"`
	Image              string    `json:"image"`
	InStock            int       `json:"in_stock"`
	Count              int       `json:"count"`
	TotalPrice         int64     `json:"total_price"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ToCartItemResponse converts a domain cart item
func ToCartItemResponse(c *cart.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:                 c.ID,
		UserID:             c.UserID,
		PartID:             c.PartID,
		BoilerManufacturer: c.Snapshot.BoilerManufacturer(),
		PartsManufacturer:  c.Snapshot.PartsManufacturer(),
		Price:              c.Snapshot.Price(),
		Name:               c.Snapshot.Name(),
		Image:              c.Snapshot.Image(),
		InStock:            c.Snapshot.InStock(),
		Count:              c.Count,
		TotalPrice:         c.TotalPrice,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
