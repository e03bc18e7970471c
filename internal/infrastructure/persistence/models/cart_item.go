package models

import "github.com/boilerparts/backend/internal/domain/cart"

// CartItemTable is the name of the cart table
const CartItemTable = "shopping_cart"

// PartSnapshotColumns are the denormalized part columns of a cart row
type PartSnapshotColumns struct {
	BoilerManufacturer string `gorm:"type:varchar(255);not null"`
	PartsManufacturer  string `gorm:"type:varchar(255);not null"`
	Price              int64  `gorm:"not null"`
	InStock            int    `gorm:"not null"`
	Image              string `gorm:"type:text;not null"`
	Name               string `gorm:"type:varchar(255);not null"`
}

// CartItemModel is the persistence model for the shopping_cart table.
// (user_id, part_id) is unique.
type CartItemModel struct {
	BaseModel
	UserID     int64               `gorm:"not null;uniqueIndex:idx_shopping_cart_user_part,priority:1"`
	PartID     int64               `gorm:"not null;uniqueIndex:idx_shopping_cart_user_part,priority:2;index:idx_shopping_cart_part_id"`
	Snapshot   PartSnapshotColumns `gorm:"embedded"`
	Count      int                 `gorm:"not null;default:1;check:chk_shopping_cart_count,count >= 1"`
	TotalPrice int64               `gorm:"not null;check:chk_shopping_cart_total_price,total_price >= 0"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return CartItemTable
}

// ToDomain converts the model to a domain CartItem
func (m *CartItemModel) ToDomain() *cart.CartItem {
	return &cart.CartItem{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		PartID:     m.PartID,
		Snapshot: cart.RestoreSnapshot(
			m.Snapshot.BoilerManufacturer,
			m.Snapshot.PartsManufacturer,
			m.Snapshot.Price,
			m.Snapshot.InStock,
			m.Snapshot.Image,
			m.Snapshot.Name,
		),
		Count:      m.Count,
		TotalPrice: m.TotalPrice,
	}
}

// CartItemModelFromDomain creates a model from a domain CartItem
func CartItemModelFromDomain(c *cart.CartItem) *CartItemModel {
	m := &CartItemModel{
		UserID: c.UserID,
		PartID: c.PartID,
		Snapshot: PartSnapshotColumns{
			BoilerManufacturer: c.Snapshot.BoilerManufacturer(),
			PartsManufacturer:  c.Snapshot.PartsManufacturer(),
			Price:              c.Snapshot.Price(),
			InStock:            c.Snapshot.InStock(),
			Image:              c.Snapshot.Image(),
			Name:               c.Snapshot.Name(),
		},
		Count:      c.Count,
		TotalPrice: c.TotalPrice,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// CartItemsToDomain converts a slice of models
func CartItemsToDomain(ms []CartItemModel) []cart.CartItem {
	items := make([]cart.CartItem, 0, len(ms))
	for i := range ms {
		items = append(items, *ms[i].ToDomain())
	}
	return items
}
