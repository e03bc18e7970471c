package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boilerparts/backend/internal/domain/cart"
	"github.com/boilerparts/backend/internal/domain/shared"
	"github.com/boilerparts/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements cart.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUserID returns every item in the user's cart ordered by ID
func (r *GormCartRepository) FindByUserID(ctx context.Context, userID int64) ([]cart.CartItem, error) {
	var ms []models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("find cart of user %d: %w", userID, err)
	}
	return models.CartItemsToDomain(ms), nil
}

// FindOneByPartID returns the oldest item referencing the part
func (r *GormCartRepository) FindOneByPartID(ctx context.Context, partID int64) (*cart.CartItem, error) {
	var m models.CartItemModel
	if err := r.db.WithContext(ctx).
		Where("part_id = ?", partID).
		Order("id ASC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find cart item by part %d: %w", partID, err)
	}
	return m.ToDomain(), nil
}

// AddOrIncrement inserts item or, on a (user_id, part_id) conflict, bumps the
// stored count by one. The total is recomputed from the stored snapshot price
// so an existing line never picks up a new catalog price.
func (r *GormCartRepository) AddOrIncrement(ctx context.Context, item *cart.CartItem) (*cart.CartItem, error) {
	m := models.CartItemModelFromDomain(item)
	table := models.CartItemTable

	var stored models.CartItemModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "part_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"count":       gorm.Expr(table + ".count + 1"),
				"total_price": gorm.Expr(table + ".price * (" + table + ".count + 1)"),
				"updated_at":  time.Now(),
			}),
		}).Create(m).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ? AND part_id = ?", item.UserID, item.PartID).
			First(&stored).Error
	})
	if err != nil {
		return nil, fmt.Errorf("add part %d to cart of user %d: %w", item.PartID, item.UserID, err)
	}
	return stored.ToDomain(), nil
}

// UpdateCountByPartID sets count on every item referencing the part
func (r *GormCartRepository) UpdateCountByPartID(ctx context.Context, partID int64, count int) (int64, error) {
	return r.updateByPartID(ctx, partID, "count", count)
}

// UpdateTotalPriceByPartID sets total_price on every item referencing the part
func (r *GormCartRepository) UpdateTotalPriceByPartID(ctx context.Context, partID int64, totalPrice int64) (int64, error) {
	return r.updateByPartID(ctx, partID, "total_price", totalPrice)
}

// Delete removes one item by ID. Deleting a missing row is not an error.
func (r *GormCartRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.CartItemModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete cart item %d: %w", id, err)
	}
	return nil
}

// DeleteByUserID removes every item of the user
func (r *GormCartRepository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItemModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("clear cart of user %d: %w", userID, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormCartRepository) updateByPartID(ctx context.Context, partID int64, column string, value any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartItemModel{}).
		Where("part_id = ?", partID).
		Updates(map[string]any{
			column:       value,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("update %s of cart items for part %d: %w", column, partID, result.Error)
	}
	return result.RowsAffected, nil
}

var _ cart.CartRepository = (*GormCartRepository)(nil)
