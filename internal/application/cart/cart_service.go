// Package cart implements the shopping cart use cases.
package cart

import (
	"context"
	"errors"

	"github.com/boilerparts/backend/internal/domain/cart"
	"github.com/boilerparts/backend/internal/domain/catalog"
	"github.com/boilerparts/backend/internal/domain/identity"
	"github.com/boilerparts/backend/internal/domain/shared"
	"github.com/boilerparts/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CartService orchestrates users, the catalog and cart storage
type CartService struct {
	cartRepo cart.CartRepository
	userRepo identity.UserRepository
	partRepo catalog.BoilerPartRepository
	logger   *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo cart.CartRepository,
	userRepo identity.UserRepository,
	partRepo catalog.BoilerPartRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		userRepo: userRepo,
		partRepo: partRepo,
		logger:   logger,
	}
}

// FindAll returns every item in the user's cart
func (s *CartService) FindAll(ctx context.Context, userID int64) ([]CartItemResponse, error) {
	items, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}

	out := make([]CartItemResponse, len(items))
	for i := range items {
		out[i] = ToCartItemResponse(&items[i])
	}
	return out, nil
}

// Add puts one unit of the part into the user's cart. The first add creates
// the line from a snapshot of the part; later adds increment its count.
func (s *CartService) Add(ctx context.Context, input AddToCartRequest) (*CartItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "add",
		telemetry.SpanAttrUsername, input.Username,
		telemetry.SpanAttrPartID, input.PartID,
	)
	defer span.End()

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundf("User %q not found", input.Username)
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	part, err := s.partRepo.FindByID(ctx, input.PartID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundf("Boiler part with id %d not found", input.PartID)
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	stored, err := s.cartRepo.AddOrIncrement(ctx, cart.NewCartItem(user.ID, part))
	if err != nil {
		s.logger.Error("Failed to add part to cart",
			zap.Int64("user_id", user.ID),
			zap.Int64("part_id", part.ID),
			zap.Error(err))
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrUserID, user.ID, telemetry.SpanAttrCount, stored.Count)

	s.logger.Debug("Part added to cart",
		zap.Int64("user_id", user.ID),
		zap.Int64("part_id", part.ID),
		zap.Int("count", stored.Count))

	resp := ToCartItemResponse(stored)
	return &resp, nil
}

// UpdateCount sets the count of the items holding the part and returns the
// stored value
func (s *CartService) UpdateCount(ctx context.Context, partID int64, count int) (*UpdateCountResponse, error) {
	if err := cart.ValidateCount(count); err != nil {
		return nil, err
	}
	rows, err := s.cartRepo.UpdateCountByPartID(ctx, partID, count)
	if err != nil {
		s.logger.Error("Failed to update cart count", zap.Int64("part_id", partID), zap.Error(err))
		return nil, err
	}
	if rows == 0 {
		return nil, notInCart(partID)
	}

	item, err := s.reload(ctx, partID)
	if err != nil {
		return nil, err
	}
	return &UpdateCountResponse{Count: item.Count}, nil
}

// UpdateTotalPrice sets the total price of the items holding the part and
// returns the stored value
func (s *CartService) UpdateTotalPrice(ctx context.Context, partID int64, totalPrice int64) (*UpdateTotalPriceResponse, error) {
	if err := cart.ValidateTotalPrice(totalPrice); err != nil {
		return nil, err
	}
	rows, err := s.cartRepo.UpdateTotalPriceByPartID(ctx, partID, totalPrice)
	if err != nil {
		s.logger.Error("Failed to update cart total price", zap.Int64("part_id", partID), zap.Error(err))
		return nil, err
	}
	if rows == 0 {
		return nil, notInCart(partID)
	}

	item, err := s.reload(ctx, partID)
	if err != nil {
		return nil, err
	}
	return &UpdateTotalPriceResponse{TotalPrice: item.TotalPrice}, nil
}

// Remove deletes the cart item holding the part
func (s *CartService) Remove(ctx context.Context, partID int64) error {
	item, err := s.reload(ctx, partID)
	if err != nil {
		return err
	}
	if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
		s.logger.Error("Failed to remove cart item", zap.Int64("id", item.ID), zap.Error(err))
		return err
	}
	return nil
}

// RemoveAll empties the user's cart. An already empty cart is an error.
func (s *CartService) RemoveAll(ctx context.Context, userID int64) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "remove_all", telemetry.SpanAttrUserID, userID)
	defer span.End()

	rows, err := s.cartRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to clear cart", zap.Int64("user_id", userID), zap.Error(err))
		telemetry.RecordError(span, err)
		return err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrRows, rows)
	if rows == 0 {
		return shared.NotFoundf("Cart of user %d is empty", userID)
	}

	s.logger.Info("Cart cleared", zap.Int64("user_id", userID), zap.Int64("items", rows))
	return nil
}

func (s *CartService) reload(ctx context.Context, partID int64) (*cart.CartItem, error) {
	item, err := s.cartRepo.FindOneByPartID(ctx, partID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, notInCart(partID)
		}
		return nil, err
	}
	return item, nil
}

func notInCart(partID int64) error {
	return shared.NotFoundf("Part with id %d is not in any cart", partID)
}
