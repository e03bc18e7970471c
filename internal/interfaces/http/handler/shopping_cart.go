package handler

import (
	appcart "github.com/boilerparts/backend/internal/application/cart"
	"github.com/gin-gonic/gin"
)

// ShoppingCartHandler serves the cart endpoints. Depending on the route,
// :id is a user id or a part id.
type ShoppingCartHandler struct {
	BaseHandler
	service *appcart.CartService
}

// NewShoppingCartHandler creates a new ShoppingCartHandler
func NewShoppingCartHandler(service *appcart.CartService) *ShoppingCartHandler {
	return &ShoppingCartHandler{service: service}
}

// FindAll lists the cart of user :id
//
// GET /api/v1/shopping-cart/:id
func (h *ShoppingCartHandler) FindAll(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.service.FindAll(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Add puts a part into a user's cart, or bumps its count if already there
//
// POST /api/v1/shopping-cart/add
func (h *ShoppingCartHandler) Add(c *gin.Context) {
	var req appcart.AddToCartRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateCount sets the count of cart lines for part :id
//
// PATCH /api/v1/shopping-cart/count/:id
func (h *ShoppingCartHandler) UpdateCount(c *gin.Context) {
	partID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req appcart.UpdateCountRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	if req.Count == nil {
		h.BadRequest(c, "Count is required")
		return
	}

	result, err := h.service.UpdateCount(c.Request.Context(), partID, *req.Count)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateTotalPrice sets the total price of cart lines for part :id
//
// PATCH /api/v1/shopping-cart/total-price/:id
func (h *ShoppingCartHandler) UpdateTotalPrice(c *gin.Context) {
	partID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req appcart.UpdateTotalPriceRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	if req.TotalPrice == nil {
		h.BadRequest(c, "Total price is required")
		return
	}

	result, err := h.service.UpdateTotalPrice(c.Request.Context(), partID, *req.TotalPrice)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RemoveOne deletes the cart line for part :id
//
// DELETE /api/v1/shopping-cart/one/:id
func (h *ShoppingCartHandler) RemoveOne(c *gin.Context) {
	partID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), partID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RemoveAll empties the cart of user :id
//
// DELETE /api/v1/shopping-cart/all/:id
func (h *ShoppingCartHandler) RemoveAll(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.RemoveAll(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
