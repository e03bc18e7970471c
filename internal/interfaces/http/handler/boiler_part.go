package handler

import (
	appcatalog "github.com/boilerparts/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// BoilerPartHandler serves the read-only catalog
type BoilerPartHandler struct {
	BaseHandler
	service *appcatalog.BoilerPartService
}

// NewBoilerPartHandler creates a new BoilerPartHandler
func NewBoilerPartHandler(service *appcatalog.BoilerPartService) *BoilerPartHandler {
	return &BoilerPartHandler{service: service}
}

// PaginateAndFilter lists one page of parts matching the query filters
//
// GET /api/v1/boiler-parts?limit&offset&priceFrom&priceTo&boiler&parts
func (h *BoilerPartHandler) PaginateAndFilter(c *gin.Context) {
	var q appcatalog.PartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.service.PaginateAndFilter(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Bestsellers lists parts flagged as bestseller
//
// GET /api/v1/boiler-parts/bestsellers
func (h *BoilerPartHandler) Bestsellers(c *gin.Context) {
	result, err := h.service.Bestsellers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// New lists parts flagged as new
//
// GET /api/v1/boiler-parts/new
func (h *BoilerPartHandler) New(c *gin.Context) {
	result, err := h.service.New(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// FindOne returns one part by id
//
// GET /api/v1/boiler-parts/find/:id
func (h *BoilerPartHandler) FindOne(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	part, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, part)
}

// Search returns parts whose name contains the search string
//
// POST /api/v1/boiler-parts/search
func (h *BoilerPartHandler) Search(c *gin.Context) {
	var req appcatalog.SearchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.SearchByString(c.Request.Context(), req.Search)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// FindByName returns the part with exactly the given name
//
// POST /api/v1/boiler-parts/name
func (h *BoilerPartHandler) FindByName(c *gin.Context) {
	var req appcatalog.FindByNameRequest
	if !h.bindJSON(c, &req) {
		return
	}

	part, err := h.service.FindOneByName(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, part)
}
