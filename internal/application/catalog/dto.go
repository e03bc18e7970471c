package catalog

import (
	"time"

	"github.com/boilerparts/backend/internal/domain/catalog"
)

// PartQuery is the query string of the paginated catalog listing. Offset is a
// page index, not a row offset.
type PartQuery struct {
	Limit     string `form:"limit"`
	Offset    string `form:"offset"`
	PriceFrom string `form:"priceFrom"`
	PriceTo   string `form:"priceTo"`
	Boiler    string `form:"boiler"` // URL-encoded JSON array of boiler manufacturers
	Parts     string `form:"parts"`  // URL-encoded JSON array of parts manufacturers
}

// SearchRequest is the body of a name search
type SearchRequest struct {
	Search string `json:"search" binding:"required"`
}

// FindByNameRequest is the body of an exact name lookup
type FindByNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// BoilerPartResponse represents a boiler part in API responses
type BoilerPartResponse struct {
	ID                 int64     `json:"id"`
	BoilerManufacturer string    `json:"boiler_manufacturer"`
	Price              int64     `json:"price"`
	PartsManufacturer  string    `json:"parts_manufacturer"`
	VendorCode         string    `json:"vendor_code"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Images             string    `json:"images"`
	InStock            int       `json:"in_stock"`
	Bestseller         bool      `json:"bestseller"`
	New                bool      `json:"new"`
	Popularity         int       `json:"popularity"`
	Compatibility      string    `json:"compatibility"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ToBoilerPartResponse converts a domain part
func ToBoilerPartResponse(p *catalog.BoilerPart) BoilerPartResponse {
	return BoilerPartResponse{
		ID:                 p.ID,
		BoilerManufacturer: p.BoilerManufacturer,
		Price:              p.Price,
		PartsManufacturer:  p.PartsManufacturer,
		VendorCode:         p.VendorCode,
		Name:               p.Name,
		Description:        p.Description,
		Images:             p.Images,
		InStock:            p.InStock,
		Bestseller:         p.Bestseller,
		New:                p.New,
		Popularity:         p.Popularity,
		Compatibility:      p.Compatibility,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ToBoilerPartResponses converts a slice of domain parts
func ToBoilerPartResponses(parts []catalog.BoilerPart) []BoilerPartResponse {
	out := make([]BoilerPartResponse, len(parts))
	for i := range parts {
		out[i] = ToBoilerPartResponse(&parts[i])
	}
	return out
}
