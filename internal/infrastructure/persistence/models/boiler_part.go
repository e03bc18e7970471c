package models

import "github.com/boilerparts/backend/internal/domain/catalog"

// BoilerPartModel is the persistence model for the boiler_parts table
type BoilerPartModel struct {
	BaseModel
	BoilerManufacturer string `gorm:"type:varchar(255);not null;index"`
	Price              int64  `gorm:"not null;index"`
	PartsManufacturer  string `gorm:"type:varchar(255);not null;index"`
	VendorCode         string `gorm:"type:varchar(255);not null"`
	Name               string `gorm:"type:varchar(255);not null;index"`
	Description        string `gorm:"type:text;not null"`
	Compatibility      string `gorm:"type:text;not null"`
	Images             string `gorm:"type:text;not null"`
	InStock            int    `gorm:"not null;default:0"`
	Bestseller         bool   `gorm:"not null;default:false"`
	New                bool   `gorm:"not null;default:false"`
	Popularity         int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (BoilerPartModel) TableName() string {
	return "boiler_parts"
}

// ToDomain converts the model to a domain BoilerPart
func (m *BoilerPartModel) ToDomain() *catalog.BoilerPart {
	return &catalog.BoilerPart{
		BaseEntity:         m.BaseModel.ToDomain(),
		BoilerManufacturer: m.BoilerManufacturer,
		PartsManufacturer:  m.PartsManufacturer,
		Price:              m.Price,
		VendorCode:         m.VendorCode,
		Name:               m.Name,
		Description:        m.Description,
		Compatibility:      m.Compatibility,
		Images:             m.Images,
		InStock:            m.InStock,
		Bestseller:         m.Bestseller,
		New:                m.New,
		Popularity:         m.Popularity,
	}
}

// BoilerPartModelFromDomain creates a model from a domain BoilerPart
func BoilerPartModelFromDomain(p *catalog.BoilerPart) *BoilerPartModel {
	m := &BoilerPartModel{
		BoilerManufacturer: p.BoilerManufacturer,
		PartsManufacturer:  p.PartsManufacturer,
		Price:              p.Price,
		VendorCode:         p.VendorCode,
		Name:               p.Name,
		Description:        p.Description,
		Compatibility:      p.Compatibility,
		Images:             p.Images,
		InStock:            p.InStock,
		Bestseller:         p.Bestseller,
		New:                p.New,
		Popularity:         p.Popularity,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// BoilerPartsToDomain converts a slice of models
func BoilerPartsToDomain(ms []BoilerPartModel) []catalog.BoilerPart {
	parts := make([]catalog.BoilerPart, 0, len(ms))
	for i := range ms {
		parts = append(parts, *ms[i].ToDomain())
	}
	return parts
}
