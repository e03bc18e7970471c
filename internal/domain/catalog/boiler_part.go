// Package catalog holds the boiler part catalog. Parts are created by the
// seeder and are read-only to the rest of the application.
package catalog

import (
	"encoding/json"

	"github.com/boilerparts/backend/internal/domain/shared"
)

// BoilerPart is a catalog item. Price is in the smallest currency unit.
type BoilerPart struct {
	shared.BaseEntity
	BoilerManufacturer string
	PartsManufacturer  string
	Price              int64
	VendorCode         string
	Name               string
	Description        string
	Compatibility      string
	Images             string // JSON-encoded array of image URLs
	InStock            int
	Bestseller         bool
	New                bool
	Popularity         int
}

// ImageList decodes Images. It returns nil when Images is not a JSON array
// of strings.
func (p *BoilerPart) ImageList() []string {
	var images []string
	if err := json.Unmarshal([]byte(p.Images), &images); err != nil {
		return nil
	}
	return images
}

// FirstImage returns the first image URL, or "" when the part has no images
// (an empty Images or an empty JSON array). Any other value that is not a
// JSON array of strings is returned as is.
func (p *BoilerPart) FirstImage() string {
	if p.Images == "" {
		return ""
	}
	var images []string
	if err := json.Unmarshal([]byte(p.Images), &images); err != nil {
		return p.Images
	}
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

// EncodeImages serializes image URLs into the stored Images format.
func EncodeImages(urls []string) string {
	if urls == nil {
		urls = []string{}
	}
	b, _ := json.Marshal(urls)
	return string(b)
}
