package catalog

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/boilerparts/backend/internal/domain/shared"
)

// PartFilter narrows a paginated catalog listing.
//
// A nil manufacturer slice means "no filter"; a non-nil empty slice matches
// nothing, mirroring an IN () over an empty set.
type PartFilter struct {
	Limit               int
	Offset              int // row offset, not page index
	PriceFrom           *int64
	PriceTo             *int64
	BoilerManufacturers []string
	PartsManufacturers  []string
}

// HasPriceRange reports whether both price bounds are set.
func (f PartFilter) HasPriceRange() bool {
	return f.PriceFrom != nil && f.PriceTo != nil
}

// ParseManufacturerList decodes a URL-encoded JSON array of manufacturer
// names, e.g. %5B%22Baxi%22%2C%22Buderus%22%5D. A single JSON string is
// accepted as a one-element list.
func ParseManufacturerList(field, raw string) ([]string, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return nil, shared.InvalidInputf("%s must be a URL-encoded JSON array", field)
	}
	decoded = strings.TrimSpace(decoded)

	var list []string
	if err := json.Unmarshal([]byte(decoded), &list); err == nil {
		if list == nil {
			list = []string{}
		}
		return list, nil
	}

	var single string
	if err := json.Unmarshal([]byte(decoded), &single); err == nil {
		return []string{single}, nil
	}

	return nil, shared.InvalidInputf("%s must be a JSON array of strings", field)
}
