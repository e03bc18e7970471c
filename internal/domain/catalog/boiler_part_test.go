package catalog

import (
	"errors"
	"testing"

	"github.com/boilerparts/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoilerPart_FirstImage(t *testing.T) {
	tests := []struct {
		name   string
		images string
		want   string
	}{
		{"first of array", `["a.jpg","b.jpg"]`, "a.jpg"},
		{"empty images", "", ""},
		{"empty array", `[]`, ""},
		{"null", `null`, ""},
		{"plain url falls back to raw", "https://example.com/a.jpg", "https://example.com/a.jpg"},
		{"non-string array falls back to raw", `[1,2]`, `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &BoilerPart{Images: tt.images}
			assert.Equal(t, tt.want, p.FirstImage())
		})
	}
}

func TestEncodeImages(t *testing.T) {
	assert.Equal(t, `["a.jpg","b.jpg"]`, EncodeImages([]string{"a.jpg", "b.jpg"}))
	assert.Equal(t, `[]`, EncodeImages(nil))

	p := &BoilerPart{Images: EncodeImages([]string{"x.png"})}
	assert.Equal(t, []string{"x.png"}, p.ImageList())
}

func TestParseManufacturerList(t *testing.T) {
	t.Run("url-encoded array", func(t *testing.T) {
		got, err := ParseManufacturerList("boiler", "%5B%22Baxi%22%2C%22Saunier%20Duval%22%5D")
		require.NoError(t, err)
		assert.Equal(t, []string{"Baxi", "Saunier Duval"}, got)
	})

	t.Run("already decoded array", func(t *testing.T) {
		got, err := ParseManufacturerList("parts", `["Azure"]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"Azure"}, got)
	})

	t.Run("ampersand survives decoding", func(t *testing.T) {
		got, err := ParseManufacturerList("boiler", "%5B%22Chaffoteaux%26Maury%22%5D")
		require.NoError(t, err)
		assert.Equal(t, []string{"Chaffoteaux&Maury"}, got)
	})

	t.Run("single string", func(t *testing.T) {
		got, err := ParseManufacturerList("boiler", `"Baxi"`)
		require.NoError(t, err)
		assert.Equal(t, []string{"Baxi"}, got)
	})

	t.Run("empty array matches nothing", func(t *testing.T) {
		got, err := ParseManufacturerList("boiler", `[]`)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	for _, raw := range []string{"[Baxi", "%E0%A4%A", "{\"a\":1}", "[1,2]"} {
		t.Run("malformed "+raw, func(t *testing.T) {
			_, err := ParseManufacturerList("boiler", raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
			assert.Contains(t, err.Error(), "boiler")
		})
	}
}

func TestPartFilter_HasPriceRange(t *testing.T) {
	from, to := int64(1000), int64(2000)

	assert.False(t, PartFilter{}.HasPriceRange())
	assert.False(t, PartFilter{PriceFrom: &from}.HasPriceRange())
	assert.True(t, PartFilter{PriceFrom: &from, PriceTo: &to}.HasPriceRange())
}
