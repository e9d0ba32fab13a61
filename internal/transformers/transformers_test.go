package transformers

import (
	"testing"

	"homefinder-listings/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAddressTransformer(t *testing.T) {
	tr := NewAddressTransformer()

	assert.Equal(t, "Baner Road, Pune", tr.NormalizeAddressComponent("  Baner   Road,  Pune "))
	assert.Equal(t, "Navi Mumbai", tr.NormalizePlaceName(" navi  MUMBAI "))
	assert.Equal(t, "", tr.NormalizePlaceName("   "))
	assert.Equal(t, "411045", tr.NormalizeZip(" 411 045 "))
}

func TestPropertyTransformerNormalize(t *testing.T) {
	tr := NewPropertyTransformer(nil)
	p := &models.Property{
		Title:     "  Modern   Apartment ",
		Address:   " 12  Baner Road ",
		City:      "pune",
		State:     "maharashtra",
		Zip:       "411 045",
		VideoLink: " https://www.instagram.com/reel/abc/ ",
		Images:    []string{" a.jpg ", "", "b.png"},
	}

	tr.Normalize(p)

	assert.Equal(t, "Modern Apartment", p.Title)
	assert.Equal(t, "12 Baner Road", p.Address)
	assert.Equal(t, "Pune", p.City)
	assert.Equal(t, "Maharashtra", p.State)
	assert.Equal(t, "411045", p.Zip)
	assert.Equal(t, "https://www.instagram.com/reel/abc/", p.VideoLink)
	assert.Equal(t, []string{"a.jpg", "b.png"}, p.Images)
}

func TestPropertyTransformerKeepsNilImages(t *testing.T) {
	p := &models.Property{Title: "Loft"}
	NewPropertyTransformer(nil).Normalize(p)
	assert.Nil(t, p.Images)

	NewPropertyTransformer(nil).Normalize(nil)
}
