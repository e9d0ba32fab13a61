package transformers

import (
	"strings"

	"homefinder-listings/internal/models"
)

type propertyTransformer struct {
	addr AddressTransformer
}

func NewPropertyTransformer(addr AddressTransformer) PropertyTransformer {
	if addr == nil {
		addr = NewAddressTransformer()
	}
	return &propertyTransformer{addr: addr}
}

// Normalize cleans free-text fields in place before validation.
func (t *propertyTransformer) Normalize(property *models.Property) {
	if property == nil {
		return
	}
	property.Title = t.addr.NormalizeAddressComponent(property.Title)
	property.Description = strings.TrimSpace(property.Description)
	property.Address = t.addr.NormalizeAddressComponent(property.Address)
	property.City = t.addr.NormalizePlaceName(property.City)
	property.State = t.addr.NormalizePlaceName(property.State)
	property.Zip = t.addr.NormalizeZip(property.Zip)
	property.VideoLink = strings.TrimSpace(property.VideoLink)

	images := property.Images[:0:0]
	for _, image := range property.Images {
		if image = strings.TrimSpace(image); image != "" {
			images = append(images, image)
		}
	}
	if property.Images != nil {
		property.Images = images
	}
}
