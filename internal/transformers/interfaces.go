package transformers

import (
	"homefinder-listings/internal/models"
)

type PropertyTransformer interface {
	Normalize(property *models.Property)
}

type AddressTransformer interface {
	NormalizeAddressComponent(input string) string
	NormalizePlaceName(input string) string
	NormalizeZip(input string) string
}
