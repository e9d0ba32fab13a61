package validators

import (
	"strings"

	"homefinder-listings/internal/models"
)

type propertyValidator struct{}

func NewPropertyValidator() PropertyValidator {
	return &propertyValidator{}
}

func (v *propertyValidator) ValidateCreate(property *models.Property) error {
	normalizeProperty(property)
	return validateStruct(property)
}

// ValidateUpdate applies the create rules; updates replace the whole record.
func (v *propertyValidator) ValidateUpdate(property *models.Property) error {
	normalizeProperty(property)
	return validateStruct(property)
}

func normalizeProperty(p *models.Property) {
	p.Title = strings.TrimSpace(p.Title)
	p.Address = strings.TrimSpace(p.Address)
	p.City = strings.TrimSpace(p.City)
	p.State = strings.TrimSpace(p.State)
	p.Zip = strings.TrimSpace(p.Zip)
	p.VideoLink = strings.TrimSpace(p.VideoLink)
}
