package validators

import (
	"strings"

	"homefinder-listings/internal/models"
)

type contactValidator struct{}

func NewContactValidator() ContactValidator {
	return &contactValidator{}
}

func (v *contactValidator) ValidateCreate(contact *models.Contact) error {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Email = strings.TrimSpace(contact.Email)
	contact.Phone = strings.TrimSpace(contact.Phone)
	contact.Message = strings.TrimSpace(contact.Message)
	return validateStruct(contact)
}

func (v *contactValidator) ValidateStatus(status models.ContactStatus) error {
	if !status.Valid() {
		return newValidationError("status", "status must be one of: New, Contacted, Resolved")
	}
	return nil
}
