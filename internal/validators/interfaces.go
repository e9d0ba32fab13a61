package validators

import (
	"homefinder-listings/internal/models"
)

type PropertyValidator interface {
	ValidateCreate(property *models.Property) error
	ValidateUpdate(property *models.Property) error
}

type ContactValidator interface {
	ValidateCreate(contact *models.Contact) error
	ValidateStatus(status models.ContactStatus) error
}

type UserValidator interface {
	ValidateRegister(req *models.RegisterRequest) error
	ValidateLogin(req *models.LoginRequest) error
}
