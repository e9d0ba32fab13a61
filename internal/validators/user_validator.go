package validators

import (
	"strings"

	"homefinder-listings/internal/models"
)

type userValidator struct{}

func NewUserValidator() UserValidator {
	return &userValidator{}
}

func (v *userValidator) ValidateRegister(req *models.RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	return validateStruct(req)
}

func (v *userValidator) ValidateLogin(req *models.LoginRequest) error {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	return validateStruct(req)
}
