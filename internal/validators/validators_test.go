package validators

import (
	"testing"

	"homefinder-listings/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProperty() models.Property {
	return models.Property{
		Title:         "Baner Garden Flat",
		Description:   "Two bedroom flat near the tech park.",
		Address:       "12 Baner Road",
		City:          "Pune",
		State:         "Maharashtra",
		Zip:           "411045",
		Price:         8500000,
		Bedrooms:      2,
		Bathrooms:     2,
		SquareFootage: 1100,
		PropertyType:  models.TypeFlat,
		Status:        models.StatusAvailable,
		VideoLink:     "https://www.instagram.com/reel/Cx12_ab-3/",
		Images:        []string{"a.jpg"},
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestPropertyValidatorAcceptsValid(t *testing.T) {
	p := validProperty()
	p.Title = "  Baner Garden Flat  "
	require.NoError(t, NewPropertyValidator().ValidateCreate(&p))
	assert.Equal(t, "Baner Garden Flat", p.Title)
}

func TestPropertyValidatorRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Property)
		field  string
	}{
		{"short title", func(p *models.Property) { p.Title = "Flat" }, "title"},
		{"price below floor", func(p *models.Property) { p.Price = 999 }, "price"},
		{"price above ceiling", func(p *models.Property) { p.Price = 1000000000 }, "price"},
		{"missing zip", func(p *models.Property) { p.Zip = "" }, "zip"},
		{"five digit zip", func(p *models.Property) { p.Zip = "41104" }, "zip"},
		{"digits in city", func(p *models.Property) { p.City = "Pune 2" }, "city"},
		{"too many bedrooms", func(p *models.Property) { p.Bedrooms = 21 }, "bedrooms"},
		{"huge area", func(p *models.Property) { p.SquareFootage = 50001 }, "squareFootage"},
		{"unknown type", func(p *models.Property) { p.PropertyType = "Castle" }, "propertyType"},
		{"youtube video", func(p *models.Property) { p.VideoLink = "https://youtube.com/watch?v=1" }, "videoLink"},
		{"six images", func(p *models.Property) { p.Images = make([]string, 6) }, "images"},
		{"bad status", func(p *models.Property) { p.Status = "Pending" }, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProperty()
			tt.mutate(&p)
			err := NewPropertyValidator().ValidateUpdate(&p)
			assert.Contains(t, fieldsOf(t, err), tt.field)
		})
	}
}

func TestIsInstagramURL(t *testing.T) {
	assert.True(t, IsInstagramURL("instagram.com/p/abc123"))
	assert.True(t, IsInstagramURL("https://instagr.am/tv/xyz"))
	assert.False(t, IsInstagramURL("https://instagram.com/someuser"))
}

func TestContactValidator(t *testing.T) {
	v := NewContactValidator()

	c := models.Contact{
		Name:    "Priya",
		Email:   "priya@example.com",
		Phone:   "+91 98765-43210",
		Message: "Is the flat still available?",
	}
	assert.NoError(t, v.ValidateCreate(&c))

	bad := models.Contact{Name: "P", Email: "nope", Phone: "0123", Message: "hi"}
	fields := fieldsOf(t, v.ValidateCreate(&bad))
	assert.Len(t, fields, 4)
	assert.Equal(t, "message must be at least 10 characters", fields["message"])

	assert.NoError(t, v.ValidateStatus(models.ContactResolved))
	assert.Contains(t, fieldsOf(t, v.ValidateStatus("Closed")), "status")
}

func TestUserValidator(t *testing.T) {
	v := NewUserValidator()

	req := models.RegisterRequest{Name: "Asha", Username: "asha", Email: " Asha@Example.com ", Password: "secret1"}
	require.NoError(t, v.ValidateRegister(&req))
	assert.Equal(t, "asha@example.com", req.Email)

	short := models.RegisterRequest{Name: "Asha", Username: "asha", Email: "asha@example.com", Password: "123"}
	assert.Contains(t, fieldsOf(t, v.ValidateRegister(&short)), "password")

	assert.Error(t, v.ValidateLogin(&models.LoginRequest{Email: "admin@example.com"}))
	assert.NoError(t, v.ValidateLogin(&models.LoginRequest{Email: "admin@example.com", Password: "password"}))
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"zip": "zip bad", "city": "city bad"}}
	assert.Equal(t, "validation failed: city bad; zip bad", err.Error())
}
