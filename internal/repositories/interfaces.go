package repositories

import (
	"context"
	"errors"

	"homefinder-listings/internal/models"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrContactNotFound  = errors.New("contact not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrTooManyImages    = errors.New("too many images")
)

// PropertyRepository persists listings. FindAll returns the whole
// collection in its natural order; filtering happens in the query engine.
type PropertyRepository interface {
	FindAll(ctx context.Context) ([]models.Property, error)
	FindByID(ctx context.Context, id int64) (*models.Property, error)
	Create(ctx context.Context, property *models.Property) error
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id int64) error
	// AddImages appends atomically and fails with ErrTooManyImages when
	// the listing would exceed models.MaxImages.
	AddImages(ctx context.Context, id int64, images []string) (*models.Property, error)
}

// ContactRepository persists contact leads, newest first.
type ContactRepository interface {
	FindAll(ctx context.Context) ([]models.Contact, error)
	FindByID(ctx context.Context, id int64) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status models.ContactStatus) (*models.Contact, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// Seeder is implemented by repositories that can be filled from fixtures
// when they start out empty.
type Seeder[T any] interface {
	Seed(ctx context.Context, items []T) error
}
