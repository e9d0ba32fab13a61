// Package listings is the client side of the listing backend: a Client
// that reads through a result cache from a primary Store and falls back to
// local evaluation when the primary cannot be reached.
package listings

import (
	"context"

	"homefinder-listings/internal/models"
)

// Store is the property contract shared by the HTTP client and the local
// service.
type Store interface {
	Search(ctx context.Context, spec models.SearchSpec) (models.Page[models.Property], error)
	Featured(ctx context.Context) ([]models.Property, error)
	GetByID(ctx context.Context, id int64) (*models.Property, error)
	Create(ctx context.Context, property *models.Property) (*models.Property, error)
	Update(ctx context.Context, id int64, property *models.Property) (*models.Property, error)
	Delete(ctx context.Context, id int64) error
	UploadImages(ctx context.Context, id int64, files []models.ImageFile) ([]string, error)
}
