package services

import (
	"context"
	"fmt"
	"time"

	apperrors "homefinder-listings/internal/errors"
	"homefinder-listings/internal/events"
	"homefinder-listings/internal/models"
	"homefinder-listings/internal/query"
	"homefinder-listings/internal/repositories"
	"homefinder-listings/internal/transformers"
	"homefinder-listings/internal/validators"
	"homefinder-listings/pkg/logger"
	"homefinder-listings/pkg/storage"
)

// PropertyService is the local property store: it runs the query engine
// over whatever repository backs it.
type PropertyService struct {
	repo      repositories.PropertyRepository
	validator validators.PropertyValidator
	trans     transformers.PropertyTransformer
	images    storage.ImageStorage
	events    events.Publisher
	featured  int
	now       func() time.Time
}

type PropertyServiceOption func(*PropertyService)

func WithImageStorage(images storage.ImageStorage) PropertyServiceOption {
	return func(s *PropertyService) { s.images = images }
}

func WithPublisher(publisher events.Publisher) PropertyServiceOption {
	return func(s *PropertyService) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

func WithFeaturedCount(n int) PropertyServiceOption {
	return func(s *PropertyService) {
		if n > 0 {
			s.featured = n
		}
	}
}

func WithClock(now func() time.Time) PropertyServiceOption {
	return func(s *PropertyService) { s.now = now }
}

func NewPropertyService(
	repo repositories.PropertyRepository,
	validator validators.PropertyValidator,
	trans transformers.PropertyTransformer,
	opts ...PropertyServiceOption,
) *PropertyService {
	s := &PropertyService{
		repo:      repo,
		validator: validator,
		trans:     trans,
		events:    events.NoopPublisher{},
		featured:  query.DefaultFeatured,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PropertyService) Search(ctx context.Context, spec models.SearchSpec) (models.Page[models.Property], error) {
	props, err := s.repo.FindAll(ctx)
	if err != nil {
		return models.Page[models.Property]{}, fmt.Errorf("failed to load properties: %w", err)
	}
	return query.Properties(props, spec), nil
}

func (s *PropertyService) Featured(ctx context.Context) ([]models.Property, error) {
	props, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}
	return query.Featured(props, s.featured), nil
}

func (s *PropertyService) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PropertyService) Create(ctx context.Context, input *models.Property) (*models.Property, error) {
	property := input.Clone()
	property.ID = 0
	s.trans.Normalize(&property)
	if property.Status == "" {
		property.Status = models.StatusAvailable
	}
	if property.Images == nil {
		property.Images = []string{}
	}
	if err := s.validator.ValidateCreate(&property); err != nil {
		return nil, err
	}

	now := s.now()
	property.CreatedAt = now
	property.UpdatedAt = now
	if err := s.repo.Create(ctx, &property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.publish(ctx, events.PropertyCreated, property)
	return &property, nil
}

// Update replaces the editable fields of an existing listing. The id and
// creation time never change; nil images and an empty status keep the stored values.
func (s *PropertyService) Update(ctx context.Context, id int64, input *models.Property) (*models.Property, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	property := input.Clone()
	property.ID = existing.ID
	property.CreatedAt = existing.CreatedAt
	if property.Images == nil {
		property.Images = existing.Images
	}
	if property.Status == "" {
		property.Status = existing.Status
	}
	s.trans.Normalize(&property)
	if err := s.validator.ValidateUpdate(&property); err != nil {
		return nil, err
	}

	property.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &property); err != nil {
		return nil, fmt.Errorf("failed to update property %d: %w", id, err)
	}

	s.publish(ctx, events.PropertyUpdated, property)
	return &property, nil
}

func (s *PropertyService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete property %d: %w", id, err)
	}
	s.publish(ctx, events.PropertyDeleted, map[string]int64{"id": id})
	return nil
}

// UploadImages stores the files and appends their names to the listing.
// Stored files are removed again if the listing cannot be updated.
func (s *PropertyService) UploadImages(ctx context.Context, id int64, files []models.ImageFile) ([]string, error) {
	if s.images == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}
	if len(files) == 0 {
		return nil, storage.ErrEmptyFile
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(existing.Images)+len(files) > models.MaxImages {
		return nil, fmt.Errorf("%w: property %d has %d of %d images", apperrors.ErrTooManyImages, id, len(existing.Images), models.MaxImages)
	}

	names, err := s.images.Save(ctx, files)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.AddImages(ctx, id, names)
	if err != nil {
		if rmErr := s.images.Remove(ctx, names); rmErr != nil {
			logger.GlobalLogger.Errorf("Failed to remove orphaned images for property %d: %v", id, rmErr)
		}
		return nil, fmt.Errorf("failed to attach images to property %d: %w", id, err)
	}

	s.publish(ctx, events.PropertyImagesAdded, updated)
	return names, nil
}

func (s *PropertyService) publish(ctx context.Context, eventType string, payload interface{}) {
	if err := s.events.Publish(ctx, events.NewEvent(eventType, payload)); err != nil {
		logger.GlobalLogger.Errorf("Failed to publish %s event: %v", eventType, err)
	}
}
