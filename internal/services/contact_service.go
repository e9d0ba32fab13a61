package services

import (
	"context"
	"fmt"
	"time"

	"homefinder-listings/internal/events"
	"homefinder-listings/internal/models"
	"homefinder-listings/internal/query"
	"homefinder-listings/internal/repositories"
	"homefinder-listings/internal/validators"
	"homefinder-listings/pkg/logger"
)

type ContactService struct {
	repo       repositories.ContactRepository
	properties repositories.PropertyRepository
	validator  validators.ContactValidator
	events     events.Publisher
	now        func() time.Time
}

func NewContactService(
	repo repositories.ContactRepository,
	properties repositories.PropertyRepository,
	validator validators.ContactValidator,
	publisher events.Publisher,
) *ContactService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &ContactService{
		repo:       repo,
		properties: properties,
		validator:  validator,
		events:     publisher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// List pages through contact leads, newest first.
func (s *ContactService) List(ctx context.Context, page, limit int) (models.Page[models.Contact], error) {
	contacts, err := s.repo.FindAll(ctx)
	if err != nil {
		return models.Page[models.Contact]{}, fmt.Errorf("failed to load contacts: %w", err)
	}
	return query.Paginate(contacts, page, limit, query.DefaultContactLimit), nil
}

// Create records a new lead. A lead about a listing gets the listing title
// copied in so it stays readable after the listing is gone.
func (s *ContactService) Create(ctx context.Context, input *models.Contact) (*models.Contact, error) {
	contact := *input
	contact.ID = 0
	contact.PropertyTitle = ""
	if err := s.validator.ValidateCreate(&contact); err != nil {
		return nil, err
	}

	if contact.PropertyID != nil {
		property, err := s.properties.FindByID(ctx, *contact.PropertyID)
		if err != nil {
			return nil, err
		}
		contact.PropertyTitle = property.Title
	}

	contact.Status = models.ContactNew
	contact.CreatedAt = s.now()
	if err := s.repo.Create(ctx, &contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	s.publish(ctx, events.ContactCreated, contact)
	return &contact, nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contact %d: %w", id, err)
	}
	s.publish(ctx, events.ContactDeleted, map[string]int64{"id": id})
	return nil
}

func (s *ContactService) UpdateStatus(ctx context.Context, id int64, status models.ContactStatus) (*models.Contact, error) {
	if err := s.validator.ValidateStatus(status); err != nil {
		return nil, err
	}
	contact, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update contact %d: %w", id, err)
	}
	s.publish(ctx, events.ContactStatusUpdate, contact)
	return contact, nil
}

// PropertyName returns the title of the listing a lead refers to.
func (s *ContactService) PropertyName(ctx context.Context, propertyID int64) (string, error) {
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return "", err
	}
	return property.Title, nil
}

func (s *ContactService) publish(ctx context.Context, eventType string, payload interface{}) {
	if err := s.events.Publish(ctx, events.NewEvent(eventType, payload)); err != nil {
		logger.GlobalLogger.Errorf("Failed to publish %s event: %v", eventType, err)
	}
}
