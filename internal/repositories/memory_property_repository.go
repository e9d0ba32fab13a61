package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"homefinder-listings/internal/models"
)

type memoryPropertyRepository struct {
	mu    sync.RWMutex
	items []models.Property
}

// NewMemoryPropertyRepository keeps listings in process. New listings are
// inserted at the front of the collection.
func NewMemoryPropertyRepository(seed []models.Property) PropertyRepository {
	items := make([]models.Property, 0, len(seed))
	for _, p := range seed {
		items = append(items, p.Clone())
	}
	return &memoryPropertyRepository{items: items}
}

func (r *memoryPropertyRepository) FindAll(_ context.Context) ([]models.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Property, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *memoryPropertyRepository) indexOf(id int64) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *memoryPropertyRepository) FindByID(_ context.Context, id int64) (*models.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrPropertyNotFound
	}
	p := r.items[i].Clone()
	return &p, nil
}

func (r *memoryPropertyRepository) Create(_ context.Context, property *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var maxID int64
	for _, p := range r.items {
		maxID = max(maxID, p.ID)
	}
	property.ID = maxID + 1
	r.items = append([]models.Property{property.Clone()}, r.items...)
	return nil
}

func (r *memoryPropertyRepository) Update(_ context.Context, property *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(property.ID)
	if i < 0 {
		return ErrPropertyNotFound
	}
	r.items[i] = property.Clone()
	return nil
}

func (r *memoryPropertyRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrPropertyNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *memoryPropertyRepository) AddImages(_ context.Context, id int64, images []string) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrPropertyNotFound
	}
	if len(r.items[i].Images)+len(images) > models.MaxImages {
		return nil, fmt.Errorf("%w: property %d has %d of %d images", ErrTooManyImages, id, len(r.items[i].Images), models.MaxImages)
	}
	updated := r.items[i].Clone()
	updated.Images = append(updated.Images, images...)
	updated.UpdatedAt = time.Now().UTC()
	r.items[i] = updated
	out := updated.Clone()
	return &out, nil
}
