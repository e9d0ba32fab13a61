package repositories

import (
	"context"
	"sync"

	"homefinder-listings/internal/models"
)

type memoryContactRepository struct {
	mu    sync.RWMutex
	items []models.Contact
}

func NewMemoryContactRepository(seed []models.Contact) ContactRepository {
	return &memoryContactRepository{items: append([]models.Contact(nil), seed...)}
}

func (r *memoryContactRepository) FindAll(_ context.Context) ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Contact{}, r.items...), nil
}

func (r *memoryContactRepository) indexOf(id int64) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *memoryContactRepository) FindByID(_ context.Context, id int64) (*models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrContactNotFound
	}
	c := r.items[i]
	return &c, nil
}

func (r *memoryContactRepository) Create(_ context.Context, contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var maxID int64
	for _, c := range r.items {
		maxID = max(maxID, c.ID)
	}
	contact.ID = maxID + 1
	r.items = append([]models.Contact{*contact}, r.items...)
	return nil
}

func (r *memoryContactRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrContactNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *memoryContactRepository) UpdateStatus(_ context.Context, id int64, status models.ContactStatus) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrContactNotFound
	}
	r.items[i].Status = status
	c := r.items[i]
	return &c, nil
}
