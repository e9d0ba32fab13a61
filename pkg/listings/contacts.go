package listings

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homefinder-listings/internal/models"
)

// RemoteContacts talks to the contact lead endpoints.
type RemoteContacts struct {
	t *transport
}

func NewRemoteContacts(baseURL string, timeout time.Duration, opts ...Option) *RemoteContacts {
	return &RemoteContacts{t: newTransport(baseURL, timeout, opts...)}
}

func (c *RemoteContacts) List(ctx context.Context, page, limit int) (models.Page[models.Contact], error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var result models.Page[models.Contact]
	if err := c.t.do(ctx, request{method: http.MethodGet, path: "/contacts", query: query}, &result); err != nil {
		return models.Page[models.Contact]{}, err
	}
	if result.Data == nil {
		result.Data = []models.Contact{}
	}
	return result, nil
}

func (c *RemoteContacts) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	req, err := jsonRequest(http.MethodPost, "/contacts", contact)
	if err != nil {
		return nil, err
	}
	var resp models.ApiResponse[*models.Contact]
	if err := c.t.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *RemoteContacts) Delete(ctx context.Context, id int64) error {
	return c.t.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/contacts/%d", id)}, nil)
}

func (c *RemoteContacts) UpdateStatus(ctx context.Context, id int64, status models.ContactStatus) (*models.Contact, error) {
	req, err := jsonRequest(http.MethodPatch, fmt.Sprintf("/contacts/%d/status", id), models.ContactStatusUpdate{Status: status})
	if err != nil {
		return nil, err
	}
	var resp models.ApiResponse[*models.Contact]
	if err := c.t.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *RemoteContacts) PropertyName(ctx context.Context, propertyID int64) (string, error) {
	var resp models.ApiResponse[string]
	if err := c.t.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/contacts/property/%d/name", propertyID)}, &resp); err != nil {
		return "", err
	}
	return resp.Data, nil
}

// Contacts is the contact lead contract shared by RemoteContacts and the
// local contact service.
type Contacts interface {
	List(ctx context.Context, page, limit int) (models.Page[models.Contact], error)
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status models.ContactStatus) (*models.Contact, error)
	PropertyName(ctx context.Context, propertyID int64) (string, error)
}
