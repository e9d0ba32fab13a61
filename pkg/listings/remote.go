package listings

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"homefinder-listings/internal/models"
)

// RemoteStore is a Store backed by the listing HTTP API.
type RemoteStore struct {
	t *transport
}

func NewRemoteStore(baseURL string, timeout time.Duration, opts ...Option) *RemoteStore {
	return &RemoteStore{t: newTransport(baseURL, timeout, opts...)}
}

func (s *RemoteStore) Search(ctx context.Context, spec models.SearchSpec) (models.Page[models.Property], error) {
	var page models.Page[models.Property]
	err := s.t.do(ctx, request{method: http.MethodGet, path: "/properties", query: spec.Values()}, &page)
	if err != nil {
		return models.Page[models.Property]{}, err
	}
	if page.Data == nil {
		page.Data = []models.Property{}
	}
	return page, nil
}

func (s *RemoteStore) Featured(ctx context.Context) ([]models.Property, error) {
	var resp models.ApiResponse[[]models.Property]
	if err := s.t.do(ctx, request{method: http.MethodGet, path: "/properties/featured"}, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []models.Property{}
	}
	return resp.Data, nil
}

func (s *RemoteStore) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	var resp models.ApiResponse[*models.Property]
	if err := s.t.do(ctx, request{method: http.MethodGet, path: propertyPath(id)}, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, badEnvelope(s.t.baseURL+propertyPath(id), nil, errMissingData)
	}
	return resp.Data, nil
}

func (s *RemoteStore) Create(ctx context.Context, property *models.Property) (*models.Property, error) {
	req, err := jsonRequest(http.MethodPost, "/properties", property)
	if err != nil {
		return nil, err
	}
	return s.writeProperty(ctx, req)
}

func (s *RemoteStore) Update(ctx context.Context, id int64, property *models.Property) (*models.Property, error) {
	req, err := jsonRequest(http.MethodPut, propertyPath(id), property)
	if err != nil {
		return nil, err
	}
	return s.writeProperty(ctx, req)
}

func (s *RemoteStore) writeProperty(ctx context.Context, req request) (*models.Property, error) {
	var resp models.ApiResponse[*models.Property]
	if err := s.t.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, badEnvelope(s.t.baseURL+req.path, nil, errMissingData)
	}
	return resp.Data, nil
}

func (s *RemoteStore) Delete(ctx context.Context, id int64) error {
	return s.t.do(ctx, request{method: http.MethodDelete, path: propertyPath(id)}, nil)
}

// UploadImages posts the files as multipart form field "files".
func (s *RemoteStore) UploadImages(ctx context.Context, id int64, files []models.ImageFile) ([]string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name))
		if f.ContentType != "" {
			header.Set("Content-Type", f.ContentType)
		}
		part, err := form.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("failed to create form part: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write form part: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	req := request{
		method:      http.MethodPost,
		path:        propertyPath(id) + "/images",
		body:        buf.Bytes(),
		contentType: form.FormDataContentType(),
	}
	var resp models.ApiResponse[[]string]
	if err := s.t.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func propertyPath(id int64) string {
	return fmt.Sprintf("/properties/%d", id)
}
