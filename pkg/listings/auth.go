package listings

import (
	"context"
	"net/http"
	"time"

	"homefinder-listings/internal/models"
)

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
}

// RemoteAuth logs in against the backend's auth endpoints.
type RemoteAuth struct {
	t *transport
}

func NewRemoteAuth(baseURL string, timeout time.Duration, opts ...Option) *RemoteAuth {
	return &RemoteAuth{t: newTransport(baseURL, timeout, opts...)}
}

func (a *RemoteAuth) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	req, err := jsonRequest(http.MethodPost, "/auth/login", models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return a.authenticate(ctx, req)
}

func (a *RemoteAuth) Register(ctx context.Context, in models.RegisterRequest) (*models.AuthResponse, error) {
	req, err := jsonRequest(http.MethodPost, "/auth/register", in)
	if err != nil {
		return nil, err
	}
	return a.authenticate(ctx, req)
}

func (a *RemoteAuth) authenticate(ctx context.Context, req request) (*models.AuthResponse, error) {
	var resp models.ApiResponse[*models.AuthResponse]
	if err := a.t.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, badEnvelope(a.t.baseURL+req.path, nil, errMissingData)
	}
	return resp.Data, nil
}
