package listings

import (
	"context"
	"sync"

	"homefinder-listings/internal/models"
)

// Session holds the signed-in user for one client. Logging out drops the
// token and every cached result.
type Session struct {
	auth   Authenticator
	client *Client

	mu    sync.RWMutex
	user  *models.User
	token string
}

func NewSession(auth Authenticator, client *Client) *Session {
	return &Session{auth: auth, client: client}
}

func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user := resp.User

	s.mu.Lock()
	s.user = &user
	s.token = resp.Token
	s.mu.Unlock()
	return &user, nil
}

func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if s.client != nil {
		s.client.ClearCache(ctx)
	}
}

// Token satisfies TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}
