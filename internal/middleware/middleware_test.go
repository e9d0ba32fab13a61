package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homefinder-listings/internal/auth"
	apperrors "homefinder-listings/internal/errors"
	"homefinder-listings/internal/models"
	"homefinder-listings/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandlerWritesFailureEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/missing", func(c *gin.Context) {
		c.Error(errors.Join(errors.New("lookup"), repositories.ErrPropertyNotFound))
	})
	r.GET("/boom", func(c *gin.Context) {
		c.Error(errors.New("database exploded"))
	})
	r.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
		c.Error(errors.New("late failure"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Property not found","code":"PROPERTY_NOT_FOUND"}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database exploded")
	assert.Contains(t, w.Body.String(), apperrors.MsgInternalError)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestAuthMiddleware(t *testing.T) {
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	details, err := tokens.Generate(&models.User{ID: 7, Name: "Admin User", Username: "admin", Email: "admin@example.com"})
	require.NoError(t, err)

	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/private", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetInt64(ContextUserID), "email": c.GetString(ContextEmail)})
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + details.Token, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid token", "Bearer " + details.Token, http.StatusOK},
		{"lowercase scheme", "bearer " + details.Token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := serve(r, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.JSONEq(t, `{"id":7,"email":"admin@example.com"}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := PerMinute(60, 2)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.Use(ErrorHandler(), RateLimitMiddleware(rl))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	request := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		return serve(r, req)
	}

	assert.Equal(t, http.StatusNoContent, request("10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, request("10.0.0.1").Code)
	w := request("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"RATE_LIMITED"`)

	assert.Equal(t, http.StatusNoContent, request("10.0.0.2").Code, "buckets are per client")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, request("10.0.0.1").Code, "one token refills per second")
}

func TestRateLimiterSweep(t *testing.T) {
	rl := PerMinute(60, 1)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("a")
	now = now.Add(30 * time.Minute)
	rl.allow("b")
	now = now.Add(40 * time.Minute)

	rl.Sweep(time.Hour)
	assert.Equal(t, 1, rl.size())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Cleanup(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop after cancel")
	}
}

func TestLoggingMiddlewareRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggingMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	w = serve(r, req)
	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "req-123", w.Body.String())
}

func TestSecureHeaders(t *testing.T) {
	for _, production := range []bool{false, true} {
		r := gin.New()
		r.Use(SecureHeaders(production))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		if production {
			assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
		} else {
			assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
		}
	}
}

func TestCORS(t *testing.T) {
	preflight := func(r *gin.Engine, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		return serve(r, req)
	}

	dev := gin.New()
	dev.Use(CORS(false, nil))
	dev.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := preflight(dev, "http://anything.test")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)

	prod := gin.New()
	prod.Use(CORS(true, []string{"https://homefinder.example"}))
	prod.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = preflight(prod, "https://homefinder.example")
	assert.Equal(t, "https://homefinder.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = preflight(prod, "https://evil.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
