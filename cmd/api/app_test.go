package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"homefinder-listings/internal/models"
	"homefinder-listings/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Uploads.Dir = t.TempDir()
	cfg.RateLimit.RequestsPerMinute = 6000
	cfg.RateLimit.Burst = 1000

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

func doJSON(t *testing.T, app *App, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func login(t *testing.T, app *App) string {
	t.Helper()
	w := doJSON(t, app, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: "admin@example.com", Password: "password"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[models.ApiResponse[models.AuthResponse]](t, w)
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func propertyIDs(props []models.Property) []int64 {
	out := make([]int64, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}

func newListing() models.Property {
	return models.Property{
		Title:         "Kharadi Riverside Apartment",
		Description:   "Close to EON IT park.",
		Address:       "21 Kharadi Bypass Road",
		City:          "Pune",
		State:         "Maharashtra",
		Zip:           "411014",
		Price:         9500000,
		Bedrooms:      2,
		Bathrooms:     2,
		SquareFootage: 1100,
		PropertyType:  models.TypeApartment,
	}
}

func TestListProperties(t *testing.T) {
	app := newTestApp(t)

	w := doJSON(t, app, http.MethodGet, "/api/properties", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"success"`)
	page := decode[models.Page[models.Property]](t, w)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 9, page.Limit)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 9)

	w = doJSON(t, app, http.MethodGet, "/api/properties?bedrooms=3%2B&sortBy=priceLow&limit=20", "", nil)
	page = decode[models.Page[models.Property]](t, w)
	assert.Equal(t, []int64{6, 1, 9, 3, 5, 11, 7}, propertyIDs(page.Data))

	w = doJSON(t, app, http.MethodGet, "/api/properties?page=abc&priceRange=abc-def", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decode[models.Page[models.Property]](t, w)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 12, page.Total)

	w = doJSON(t, app, http.MethodGet, "/api/properties?page=5", "", nil)
	assert.JSONEq(t, `{"data":[],"total":12,"page":5,"limit":9,"totalPages":2}`, w.Body.String())

	w = doJSON(t, app, http.MethodGet, "/api/properties?page=4611686018427387905&limit=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":12,"page":4611686018427387905,"limit":3,"totalPages":4}`, w.Body.String())
}

func TestGetProperty(t *testing.T) {
	app := newTestApp(t)

	w := doJSON(t, app, http.MethodGet, "/api/properties/featured", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	featured := decode[models.ApiResponse[[]models.Property]](t, w)
	assert.Equal(t, []int64{1, 2, 4}, propertyIDs(featured.Data))

	w = doJSON(t, app, http.MethodGet, "/api/properties/5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	one := decode[models.ApiResponse[models.Property]](t, w)
	assert.Equal(t, "Aundh Luxury Villa", one.Data.Title)

	w = doJSON(t, app, http.MethodGet, "/api/properties/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Property not found","code":"PROPERTY_NOT_FOUND"}`, w.Body.String())

	w = doJSON(t, app, http.MethodGet, "/api/properties/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PARAMETERS", decode[models.ApiResponse[any]](t, w).Code)
}

func TestPropertyMutationsRequireAuth(t *testing.T) {
	app := newTestApp(t)

	w := doJSON(t, app, http.MethodPost, "/api/properties", "", newListing())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", decode[models.ApiResponse[any]](t, w).Code)

	w = doJSON(t, app, http.MethodDelete, "/api/properties/1", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateClearsFeaturedCache(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	w := doJSON(t, app, http.MethodGet, "/api/properties/featured", "", nil)
	assert.Equal(t, []int64{1, 2, 4}, propertyIDs(decode[models.ApiResponse[[]models.Property]](t, w).Data))

	w = doJSON(t, app, http.MethodPost, "/api/properties", token, newListing())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.ApiResponse[models.Property]](t, w)
	assert.Equal(t, int64(13), created.Data.ID)
	assert.Equal(t, models.StatusAvailable, created.Data.Status)

	w = doJSON(t, app, http.MethodGet, "/api/properties/featured", "", nil)
	assert.Equal(t, []int64{13, 1, 2}, propertyIDs(decode[models.ApiResponse[[]models.Property]](t, w).Data))

	update := newListing()
	update.Title = "Kharadi Riverside Apartment (renovated)"
	update.Status = models.StatusSold
	w = doJSON(t, app, http.MethodPut, "/api/properties/13", token, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, app, http.MethodGet, "/api/properties/13", "", nil)
	assert.Equal(t, models.StatusSold, decode[models.ApiResponse[models.Property]](t, w).Data.Status)

	w = doJSON(t, app, http.MethodDelete, "/api/properties/13", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, app, http.MethodGet, "/api/properties/13", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateValidation(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	bad := newListing()
	bad.Zip = "41101"
	bad.VideoLink = "https://youtube.com/watch?v=1"
	w := doJSON(t, app, http.MethodPost, "/api/properties", token, bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[models.ApiResponse[any]](t, w)
	assert.Equal(t, "VALIDATION_FAILED", resp.Code)
	assert.Contains(t, resp.Error, "zip")
	assert.Contains(t, resp.Error, "videoLink")

	req := httptest.NewRequest(http.MethodPost, "/api/properties", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for name, contentType := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		header.Set("Content-Type", contentType)
		part, err := form.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())
	return &buf, form.FormDataContentType()
}

func TestUploadImages(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	body, contentType := multipartBody(t, map[string]string{"front.png": "image/png"})
	req := httptest.NewRequest(http.MethodPost, "/api/properties/4/images", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	names := decode[models.ApiResponse[[]string]](t, w).Data
	require.Len(t, names, 1)

	w = doJSON(t, app, http.MethodGet, "/api/properties/4", "", nil)
	images := decode[models.ApiResponse[models.Property]](t, w).Data.Images
	assert.Equal(t, names[0], images[len(images)-1])

	w = doJSON(t, app, http.MethodGet, "/api/files/"+names[0], "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image-bytes", w.Body.String())

	body, contentType = multipartBody(t, map[string]string{"notes.txt": "text/plain"})
	req = httptest.NewRequest(http.MethodPost, "/api/properties/4/images", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_UPLOAD", decode[models.ApiResponse[any]](t, w).Code)
}

func TestContactsFlow(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)
	propertyID := int64(2)

	w := doJSON(t, app, http.MethodPost, "/api/contacts", "", models.Contact{
		Name:       "Rahul Deshmukh",
		Email:      "rahul@example.com",
		Phone:      "+91 9822012345",
		Message:    "Can I visit this flat on Saturday?",
		PropertyID: &propertyID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.ApiResponse[models.Contact]](t, w).Data
	assert.Equal(t, "Baner Tech Park View Flat", created.PropertyTitle)
	assert.Equal(t, models.ContactNew, created.Status)

	w = doJSON(t, app, http.MethodGet, "/api/contacts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, app, http.MethodGet, "/api/contacts?page=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[models.Page[models.Contact]](t, w)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, created.ID, page.Data[0].ID)

	w = doJSON(t, app, http.MethodPatch, "/api/contacts/1/status", token, models.ContactStatusUpdate{Status: models.ContactResolved})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.ContactResolved, decode[models.ApiResponse[models.Contact]](t, w).Data.Status)

	w = doJSON(t, app, http.MethodPatch, "/api/contacts/1/status", token, models.ContactStatusUpdate{Status: "Archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, app, http.MethodDelete, "/api/contacts/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, app, http.MethodDelete, "/api/contacts/1", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CONTACT_NOT_FOUND", decode[models.ApiResponse[any]](t, w).Code)

	w = doJSON(t, app, http.MethodGet, "/api/contacts/property/1/name", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Luxury Koregaon Park Apartment", decode[models.ApiResponse[string]](t, w).Data)
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	req := models.RegisterRequest{Name: "Neha Kulkarni", Username: "neha", Email: "neha@example.com", Password: "secret1"}
	w := doJSON(t, app, http.MethodPost, "/api/auth/register", "", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[models.ApiResponse[models.AuthResponse]](t, w)
	assert.Equal(t, "neha", resp.Data.User.Username)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = doJSON(t, app, http.MethodPost, "/api/auth/register", "", req)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, app, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: "neha@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthAndHeaders(t *testing.T) {
	app := newTestApp(t)

	w := doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","storage":"memory"}`, w.Body.String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = doJSON(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	app := newTestApp(t)
	app.InitializeServer()
	app.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
