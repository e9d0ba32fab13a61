package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	apperrors "homefinder-listings/internal/errors"
	"homefinder-listings/internal/models"
	"homefinder-listings/pkg/listings"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	store          listings.Store
	maxUploadBytes int64
}

func NewPropertyHandler(store listings.Store, maxUploadBytes int64) *PropertyHandler {
	return &PropertyHandler{store: store, maxUploadBytes: maxUploadBytes}
}

// GetProperties answers GET /properties. Malformed query values fall back
// to their defaults instead of failing the request.
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	spec := models.SearchSpecFromValues(c.Request.URL.Query())
	page, err := h.store.Search(c.Request.Context(), spec)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PropertyHandler) GetFeatured(c *gin.Context) {
	props, err := h.store.Featured(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.Success(props, "Featured properties retrieved successfully"))
}

func (h *PropertyHandler) GetPropertyByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	property, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.Success(property, "Property retrieved successfully"))
}

func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.Error(apperrors.InvalidParameter("invalid property body: "+err.Error(), err))
		return
	}

	created, err := h.store.Create(c.Request.Context(), &property)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, models.Success(created, "Property created successfully"))
}

func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.Error(apperrors.InvalidParameter("invalid property body: "+err.Error(), err))
		return
	}

	updated, err := h.store.Update(c.Request.Context(), id, &property)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.Success(updated, "Property updated successfully"))
}

func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.Success[any](nil, "Property deleted successfully"))
}

// UploadImages accepts multipart field "files" and returns the stored names.
func (h *PropertyHandler) UploadImages(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes*models.MaxImages+(1<<20))
	form, err := c.MultipartForm()
	if err != nil {
		c.Error(apperrors.InvalidParameter("invalid multipart form: "+err.Error(), err))
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.Error(apperrors.InvalidParameter("no files in field \"files\"", nil))
		return
	}
	if len(headers) > models.MaxImages {
		c.Error(apperrors.ErrTooManyImages)
		return
	}

	files := make([]models.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := readImage(fh, h.maxUploadBytes)
		if err != nil {
			c.Error(err)
			return
		}
		files = append(files, f)
	}

	names, err := h.store.UploadImages(c.Request.Context(), id, files)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.Success(names, "Images uploaded successfully"))
}

// readImage reads at most limit+1 bytes so oversized files are still
// rejected by the image store's size check.
func readImage(fh *multipart.FileHeader, limit int64) (models.ImageFile, error) {
	src, err := fh.Open()
	if err != nil {
		return models.ImageFile{}, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return models.ImageFile{}, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}
	return models.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func pathID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperrors.InvalidParameter(fmt.Sprintf("invalid id %q", raw), err))
		return 0, false
	}
	return id, true
}
