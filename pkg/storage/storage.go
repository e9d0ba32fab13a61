// Package storage saves uploaded listing images to disk under
// collision-free ULID names.
package storage

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"homefinder-listings/internal/models"
	"homefinder-listings/pkg/logger"

	"github.com/oklog/ulid/v2"
)

const DefaultMaxFileSize = 5 << 20

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrFileTooLarge    = errors.New("image exceeds size limit")
	ErrEmptyFile       = errors.New("image is empty")
)

// allowedTypes maps accepted content types to the extension files are saved with.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var allowedExtensions = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpg",
	".png":  ".png",
	".webp": ".webp",
}

// ImageStorage persists image files and returns the stored names.
type ImageStorage interface {
	Save(ctx context.Context, files []models.ImageFile) ([]string, error)
	Remove(ctx context.Context, names []string) error
}

type LocalImageStorage struct {
	dir     string
	maxSize int64

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewLocalImageStorage(dir string, maxSize int64) (*LocalImageStorage, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalImageStorage{
		dir:     dir,
		maxSize: maxSize,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

func (s *LocalImageStorage) Dir() string {
	return s.dir
}

// Extension reports the stored extension for a file, or ErrUnsupportedType.
func Extension(f models.ImageFile) (string, error) {
	if ext, ok := allowedTypes[strings.ToLower(strings.TrimSpace(f.ContentType))]; ok {
		return ext, nil
	}
	if ext, ok := allowedExtensions[strings.ToLower(filepath.Ext(f.Name))]; ok && f.ContentType == "" {
		return ext, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, f.Name)
}

// Check validates every file before anything is written.
func (s *LocalImageStorage) Check(files []models.ImageFile) error {
	for _, f := range files {
		if len(f.Data) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyFile, f.Name)
		}
		if int64(len(f.Data)) > s.maxSize {
			return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, f.Name, len(f.Data), s.maxSize)
		}
		if _, err := Extension(f); err != nil {
			return err
		}
	}
	return nil
}

func (s *LocalImageStorage) newName(ext string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String() + ext
}

// Save writes all files or none of them.
func (s *LocalImageStorage) Save(ctx context.Context, files []models.ImageFile) ([]string, error) {
	if err := s.Check(files); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			s.Remove(ctx, names)
			return nil, err
		}
		ext, _ := Extension(f)
		name := s.newName(ext)
		if err := os.WriteFile(filepath.Join(s.dir, name), f.Data, 0o644); err != nil {
			s.Remove(ctx, names)
			return nil, fmt.Errorf("write image %s: %w", f.Name, err)
		}
		names = append(names, name)
	}
	logger.GlobalLogger.Debugf("stored %d images in %s", len(names), s.dir)
	return names, nil
}

// Remove deletes stored files, ignoring ones already gone.
func (s *LocalImageStorage) Remove(_ context.Context, names []string) error {
	var errs []error
	for _, name := range names {
		if name == "" || name != filepath.Base(name) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
