package imagefile

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// ErrInvalidImage is returned for input that cannot be decoded as an image.
// This is a non-retryable client error.
var ErrInvalidImage = errors.New("invalid or corrupted image")

// ThumbnailMaxDim is the bounding box for generated thumbnails.
const ThumbnailMaxDim = 256

// Decode parses image bytes. Malformed input yields ErrInvalidImage.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidImage)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return img, nil
}

// Dimensions returns the "WxH" dimensions string for an image.
func Dimensions(img image.Image) string {
	bounds := img.Bounds()
	return fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy())
}

// Store manages original and thumbnail files on disk, keyed by image uuid.
type Store struct {
	originalsDir  string
	thumbnailsDir string
}

// NewStore creates a file store rooted at baseDir.
func NewStore(baseDir string) (*Store, error) {
	s := &Store{
		originalsDir:  filepath.Join(baseDir, "originals"),
		thumbnailsDir: filepath.Join(baseDir, "thumbnails"),
	}
	for _, dir := range []string{s.originalsDir, s.thumbnailsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return s, nil
}

// SaveOriginal writes the raw image bytes for the given uuid.
func (s *Store) SaveOriginal(uuid string, data []byte) (string, error) {
	path := filepath.Join(s.originalsDir, uuid)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write original: %w", err)
	}
	return path, nil
}

// SaveThumbnail generates and writes a JPEG thumbnail for the given uuid.
// The image is scaled to fit within ThumbnailMaxDim, preserving aspect ratio.
func (s *Store) SaveThumbnail(uuid string, img image.Image) (string, error) {
	thumb := imaging.Fit(img, ThumbnailMaxDim, ThumbnailMaxDim, imaging.Lanczos)
	path := s.ThumbnailPath(uuid)
	if err := imaging.Save(thumb, path, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to write thumbnail: %w", err)
	}
	return path, nil
}

// ThumbnailPath returns the on-disk path of the thumbnail for the given uuid.
// The file may not exist yet.
func (s *Store) ThumbnailPath(uuid string) string {
	return filepath.Join(s.thumbnailsDir, fmt.Sprintf("thumb_%s.jpg", uuid))
}

// Remove deletes the original and thumbnail for the given uuid.
// Missing files are not an error.
func (s *Store) Remove(uuid string) error {
	for _, path := range []string{
		filepath.Join(s.originalsDir, uuid),
		s.ThumbnailPath(uuid),
	} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}
