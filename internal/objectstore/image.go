package objectstore

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/labrocante/brocante/internal/uniuri"
)

// DefaultMaxImageSize is the upload limit for images.
const DefaultMaxImageSize int64 = 5 * 1024 * 1024

// File is an upload received from a form.
type File struct {
	// Name is the client side file name, only its extension is used.
	Name string
	Data []byte
}

// Image is a validated image upload.
type Image struct {
	File
	ContentType string
	// Ext is lower case without dot.
	Ext string
}

// ValidateImage checks size and sniffed content type of f.
// maxSize <= 0 selects DefaultMaxImageSize.
func ValidateImage(f File, maxSize int64) (Image, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}

	if len(f.Data) == 0 {
		return Image{}, ErrEmptyFile
	}

	if int64(len(f.Data)) > maxSize {
		return Image{}, fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, len(f.Data), maxSize)
	}

	m := mimetype.Detect(f.Data)
	if !strings.HasPrefix(m.String(), "image/") {
		return Image{}, fmt.Errorf("%w: %s", ErrNotAnImage, m.String())
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(f.Name), "."))
	if ext == "" {
		ext = strings.TrimPrefix(m.Extension(), ".")
	}

	return Image{File: f, ContentType: m.String(), Ext: ext}, nil
}

// ProductImageName returns products/<uuid>.<ext>.
func ProductImageName(ext string) string {
	return "products/" + uuid.NewString() + "." + ext
}

// SiteImageName returns <token>_<unix millis>.<ext>.
func SiteImageName(ext string, now time.Time) string {
	return uniuri.Token() + "_" + strconv.FormatInt(now.UnixMilli(), 10) + "." + ext
}
