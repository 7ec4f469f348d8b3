package catalog

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/objectstore"
)

// placeholderObject marks empty folders of a bucket and is never listed.
const placeholderObject = ".emptyFolderPlaceholder"

// BucketFile is an object of the media library.
type BucketFile struct {
	Name        string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	URL         string
}

// UploadProductImage stores an image under products/ of the product bucket
// and returns its public URL.
func (r *Repository) UploadProductImage(ctx context.Context, file objectstore.File) (string, error) {
	if r.store == nil {
		return "", ErrNoObjectStore
	}

	img, err := objectstore.ValidateImage(file, r.maxImageSize)
	if err != nil {
		return "", fmt.Errorf("invalid image: %w", err)
	}

	name := objectstore.ProductImageName(img.Ext)

	if err = r.store.Upload(ctx, r.productBucket, name, bytes.NewReader(img.Data)); err != nil {
		log.Error().Err(err).Str("object", name).Msg("failed to upload product image")

		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return r.store.PublicURL(r.productBucket, name), nil
}

// DiscardProductImages removes uploaded product images by public URL.
// URLs outside the product bucket are ignored.
func (r *Repository) DiscardProductImages(ctx context.Context, urls ...string) {
	if r.store == nil {
		return
	}

	prefix := r.store.PublicURL(r.productBucket, "")

	for _, u := range urls {
		name, ok := strings.CutPrefix(u, prefix)
		if !ok || name == "" {
			continue
		}

		if _, err := r.store.Remove(ctx, r.productBucket, name); err != nil {
			log.Error().Err(err).Str("object", name).Msg("failed to discard product image")
		}
	}
}

// ListBucketFiles lists the objects of bucket with their public URL.
func (r *Repository) ListBucketFiles(ctx context.Context, bucket string) ([]BucketFile, error) {
	if r.store == nil {
		return nil, ErrNoObjectStore
	}

	objects, err := r.store.List(ctx, bucket)
	if err != nil {
		log.Error().Err(err).Str("bucket", bucket).Msg("failed to list bucket")

		return nil, fmt.Errorf("failed to list bucket %s: %w", bucket, err)
	}

	files := make([]BucketFile, 0, len(objects))

	for _, o := range objects {
		if path.Base(o.Name) == placeholderObject {
			continue
		}

		files = append(files, BucketFile{
			Name:        o.Name,
			Size:        o.Size,
			ContentType: o.ContentType,
			UpdatedAt:   o.UpdatedAt,
			URL:         r.store.PublicURL(bucket, o.Name),
		})
	}

	return files, nil
}

// DeleteBucketFile removes name from bucket. When nothing was removed it
// retries with the base name of name.
func (r *Repository) DeleteBucketFile(ctx context.Context, name, bucket string) error {
	if r.store == nil {
		return ErrNoObjectStore
	}

	n, err := r.store.Remove(ctx, bucket, name)
	if err != nil {
		log.Error().Err(err).Str("bucket", bucket).Str("object", name).Msg("failed to delete file")

		return fmt.Errorf("failed to delete %s: %w", name, err)
	}

	if base := path.Base(name); n == 0 && base != name {
		log.Debug().Str("bucket", bucket).Str("object", base).Msg("retrying delete with base name")

		if n, err = r.store.Remove(ctx, bucket, base); err != nil {
			return fmt.Errorf("failed to delete %s: %w", base, err)
		}
	}

	if n == 0 {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	return nil
}
