package catalog_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/objectstore"
)

var jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")

func TestUploadProductImage(t *testing.T) {
	ctx := context.Background()
	repo, _, store := newRepo(t)

	url, err := repo.UploadProductImage(ctx, objectstore.File{Name: "commode.JPG", Data: jpegHeader})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/storage/product-images/products/"), url)
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)

	objects, err := store.List(ctx, "product-images")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "image/jpeg", objects[0].ContentType)

	_, err = repo.UploadProductImage(ctx, objectstore.File{Name: "notes.jpg", Data: []byte("not an image")})
	require.ErrorIs(t, err, objectstore.ErrNotAnImage)

	repo.SetMaxImageSize(4)
	_, err = repo.UploadProductImage(ctx, objectstore.File{Name: "commode.jpg", Data: jpegHeader})
	require.ErrorIs(t, err, objectstore.ErrFileTooLarge)
}

func TestDiscardProductImages(t *testing.T) {
	ctx := context.Background()
	repo, _, store := newRepo(t)

	url, err := repo.UploadProductImage(ctx, objectstore.File{Name: "commode.jpg", Data: jpegHeader})
	require.NoError(t, err)

	repo.DiscardProductImages(ctx, "", "http://elsewhere/product-images/products/x.jpg", url)

	objects, err := store.List(ctx, "product-images")
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestListBucketFiles(t *testing.T) {
	ctx := context.Background()
	repo, _, store := newRepo(t)

	for _, name := range []string{"products/a.jpg", "products/.emptyFolderPlaceholder", ".emptyFolderPlaceholder", "b.jpg"} {
		require.NoError(t, store.Upload(ctx, "product-images", name, bytes.NewReader(jpegHeader)))
	}

	files, err := repo.ListBucketFiles(ctx, "product-images")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "b.jpg", files[0].Name)
	assert.Equal(t, "http://localhost:8080/storage/product-images/b.jpg", files[0].URL)
	assert.Equal(t, "products/a.jpg", files[1].Name)
	assert.Equal(t, "http://localhost:8080/storage/product-images/products/a.jpg", files[1].URL)

	files, err = repo.ListBucketFiles(ctx, "site-images")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDeleteBucketFile(t *testing.T) {
	ctx := context.Background()
	repo, _, store := newRepo(t)

	for _, name := range []string{"products/a.jpg", "logo.jpg"} {
		require.NoError(t, store.Upload(ctx, "site-images", name, bytes.NewReader(jpegHeader)))
	}

	require.NoError(t, repo.DeleteBucketFile(ctx, "products/a.jpg", "site-images"))

	// the qualified name does not exist, the base name does
	require.NoError(t, repo.DeleteBucketFile(ctx, "old/path/logo.jpg", "site-images"))

	err := repo.DeleteBucketFile(ctx, "products/a.jpg", "site-images")
	require.ErrorIs(t, err, catalog.ErrFileNotFound)

	files, err := repo.ListBucketFiles(ctx, "site-images")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMediaWithoutStore(t *testing.T) {
	repo := catalog.New(setupTestDB(t), nil, "product-images")

	_, err := repo.UploadProductImage(context.Background(), objectstore.File{Name: "a.jpg", Data: jpegHeader})
	require.ErrorIs(t, err, catalog.ErrNoObjectStore)

	_, err = repo.ListBucketFiles(context.Background(), "product-images")
	require.ErrorIs(t, err, catalog.ErrNoObjectStore)

	require.ErrorIs(t, repo.DeleteBucketFile(context.Background(), "a.jpg", "product-images"), catalog.ErrNoObjectStore)
}
