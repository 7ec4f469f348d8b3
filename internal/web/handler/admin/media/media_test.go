package media

import (
	"bytes"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/web/handler/handlertest"
)

func setup(t *testing.T) *handlertest.Env {
	t.Helper()

	env := handlertest.New(t)

	var s Service
	s.Init(env.App, env.Cfg, env.Deps)

	return env
}

func upload(t *testing.T, env *handlertest.Env, bucket, name string) {
	t.Helper()

	require.NoError(t, env.Store.Upload(t.Context(), bucket, name, bytes.NewReader(handlertest.PNG)))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.in))
	}
}

func TestGet(t *testing.T) {
	env := setup(t)

	upload(t, env, handlertest.ProductBucket, "products/a.png")
	upload(t, env, handlertest.ProductBucket, "products/.emptyFolderPlaceholder")
	upload(t, env, handlertest.SiteBucket, "logo.png")

	resp := handlertest.Get(t, env.App, Path)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, data := env.Views.Last()
	assert.Equal(t, handlertest.ProductBucket, data["Bucket"])

	files, ok := data["Files"].([]catalog.BucketFile)
	require.True(t, ok)
	require.Len(t, files, 1)
	assert.Equal(t, "products/a.png", files[0].Name)
	assert.Equal(t, handlertest.PublicURL+"/product-images/products/a.png", files[0].URL)

	resp = handlertest.Get(t, env.App, Path+"?bucket="+handlertest.SiteBucket)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, data = env.Views.Last()
	files, ok = data["Files"].([]catalog.BucketFile)
	require.True(t, ok)
	require.Len(t, files, 1)
	assert.Equal(t, "logo.png", files[0].Name)

	buckets, ok := data["Buckets"].([]Bucket)
	require.True(t, ok)
	assert.False(t, buckets[0].Active)
	assert.True(t, buckets[1].Active)
}

func TestGetUnknownBucket(t *testing.T) {
	env := setup(t)

	resp := handlertest.Get(t, env.App, Path+"?bucket=secrets")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, ErrUnknownBucket, handlertest.Body(t, resp))
}

func TestDelete(t *testing.T) {
	env := setup(t)

	upload(t, env, handlertest.ProductBucket, "products/a.png")

	resp := handlertest.PerformPost(t, env.App, RouteDelete,
		url.Values{"bucket": {handlertest.ProductBucket}, "name": {"products/a.png"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, Path+"?bucket=product-images&deleted=1", resp.Header.Get("Location"))

	files, err := env.Deps.Catalog.ListBucketFiles(t.Context(), handlertest.ProductBucket)
	require.NoError(t, err)
	assert.Empty(t, files)

	resp = handlertest.PerformPost(t, env.App, RouteDelete,
		url.Values{"bucket": {handlertest.ProductBucket}, "name": {"products/a.png"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, ErrFileNotFound, handlertest.Body(t, resp))

	resp = handlertest.PerformPost(t, env.App, RouteDelete, url.Values{"bucket": {"other"}, "name": {"x"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
