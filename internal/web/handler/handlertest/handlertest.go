// Package handlertest holds the fixtures shared by the web handler tests.
package handlertest

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/labrocante/brocante/internal/auth"
	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/db"
	"github.com/labrocante/brocante/internal/db/models"
	"github.com/labrocante/brocante/internal/objectstore"
	"github.com/labrocante/brocante/internal/settings"
	"github.com/labrocante/brocante/internal/web/handler"
	websess "github.com/labrocante/brocante/internal/web/session"
)

const (
	// ProductBucket is the product image bucket of the fixtures.
	ProductBucket = "product-images"
	// SiteBucket is the site image bucket of the fixtures.
	SiteBucket = "site-images"
	// PublicURL prefixes the fixture object URLs.
	PublicURL = "http://localhost/storage"
)

// PNG is a minimal image header recognized as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00") //nolint:gochecknoglobals

// Views is a minimal Fiber Views engine used for tests.
// It writes the "error" or "Error" field from the provided fiber.Map (if
// any) so tests can assert error messages rendered by handlers, the
// template name otherwise. The last rendered data is kept for inspection.
type Views struct {
	mu       sync.Mutex
	last     fiber.Map
	template string
}

// Load implements fiber.Views.
func (*Views) Load() error { return nil }

// Render implements fiber.Views.
func (v *Views) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	m, _ := data.(fiber.Map)

	v.mu.Lock()
	v.last = m
	v.template = name
	v.mu.Unlock()

	for _, key := range []string{"error", "Error"} {
		if e, ok := m[key].(string); ok && e != "" {
			_, _ = io.WriteString(w, e)
			return nil
		}
	}

	_, _ = io.WriteString(w, name)

	return nil
}

// Last returns the template name and data of the last render.
func (v *Views) Last() (string, fiber.Map) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.template, v.last
}

// Env is a ready to use set of handler collaborators.
type Env struct {
	App   *fiber.App
	Views *Views
	Cfg   *config.Config
	Deps  *handler.Deps
	Store *objectstore.FS
}

// NewConfig returns a config for handler tests.
func NewConfig() *config.Config {
	return &config.Config{
		Title: "La Brocante",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
		Storage: config.Storage{
			PublicURL:     PublicURL,
			ProductBucket: ProductBucket,
			SiteBucket:    SiteBucket,
			MaxUploadSize: objectstore.DefaultMaxImageSize,
		},
		Settings: config.Settings{WaitTimeout: time.Second},
	}
}

// NewDB opens a migrated in-memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every pooled connection would open its own in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))

	return gdb
}

// New builds an app with the no-op view engine, a fresh session store and
// collaborators backed by an in-memory database and object store.
func New(t *testing.T) *Env {
	t.Helper()

	InitSessionStore()

	var (
		cfg   = NewConfig()
		gdb   = NewDB(t)
		store = objectstore.NewMemory(PublicURL)
		views = &Views{}
	)

	cache := settings.New(gdb, store, SiteBucket)
	cache.Load(t.Context())

	return &Env{
		App:   fiber.New(fiber.Config{Views: views}),
		Views: views,
		Cfg:   cfg,
		Store: store,
		Deps: &handler.Deps{
			DB:       gdb,
			Catalog:  catalog.New(gdb, store, ProductBucket),
			Settings: cache,
			Auth:     auth.NewLocalProvider(gdb),
		},
	}
}

// Storage is a minimal in-memory implementation of fiber.Storage for tests.
type Storage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// Ensure Storage implements the fiber.Storage interface.
var _ fiber.Storage = (*Storage)(nil)

// Get implements fiber.Storage.
func (s *Storage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

// Set implements fiber.Storage.
func (s *Storage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

// Delete implements fiber.Storage.
func (s *Storage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

// Reset implements fiber.Storage.
func (s *Storage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

// Close implements fiber.Storage.
func (*Storage) Close() error { return nil }

// InitSessionStore initializes a fresh in-memory session store.
func InitSessionStore() {
	websess.Init(&Storage{data: make(map[string][]byte)}, time.Minute)
}

// LoginCookie stores a session for a new admin account and returns the
// cookie to send with requests.
func (e *Env) LoginCookie(t *testing.T) *http.Cookie {
	t.Helper()

	user, err := e.Deps.Auth.CreateUser(t.Context(), "admin", "admin@example.com", "secret")
	require.NoError(t, err)

	return SessionCookie(t, user)
}

// SessionCookie stores a session for user and returns its cookie.
func SessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()

	id, err := websess.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, websess.NewData(user).Write(id, time.Minute))

	return &http.Cookie{Name: websess.CookieName, Value: id}
}

// Do runs req against app.
func Do(t *testing.T, app *fiber.App, req *http.Request, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

// Get performs a GET request.
func Get(t *testing.T, app *fiber.App, target string, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	return Do(t, app, httptest.NewRequest(http.MethodGet, target, nil), cookies...)
}

// PerformPost submits form url encoded.
func PerformPost(t *testing.T, app *fiber.App, target string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return Do(t, app, req, cookies...)
}

// Upload is a file part of a multipart form.
type Upload struct {
	Field    string
	FileName string
	Data     []byte
}

// PerformMultipart submits form and files as multipart/form-data.
func PerformMultipart(
	t *testing.T, app *fiber.App, target string, form url.Values, files []Upload, cookies ...*http.Cookie,
) *http.Response {
	t.Helper()

	var body bytes.Buffer

	w := multipart.NewWriter(&body)

	for k, vs := range form {
		for _, v := range vs {
			require.NoError(t, w.WriteField(k, v))
		}
	}

	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.FileName)
		require.NoError(t, err)

		_, err = part.Write(f.Data)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return Do(t, app, req, cookies...)
}

// Body reads the response body.
func Body(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(b)
}
