// Package settings keeps an in-memory snapshot of the site settings.
//
// Pages read the snapshot synchronously. The admin writes go to the
// database and are followed by a full reload, after which every subscriber
// receives the new snapshot.
package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/labrocante/brocante/internal/db/controller/setting"
	"github.com/labrocante/brocante/internal/db/models"
	"github.com/labrocante/brocante/internal/objectstore"
)

const (
	resultOK       = "ok"
	resultFallback = "fallback"
)

var reloads = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Namespace: "brocante",
		Name:      "settings_reloads_total",
		Help:      "Number of site settings reloads, by result.",
	},
	[]string{"result"},
)

// Listener receives a private copy of every published snapshot.
type Listener func(snapshot map[string]any)

// Cache holds the current settings snapshot.
type Cache struct {
	db      *gorm.DB
	store   objectstore.Store
	bucket  string
	maxSize int64

	mu        sync.RWMutex
	snapshot  map[string]any
	version   uint64
	listeners map[int]Listener
	nextID    int

	// writeMu serializes reloads, update+reload pairs and the first
	// delivery of a new subscriber.
	writeMu sync.Mutex

	loaded     chan struct{}
	loadedOnce sync.Once
}

// New returns an empty cache. store may be nil if images are never uploaded.
func New(db *gorm.DB, store objectstore.Store, bucket string) *Cache {
	return &Cache{
		db:        db,
		store:     store,
		bucket:    bucket,
		maxSize:   objectstore.DefaultMaxImageSize,
		snapshot:  map[string]any{},
		listeners: map[int]Listener{},
		loaded:    make(chan struct{}),
	}
}

// SetMaxImageSize changes the upload limit of UpdateWithImage.
func (c *Cache) SetMaxImageSize(n int64) {
	c.maxSize = n
}

// Load fetches every row and publishes a new snapshot.
// When the fetch fails the fallback contact settings are published instead.
func (c *Cache) Load(ctx context.Context) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.load(ctx)
}

func (c *Cache) load(ctx context.Context) {
	rows, err := setting.GetAll(c.conn(ctx))
	if err != nil {
		log.Error().Err(err).Msg("failed to load site settings, using fallback")
		reloads.WithLabelValues(resultFallback).Inc()
		c.publish(Fallback())

		return
	}

	snapshot := make(map[string]any, len(rows))
	for _, row := range rows {
		snapshot[row.Key] = decode(row)
	}

	reloads.WithLabelValues(resultOK).Inc()
	log.Debug().Int("settings", len(snapshot)).Msg("site settings loaded")
	c.publish(snapshot)
}

// decode parses json rows, falling back to the raw string.
func decode(row models.SiteSetting) any {
	if row.Type != models.SettingTypeJSON {
		return row.Value
	}

	var v any
	if err := json.Unmarshal([]byte(row.Value), &v); err != nil {
		log.Warn().Err(err).Str("key", row.Key).Msg("invalid json setting, keeping raw value")

		return row.Value
	}

	return v
}

func (c *Cache) publish(snapshot map[string]any) {
	c.mu.Lock()
	c.snapshot = snapshot
	c.version++

	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	c.loadedOnce.Do(func() { close(c.loaded) })

	for _, l := range listeners {
		l(copyMap(snapshot))
	}
}

// Get returns the value of key from the current snapshot.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.snapshot[key]

	return v, ok
}

// String returns key as string, or fallback when it is missing or not a string.
func (c *Cache) String(key, fallback string) string {
	v, ok := c.Get(key)
	if !ok {
		return fallback
	}

	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}

	return s
}

// Snapshot returns a copy of the current snapshot.
func (c *Cache) Snapshot() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return copyMap(c.snapshot)
}

// Version is incremented on every publish.
func (c *Cache) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.version
}

// Subscribe registers fn for future snapshots and returns the unsubscribe func.
// A loaded cache calls fn once with the current snapshot before returning.
// Listeners must not call Load, Update or Subscribe.
func (c *Cache) Subscribe(fn Listener) func() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	current := copyMap(c.snapshot)
	version := c.version
	c.mu.Unlock()

	if version > 0 {
		fn(current)
	}

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// WaitLoaded blocks until the first snapshot is published, the timeout
// elapses or ctx ends. It reports whether the cache is loaded.
func (c *Cache) WaitLoaded(ctx context.Context, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-c.loaded:
		return true
	case <-timer.C:
		log.Warn().Dur("timeout", timeout).Msg("site settings not loaded yet, continuing")

		return false
	case <-ctx.Done():
		return false
	}
}

// All returns every row for the admin, ordered by category then key.
func (c *Cache) All(ctx context.Context) ([]models.SiteSetting, error) {
	rows, err := setting.GetAll(c.conn(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list site settings: %w", err)
	}

	return rows, nil
}

// Update writes value for an existing key and reloads the snapshot.
func (c *Cache) Update(ctx context.Context, key, value string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.update(ctx, key, value)
}

func (c *Cache) update(ctx context.Context, key, value string) error {
	if err := setting.UpdateValue(c.conn(ctx), key, value); err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return fmt.Errorf("%w: %s", ErrSettingNotFound, key)
		}

		log.Error().Err(err).Str("key", key).Msg("failed to update site setting")

		return fmt.Errorf("failed to update setting %s: %w", key, err)
	}

	c.load(ctx)

	return nil
}

// UpdateWithImage uploads file to the site bucket when given and stores its
// public URL as the value of key. Without file it behaves like Update.
// A failed upload leaves the row untouched and a failed row write removes
// the uploaded object.
func (c *Cache) UpdateWithImage(ctx context.Context, key, value string, file *objectstore.File) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if file == nil {
		return c.update(ctx, key, value)
	}

	if _, err := setting.Get(c.conn(ctx), key); err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return fmt.Errorf("%w: %s", ErrSettingNotFound, key)
		}

		return fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	name, err := c.uploadImage(ctx, *file)
	if err != nil {
		return err
	}

	if err = c.update(ctx, key, c.store.PublicURL(c.bucket, name)); err != nil {
		c.removeImage(ctx, name)

		return err
	}

	return nil
}

// uploadImage stores file in the site bucket and returns its object name.
func (c *Cache) uploadImage(ctx context.Context, file objectstore.File) (string, error) {
	if c.store == nil {
		return "", ErrNoImageStore
	}

	img, err := objectstore.ValidateImage(file, c.maxSize)
	if err != nil {
		return "", fmt.Errorf("invalid image: %w", err)
	}

	name := objectstore.SiteImageName(img.Ext, time.Now())

	if err = c.store.Upload(ctx, c.bucket, name, bytes.NewReader(img.Data)); err != nil {
		log.Error().Err(err).Str("bucket", c.bucket).Str("object", name).Msg("failed to upload site image")

		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return name, nil
}

// removeImage drops an uploaded object whose setting could not be written.
func (c *Cache) removeImage(ctx context.Context, name string) {
	n, err := c.store.Remove(ctx, c.bucket, name)
	if err != nil || n == 0 {
		log.Error().Err(err).Str("bucket", c.bucket).Str("object", name).Msg("failed to remove orphan site image")

		return
	}

	log.Debug().Str("bucket", c.bucket).Str("object", name).Msg("orphan site image removed")
}

// conn returns nil for a cache without database, the setting functions report it.
func (c *Cache) conn(ctx context.Context) *gorm.DB {
	if c.db == nil {
		return nil
	}

	return c.db.WithContext(ctx)
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}
