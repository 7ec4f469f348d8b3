// Package daemon wires the database, the storages, the caches and the web
// service of the shop together.
package daemon

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/labrocante/brocante/internal/auth"
	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/db"
	"github.com/labrocante/brocante/internal/db/dsn"
	"github.com/labrocante/brocante/internal/objectstore"
	"github.com/labrocante/brocante/internal/settings"
	"github.com/labrocante/brocante/internal/web"
	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/session"
)

// sessionTable holds the admin sessions in mysql and postgres.
const sessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port))
}

// WaitShutdown blocks until the web service stopped after a signal.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("engine", cfg.DB.GormEngine).Msg("failed to connect database")
	}

	if err = db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	store, err := objectstore.NewOS(cfg.Storage.Root, cfg.Storage.PublicURL)
	if err != nil {
		log.Fatal().Err(err).Str("root", cfg.Storage.Root).Msg("failed to open object store")
	}

	for _, bucket := range []string{cfg.Storage.ProductBucket, cfg.Storage.SiteBucket} {
		if err = store.EnsureBucket(bucket); err != nil {
			log.Fatal().Err(err).Str("bucket", bucket).Msg("failed to create bucket")
		}
	}

	deps := NewDeps(cfg, gdb, store)

	if err = seed(context.Background(), cfg, gdb, deps.Auth); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	deps.Settings.Load(context.Background())

	session.Init(sessionStorage(cfg), cfg.Webserver.Session.ExpiryTime)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, deps, store.HTTPFileSystem()),
	}
}

// NewDeps builds the collaborators of the page handlers.
func NewDeps(cfg *config.Config, gdb *gorm.DB, store objectstore.Store) *handler.Deps {
	repo := catalog.New(gdb, store, cfg.Storage.ProductBucket)
	repo.SetMaxImageSize(cfg.Storage.MaxUploadSize)

	cache := settings.New(gdb, store, cfg.Storage.SiteBucket)
	cache.SetMaxImageSize(cfg.Storage.MaxUploadSize)
	cache.Subscribe(func(snapshot map[string]any) {
		log.Debug().Int("keys", len(snapshot)).Uint64("version", cache.Version()).Msg("site settings published")
	})

	return &handler.Deps{
		DB:       gdb,
		Catalog:  repo,
		Settings: cache,
		Auth:     auth.NewLocalProvider(gdb),
	}
}

// sessionStorage keeps the sessions in the shop database. sqlite has no
// gofiber storage driver here, its sessions live in memory.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	default:
		log.Warn().Str("engine", cfg.DB.GormEngine).Msg("sessions are kept in memory")

		return nil
	}
}

// String describes the daemon for the startup log.
func (d *Daemon) String() string {
	return fmt.Sprintf("%s on port %d (%s)", d.cfg.Title, d.cfg.Webserver.Port, d.cfg.DB.GormEngine)
}
