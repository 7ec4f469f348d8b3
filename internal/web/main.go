package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/config"
	accesslog "github.com/labrocante/brocante/internal/logger/adapter/fiber"
	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/handler/admin/account"
	"github.com/labrocante/brocante/internal/web/handler/admin/category"
	"github.com/labrocante/brocante/internal/web/handler/admin/media"
	"github.com/labrocante/brocante/internal/web/handler/admin/product"
	sitesettings "github.com/labrocante/brocante/internal/web/handler/admin/settings"
	"github.com/labrocante/brocante/internal/web/handler/contact"
	"github.com/labrocante/brocante/internal/web/handler/dashboard"
	"github.com/labrocante/brocante/internal/web/handler/home"
	"github.com/labrocante/brocante/internal/web/handler/location"
	"github.com/labrocante/brocante/internal/web/handler/login"
	"github.com/labrocante/brocante/internal/web/handler/logout"
	"github.com/labrocante/brocante/internal/web/handler/products"
	"github.com/labrocante/brocante/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers 200 while serving and 503 during shutdown.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the Prometheus metrics.
	MetricsPath = "/metrics"
	// StaticPath serves the embedded assets.
	StaticPath = "/static"
	// StoragePath serves the object store buckets.
	StoragePath = "/storage"

	// uploadsPerForm is how many images one product form may carry.
	uploadsPerForm = 3
	// minBodyLimit is the fiber default body limit.
	minBodyLimit = 4 * 1024 * 1024
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and stops the server gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// Handlers returns the page handlers in registration order.
func Handlers() []handler.Service {
	return []handler.Service{
		&home.Handler,
		&products.Handler,
		&contact.Handler,
		&location.Handler,
		&login.Handler,
		&logout.Handler,
		&dashboard.Handler,
		&product.Handler,
		&category.Handler,
		&sitesettings.Handler,
		&media.Handler,
		&account.Handler,
	}
}

// New creates the web service. storage serves the object store buckets
// under StoragePath, nil disables it.
func New(cfg *config.Config, deps *handler.Deps, storage http.FileSystem) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if !deps.Valid() {
		panic("deps cannot be nil")
	}

	templateEngine := html.NewFileSystem(templatesFS(), ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New(devTemplatesDir, ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFuncMap(TemplateFuncs())

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			BodyLimit:      bodyLimit(cfg.Storage.MaxUploadSize),
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(accesslog.New(accesslog.Config{Config: cfg.Log, CheckAliveURI: CheckAlivePath}))

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.Alive() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// serve embedded static files
	app.Use(StaticPath,
		filesystem.New(
			filesystem.Config{
				Root:   staticFS(),
				Browse: cfg.Webserver.BrowseStatic,
			},
		),
	)

	if storage != nil {
		app.Use(StoragePath, filesystem.New(filesystem.Config{Root: storage, MaxAge: 3600})) //nolint:mnd
	}

	app.Use(auth.Middleware)

	for _, h := range Handlers() {
		h.Init(app, cfg, deps)
	}

	app.Use(NotFound)

	return service
}

// NotFound sends unknown storefront routes to the home page. Unknown back
// office routes get a plain 404.
func NotFound(c *fiber.Ctx) error {
	if auth.IsAdminPage(c) {
		return c.Status(fiber.StatusNotFound).SendString("Page introuvable")
	}

	return c.Redirect(home.Path)
}

func bodyLimit(maxUpload int64) int {
	return max(int(maxUpload)*uploadsPerForm+1024*1024, minBodyLimit) //nolint:mnd // form fields
}
