// Package dashboard provides the back office home with the catalog figures.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.AdminPath + "/dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "admin/dashboard"

	// NavPage is the navigation page key of the dashboard.
	NavPage = "dashboard"

	// Title is the page title.
	Title = "Tableau de bord"

	// ErrFailedLoadStats is shown when the figures can not be computed.
	ErrFailedLoadStats = "Erreur lors du chargement du tableau de bord"
)

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	catalog *catalog.Repository
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) {
	if app == nil || cfg == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.catalog = deps.Catalog

	app.Get(Path, s.Get)
	app.Get(handler.AdminPath, func(c *fiber.Ctx) error {
		return c.Redirect(Path)
	})
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext(Title, handler.NavSectionAdmin, NavPage).
		WithSiteTitle(s.cfg.Title).
		AddBreadcrumb(handler.BreadcrumbAdminLbl, Path, false).
		AddBreadcrumb(Title, Path, true)

	stats, err := s.catalog.Stats(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to compute dashboard stats")

		return c.Status(fiber.StatusInternalServerError).Render(TemplateName, fiber.Map{
			"Navigation":  nav,
			"CurrentUser": handler.CurrentUser(c),
			"Error":       ErrFailedLoadStats,
		}, handler.AdminLayout)
	}

	log.Debug().
		Int("products", stats.TotalProducts).
		Int("stock", stats.TotalStock).
		Int("categories", stats.TotalCategories).
		Msg("dashboard stats computed")

	return c.Render(TemplateName, fiber.Map{
		"Navigation":  nav,
		"CurrentUser": handler.CurrentUser(c),
		"Stats":       stats,
	}, handler.AdminLayout)
}
