// Package contact provides the storefront contact page.
package contact

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/settings"
	"github.com/labrocante/brocante/internal/web/handler"
)

const (
	// Path is the path to the contact page.
	Path = handler.RootPath + "contact"

	// TemplateName is the name of the contact template.
	TemplateName = "contact"

	// Title is the page title.
	Title = "Contact"
	// NavPage is the navigation page key.
	NavPage = "contact"
)

// Service is the contact page handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	settings *settings.Cache
}

// Handler is the contact page handler.
var Handler = Service{}

// Init initializes the contact page handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) {
	if app == nil || cfg == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.settings = deps.Settings

	app.Get(Path, s.Get)
}

// Get renders the contact details and the opening hours.
func (s *Service) Get(c *fiber.Ctx) error {
	site := handler.NewSite(s.settings)
	hours, _ := s.settings.Get(settings.KeyOpeningHours)

	return c.Render(TemplateName, fiber.Map{
		"Navigation":   handler.ShopNav(site, Title, NavPage).AddBreadcrumb(Title, Path, true),
		"Site":         site,
		"PageTitle":    s.settings.String(settings.KeyContactTitle, "Contactez-nous"),
		"Subtitle":     s.settings.String(settings.KeyContactSubtitle, ""),
		"OpeningHours": settings.OpeningHours(hours),
	}, handler.BaseLayout)
}
