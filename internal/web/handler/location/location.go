// Package location provides the storefront page showing where the shop is.
package location

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/config"
	geo "github.com/labrocante/brocante/internal/location"
	"github.com/labrocante/brocante/internal/settings"
	"github.com/labrocante/brocante/internal/web/handler"
)

const (
	// Path is the path to the location page.
	Path = handler.RootPath + "localisation"

	// TemplateName is the name of the location template.
	TemplateName = "location"

	// Title is the page title.
	Title = "Nous trouver"
	// NavPage is the navigation page key.
	NavPage = "location"

	// ErrInvalidPosition is shown when lat/lng do not form a coordinate.
	ErrInvalidPosition = "Position invalide"
)

// Service is the location page handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	settings *settings.Cache
}

// Handler is the location page handler.
var Handler = Service{}

// Init initializes the location page handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) {
	if app == nil || cfg == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.settings = deps.Settings

	app.Get(Path, s.Get)
}

// Get renders the shop address. With ?lat&lng, the visitor position sent
// by the browser, it adds the distance and travel advice.
func (s *Service) Get(c *fiber.Ctx) error {
	site := handler.NewSite(s.settings)
	shop := geo.FromSetting(s.settings.Snapshot()[settings.KeyLocation])

	data := fiber.Map{
		"Navigation": handler.ShopNav(site, Title, NavPage).AddBreadcrumb(Title, Path, true),
		"Site":       site,
		"Location":   shop,
		"Address":    shop.AddressLines(),
		"MapsURL":    shop.MapsURL(),
	}

	if c.Query("lat") == "" && c.Query("lng") == "" {
		return c.Render(TemplateName, data, handler.BaseLayout)
	}

	var from geo.Point
	if err := c.QueryParser(&from); err != nil || !Valid(from) {
		data["Error"] = ErrInvalidPosition

		return c.Status(fiber.StatusBadRequest).Render(TemplateName, data, handler.BaseLayout)
	}

	route := shop.Route(from)
	data["Route"] = route

	log.Debug().Float64("km", route.DistanceKM).Msg("visitor route computed")

	return c.Render(TemplateName, data, handler.BaseLayout)
}

// Valid reports whether p is a coordinate on earth.
func Valid(p geo.Point) bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
