// Package home provides the storefront home page.
package home

import (
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/settings"
	"github.com/labrocante/brocante/internal/web/handler"
)

const (
	// Path is the path to the home page.
	Path = handler.RootPath

	// TemplateName is the name of the home template.
	TemplateName = "home"

	// Title is the page title.
	Title = "Accueil"

	// FeaturedCount is how many of the newest products the page shows.
	FeaturedCount = 3

	// HeroGradient is the hero background used without hero image.
	HeroGradient = "linear-gradient(to right, rgb(120 53 15 / 0.8), rgb(146 64 14 / 0.6))"
)

// Hero is the top banner of the home page.
type Hero struct {
	Title    string
	Subtitle string
	Image    string
	// Background is a CSS background value.
	Background template.CSS
}

// Service is the home page handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	catalog  *catalog.Repository
	settings *settings.Cache
}

// Handler is the home page handler.
var Handler = Service{}

// Init initializes the home page handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) {
	if app == nil || cfg == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.catalog = deps.Catalog
	s.settings = deps.Settings

	app.Get(Path, s.Get)
}

// Get renders the home page once the settings are loaded or the wait
// timed out. Catalog failures leave their section empty.
func (s *Service) Get(c *fiber.Ctx) error {
	s.settings.WaitLoaded(c.UserContext(), s.cfg.Settings.WaitTimeout)

	site := handler.NewSite(s.settings)

	categories, err := s.catalog.ListCategoriesWithStats(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to load home categories")
	}

	products, err := s.catalog.ListProducts(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to load featured products")
	}

	if len(products) > FeaturedCount {
		products = products[:FeaturedCount]
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": handler.ShopNav(site, Title, handler.NavPageHome),
		"Site":       site,
		"Hero":       NewHero(s.settings),
		"Categories": categories,
		"Featured":   products,
	}, handler.BaseLayout)
}

// cssURL escapes the characters that could end a quoted CSS url().
var cssURL = strings.NewReplacer(`'`, "%27", `"`, "%22", `(`, "%28", `)`, "%29", `\`, "%5C", "\n", "") //nolint:gochecknoglobals

// NewHero reads the hero settings.
func NewHero(cache *settings.Cache) Hero {
	h := Hero{
		Title:      cache.String(settings.KeyHeroTitle, ""),
		Subtitle:   cache.String(settings.KeyHeroSubtitle, ""),
		Image:      strings.TrimSpace(cache.String(settings.KeyHeroImage, "")),
		Background: HeroGradient,
	}

	if h.Image != "" {
		h.Background = template.CSS("url('" + cssURL.Replace(h.Image) + "')") //nolint:gosec // escaped above
	}

	return h
}
