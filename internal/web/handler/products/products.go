// Package products provides the storefront product listing and detail pages.
package products

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/settings"
	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/navigation"
)

const (
	// Path is the path to the product listing.
	Path = handler.RootPath + "produits"
	// DetailPath is the path of one product.
	DetailPath = handler.RootPath + "produit/:id"

	// TemplateList is the name of the listing template.
	TemplateList = "products/list"
	// TemplateDetail is the name of the detail template.
	TemplateDetail = "products/detail"

	// Title is the listing title.
	Title = "Nos produits"
	// NavPage is the navigation page key.
	NavPage = "products"

	// RelatedCount is how many products of the same category the detail shows.
	RelatedCount = 4

	// ErrFailedLoadProducts is shown when the listing could not be read.
	ErrFailedLoadProducts = "Impossible de charger les produits. Vérifiez votre connexion."
	// ErrProductNotFound is shown for an unknown product.
	ErrProductNotFound = "Produit non trouvé"
	// ErrFailedLoadProduct is shown when the product could not be read.
	ErrFailedLoadProduct = "Erreur de chargement"
)

// PriceRange is an option of the price filter.
type PriceRange struct {
	Value    string
	Label    string
	Selected bool
}

// Service is the product pages handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	catalog  *catalog.Repository
	settings *settings.Cache
}

// Handler is the product pages handler.
var Handler = Service{}

// Init initializes the product pages handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) {
	if app == nil || cfg == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.catalog = deps.Catalog
	s.settings = deps.Settings

	app.Get(Path, s.List)
	app.Get(DetailPath, s.Detail)
}

// List renders the filtered and paginated catalog.
func (s *Service) List(c *fiber.Ctx) error {
	site := handler.NewSite(s.settings)
	nav := handler.ShopNav(site, Title, NavPage).AddBreadcrumb(Title, Path, true)

	var f catalog.Filter
	if err := c.QueryParser(&f); err != nil {
		log.Debug().Err(err).Msg("ignoring malformed product filter")

		f = catalog.Filter{}
	}

	if f.Category == "" {
		f.Category = catalog.AllCategories
	}

	data := fiber.Map{
		"Navigation":   nav,
		"Site":         site,
		"Filter":       f,
		"PriceRanges":  priceRanges(f.PriceRange),
		"PriceLabel":   "",
		"FilterQuery":  filterQuery(f),
		"ActiveFilter": f.Active(),
	}

	if f.PriceRange != "" {
		data["PriceLabel"] = catalog.PriceRangeLabel(f.PriceRange)
	}

	products, err := s.catalog.ListProducts(c.UserContext())
	if err != nil {
		data["Error"] = ErrFailedLoadProducts

		return c.Status(fiber.StatusInternalServerError).Render(TemplateList, data, handler.BaseLayout)
	}

	categories, err := s.catalog.ListCategoryNames(c.UserContext())
	if err != nil {
		data["Error"] = ErrFailedLoadProducts

		return c.Status(fiber.StatusInternalServerError).Render(TemplateList, data, handler.BaseLayout)
	}

	data["Categories"] = categories
	data["Page"] = handler.Paginate(f.Apply(products), c.QueryInt("page", 1), handler.DefaultPageSize)

	return c.Render(TemplateList, data, handler.BaseLayout)
}

// Detail renders one product with its gallery and related products.
// ?img selects the gallery image, wrapping around both ends.
func (s *Service) Detail(c *fiber.Ctx) error {
	site := handler.NewSite(s.settings)
	nav := handler.ShopNav(site, ErrProductNotFound, NavPage).AddBreadcrumb(Title, Path, false)

	id, err := handler.ParamID(c)
	if err != nil {
		return s.notFound(c, site, nav)
	}

	p, err := s.catalog.GetProduct(c.UserContext(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return s.notFound(c, site, nav)
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).Render(TemplateDetail, fiber.Map{
			"Navigation": nav,
			"Site":       site,
			"Error":      ErrFailedLoadProduct,
		}, handler.BaseLayout)
	}

	nav.PageTitle = p.Name
	nav.AddBreadcrumb(p.Name, c.Path(), true)

	related, err := s.catalog.ListByCategory(c.UserContext(), p.Category, RelatedCount, p.ID)
	if err != nil {
		log.Error().Err(err).Uint64("id", p.ID).Msg("failed to load related products")
	}

	images := p.Images()
	index := GalleryIndex(c.QueryInt("img", 0), len(images))

	current := ""
	if len(images) > 0 {
		current = images[index]
	}

	return c.Render(TemplateDetail, fiber.Map{
		"Navigation":   nav,
		"Site":         site,
		"Product":      p,
		"Images":       images,
		"ImageIndex":   index,
		"CurrentImage": current,
		"PrevImage":    GalleryIndex(index-1, len(images)),
		"NextImage":    GalleryIndex(index+1, len(images)),
		"Related":      related,
		"InterestLink": catalog.InterestLink(*p, site.Whatsapp),
	}, handler.BaseLayout)
}

func (s *Service) notFound(c *fiber.Ctx, site handler.Site, nav *navigation.Context) error {
	return c.Status(fiber.StatusNotFound).Render(TemplateDetail, fiber.Map{
		"Navigation": nav,
		"Site":       site,
		"Error":      ErrProductNotFound,
		"Redirect":   Path,
	}, handler.BaseLayout)
}

// GalleryIndex wraps i into [0, n).
func GalleryIndex(i, n int) int {
	if n <= 0 {
		return 0
	}

	return ((i % n) + n) % n
}

func priceRanges(selected string) []PriceRange {
	ranges := make([]PriceRange, 0, len(catalog.PriceRanges))

	for _, r := range catalog.PriceRanges {
		ranges = append(ranges, PriceRange{Value: r, Label: catalog.PriceRangeLabel(r), Selected: r == selected})
	}

	return ranges
}

// filterQuery is the query string of f, used by the pagination links.
func filterQuery(f catalog.Filter) string {
	q := url.Values{}

	if f.Category != "" && f.Category != catalog.AllCategories {
		q.Set("category", f.Category)
	}

	for k, v := range map[string]string{"price": f.PriceRange, "q": f.Search, "sort": f.Sort} {
		if v != "" {
			q.Set(k, v)
		}
	}

	return q.Encode()
}
