// Package product provides the back office product management (CRUD).
package product

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/handler/dashboard"
	"github.com/labrocante/brocante/internal/web/navigation"
)

const (
	// Path is the base path for product management.
	Path = handler.AdminPath + "/products"

	// TemplateList is the template for listing products.
	TemplateList = "admin/product/list"
	// TemplateForm is the template for creating/updating a product.
	TemplateForm = "admin/product/form"

	// DefaultPageSize for pagination.
	DefaultPageSize = 20

	// NavPage is the navigation page key of the product screens.
	NavPage = "products"

	// TitleProducts is the page title for the products list.
	TitleProducts = "Produits"
	// TitleNewProduct is the page title for creating a new product.
	TitleNewProduct = "Nouveau produit"
	// TitleEditProduct is the page title for editing an existing product.
	TitleEditProduct = "Modifier le produit"

	// BreadcrumbNewLbl is the label for the "new" breadcrumb.
	BreadcrumbNewLbl = "Nouveau"
	// BreadcrumbEditLbl is the label for the "edit" breadcrumb.
	BreadcrumbEditLbl = "Modifier"

	// QueryPage is the query parameter name for the current page index.
	QueryPage = "page"

	// ErrMissingFields is shown when a required field is empty.
	ErrMissingFields = "Veuillez remplir tous les champs obligatoires"
	// ErrNegativePrice is shown for a price below zero.
	ErrNegativePrice = "Le prix ne peut pas être négatif"
	// ErrNegativeQuantity is shown for a quantity below zero.
	ErrNegativeQuantity = "La quantité ne peut pas être négative"
	// ErrNameTooLong is shown when the name exceeds 255 characters.
	ErrNameTooLong = "Le nom ne peut pas dépasser 255 caractères"
	// ErrDescriptionTooLong is shown when the description exceeds 5000 characters.
	ErrDescriptionTooLong = "La description ne peut pas dépasser 5000 caractères"
	// ErrImageRequired is shown when a new product comes without its main image.
	ErrImageRequired = "Veuillez sélectionner une image pour le produit"
	// ErrUnknownCategory is shown when the category does not exist anymore.
	ErrUnknownCategory = "Catégorie introuvable"
	// ErrProductNotFound is shown when the product does not exist.
	ErrProductNotFound = "Produit non trouvé"
	// ErrFailedLoadProducts indicates an unexpected error while listing.
	ErrFailedLoadProducts = "Erreur lors du chargement des produits"
	// ErrFailedSaveProduct indicates the create or update failed.
	ErrFailedSaveProduct = "Erreur lors de la sauvegarde du produit"
	// ErrFailedDeleteProduct indicates the delete failed.
	ErrFailedDeleteProduct = "Erreur lors de la suppression du produit"

	// RouteNew is the route for rendering the new product form.
	RouteNew = Path + "/new"
	// RouteEdit is the route for rendering the edit product form.
	RouteEdit = Path + "/:id/edit"
	// RouteUpdate is the route for submitting an update to an existing product.
	RouteUpdate = Path + "/:id"
	// RouteDelete is the route for deleting a product.
	RouteDelete = Path + "/:id/delete"
)

// imageFields are the upload fields, main image first.
var imageFields = []string{"image", "image2", "image3"} //nolint:gochecknoglobals

// Service provides CRUD operations for products.
type Service struct {
	handler.Service
	cfg       *config.Config
	catalog   *catalog.Repository
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) {
	if app == nil || cfg == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.catalog = deps.Catalog
	s.validator = handler.NewValidator()

	app.Get(Path, s.List)
	app.Get(RouteNew, s.New)
	app.Post(Path, s.Create)
	app.Get(RouteEdit, s.Edit)
	app.Post(RouteUpdate, s.Update)
	app.Post(RouteDelete, s.Delete)
}

func (s *Service) nav(title, crumb, url string) *navigation.Context {
	nav := navigation.NewContext(title, handler.NavSectionAdmin, NavPage).
		WithSiteTitle(s.cfg.Title).
		AddBreadcrumb(handler.BreadcrumbAdminLbl, dashboard.Path, false)

	if crumb == "" {
		return nav.AddBreadcrumb(TitleProducts, Path, true)
	}

	return nav.AddBreadcrumb(TitleProducts, Path, false).AddBreadcrumb(crumb, url, true)
}

// List shows products with search, category filter and pagination.
func (s *Service) List(c *fiber.Ctx) error {
	nav := s.nav(TitleProducts, "", "")

	var filter catalog.Filter
	if err := c.QueryParser(&filter); err != nil {
		filter = catalog.Filter{}
	}

	products, err := s.catalog.ListProducts(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).Render(TemplateList, fiber.Map{
			"Navigation":  nav,
			"CurrentUser": handler.CurrentUser(c),
			"Error":       ErrFailedLoadProducts,
		}, handler.AdminLayout)
	}

	names, err := s.catalog.ListCategoryNames(c.UserContext())
	if err != nil {
		names = []string{catalog.AllCategories}
	}

	page := handler.Paginate(filter.Apply(products), c.QueryInt(QueryPage, 1), DefaultPageSize)

	return c.Render(TemplateList, fiber.Map{
		"Navigation":  nav,
		"CurrentUser": handler.CurrentUser(c),
		"Page":        page,
		"Filter":      filter,
		"Categories":  names,
		"Total":       len(products),
		"Deleted":     c.Query("deleted") != "",
		"Error":       deleteError(c.Query("error")),
	}, handler.AdminLayout)
}

// New renders empty form.
func (s *Service) New(c *fiber.Ctx) error {
	return s.renderForm(c, fiber.StatusOK, formData{IsCreate: true}, "")
}

// Create handles form submission for creating a product.
func (s *Service) Create(c *fiber.Ctx) error {
	in, msg := s.parse(c)
	form := formData{IsCreate: true, Input: in}

	if msg != "" {
		return s.renderForm(c, fiber.StatusBadRequest, form, msg)
	}

	urls, msg := s.uploads(c)
	if msg != "" {
		return s.renderForm(c, fiber.StatusBadRequest, form, msg)
	}

	if urls[0] == "" {
		return s.renderForm(c, fiber.StatusBadRequest, form, ErrImageRequired)
	}

	in.Image, in.Image2, in.Image3 = urls[0], urls[1], urls[2]

	p, err := s.catalog.CreateProduct(c.UserContext(), in)
	if err != nil {
		s.catalog.DiscardProductImages(c.UserContext(), urls[:]...)

		return s.renderForm(c, saveStatus(err), form, saveMessage(err))
	}

	log.Info().Uint64("id", p.ID).Str("name", p.Name).Msg("product created from back office")

	return c.Redirect(Path)
}

// Edit renders edit form for a product.
func (s *Service) Edit(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(handler.ErrInvalidID)
	}

	p, err := s.catalog.GetProduct(c.UserContext(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).SendString(ErrProductNotFound)
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(handler.ErrUnexpected)
	}

	return s.renderForm(c, fiber.StatusOK, formData{ID: id, Input: inputOf(p)}, "")
}

// Update handles form submission for an existing product. Images without a
// new upload are kept unless their remove box is checked; the main image
// can only be replaced.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(handler.ErrInvalidID)
	}

	current, err := s.catalog.GetProduct(c.UserContext(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).SendString(ErrProductNotFound)
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(handler.ErrUnexpected)
	}

	in, msg := s.parse(c)
	in.Image, in.Image2, in.Image3 = current.Image, current.Image2, current.Image3

	if c.FormValue("remove_image2") != "" {
		in.Image2 = ""
	}

	if c.FormValue("remove_image3") != "" {
		in.Image3 = ""
	}

	form := formData{ID: id, Input: in}

	if msg != "" {
		return s.renderForm(c, fiber.StatusBadRequest, form, msg)
	}

	urls, msg := s.uploads(c)
	if msg != "" {
		return s.renderForm(c, fiber.StatusBadRequest, form, msg)
	}

	kept := in

	for i, dst := range []*string{&in.Image, &in.Image2, &in.Image3} {
		if urls[i] != "" {
			*dst = urls[i]
		}
	}

	if _, err = s.catalog.UpdateProduct(c.UserContext(), id, in); err != nil {
		s.catalog.DiscardProductImages(c.UserContext(), urls[:]...)
		form.Input = kept

		return s.renderForm(c, saveStatus(err), form, saveMessage(err))
	}

	return c.Redirect(Path)
}

// Delete deletes a product.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(handler.ErrInvalidID)
	}

	if err = s.catalog.DeleteProduct(c.UserContext(), id); err != nil {
		return c.Redirect(Path + "?error=delete")
	}

	return c.Redirect(Path + "?deleted=1")
}

// parse reads and validates the form, returning a user message on failure.
func (s *Service) parse(c *fiber.Ctx) (catalog.ProductInput, string) {
	var in catalog.ProductInput

	if err := c.BodyParser(&in); err != nil {
		log.Warn().Err(err).Msg("failed to parse product form")

		return in, ErrMissingFields
	}

	// image urls never come from the client
	in.Image, in.Image2, in.Image3 = "", "", ""

	if err := s.validator.Struct(in); err != nil {
		return in, validationMessage(err)
	}

	return in, ""
}

// uploads stores the submitted images and returns their URLs by field.
func (s *Service) uploads(c *fiber.Ctx) ([3]string, string) {
	var urls [3]string

	for i, field := range imageFields {
		file, err := handler.FormFile(c, field, s.cfg.Storage.MaxUploadSize)
		if err != nil {
			s.catalog.DiscardProductImages(c.UserContext(), urls[:]...)

			return [3]string{}, handler.ImageError(err)
		}

		if file == nil {
			continue
		}

		if urls[i], err = s.catalog.UploadProductImage(c.UserContext(), *file); err != nil {
			s.catalog.DiscardProductImages(c.UserContext(), urls[:]...)

			return [3]string{}, handler.ImageError(err)
		}
	}

	return urls, ""
}

func validationMessage(err error) string {
	field, tag, ok := handler.FieldError(err)
	if !ok {
		return ErrMissingFields
	}

	switch {
	case field == "Price" && tag == "gte":
		return ErrNegativePrice
	case field == "Quantity" && tag == "gte":
		return ErrNegativeQuantity
	case field == "Name" && tag == "max":
		return ErrNameTooLong
	case field == "Description" && tag == "max":
		return ErrDescriptionTooLong
	default:
		return ErrMissingFields
	}
}

func saveStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrCategoryNotFound):
		return fiber.StatusBadRequest
	case errors.Is(err, catalog.ErrProductNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func saveMessage(err error) string {
	switch {
	case errors.Is(err, catalog.ErrCategoryNotFound):
		return ErrUnknownCategory
	case errors.Is(err, catalog.ErrProductNotFound):
		return ErrProductNotFound
	default:
		return ErrFailedSaveProduct
	}
}

func deleteError(code string) string {
	if code == "" {
		return ""
	}

	return ErrFailedDeleteProduct
}
