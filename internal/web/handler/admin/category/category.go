// Package category provides the back office category management (CRUD).
package category

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/db/models"
	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/handler/dashboard"
	"github.com/labrocante/brocante/internal/web/navigation"
)

const (
	// Path is the base path for category management.
	Path = handler.AdminPath + "/categories"

	// TemplateList is the template for listing categories.
	TemplateList = "admin/category/list"
	// TemplateForm is the template for creating/updating a category.
	TemplateForm = "admin/category/form"

	// NavPage is the navigation page key of the category screens.
	NavPage = "categories"

	// TitleCategories is the page title for the categories list.
	TitleCategories = "Catégories"
	// TitleNewCategory is the page title for creating a new category.
	TitleNewCategory = "Nouvelle catégorie"
	// TitleEditCategory is the page title for editing an existing category.
	TitleEditCategory = "Modifier la catégorie"

	// BreadcrumbNewLbl is the label for the "new" breadcrumb.
	BreadcrumbNewLbl = "Nouvelle"
	// BreadcrumbEditLbl is the label for the "edit" breadcrumb.
	BreadcrumbEditLbl = "Modifier"

	// ErrNameRequired is shown when the trimmed name is empty.
	ErrNameRequired = "Le nom de la catégorie est obligatoire"
	// ErrNameTooLong is shown when the trimmed name exceeds 50 characters.
	ErrNameTooLong = "Le nom ne peut pas dépasser 50 caractères"
	// ErrUnknownColor is shown when the color is not in the palette.
	ErrUnknownColor = "Couleur inconnue"
	// ErrDescriptionTooLong is shown when the description exceeds 500 characters.
	ErrDescriptionTooLong = "La description ne peut pas dépasser 500 caractères"
	// ErrNameTaken is shown when another category has the name.
	ErrNameTaken = "Une catégorie porte déjà ce nom"
	// ErrCategoryNotFound is shown when the category does not exist.
	ErrCategoryNotFound = "Catégorie introuvable"
	// ErrFailedLoadCategories indicates an unexpected error while listing.
	ErrFailedLoadCategories = "Erreur lors du chargement des catégories"
	// ErrFailedCreateCategory indicates the create failed.
	ErrFailedCreateCategory = "Erreur lors de la création de la catégorie"
	// ErrFailedUpdateCategory indicates the update failed.
	ErrFailedUpdateCategory = "Erreur lors de la modification de la catégorie"

	// RouteNew is the route for rendering the new category form.
	RouteNew = Path + "/new"
	// RouteEdit is the route for rendering the edit category form.
	RouteEdit = Path + "/:id/edit"
	// RouteUpdate is the route for submitting an update to an existing category.
	RouteUpdate = Path + "/:id"
	// RouteDelete is the route for deleting a category.
	RouteDelete = Path + "/:id/delete"
)

// Service provides CRUD operations for categories.
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
		return nav.AddBreadcrumb(TitleCategories, Path, true)
	}

	return nav.AddBreadcrumb(TitleCategories, Path, false).AddBreadcrumb(crumb, url, true)
}

// List shows every category with its product count and the overview figures.
func (s *Service) List(c *fiber.Ctx) error {
	return s.renderList(c, fiber.StatusOK, "", c.Query("deleted") != "")
}

func (s *Service) renderList(c *fiber.Ctx, status int, msg string, deleted bool) error {
	nav := s.nav(TitleCategories, "", "")

	stats, err := s.catalog.ListCategoriesWithStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).Render(TemplateList, fiber.Map{
			"Navigation":  nav,
			"CurrentUser": handler.CurrentUser(c),
			"Error":       ErrFailedLoadCategories,
		}, handler.AdminLayout)
	}

	return c.Status(status).Render(TemplateList, fiber.Map{
		"Navigation":  nav,
		"CurrentUser": handler.CurrentUser(c),
		"Categories":  stats,
		"Overview":    catalog.Overview(stats),
		"Deleted":     deleted,
		"Error":       msg,
	}, handler.AdminLayout)
}

// New renders empty form.
func (s *Service) New(c *fiber.Ctx) error {
	return s.renderForm(c, fiber.StatusOK, 0, catalog.CategoryInput{Color: models.DefaultCategoryColor}, "")
}

// Create handles form submission for creating a category.
func (s *Service) Create(c *fiber.Ctx) error {
	in, msg := s.parse(c)
	if msg != "" {
		return s.renderForm(c, fiber.StatusBadRequest, 0, in, msg)
	}

	category, err := s.catalog.CreateCategory(c.UserContext(), in)
	if err != nil {
		status, msg := saveError(err, ErrFailedCreateCategory)

		return s.renderForm(c, status, 0, in, msg)
	}

	log.Info().Uint64("id", category.ID).Str("name", category.Name).Msg("category created")

	return c.Redirect(Path)
}

// Edit renders edit form for a category.
func (s *Service) Edit(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(handler.ErrInvalidID)
	}

	category, err := s.catalog.GetCategory(c.UserContext(), id)
	if errors.Is(err, catalog.ErrCategoryNotFound) {
		return c.Status(fiber.StatusNotFound).SendString(ErrCategoryNotFound)
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(handler.ErrUnexpected)
	}

	return s.renderForm(c, fiber.StatusOK, id, catalog.CategoryInput{
		Name:        category.Name,
		Color:       category.Color,
		Description: category.Description,
	}, "")
}

// Update handles form submission for an existing category.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(handler.ErrInvalidID)
	}

	in, msg := s.parse(c)
	if msg != "" {
		return s.renderForm(c, fiber.StatusBadRequest, id, in, msg)
	}

	if _, err = s.catalog.UpdateCategory(c.UserContext(), id, in); err != nil {
		status, msg := saveError(err, ErrFailedUpdateCategory)

		return s.renderForm(c, status, id, in, msg)
	}

	return c.Redirect(Path)
}

// Delete deletes a category unless products still use it.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(handler.ErrInvalidID)
	}

	result := s.catalog.DeleteCategory(c.UserContext(), id)
	if !result.Success {
		log.Warn().Uint64("id", id).Str("reason", result.Message).Msg("category not deleted")

		return s.renderList(c, fiber.StatusConflict, result.Message, false)
	}

	return c.Redirect(Path + "?deleted=1")
}

// parse reads and validates the form, returning a user message on failure.
func (s *Service) parse(c *fiber.Ctx) (catalog.CategoryInput, string) {
	var in catalog.CategoryInput

	if err := c.BodyParser(&in); err != nil {
		return in, ErrNameRequired
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if err := s.validator.Struct(in); err != nil {
		field, tag, _ := handler.FieldError(err)

		switch {
		case field == "Name" && tag == "max":
			return in, ErrNameTooLong
		case field == "Color":
			return in, ErrUnknownColor
		case field == "Description":
			return in, ErrDescriptionTooLong
		default:
			return in, ErrNameRequired
		}
	}

	return in, ""
}

func saveError(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrCategoryExists):
		return fiber.StatusConflict, ErrNameTaken
	case errors.Is(err, catalog.ErrCategoryNotFound):
		return fiber.StatusNotFound, ErrCategoryNotFound
	default:
		return fiber.StatusInternalServerError, fallback
	}
}

func (s *Service) renderForm(c *fiber.Ctx, status int, id uint64, in catalog.CategoryInput, msg string) error {
	title, crumb, action, url := TitleNewCategory, BreadcrumbNewLbl, Path, RouteNew
	if id != 0 {
		action = Path + "/" + strconv.FormatUint(id, 10)
		title, crumb, url = TitleEditCategory, BreadcrumbEditLbl, action+"/edit"
	}

	return c.Status(status).Render(TemplateForm, fiber.Map{
		"Navigation":  s.nav(title, crumb, url),
		"CurrentUser": handler.CurrentUser(c),
		"Category":    in,
		"IsCreate":    id == 0,
		"Action":      action,
		"Colors":      models.CategoryColors,
		"Error":       msg,
	}, handler.AdminLayout)
}
