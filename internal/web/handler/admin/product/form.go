package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/web/handler"
)

// formData is what the product form template renders.
type formData struct {
	ID       uint64
	IsCreate bool
	Input    catalog.ProductInput
}

// Action is the URL the form posts to.
func (f formData) Action() string {
	if f.IsCreate {
		return Path
	}

	return Path + "/" + strconv.FormatUint(f.ID, 10)
}

func inputOf(p *catalog.Product) catalog.ProductInput {
	return catalog.ProductInput{
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Image2:      p.Image2,
		Image3:      p.Image3,
	}
}

func (s *Service) renderForm(c *fiber.Ctx, status int, form formData, msg string) error {
	title, crumb, url := TitleNewProduct, BreadcrumbNewLbl, RouteNew
	if !form.IsCreate {
		title, crumb, url = TitleEditProduct, BreadcrumbEditLbl, form.Action()+"/edit"
	}

	names, err := s.catalog.ListCategoryNames(c.UserContext())
	if err != nil {
		names = []string{catalog.AllCategories}
	}

	return c.Status(status).Render(TemplateForm, fiber.Map{
		"Navigation":  s.nav(title, crumb, url),
		"CurrentUser": handler.CurrentUser(c),
		"Form":        form,
		"Categories":  names[1:],
		"Error":       msg,
	}, handler.AdminLayout)
}
