package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/settings"
	"github.com/labrocante/brocante/internal/web/navigation"
)

// Site is the settings driven part of every storefront page.
type Site struct {
	Title    string
	Email    string
	Phone    string
	Address  string
	Footer   string
	Whatsapp string
	Logo     string
	Year     int
	Settings map[string]any
}

// NewSite reads the current settings snapshot.
func NewSite(cache *settings.Cache) Site {
	return Site{
		Title:    cache.String(settings.KeySiteName, cache.String(settings.KeySiteTitle, "La Brocante")),
		Email:    cache.String(settings.KeyContactEmail, ""),
		Phone:    cache.String(settings.KeyContactPhone, ""),
		Address:  cache.String(settings.KeyContactAddress, ""),
		Footer:   cache.String(settings.KeyFooterText, ""),
		Whatsapp: cache.String(settings.KeyWhatsappNumber, catalog.DefaultWhatsappNumber),
		Logo:     cache.String(settings.KeySiteLogo, ""),
		Year:     time.Now().Year(),
		Settings: cache.Snapshot(),
	}
}

// CurrentUser returns the session user set by the auth middleware, if any.
func CurrentUser(c *fiber.Ctx) any {
	return c.Locals("CurrentUser")
}

// ShopNav returns the navigation of a storefront page.
func ShopNav(site Site, title, page string) *navigation.Context {
	nav := navigation.NewContext(title, NavSectionShop, page).WithSiteTitle(site.Title)
	if page == NavPageHome {
		return nav
	}

	return nav.AddBreadcrumb(BreadcrumbHomeLbl, RootPath, false)
}
