package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/handler/dashboard"
	"github.com/labrocante/brocante/internal/web/handler/login"
	"github.com/labrocante/brocante/internal/web/session"
)

// Middleware is a Fiber middleware that guards the back office.
func Middleware(c *fiber.Ctx) error {
	if !IsAdminPage(c) {
		return c.Next()
	}

	isLoginPage := IsLoginPage(c)

	// check session validity
	sessData := new(session.Data)
	if err := sessData.Read(c.Cookies(session.CookieName)); err != nil || sessData.User.ID == 0 {
		// If we're already on the login page, don't redirect (would cause loop)
		if isLoginPage {
			return c.Next()
		}

		return c.Redirect(login.Path)
	}

	// Add the current user to locals for template access
	c.Locals("CurrentUser", sessData.User)

	if isLoginPage {
		return c.Redirect(dashboard.Path)
	}

	return c.Next()
}

// IsAdminPage checks if the current request is for a back office page.
func IsAdminPage(c *fiber.Ctx) bool {
	p := strings.ToLower(c.Path())

	return p == handler.AdminPath || strings.HasPrefix(p, handler.AdminPath+"/")
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	p := strings.TrimSuffix(strings.ToLower(c.Path()), "/")

	return p == login.Path
}
