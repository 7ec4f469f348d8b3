// Package logout ends the back office session.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/handler/login"
	"github.com/labrocante/brocante/internal/web/session"
)

// Path is the logout route. It lives outside /admin so an expired session
// can still log out.
const Path = handler.RootPath + "logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	secureCookie bool
}

// Handler is the logout handler.
var Handler = Service{}

// Init registers GET and POST on Path.
func (s *Service) Init(app *fiber.App, cfg *config.Config, _ *handler.Deps) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.secureCookie = !cfg.DevMode

	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)
}

// Logout drops the stored session, expires the cookie and sends the browser
// back to the login page.
func (s *Service) Logout(c *fiber.Ctx) error {
	sessionID := c.Cookies(session.CookieName)

	var data session.Data
	if err := data.Read(sessionID); err == nil {
		log.Info().Str("user", data.User.Username).Msg("admin logged out")
	}

	if sessionID != "" {
		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	c.Cookie(s.expiredCookie())

	return c.Redirect(login.Path)
}

func (s *Service) expiredCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     session.CookieName,
		MaxAge:   -1,
		Secure:   s.secureCookie,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
