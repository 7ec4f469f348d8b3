package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/auth"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = handler.AdminPath + "/login"

	// TemplateName is the name of the login template.
	TemplateName = "admin/login"

	// RedirectPath is where a successful login goes.
	RedirectPath = handler.AdminPath + "/dashboard"
)

// Credentials is the login form.
type Credentials struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	provider *auth.LocalProvider
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) {
	if app == nil || cfg == nil || deps == nil || deps.Auth == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.provider = deps.Auth

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
	})
}

func (s *Service) fail(c *fiber.Ctx, status int, username, msg string) error {
	return c.Status(status).Render(TemplateName, fiber.Map{
		"Title":    s.cfg.Title,
		"Username": username,
		"error":    msg,
	})
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	creds := new(Credentials)

	if err := c.BodyParser(creds); err != nil {
		return s.fail(c, fiber.StatusBadRequest, "", MsgInvalidFormData)
	}

	if creds.Username == "" || creds.Password == "" {
		return s.fail(c, fiber.StatusBadRequest, creds.Username, MsgMissingFields)
	}

	user, err := s.provider.Authenticate(c.UserContext(), creds.Username, creds.Password)

	switch {
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrEmptyCredentials):
		log.Warn().Str("username", creds.Username).Str("ip", c.IP()).Msg("failed admin login")

		return s.fail(c, fiber.StatusUnauthorized, creds.Username, MsgInvalidCredentials)
	case errors.Is(err, auth.ErrUserAccountDisabled):
		return s.fail(c, fiber.StatusForbidden, creds.Username, MsgAccountDisabled)
	case err != nil:
		log.Error().Err(err).Msg("failed to authenticate")

		return s.fail(c, fiber.StatusInternalServerError, creds.Username, MsgUnexpected)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")

		return s.fail(c, fiber.StatusInternalServerError, creds.Username, MsgUnexpected)
	}

	if err = session.NewData(user).Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return s.fail(c, fiber.StatusInternalServerError, creds.Username, MsgUnexpected)
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	log.Info().Str("username", user.Username).Msg("admin logged in")

	return c.Redirect(RedirectPath)
}
