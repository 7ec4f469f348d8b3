// Package account provides the page where the signed in admin manages
// their own account.
package account

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/auth"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/handler/dashboard"
	"github.com/labrocante/brocante/internal/web/handler/login"
	"github.com/labrocante/brocante/internal/web/navigation"
	"github.com/labrocante/brocante/internal/web/session"
)

const (
	// Path is the account page.
	Path = handler.AdminPath + "/account"
	// RoutePassword changes the password.
	RoutePassword = Path + "/password"

	// TemplateName is the name of the account template.
	TemplateName = "admin/account"

	// Title is the page title.
	Title = "Mon compte"
	// NavPage is the navigation page key.
	NavPage = "account"

	// MinPasswordLength is the shortest accepted new password.
	MinPasswordLength = 8

	// MsgPasswordChanged confirms the new password.
	MsgPasswordChanged = "Mot de passe modifié"
	// ErrMissingFields is shown when a field is empty.
	ErrMissingFields = "Veuillez remplir tous les champs"
	// ErrPasswordTooShort is shown for a short new password.
	ErrPasswordTooShort = "Le nouveau mot de passe doit contenir au moins 8 caractères"
	// ErrPasswordMismatch is shown when the confirmation differs.
	ErrPasswordMismatch = "Les mots de passe ne correspondent pas"
	// ErrWrongPassword is shown when the current password is wrong.
	ErrWrongPassword = "Mot de passe actuel incorrect"
)

// PasswordChange is the password form.
type PasswordChange struct {
	Current string `form:"current_password" validate:"required"`
	New     string `form:"new_password"     validate:"required,min=8"`
	Confirm string `form:"confirm_password" validate:"required,eqfield=New"`
}

// Service is the account handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	auth      *auth.LocalProvider
	validator *validator.Validate
}

// Handler is the account handler.
var Handler = Service{}

// Init initializes the account handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) {
	if app == nil || cfg == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.auth = deps.Auth
	s.validator = handler.NewValidator()

	app.Get(Path, s.Get)
	app.Post(RoutePassword, s.Password)
}

// Get renders the account page.
func (s *Service) Get(c *fiber.Ctx) error {
	if _, ok := c.Locals("CurrentUser").(session.User); !ok {
		return c.Redirect(login.Path)
	}

	msg := ""
	if c.Query("changed") != "" {
		msg = MsgPasswordChanged
	}

	return s.render(c, fiber.StatusOK, msg, "")
}

// Password changes the password of the signed in admin.
func (s *Service) Password(c *fiber.Ctx) error {
	user, ok := c.Locals("CurrentUser").(session.User)
	if !ok {
		return c.Redirect(login.Path)
	}

	var in PasswordChange
	if err := c.BodyParser(&in); err != nil {
		return s.render(c, fiber.StatusBadRequest, "", ErrMissingFields)
	}

	if err := s.validator.Struct(in); err != nil {
		field, tag, _ := handler.FieldError(err)

		switch {
		case tag == "required":
			return s.render(c, fiber.StatusBadRequest, "", ErrMissingFields)
		case field == "New":
			return s.render(c, fiber.StatusBadRequest, "", ErrPasswordTooShort)
		default:
			return s.render(c, fiber.StatusBadRequest, "", ErrPasswordMismatch)
		}
	}

	if err := s.auth.ChangePassword(c.UserContext(), user.ID, in.Current, in.New); err != nil {
		if errors.Is(err, auth.ErrInvalidOldPassword) {
			return s.render(c, fiber.StatusUnauthorized, "", ErrWrongPassword)
		}

		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to change password")

		return s.render(c, fiber.StatusInternalServerError, "", handler.ErrUnexpected)
	}

	log.Info().Uint64("user_id", user.ID).Str("username", user.Username).Msg("password changed")

	return c.Redirect(Path + "?changed=1")
}

func (s *Service) render(c *fiber.Ctx, status int, success, msg string) error {
	nav := navigation.NewContext(Title, handler.NavSectionAdmin, NavPage).
		WithSiteTitle(s.cfg.Title).
		AddBreadcrumb(handler.BreadcrumbAdminLbl, dashboard.Path, false).
		AddBreadcrumb(Title, Path, true)

	return c.Status(status).Render(TemplateName, fiber.Map{
		"Navigation":        nav,
		"CurrentUser":       handler.CurrentUser(c),
		"MinPasswordLength": MinPasswordLength,
		"Success":           success,
		"Error":             msg,
	}, handler.AdminLayout)
}
