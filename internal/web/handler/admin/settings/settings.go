// Package settings provides the back office editor of the site settings.
package settings

import (
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/db/controller/setting"
	"github.com/labrocante/brocante/internal/db/models"
	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/handler/dashboard"
	"github.com/labrocante/brocante/internal/web/navigation"

	sitesettings "github.com/labrocante/brocante/internal/settings"
)

const (
	// Path is the path to the site settings page.
	Path = handler.AdminPath + "/settings"
	// RouteUpdate saves the value of one setting.
	RouteUpdate = Path + "/:key"

	// TemplateName is the name of the site settings template.
	TemplateName = "admin/settings"

	// Title is the page title.
	Title = "Paramètres du site"
	// NavPage is the navigation page key.
	NavPage = "settings"

	// DefaultTab is the grouping label shown without ?category.
	DefaultTab = sitesettings.GroupHero

	// MsgSaved confirms a saved value.
	MsgSaved = "Paramètre enregistré"
	// ErrSettingNotFound is shown for an unknown key.
	ErrSettingNotFound = "Paramètre introuvable"
	// ErrInvalidJSON is shown when a json setting does not parse.
	ErrInvalidJSON = "Le JSON saisi est invalide"
	// ErrFailedLoadSettings indicates the rows could not be read.
	ErrFailedLoadSettings = "Erreur lors du chargement des paramètres"
	// ErrFailedSaveSetting indicates the update failed.
	ErrFailedSaveSetting = "Erreur lors de l'enregistrement du paramètre"
)

// groupOrder is the tab order of the known grouping labels.
var groupOrder = []string{ //nolint:gochecknoglobals
	sitesettings.GroupHero,
	sitesettings.GroupHeader,
	sitesettings.GroupProducts,
	sitesettings.GroupContact,
	sitesettings.GroupContactInfo,
	sitesettings.GroupButtons,
	sitesettings.GroupSEO,
	sitesettings.GroupLocation,
}

// Tab is one grouping label of the editor.
type Tab struct {
	Key    string
	Label  string
	URL    string
	Active bool
	Count  int
}

// Service is the site settings handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	settings *sitesettings.Cache
}

// Handler is the site settings handler.
var Handler = Service{}

// Init initializes the site settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) {
	if app == nil || cfg == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = deps.DB
	s.settings = deps.Settings

	app.Get(Path, s.Get)
	app.Post(RouteUpdate, s.Post)
}

// Get renders the settings of the selected tab.
func (s *Service) Get(c *fiber.Ctx) error {
	msg := ""
	if c.Query("saved") != "" {
		msg = MsgSaved
	}

	return s.render(c, fiber.StatusOK, c.Query("category", DefaultTab), msg, "")
}

// Post saves one setting. An uploaded "file" replaces the value of image
// settings by the public URL of the stored image.
func (s *Service) Post(c *fiber.Ctx) error {
	key := c.Params("key")

	row, err := setting.Get(s.db.WithContext(c.UserContext()), key)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return s.render(c, fiber.StatusNotFound, c.FormValue("category", DefaultTab), "", ErrSettingNotFound)
	}

	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read site setting")

		return s.render(c, fiber.StatusInternalServerError, DefaultTab, "", ErrFailedSaveSetting)
	}

	value := c.FormValue("value")

	if row.Type == models.SettingTypeJSON && !json.Valid([]byte(value)) {
		return s.render(c, fiber.StatusBadRequest, row.Category, "", ErrInvalidJSON)
	}

	file, err := handler.FormFile(c, "file", s.cfg.Storage.MaxUploadSize)
	if err != nil {
		return s.render(c, fiber.StatusBadRequest, row.Category, "", handler.ImageError(err))
	}

	if file != nil && row.Type != models.SettingTypeImage {
		file = nil
	}

	if err = s.settings.UpdateWithImage(c.UserContext(), key, value, file); err != nil {
		status, msg := fiber.StatusInternalServerError, ErrFailedSaveSetting

		switch {
		case errors.Is(err, sitesettings.ErrSettingNotFound):
			status, msg = fiber.StatusNotFound, ErrSettingNotFound
		case file != nil:
			status, msg = fiber.StatusBadRequest, handler.ImageError(err)
		}

		return s.render(c, status, row.Category, "", msg)
	}

	log.Info().Str("key", key).Msg("site setting updated")

	return c.Redirect(Path + "?category=" + url.QueryEscape(row.Category) + "&saved=1")
}

func (s *Service) render(c *fiber.Ctx, status int, active, success, msg string) error {
	nav := navigation.NewContext(Title, handler.NavSectionAdmin, NavPage).
		WithSiteTitle(s.cfg.Title).
		AddBreadcrumb(handler.BreadcrumbAdminLbl, dashboard.Path, false).
		AddBreadcrumb(Title, Path, true)

	rows, err := s.settings.All(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to list site settings")

		return c.Status(fiber.StatusInternalServerError).Render(TemplateName, fiber.Map{
			"Navigation":  nav,
			"CurrentUser": handler.CurrentUser(c),
			"Error":       ErrFailedLoadSettings,
		}, handler.AdminLayout)
	}

	tabs, active := Tabs(rows, active)

	selected := make([]models.SiteSetting, 0, len(rows))

	for _, row := range rows {
		if row.Category == active {
			selected = append(selected, row)
		}
	}

	return c.Status(status).Render(TemplateName, fiber.Map{
		"Navigation":  nav,
		"CurrentUser": handler.CurrentUser(c),
		"Tabs":        tabs,
		"Active":      active,
		"Settings":    selected,
		"Success":     success,
		"Error":       msg,
	}, handler.AdminLayout)
}

// Tabs returns one tab per grouping label found in rows, known labels first
// in their fixed order, the others A-Z. active falls back to the first tab
// when no row carries it.
func Tabs(rows []models.SiteSetting, active string) ([]Tab, string) {
	counts := map[string]int{}
	for _, row := range rows {
		counts[row.Category]++
	}

	keys := make([]string, 0, len(counts))

	for _, k := range groupOrder {
		if counts[k] > 0 {
			keys = append(keys, k)
		}
	}

	var extra []string

	for k := range counts {
		if _, known := sitesettings.GroupLabels[k]; !known {
			extra = append(extra, k)
		}
	}

	sort.Strings(extra)
	keys = append(keys, extra...)

	if counts[active] == 0 && len(keys) > 0 {
		active = keys[0]
	}

	tabs := make([]Tab, 0, len(keys))

	for _, k := range keys {
		label, ok := sitesettings.GroupLabels[k]
		if !ok {
			label = strings.ReplaceAll(k, "_", " ")
		}

		tabs = append(tabs, Tab{
			Key:    k,
			Label:  label,
			URL:    Path + "?category=" + url.QueryEscape(k),
			Active: k == active,
			Count:  counts[k],
		})
	}

	return tabs, active
}
