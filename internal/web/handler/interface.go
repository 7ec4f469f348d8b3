package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/labrocante/brocante/internal/auth"
	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/settings"
)

// Deps are the collaborators shared by the web handlers.
type Deps struct {
	DB       *gorm.DB
	Catalog  *catalog.Repository
	Settings *settings.Cache
	Auth     *auth.LocalProvider
}

// Valid reports whether every collaborator is set.
func (d *Deps) Valid() bool {
	return d != nil && d.DB != nil && d.Catalog != nil && d.Settings != nil && d.Auth != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, deps *Deps)
}
