// Package media provides the back office media library of the buckets.
package media

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/handler/dashboard"
	"github.com/labrocante/brocante/internal/web/navigation"
)

const (
	// Path is the path to the media library.
	Path = handler.AdminPath + "/media"
	// RouteDelete removes one file.
	RouteDelete = Path + "/delete"

	// TemplateName is the name of the media library template.
	TemplateName = "admin/media"

	// Title is the page title.
	Title = "Médiathèque"
	// NavPage is the navigation page key.
	NavPage = "media"

	// MsgDeleted confirms a removed file.
	MsgDeleted = "Fichier supprimé"
	// ErrUnknownBucket is shown for a bucket outside the configured ones.
	ErrUnknownBucket = "Bucket inconnu"
	// ErrFailedLoadFiles indicates the bucket could not be listed.
	ErrFailedLoadFiles = "Erreur lors du chargement des images. Vérifiez que le bucket existe."
	// ErrFailedDeleteFile indicates the file could not be removed.
	ErrFailedDeleteFile = "Erreur: Impossible de supprimer le fichier"
	// ErrFileNotFound is shown when nothing matched the name.
	ErrFileNotFound = "Fichier introuvable"
)

// Bucket is a selectable bucket of the library.
type Bucket struct {
	Name   string
	Label  string
	URL    string
	Active bool
}

// Service is the media library handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	catalog *catalog.Repository
}

// Handler is the media library handler.
var Handler = Service{}

// Init initializes the media library handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) {
	if app == nil || cfg == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.catalog = deps.Catalog

	app.Get(Path, s.Get)
	app.Post(RouteDelete, s.Delete)
}

// Get lists the files of the selected bucket, the product bucket by default.
func (s *Service) Get(c *fiber.Ctx) error {
	bucket := c.Query("bucket", s.cfg.Storage.ProductBucket)
	if !s.known(bucket) {
		return s.render(c, fiber.StatusBadRequest, s.cfg.Storage.ProductBucket, "", ErrUnknownBucket)
	}

	msg := ""
	if c.Query("deleted") != "" {
		msg = MsgDeleted
	}

	return s.render(c, fiber.StatusOK, bucket, msg, "")
}

// Delete removes the file "name" of "bucket".
func (s *Service) Delete(c *fiber.Ctx) error {
	bucket, name := c.FormValue("bucket"), c.FormValue("name")
	if !s.known(bucket) {
		return s.render(c, fiber.StatusBadRequest, s.cfg.Storage.ProductBucket, "", ErrUnknownBucket)
	}

	if err := s.catalog.DeleteBucketFile(c.UserContext(), name, bucket); err != nil {
		if errors.Is(err, catalog.ErrFileNotFound) {
			return s.render(c, fiber.StatusNotFound, bucket, "", ErrFileNotFound)
		}

		return s.render(c, fiber.StatusInternalServerError, bucket, "", ErrFailedDeleteFile)
	}

	log.Info().Str("bucket", bucket).Str("object", name).Msg("media file deleted")

	return c.Redirect(Path + "?bucket=" + url.QueryEscape(bucket) + "&deleted=1")
}

func (s *Service) known(bucket string) bool {
	return bucket == s.cfg.Storage.ProductBucket || bucket == s.cfg.Storage.SiteBucket
}

func (s *Service) buckets(active string) []Bucket {
	return []Bucket{
		{
			Name:   s.cfg.Storage.ProductBucket,
			Label:  "Images produits",
			URL:    Path + "?bucket=" + url.QueryEscape(s.cfg.Storage.ProductBucket),
			Active: active == s.cfg.Storage.ProductBucket,
		},
		{
			Name:   s.cfg.Storage.SiteBucket,
			Label:  "Images du site",
			URL:    Path + "?bucket=" + url.QueryEscape(s.cfg.Storage.SiteBucket),
			Active: active == s.cfg.Storage.SiteBucket,
		},
	}
}

func (s *Service) render(c *fiber.Ctx, status int, bucket, success, msg string) error {
	nav := navigation.NewContext(Title, handler.NavSectionAdmin, NavPage).
		WithSiteTitle(s.cfg.Title).
		AddBreadcrumb(handler.BreadcrumbAdminLbl, dashboard.Path, false).
		AddBreadcrumb(Title, Path, true)

	data := fiber.Map{
		"Navigation":  nav,
		"CurrentUser": handler.CurrentUser(c),
		"Buckets":     s.buckets(bucket),
		"Bucket":      bucket,
		"Success":     success,
		"Error":       msg,
	}

	files, err := s.catalog.ListBucketFiles(c.UserContext(), bucket)
	if err != nil {
		data["Error"] = ErrFailedLoadFiles

		return c.Status(fiber.StatusInternalServerError).Render(TemplateName, data, handler.AdminLayout)
	}

	data["Files"] = files

	return c.Status(status).Render(TemplateName, data, handler.AdminLayout)
}

// FormatSize renders a byte count the way the library shows it.
func FormatSize(n int64) string {
	const k = 1024

	switch {
	case n < k:
		return fmt.Sprintf("%d Bytes", n)
	case n < k*k:
		return fmt.Sprintf("%.2f KB", float64(n)/k)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(k*k))
	}
}
