package daemon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/labrocante/brocante/internal/auth"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/db/controller/setting"
	"github.com/labrocante/brocante/internal/settings"
)

// seed creates the admin account of an empty user table and the missing
// site settings. Existing rows are never changed.
func seed(ctx context.Context, cfg *config.Config, db *gorm.DB, provider *auth.LocalProvider) error {
	created, err := provider.EnsureUser(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	if created {
		log.Warn().Str("username", cfg.Admin.Username).Msg("admin account created, change its password")
	}

	for _, row := range settings.DefaultRows() {
		if err = setting.Ensure(db.WithContext(ctx), row); err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", row.Key, err)
		}
	}

	return nil
}
