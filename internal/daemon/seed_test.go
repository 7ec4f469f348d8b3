package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labrocante/brocante/internal/auth"
	"github.com/labrocante/brocante/internal/config"
	"github.com/labrocante/brocante/internal/db/controller/setting"
	"github.com/labrocante/brocante/internal/objectstore"
	"github.com/labrocante/brocante/internal/settings"
	"github.com/labrocante/brocante/internal/web/handler/handlertest"
)

func TestSeed(t *testing.T) {
	gdb := handlertest.NewDB(t)
	provider := auth.NewLocalProvider(gdb)
	cfg := &config.Config{Admin: config.Admin{Username: "admin", Email: "admin@labrocante.fr", Password: "changeme"}}

	require.NoError(t, seed(t.Context(), cfg, gdb, provider))

	_, err := provider.Authenticate(t.Context(), "admin", "changeme")
	require.NoError(t, err)

	require.NoError(t, setting.UpdateValue(gdb, settings.KeyHeroTitle, "Modifié"))

	// a second start keeps edited values and the existing account
	cfg.Admin.Password = "other"
	require.NoError(t, seed(t.Context(), cfg, gdb, provider))

	_, err = provider.Authenticate(t.Context(), "admin", "changeme")
	require.NoError(t, err)

	rows, err := setting.GetAll(gdb)
	require.NoError(t, err)
	assert.Len(t, rows, len(settings.DefaultRows()))

	row, err := setting.Get(gdb, settings.KeyHeroTitle)
	require.NoError(t, err)
	assert.Equal(t, "Modifié", row.Value)
}

func TestNewDeps(t *testing.T) {
	cfg := handlertest.NewConfig()
	gdb := handlertest.NewDB(t)

	deps := NewDeps(cfg, gdb, objectstore.NewMemory(cfg.Storage.PublicURL))
	assert.True(t, deps.Valid())
}

func TestSessionStorageSQLite(t *testing.T) {
	cfg := &config.Config{DB: config.DB{GormEngine: config.EngineSQLite}}
	assert.Nil(t, sessionStorage(cfg))
}
