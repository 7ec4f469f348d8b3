package home

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/db/controller/setting"
	"github.com/labrocante/brocante/internal/db/models"
	"github.com/labrocante/brocante/internal/settings"
	"github.com/labrocante/brocante/internal/web/handler"
	"github.com/labrocante/brocante/internal/web/handler/handlertest"
)

func setup(t *testing.T) *handlertest.Env {
	t.Helper()

	env := handlertest.New(t)

	var s Service
	s.Init(env.App, env.Cfg, env.Deps)

	return env
}

func TestGetFeaturedAndCategories(t *testing.T) {
	env := setup(t)
	ctx := t.Context()

	_, err := env.Deps.Catalog.CreateCategory(ctx, catalog.CategoryInput{Name: "Meubles", Color: "marron"})
	require.NoError(t, err)

	for _, name := range []string{"Buffet", "Chaise", "Table", "Armoire"} {
		_, err = env.Deps.Catalog.CreateProduct(ctx, catalog.ProductInput{Name: name, Category: "Meubles", Image: "x"})
		require.NoError(t, err)
	}

	resp := handlertest.Get(t, env.App, Path)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tpl, data := env.Views.Last()
	assert.Equal(t, TemplateName, tpl)

	featured, ok := data["Featured"].([]catalog.Product)
	require.True(t, ok)
	assert.Len(t, featured, FeaturedCount)

	categories, ok := data["Categories"].([]catalog.CategoryStats)
	require.True(t, ok)
	require.Len(t, categories, 1)
	assert.Equal(t, int64(4), categories[0].ProductCount)

	site, ok := data["Site"].(handler.Site)
	require.True(t, ok)
	assert.NotEmpty(t, site.Title)
}

func TestHeroBackground(t *testing.T) {
	env := setup(t)

	hero := NewHero(env.Deps.Settings)
	assert.Equal(t, HeroGradient, string(hero.Background))

	require.NoError(t, setting.Create(env.Deps.DB, &models.SiteSetting{
		Key: settings.KeyHeroImage, Value: "http://localhost/storage/site-images/a'b.png", Type: models.SettingTypeImage,
	}))
	env.Deps.Settings.Load(t.Context())

	hero = NewHero(env.Deps.Settings)
	assert.Equal(t, "url('http://localhost/storage/site-images/a%27b.png')", string(hero.Background))
}
