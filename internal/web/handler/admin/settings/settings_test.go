package settings

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labrocante/brocante/internal/db/controller/setting"
	"github.com/labrocante/brocante/internal/db/models"
	"github.com/labrocante/brocante/internal/web/handler/handlertest"

	sitesettings "github.com/labrocante/brocante/internal/settings"
)

func setup(t *testing.T) *handlertest.Env {
	t.Helper()

	env := handlertest.New(t)

	for _, row := range sitesettings.DefaultRows() {
		require.NoError(t, setting.Ensure(env.Deps.DB, row))
	}

	env.Deps.Settings.Load(t.Context())

	var s Service
	s.Init(env.App, env.Cfg, env.Deps)

	return env
}

func TestTabs(t *testing.T) {
	rows := []models.SiteSetting{
		{Key: "a", Category: "seo"},
		{Key: "b", Category: "zeta"},
		{Key: "c", Category: "hero"},
		{Key: "d", Category: "alpha_group"},
		{Key: "e", Category: "hero"},
	}

	tabs, active := Tabs(rows, "missing")
	require.Len(t, tabs, 4)
	assert.Equal(t, "hero", active)
	assert.Equal(t, []string{"hero", "seo", "alpha_group", "zeta"},
		[]string{tabs[0].Key, tabs[1].Key, tabs[2].Key, tabs[3].Key})
	assert.Equal(t, "Page Accueil", tabs[0].Label)
	assert.Equal(t, 2, tabs[0].Count)
	assert.True(t, tabs[0].Active)
	assert.Equal(t, "alpha group", tabs[2].Label)

	_, active = Tabs(rows, "seo")
	assert.Equal(t, "seo", active)

	tabs, active = Tabs(nil, "hero")
	assert.Empty(t, tabs)
	assert.Equal(t, "hero", active)
}

func TestGetDefaultsToHero(t *testing.T) {
	env := setup(t)

	resp := handlertest.Get(t, env.App, Path)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tpl, data := env.Views.Last()
	assert.Equal(t, TemplateName, tpl)
	assert.Equal(t, DefaultTab, data["Active"])

	rows, ok := data["Settings"].([]models.SiteSetting)
	require.True(t, ok)
	require.NotEmpty(t, rows)

	for _, row := range rows {
		assert.Equal(t, sitesettings.GroupHero, row.Category)
	}
}

func TestPostText(t *testing.T) {
	env := setup(t)

	version := env.Deps.Settings.Version()

	resp := handlertest.PerformPost(t, env.App, Path+"/"+sitesettings.KeyHeroTitle,
		url.Values{"value": {"Trouvailles du jour"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, Path+"?category=hero&saved=1", resp.Header.Get("Location"))

	assert.Equal(t, "Trouvailles du jour", env.Deps.Settings.String(sitesettings.KeyHeroTitle, ""))
	assert.Greater(t, env.Deps.Settings.Version(), version)
}

func TestPostUnknownKey(t *testing.T) {
	env := setup(t)

	version := env.Deps.Settings.Version()

	resp := handlertest.PerformPost(t, env.App, Path+"/nope", url.Values{"value": {"x"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, ErrSettingNotFound, handlertest.Body(t, resp))
	assert.Equal(t, version, env.Deps.Settings.Version())
}

func TestPostJSON(t *testing.T) {
	env := setup(t)

	resp := handlertest.PerformPost(t, env.App, Path+"/"+sitesettings.KeyLocation, url.Values{"value": {"{lat:"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, ErrInvalidJSON, handlertest.Body(t, resp))

	resp = handlertest.PerformPost(t, env.App, Path+"/"+sitesettings.KeyLocation,
		url.Values{"value": {`{"lat":4.05,"lng":9.7,"address":"Douala"}`}})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	v, ok := env.Deps.Settings.Get(sitesettings.KeyLocation)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"lat": 4.05, "lng": 9.7, "address": "Douala"}, v)
}

func TestPostImage(t *testing.T) {
	env := setup(t)

	resp := handlertest.PerformMultipart(t, env.App, Path+"/"+sitesettings.KeyHeroImage, url.Values{},
		[]handlertest.Upload{{Field: "file", FileName: "hero.png", Data: handlertest.PNG}})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	got := env.Deps.Settings.String(sitesettings.KeyHeroImage, "")
	assert.True(t, strings.HasPrefix(got, handlertest.PublicURL+"/"+handlertest.SiteBucket+"/"), got)
	assert.True(t, strings.HasSuffix(got, ".png"), got)

	resp = handlertest.PerformMultipart(t, env.App, Path+"/"+sitesettings.KeyHeroImage, url.Values{},
		[]handlertest.Upload{{Field: "file", FileName: "notes.txt", Data: []byte("plain text")}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Veuillez sélectionner une image valide", handlertest.Body(t, resp))
	assert.Equal(t, got, env.Deps.Settings.String(sitesettings.KeyHeroImage, ""))
}
