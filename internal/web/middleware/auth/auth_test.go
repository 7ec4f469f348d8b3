package auth_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labrocante/brocante/internal/web/handler/dashboard"
	"github.com/labrocante/brocante/internal/web/handler/handlertest"
	"github.com/labrocante/brocante/internal/web/handler/login"
	"github.com/labrocante/brocante/internal/web/middleware/auth"
	"github.com/labrocante/brocante/internal/web/session"
)

func setup(t *testing.T) (*handlertest.Env, *http.Cookie) {
	t.Helper()

	env := handlertest.New(t)
	env.App.Use(auth.Middleware)

	ok := func(c *fiber.Ctx) error {
		if u, found := c.Locals("CurrentUser").(session.User); found {
			return c.SendString(u.Username)
		}

		return c.SendString("public")
	}
	env.App.Get("/", ok)
	env.App.Get(login.Path, ok)
	env.App.Get(dashboard.Path, ok)

	return env, env.LoginCookie(t)
}

func TestMiddleware(t *testing.T) {
	env, cookie := setup(t)

	tests := []struct {
		name         string
		path         string
		cookie       *http.Cookie
		wantStatus   int
		wantLocation string
		wantBody     string
	}{
		{name: "storefront is public", path: "/", wantStatus: http.StatusOK, wantBody: "public"},
		{name: "admin without session", path: dashboard.Path, wantStatus: http.StatusFound, wantLocation: login.Path},
		{name: "login without session", path: login.Path, wantStatus: http.StatusOK, wantBody: "public"},
		{name: "admin with session", path: dashboard.Path, cookie: cookie, wantStatus: http.StatusOK, wantBody: "admin"},
		{name: "login with session", path: login.Path, cookie: cookie, wantStatus: http.StatusFound, wantLocation: dashboard.Path},
		{
			name:         "unknown session id",
			path:         dashboard.Path,
			cookie:       &http.Cookie{Name: session.CookieName, Value: "deadbeef"},
			wantStatus:   http.StatusFound,
			wantLocation: login.Path,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookies []*http.Cookie
			if tt.cookie != nil {
				cookies = append(cookies, tt.cookie)
			}

			resp := handlertest.Get(t, env.App, tt.path, cookies...)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))
			}
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, handlertest.Body(t, resp))
			}
		})
	}
}

func TestIsAdminPage(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if auth.IsAdminPage(c) {
			return c.SendString("admin")
		}

		return c.SendString("shop")
	})

	for path, want := range map[string]string{
		"/admin":          "admin",
		"/ADMIN/products": "admin",
		"/administration": "shop",
		"/produits":       "shop",
	} {
		resp := handlertest.Get(t, app, path)
		assert.Equal(t, want, handlertest.Body(t, resp), path)
	}
}
