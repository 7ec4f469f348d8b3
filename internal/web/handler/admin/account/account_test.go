package account

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labrocante/brocante/internal/web/handler/handlertest"
	"github.com/labrocante/brocante/internal/web/handler/login"
	authmw "github.com/labrocante/brocante/internal/web/middleware/auth"
)

func setup(t *testing.T) (*handlertest.Env, *http.Cookie) {
	t.Helper()

	env := handlertest.New(t)
	env.App.Use(authmw.Middleware)

	var s Service
	s.Init(env.App, env.Cfg, env.Deps)

	return env, env.LoginCookie(t)
}

func TestGetRequiresSession(t *testing.T) {
	env, cookie := setup(t)

	resp := handlertest.Get(t, env.App, Path)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, login.Path, resp.Header.Get("Location"))

	resp = handlertest.Get(t, env.App, Path, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, TemplateName, handlertest.Body(t, resp))
}

func TestPasswordRejected(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing current",
			form:       url.Values{"new_password": {"longenough"}, "confirm_password": {"longenough"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMissingFields,
		},
		{
			name:       "too short",
			form:       url.Values{"current_password": {"secret"}, "new_password": {"short"}, "confirm_password": {"short"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrPasswordTooShort,
		},
		{
			name: "mismatch",
			form: url.Values{
				"current_password": {"secret"}, "new_password": {"longenough"}, "confirm_password": {"different1"},
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrPasswordMismatch,
		},
		{
			name: "wrong current",
			form: url.Values{
				"current_password": {"nope"}, "new_password": {"longenough"}, "confirm_password": {"longenough"},
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   ErrWrongPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, cookie := setup(t)

			resp := handlertest.PerformPost(t, env.App, RoutePassword, tt.form, cookie)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantBody, handlertest.Body(t, resp))

			_, err := env.Deps.Auth.Authenticate(t.Context(), "admin", "secret")
			require.NoError(t, err)
		})
	}
}

func TestPasswordChanged(t *testing.T) {
	env, cookie := setup(t)

	resp := handlertest.PerformPost(t, env.App, RoutePassword, url.Values{
		"current_password": {"secret"}, "new_password": {"longenough"}, "confirm_password": {"longenough"},
	}, cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, Path+"?changed=1", resp.Header.Get("Location"))

	_, err := env.Deps.Auth.Authenticate(t.Context(), "admin", "longenough")
	require.NoError(t, err)
}
