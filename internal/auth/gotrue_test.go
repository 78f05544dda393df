package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"timemirror.dev/internal/auth"
	"timemirror.dev/internal/constants"
	"timemirror.dev/internal/dtos"
	"timemirror.dev/internal/mocks"
	"timemirror.dev/internal/models"
)

func newTestService() auth.Service {
	return auth.New(mocks.NewMockedGoTrueClient(), false, "1h", "7d")
}

func TestSignInWithEmail(t *testing.T) {
	service := newTestService()

	accessToken, refreshToken, err := service.SignInWithEmail(&dtos.SignInDto{
		Email:    "admin@example.com",
		Password: "password",
	})

	require.NoError(t, err)
	assert.Equal(t, "access", *accessToken)
	assert.Equal(t, "refresh", *refreshToken)
}

func TestCreateCookie(t *testing.T) {
	service := newTestService()

	cookie, err := service.CreateCookie(models.AccessScope, "access", "1h")

	require.NoError(t, err)
	assert.Equal(t, "accessToken", cookie.Name)
	assert.Equal(t, "access", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
}

func TestCreateCookieBadExpiry(t *testing.T) {
	service := newTestService()

	_, err := service.CreateCookie(models.RefreshScope, "refresh", "soon")

	require.Error(t, err)
}

func TestSignOut(t *testing.T) {
	service := newTestService()

	deleteAccess, deleteRefresh, err := service.SignOut("access")

	require.NoError(t, err)
	assert.Equal(t, -1, deleteAccess.MaxAge)
	assert.Equal(t, -1, deleteRefresh.MaxAge)
}

func userEchoHandler(t *testing.T) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(constants.UserContextKey).(models.User)
		require.True(t, ok)
		assert.Equal(t, "user@example.com", user.Email)

		w.WriteHeader(http.StatusOK)
	}
}

func TestAccessWithValidToken(t *testing.T) {
	service := newTestService()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "access"})

	rr := httptest.NewRecorder()
	service.Access(userEchoHandler(t)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAccessWithoutCookie(t *testing.T) {
	service := newTestService()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rr := httptest.NewRecorder()
	service.Access(userEchoHandler(t)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAccessRefreshesExpiredToken(t *testing.T) {
	service := newTestService()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "expired"})
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh"})

	rr := httptest.NewRecorder()
	service.Access(userEchoHandler(t)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, "accessToken", cookies[0].Name)
	assert.Equal(t, "refreshToken", cookies[1].Name)
}

func TestAccessStaleTokensWithoutRefresh(t *testing.T) {
	service := newTestService()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "expired"})

	rr := httptest.NewRecorder()
	service.Access(userEchoHandler(t)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
