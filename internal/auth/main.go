package auth

import (
	"net/http"

	"timemirror.dev/internal/dtos"
	"timemirror.dev/internal/models"
)

type Service interface {
	Access(next http.HandlerFunc) http.HandlerFunc
	SignInWithEmail(signInDto *dtos.SignInDto) (*string, *string, error)
	SignOut(accessToken string) (*http.Cookie, *http.Cookie, error)
	GetCookieName(scope models.Scope) string
	CreateCookie(
		scope models.Scope,
		token string,
		expiry string,
	) (*http.Cookie, error)
}
