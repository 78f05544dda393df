package mocks

import (
	"context"
	"net/http"

	"timemirror.dev/internal/auth"
	"timemirror.dev/internal/constants"
	"timemirror.dev/internal/dtos"
	"timemirror.dev/internal/models"
)

func NewMockedAuthService(userID string) auth.Service {
	return &MockedAuthService{
		userID: userID,
	}
}

type MockedAuthService struct {
	userID string
}

func (m *MockedAuthService) Access(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := models.User{
			ID:    m.userID,
			Email: "admin@example.com",
		}

		ctx := context.WithValue(r.Context(), constants.UserContextKey, user)
		r = r.WithContext(ctx)

		next(w, r)
	}
}

func (m *MockedAuthService) SignInWithEmail(
	_ *dtos.SignInDto,
) (*string, *string, error) {
	access := "access"
	refresh := "refresh"
	return &access, &refresh, nil
}

func (m *MockedAuthService) SignOut(
	_ string,
) (*http.Cookie, *http.Cookie, error) {
	return nil, nil, nil
}

func (m *MockedAuthService) GetCookieName(scope models.Scope) string {
	if scope == models.AccessScope {
		return "accessToken"
	}

	return "refreshToken"
}

func (m *MockedAuthService) CreateCookie(
	scope models.Scope,
	token string,
	_ string,
) (*http.Cookie, error) {
	//nolint:exhaustruct //other fields are optional
	return &http.Cookie{
		Name:  m.GetCookieName(scope),
		Value: token,
	}, nil
}
