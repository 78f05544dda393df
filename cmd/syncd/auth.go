package main

import (
	"net/http"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"timemirror.dev/internal/dtos"
	"timemirror.dev/internal/models"
)

func (app *Application) authRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/signin", app.signInHandler)
	mux.HandleFunc(
		"GET /api/auth/signout",
		app.Services.Auth.Access(app.signOutHandler),
	)
}

func (app *Application) signInHandler(w http.ResponseWriter, r *http.Request) {
	var signInDto dtos.SignInDto

	err := httptools.ReadJSON(r.Body, &signInDto)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	if ok, errs := signInDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	accessToken, refreshToken, err := app.Services.Auth.SignInWithEmail(&signInDto)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	accessTokenCookie, err := app.Services.Auth.CreateCookie(
		models.AccessScope,
		*accessToken,
		app.config.AccessExpiry,
	)
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
		return
	}

	http.SetCookie(w, accessTokenCookie)

	refreshTokenCookie, err := app.Services.Auth.CreateCookie(
		models.RefreshScope,
		*refreshToken,
		app.config.RefreshExpiry,
	)
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
		return
	}

	http.SetCookie(w, refreshTokenCookie)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) signOutHandler(w http.ResponseWriter, r *http.Request) {
	tokenCookie, err := r.Cookie(
		app.Services.Auth.GetCookieName(models.AccessScope),
	)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	deleteAccessCookie, deleteRefreshCookie, err := app.Services.Auth.SignOut(
		tokenCookie.Value,
	)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	if deleteAccessCookie != nil {
		http.SetCookie(w, deleteAccessCookie)
	}

	if deleteRefreshCookie != nil {
		http.SetCookie(w, deleteRefreshCookie)
	}

	w.WriteHeader(http.StatusNoContent)
}
