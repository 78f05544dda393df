package main

import (
	"net/http"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"timemirror.dev/internal/dtos"
)

func (app *Application) catalogRoutes(mux *http.ServeMux) {
	mux.HandleFunc(
		"GET /api/catalog/tree",
		app.Services.Auth.Access(app.catalogTreeHandler),
	)
	mux.HandleFunc(
		"GET /api/catalog/clients",
		app.Services.Auth.Access(app.catalogClientsHandler),
	)
	mux.HandleFunc(
		"GET /api/catalog/projects",
		app.Services.Auth.Access(app.catalogProjectsHandler),
	)
}

func catalogQuery(r *http.Request) dtos.CatalogQueryDto {
	return dtos.CatalogQueryDto{
		AsOf:  r.URL.Query().Get("asOf"),
		Scope: r.URL.Query().Get("scope"),
	}
}

func (app *Application) catalogTreeHandler(w http.ResponseWriter, r *http.Request) {
	dto := catalogQuery(r)

	if ok, errs := dto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	if dto.All() {
		tree, err := app.Services.Catalog.Tree(r.Context())
		if err != nil {
			httptools.HandleError(w, r, err)
			return
		}

		err = httptools.WriteJSON(w, http.StatusOK, tree, nil)
		if err != nil {
			httptools.ServerErrorResponse(w, r, err)
		}
		return
	}

	tree, err := app.Services.Catalog.ActiveTreeAt(
		r.Context(),
		dto.AsOfTime(time.Now().UTC()),
	)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	err = httptools.WriteJSON(w, http.StatusOK, tree, nil)
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
	}
}

func (app *Application) catalogClientsHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	dto := catalogQuery(r)

	if ok, errs := dto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	var clients []string
	var err error

	if dto.All() {
		clients, err = app.Services.Catalog.AllClients(r.Context())
	} else {
		clients, err = app.Services.Catalog.ActiveClientsAt(
			r.Context(),
			dto.AsOfTime(time.Now().UTC()),
		)
	}
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	err = httptools.WriteJSON(w, http.StatusOK, clients, nil)
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
	}
}

func (app *Application) catalogProjectsHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	dto := catalogQuery(r)

	if ok, errs := dto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	var projects []string
	var err error

	if dto.All() {
		projects, err = app.Services.Catalog.AllProjects(r.Context())
	} else {
		projects, err = app.Services.Catalog.ActiveProjectsAt(
			r.Context(),
			dto.AsOfTime(time.Now().UTC()),
		)
	}
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	err = httptools.WriteJSON(w, http.StatusOK, projects, nil)
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
	}
}
