package main

import (
	"net/http"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
)

func (app *Application) syncRoutes(mux *http.ServeMux) {
	mux.HandleFunc(
		"POST /api/sync/events",
		app.Services.Auth.Access(app.runEventSyncHandler),
	)
	mux.HandleFunc(
		"POST /api/sync/events/reset",
		app.Services.Auth.Access(app.resetEventSyncHandler),
	)
	mux.HandleFunc(
		"POST /api/sync/catalog",
		app.Services.Auth.Access(app.runCatalogSyncHandler),
	)
}

func (app *Application) runEventSyncHandler(w http.ResponseWriter, r *http.Request) {
	report, err := app.Services.Sync.RunEventSync(r.Context())
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	err = httptools.WriteJSON(w, http.StatusOK, report, nil)
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
	}
}

// resetEventSyncHandler drops the stored resumption token; the next event
// sync mirrors the complete current event set.
func (app *Application) resetEventSyncHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	err := app.Services.Sync.ResetEventSync(r.Context())
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) runCatalogSyncHandler(
	w http.ResponseWriter,
	r *http.Request,
) {
	report, err := app.Services.Sync.RunCatalogSync(r.Context())
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	err = httptools.WriteJSON(w, http.StatusOK, report, nil)
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
	}
}
