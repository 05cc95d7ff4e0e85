// internal/app/features/status/view.go
package status

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakuramc/craftport/internal/app/system/timeouts"
	"github.com/sakuramc/craftport/internal/app/system/webapi"
	"github.com/sakuramc/craftport/internal/domain/models"
	"go.uber.org/zap"
)

// ServeKind lists all current reports of one kind.
//
// GET /status/{kind}
func (h *Handler) ServeKind(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	reports, err := h.Store.ListByKind(ctx, kind)
	if err != nil {
		h.Log.Error("list live status", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if reports == nil {
		reports = []models.LiveStatus{}
	}
	webapi.WriteJSON(w, http.StatusOK, reports)
}

// ServeOne returns the latest report for (kind, key).
//
// GET /status/{kind}/{key}
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	key := chi.URLParam(r, "key")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := h.Store.Get(ctx, kind, key)
	if err != nil {
		h.Log.Error("get live status", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if st == nil {
		webapi.WriteError(w, http.StatusNotFound, "no report")
		return
	}
	webapi.WriteJSON(w, http.StatusOK, st)
}
