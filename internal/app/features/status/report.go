// internal/app/features/status/report.go
package status

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/app/system/timeouts"
	"github.com/sakuramc/craftport/internal/app/system/webapi"
	"github.com/sakuramc/craftport/internal/domain/models"
	"go.uber.org/zap"
)

// HandleReport records a report, replacing any previous report for the
// same (kind, key).
//
// PUT /status/{kind}/{key}
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		webapi.WriteError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	var in reportInput
	if !webapi.DecodeBody(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.State) == "" {
		webapi.WriteError(w, http.StatusBadRequest, "state is required")
		return
	}

	st := models.LiveStatus{
		Kind:       chi.URLParam(r, "kind"),
		Key:        chi.URLParam(r, "key"),
		State:      strings.TrimSpace(in.State),
		Detail:     strings.TrimSpace(in.Detail),
		ReportedBy: principalLabel(p),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Upsert(ctx, st); err != nil {
		h.Log.Error("upsert live status", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	webapi.WriteJSON(w, http.StatusOK, st)
}
