// internal/app/features/applications/dismiss.go
package applications

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/app/system/timeouts"
	"github.com/sakuramc/craftport/internal/app/system/webapi"
)

// dismissInput is the POST /applications/{id}/dismiss body.
type dismissInput struct {
	Reason string `json:"reason"`
}

// HandleDismiss removes an approved employee. The reason is mandatory;
// it is delivered verbatim to the dismissed player.
//
// POST /applications/{id}/dismiss
func (h *Handler) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		webapi.WriteError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	var in dismissInput
	if !webapi.DecodeBody(w, r, &in) {
		return
	}

	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	app, err := h.Engine.DismissApplication(ctx, id, in.Reason, p)
	if err != nil {
		webapi.WriteWorkflowError(w, h.Log, "dismiss application", err)
		return
	}
	webapi.WriteJSON(w, http.StatusOK, app)
}
