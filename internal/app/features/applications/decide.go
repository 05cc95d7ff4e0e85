// internal/app/features/applications/decide.go
package applications

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/app/system/timeouts"
	"github.com/sakuramc/craftport/internal/app/system/webapi"
	"github.com/sakuramc/craftport/internal/domain/models"
)

// decideInput is the PATCH /applications/{id} body.
type decideInput struct {
	Status string `json:"status"`
}

// HandleDecide approves or rejects a pending application. The caller must
// be an admin or the creator of the application's company.
//
// PATCH /applications/{id}
func (h *Handler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		webapi.WriteError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	var in decideInput
	if !webapi.DecodeBody(w, r, &in) {
		return
	}
	decision := models.ApplicationStatus(in.Status)
	if decision != models.ApplicationApproved && decision != models.ApplicationRejected {
		webapi.WriteError(w, http.StatusBadRequest, "status must be approved or rejected")
		return
	}

	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	app, err := h.Engine.DecideApplication(ctx, id, decision, p)
	if err != nil {
		webapi.WriteWorkflowError(w, h.Log, "decide application", err)
		return
	}
	webapi.WriteJSON(w, http.StatusOK, app)
}
