// internal/app/features/companies/creative.go
package companies

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/app/system/timeouts"
	"github.com/sakuramc/craftport/internal/app/system/webapi"
	"github.com/sakuramc/craftport/internal/domain/models"
)

// creativeInput is the PATCH /companies/{id}/creative-status body.
type creativeInput struct {
	Status string `json:"status"`
}

// HandleCreativeStatus applies the admin decision on a creative request.
//
// PATCH /companies/{id}/creative-status
func (h *Handler) HandleCreativeStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		webapi.WriteError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	var in creativeInput
	if !webapi.DecodeBody(w, r, &in) {
		return
	}
	decision := models.CreativeStatus(in.Status)
	if decision != models.CreativeApproved && decision != models.CreativeRejected {
		webapi.WriteError(w, http.StatusBadRequest, "status must be approved or rejected")
		return
	}

	id := chi.URLParam(r, "id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	company, err := h.Engine.DecideCompanyCreative(ctx, id, decision, p)
	if err != nil {
		webapi.WriteWorkflowError(w, h.Log, "decide creative status", err)
		return
	}
	webapi.WriteJSON(w, http.StatusOK, company)
}
