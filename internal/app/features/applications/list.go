// internal/app/features/applications/list.go
package applications

import (
	"context"
	"net/http"

	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/app/system/timeouts"
	"github.com/sakuramc/craftport/internal/app/system/webapi"
	"github.com/sakuramc/craftport/internal/domain/models"
)

// ServeList returns applications scoped to the caller: admins see
// everything (optionally filtered by company_id), company creators see
// their company's applications, and everyone else sees only rows matching
// their own identity.
//
// GET /applications?company_id=...
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		webapi.WriteError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	companyID := r.URL.Query().Get("company_id")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if h.Guard.IsAdmin(p) {
		apps, err := h.Ledger.ListApplications(ctx, companyID)
		if err != nil {
			webapi.WriteWorkflowError(w, h.Log, "list applications", err)
			return
		}
		webapi.WriteJSON(w, http.StatusOK, apps)
		return
	}

	if companyID != "" {
		company, err := h.Ledger.GetCompany(ctx, companyID)
		if err != nil {
			webapi.WriteWorkflowError(w, h.Log, "load company", err)
			return
		}
		if !h.Guard.CanManage(p, company) {
			webapi.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}
		apps, err := h.Ledger.ListApplications(ctx, companyID)
		if err != nil {
			webapi.WriteWorkflowError(w, h.Log, "list applications", err)
			return
		}
		webapi.WriteJSON(w, http.StatusOK, apps)
		return
	}

	// No company scope: the caller sees their own applications.
	apps, err := h.Ledger.ListApplications(ctx, "")
	if err != nil {
		webapi.WriteWorkflowError(w, h.Log, "list applications", err)
		return
	}
	own := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		if (p.UserID != "" && a.UserID == p.UserID) ||
			(p.DiscordID != "" && a.DiscordID == p.DiscordID) {
			own = append(own, a)
		}
	}
	webapi.WriteJSON(w, http.StatusOK, own)
}
