// internal/app/features/companies/list.go
package companies

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakuramc/craftport/internal/app/store/ledger"
	"github.com/sakuramc/craftport/internal/app/system/timeouts"
	"github.com/sakuramc/craftport/internal/app/system/webapi"
	"github.com/sakuramc/craftport/internal/domain/models"
	"go.uber.org/zap"
)

// ServeList returns all companies. With ?active=true only companies still
// open for applications are returned.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	all, err := h.Ledger.ListCompanies(ctx)
	if err != nil {
		h.Log.Error("list companies", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if r.URL.Query().Get("active") == "true" {
		active := make([]models.Company, 0, len(all))
		for _, c := range all {
			if c.Active {
				active = append(active, c)
			}
		}
		all = active
	}
	webapi.WriteJSON(w, http.StatusOK, all)
}

// ServeView returns a single company by id.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.Ledger.GetCompany(ctx, id)
	if err != nil {
		if err == ledger.ErrNotFound {
			webapi.WriteError(w, http.StatusNotFound, "company not found")
			return
		}
		h.Log.Error("get company", zap.Error(err))
		webapi.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	webapi.WriteJSON(w, http.StatusOK, c)
}
