// internal/app/features/companies/routes.go
package companies

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the Companies routes under the base path (typically
// "/companies" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)
	r.Post("/", h.HandleCreate)
	r.Patch("/{id}/creative-status", h.HandleCreativeStatus)

	return r
}
