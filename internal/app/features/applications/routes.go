// internal/app/features/applications/routes.go
package applications

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the Applications routes under the base path (typically
// "/applications" from bootstrap). Authorization is per-operation, not
// middleware: the engine's guard decides per company.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Patch("/{id}", h.HandleDecide)
	r.Post("/{id}/dismiss", h.HandleDismiss)

	return r
}
