// internal/app/features/status/routes.go
package status

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the live-status routes under the base path (typically
// "/status" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{kind}", h.ServeKind)
	r.Get("/{kind}/{key}", h.ServeOne)
	r.Put("/{kind}/{key}", h.HandleReport)

	return r
}
