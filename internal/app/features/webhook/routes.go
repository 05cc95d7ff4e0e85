// internal/app/features/webhook/routes.go
package webhook

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the Webhook routes under the base path (typically
// "/webhooks" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/interactions", h.HandleInteraction)

	return r
}
