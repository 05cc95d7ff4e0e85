// internal/app/features/companies/create.go
package companies

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/app/system/timeouts"
	"github.com/sakuramc/craftport/internal/app/system/webapi"
	"github.com/sakuramc/craftport/internal/domain/models"
)

// createInput is the POST /companies body.
type createInput struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Location         string   `json:"location"`
	EmploymentType   string   `json:"employment_type"`
	Tags             []string `json:"tags"`
	MaxParticipants  int      `json:"max_participants"`
	ImageURLs        []string `json:"image_urls"`
	CreativeRequired bool     `json:"creative_required"`
	DiscordName      string   `json:"discord_name"`
}

// HandleCreate registers a company. The creator identity is taken from
// the authenticated principal, never from the body; a creative-permission
// request starts the creative sub-machine at pending and pings the admin
// channel.
//
// POST /companies
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		webapi.WriteError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	var in createInput
	if !webapi.DecodeBody(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		webapi.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	c := &models.Company{
		ID:                   uuid.NewString(),
		Name:                 strings.TrimSpace(in.Name),
		Description:          h.sanitize.Sanitize(strings.TrimSpace(in.Description)),
		Location:             strings.TrimSpace(in.Location),
		EmploymentType:       strings.TrimSpace(in.EmploymentType),
		Tags:                 in.Tags,
		MaxParticipants:      in.MaxParticipants,
		ImageURLs:            in.ImageURLs,
		CreatedBy:            p.UserID,
		CreatedByDiscordID:   p.DiscordID,
		CreatedByDiscordName: strings.TrimSpace(in.DiscordName),
		CreativeRequired:     in.CreativeRequired,
		CreativeStatus:       models.CreativeNone,
		Active:               true,
	}
	if c.CreatedByDiscordName == "" {
		c.CreatedByDiscordName = p.Name
	}
	if c.CreativeRequired {
		c.CreativeStatus = models.CreativePending
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Ledger.AppendCompany(ctx, c); err != nil {
		webapi.WriteWorkflowError(w, h.Log, "append company", err)
		return
	}

	if c.CreativeRequired {
		h.Dispatcher.CreativeRequested(ctx, c)
	}

	webapi.WriteJSON(w, http.StatusCreated, c)
}
