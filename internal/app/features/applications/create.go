// internal/app/features/applications/create.go
package applications

import (
	"context"
	"net/http"
	"strings"

	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/app/system/timeouts"
	"github.com/sakuramc/craftport/internal/app/system/webapi"
	"github.com/sakuramc/craftport/internal/domain/models"
)

// createInput is the POST /applications body.
type createInput struct {
	CompanyID       string `json:"company_id"`
	UserID          string `json:"user_id"`
	Email           string `json:"email"`
	DiscordID       string `json:"discord_id"`
	DiscordUsername string `json:"discord_username"`
	GameTag         string `json:"game_tag"`
	Motivation      string `json:"motivation"`
}

// HandleCreate processes an application submission. Creation seeds the
// state machine but is not itself a transition; the new row is always
// pending.
//
// POST /applications
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if !webapi.DecodeBody(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.CompanyID) == "" {
		webapi.WriteError(w, http.StatusBadRequest, "company_id is required")
		return
	}

	p, signedIn := auth.CurrentPrincipal(r)
	if h.RequireLogin && !signedIn {
		webapi.WriteError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	a := &models.Application{
		CompanyID:       strings.TrimSpace(in.CompanyID),
		UserID:          strings.TrimSpace(in.UserID),
		Email:           strings.TrimSpace(in.Email),
		DiscordID:       strings.TrimSpace(in.DiscordID),
		DiscordUsername: strings.TrimSpace(in.DiscordUsername),
		GameTag:         strings.TrimSpace(in.GameTag),
		Motivation:      h.sanitize.Sanitize(strings.TrimSpace(in.Motivation)),
	}
	// A signed-in applicant's resolved identity wins over the body.
	if signedIn {
		if p.UserID != "" {
			a.UserID = p.UserID
		}
		if p.Email != "" {
			a.Email = p.Email
		}
		if p.DiscordID != "" {
			a.DiscordID = p.DiscordID
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Engine.SubmitApplication(ctx, a); err != nil {
		webapi.WriteWorkflowError(w, h.Log, "submit application", err)
		return
	}

	webapi.WriteJSON(w, http.StatusCreated, a)
}
