// internal/domain/models/application.go
package models

import "time"

// ApplicationStatus is the lifecycle state of a recruitment application.
//
// Transitions are forward-only:
//
//	pending  → approved | rejected
//	approved → dismissed
//
// rejected and dismissed are terminal. The transition engine is the only
// writer of this field after creation.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationDismissed ApplicationStatus = "dismissed"
)

// Application is one submission by a player to a company. Resubmission
// after a terminal state is a brand-new row with an independent lifecycle.
type Application struct {
	ID              string            `json:"id"`
	CompanyID       string            `json:"company_id"`
	CompanyName     string            `json:"company_name"` // denormalized from the company row
	UserID          string            `json:"user_id"`
	Email           string            `json:"email"`
	DiscordID       string            `json:"discord_id"`
	DiscordUsername string            `json:"discord_username"`
	GameTag         string            `json:"game_tag"`
	Motivation      string            `json:"motivation"`
	Status          ApplicationStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
}

// DisplayName picks the best available label for addressing the applicant
// in a notification: Discord username, then in-game tag, then a generic
// fallback.
func (a *Application) DisplayName() string {
	if a.DiscordUsername != "" {
		return a.DiscordUsername
	}
	if a.GameTag != "" {
		return a.GameTag
	}
	return "応募者"
}
