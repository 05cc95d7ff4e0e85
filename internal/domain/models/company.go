// internal/domain/models/company.go
package models

// CreativeStatus tracks the admin decision on a company's request for
// creative (world-edit) permission.
type CreativeStatus string

const (
	CreativeNone     CreativeStatus = "none"
	CreativePending  CreativeStatus = "pending"
	CreativeApproved CreativeStatus = "approved"
	CreativeRejected CreativeStatus = "rejected"
)

// Employment type strings stored on companies and assignments. Anything a
// company records that is not exactly EmploymentFullTime is treated as
// part-time when an assignment is created; the stored value itself is
// never rewritten.
const (
	EmploymentFullTime = "正社員"
	EmploymentPartTime = "アルバイト"
)

// Company is a recruiting company registered by a player.
//
// The creator is captured with both the internal user ID and the Discord
// ID because either may be the only identity recorded, depending on how
// the company was registered. Authorization checks both.
type Company struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Description          string         `json:"description"`
	Location             string         `json:"location"`
	EmploymentType       string         `json:"employment_type"`
	Tags                 []string       `json:"tags,omitempty"`
	MaxParticipants      int            `json:"max_participants"`
	ImageURLs            []string       `json:"image_urls,omitempty"`
	CreatedBy            string         `json:"created_by"`
	CreatedByDiscordID   string         `json:"created_by_discord_id"`
	CreatedByDiscordName string         `json:"created_by_discord_name"`
	CreativeRequired     bool           `json:"creative_required"`
	CreativeStatus       CreativeStatus `json:"creative_status"`
	Active               bool           `json:"active"`
}

// AssignmentEmploymentType resolves the employment type to record on an
// assignment for this company. Unrecognized values default to part-time.
func (c *Company) AssignmentEmploymentType() string {
	if c.EmploymentType == EmploymentFullTime {
		return EmploymentFullTime
	}
	return EmploymentPartTime
}
