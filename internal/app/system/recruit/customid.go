// internal/app/system/recruit/customid.go
package recruit

import "strings"

// Button actions carried in interaction custom IDs. The full custom ID is
// "<action>:<targetID>"; the target is an application ID for apply_* and a
// company ID for creative_*.
const (
	ActionApplyApprove    = "apply_approve"
	ActionApplyReject     = "apply_reject"
	ActionCreativeApprove = "creative_approve"
	ActionCreativeReject  = "creative_reject"
)

// FormatCustomID builds a button custom ID.
func FormatCustomID(action, targetID string) string {
	return action + ":" + targetID
}

// ParseCustomID splits a custom ID into action and target. ok is false
// when the separator or either part is missing; unknown actions are the
// caller's problem (they become a user-visible error, not a parse error).
func ParseCustomID(id string) (action, targetID string, ok bool) {
	action, targetID, found := strings.Cut(id, ":")
	if !found || action == "" || targetID == "" {
		return "", "", false
	}
	return action, targetID, true
}
