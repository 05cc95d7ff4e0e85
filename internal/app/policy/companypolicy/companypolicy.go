// Package companypolicy provides authorization for recruitment and
// creative-permission decisions.
//
// Authorization rules:
//   - Admins (allow-listed email or Discord ID) may perform any action
//   - The company creator may manage their own company's applications;
//     creator identity is matched on the internal user ID OR the Discord
//     ID, because either may be the one that was captured at registration
//   - An unresolved principal is never authorized
//
// Both control surfaces (the HTTP API and the signed webhook) resolve
// their own principal and run these checks per request; neither trusts a
// decision made on the other path.
package companypolicy

import (
	"strings"

	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/domain/models"
)

// Guard holds the admin allowlists.
type Guard struct {
	adminEmails     map[string]struct{}
	adminDiscordIDs map[string]struct{}
}

// NewGuard builds a Guard from comma-separated allowlists (the config
// format). Entries are trimmed; emails are matched case-insensitively.
func NewGuard(adminEmails, adminDiscordIDs string) *Guard {
	g := &Guard{
		adminEmails:     make(map[string]struct{}),
		adminDiscordIDs: make(map[string]struct{}),
	}
	for _, e := range strings.Split(adminEmails, ",") {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			g.adminEmails[e] = struct{}{}
		}
	}
	for _, id := range strings.Split(adminDiscordIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			g.adminDiscordIDs[id] = struct{}{}
		}
	}
	return g
}

// IsAdmin reports whether the principal is on an admin allowlist.
func (g *Guard) IsAdmin(p auth.Principal) bool {
	if !p.Resolved() {
		return false
	}
	if p.Email != "" {
		if _, ok := g.adminEmails[strings.ToLower(p.Email)]; ok {
			return true
		}
	}
	if p.DiscordID != "" {
		if _, ok := g.adminDiscordIDs[p.DiscordID]; ok {
			return true
		}
	}
	return false
}

// CanManage reports whether the principal may decide applications for (or
// otherwise manage) the given company.
func (g *Guard) CanManage(p auth.Principal, c *models.Company) bool {
	if !p.Resolved() || c == nil {
		return false
	}
	if g.IsAdmin(p) {
		return true
	}
	if p.UserID != "" && p.UserID == c.CreatedBy {
		return true
	}
	if p.DiscordID != "" && p.DiscordID == c.CreatedByDiscordID {
		return true
	}
	return false
}
