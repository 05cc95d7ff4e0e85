// Package applications exposes the recruitment-application API: submit,
// decide, dismiss, list. Decisions and dismissals go through the
// transition engine; this package only does transport work (decode,
// authenticate, map errors).
package applications

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/sakuramc/craftport/internal/app/policy/companypolicy"
	"github.com/sakuramc/craftport/internal/app/store/ledger"
	"github.com/sakuramc/craftport/internal/app/system/recruit"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Applications.
type Handler struct {
	Engine *recruit.Engine
	Ledger ledger.Ledger
	Guard  *companypolicy.Guard
	// RequireLogin controls whether submissions must carry a principal.
	// Some deployments accept anonymous applications with identity fields
	// taken from the body as-written.
	RequireLogin bool
	Log          *zap.Logger

	sanitize *bluemonday.Policy
}

// NewHandler constructs an Applications handler.
func NewHandler(engine *recruit.Engine, l ledger.Ledger, guard *companypolicy.Guard, requireLogin bool, logger *zap.Logger) *Handler {
	return &Handler{
		Engine:       engine,
		Ledger:       l,
		Guard:        guard,
		RequireLogin: requireLogin,
		Log:          logger,
		sanitize:     bluemonday.StrictPolicy(),
	}
}
