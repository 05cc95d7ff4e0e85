// Package companies exposes the company API: register, list, view, and
// the admin-only creative-permission decision.
package companies

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/sakuramc/craftport/internal/app/policy/companypolicy"
	"github.com/sakuramc/craftport/internal/app/store/ledger"
	"github.com/sakuramc/craftport/internal/app/system/recruit"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Companies.
type Handler struct {
	Engine     *recruit.Engine
	Dispatcher *recruit.Dispatcher
	Ledger     ledger.Ledger
	Guard      *companypolicy.Guard
	Log        *zap.Logger

	sanitize *bluemonday.Policy
}

// NewHandler constructs a Companies handler.
func NewHandler(engine *recruit.Engine, d *recruit.Dispatcher, l ledger.Ledger, guard *companypolicy.Guard, logger *zap.Logger) *Handler {
	return &Handler{
		Engine:     engine,
		Dispatcher: d,
		Ledger:     l,
		Guard:      guard,
		Log:        logger,
		sanitize:   bluemonday.StrictPolicy(),
	}
}
