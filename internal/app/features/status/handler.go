// Package status exposes the live-status board: keyed reports about
// in-world conditions (train positions, road closures) that players
// update and read back. Reports are last-write-wins per (kind, key).
package status

import (
	"context"

	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/domain/models"
	"go.uber.org/zap"
)

// Store is the persistence surface the handler needs. The Mongo-backed
// livestatusstore.Store satisfies it; tests substitute an in-memory fake.
type Store interface {
	Upsert(ctx context.Context, st models.LiveStatus) error
	Get(ctx context.Context, kind, key string) (*models.LiveStatus, error)
	ListByKind(ctx context.Context, kind string) ([]models.LiveStatus, error)
}

// Handler is the feature-level entry point for the live-status board.
type Handler struct {
	Store Store
	Log   *zap.Logger
}

// NewHandler constructs a status Handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Log: logger}
}

// reportInput is the PUT /status/{kind}/{key} body.
type reportInput struct {
	State  string `json:"state"`
	Detail string `json:"detail"`
}

func principalLabel(p auth.Principal) string {
	switch {
	case p.Name != "":
		return p.Name
	case p.DiscordID != "":
		return p.DiscordID
	default:
		return p.UserID
	}
}
