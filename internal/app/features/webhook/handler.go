// Package webhook receives interaction callbacks from the chat platform:
// the button presses on the DMs and channel posts the dispatcher sends.
// Every delivery is signature-checked against the application public key
// before the body is parsed.
package webhook

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/app/system/recruit"
	"github.com/sakuramc/craftport/internal/app/system/timeouts"
	"github.com/sakuramc/craftport/internal/app/system/webapi"
	"github.com/sakuramc/craftport/internal/domain/models"
	"go.uber.org/zap"
)

// Handler verifies and executes interaction callbacks.
type Handler struct {
	Engine    *recruit.Engine
	PublicKey ed25519.PublicKey
	Log       *zap.Logger
}

// NewHandler constructs the webhook handler from the hex-encoded
// application public key published by the chat platform.
func NewHandler(engine *recruit.Engine, publicKeyHex string, logger *zap.Logger) (*Handler, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode webhook public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("webhook public key: got %d bytes, want %d", len(raw), ed25519.PublicKeySize)
	}
	return &Handler{Engine: engine, PublicKey: ed25519.PublicKey(raw), Log: logger}, nil
}

// HandleInteraction is the single webhook endpoint. Unverifiable requests
// get 401 before any parsing; verified requests always get 200 with an
// interaction response, even when the underlying decision fails, so the
// presser sees the outcome in-channel.
//
// POST /webhooks/interactions
func (h *Handler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	sigHex := r.Header.Get("X-Signature-Ed25519")
	timestamp := r.Header.Get("X-Signature-Timestamp")
	if sigHex == "" || timestamp == "" {
		webapi.WriteError(w, http.StatusUnauthorized, "missing signature headers")
		return
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		webapi.WriteError(w, http.StatusUnauthorized, "malformed signature")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		webapi.WriteError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if !ed25519.Verify(h.PublicKey, append([]byte(timestamp), body...), sig) {
		webapi.WriteError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var ic discordgo.Interaction
	if err := json.Unmarshal(body, &ic); err != nil {
		webapi.WriteError(w, http.StatusBadRequest, "invalid interaction payload")
		return
	}

	switch ic.Type {
	case discordgo.InteractionPing:
		webapi.WriteJSON(w, http.StatusOK, discordgo.InteractionResponse{
			Type: discordgo.InteractionResponsePong,
		})
	case discordgo.InteractionMessageComponent:
		h.handleComponent(w, r, &ic)
	default:
		h.reply(w, "このイベントには対応していません")
	}
}

func (h *Handler) handleComponent(w http.ResponseWriter, r *http.Request, ic *discordgo.Interaction) {
	action, targetID, ok := recruit.ParseCustomID(ic.MessageComponentData().CustomID)
	if !ok {
		h.reply(w, "不明な操作です")
		return
	}

	actor := interactionPrincipal(ic)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var err error
	switch action {
	case recruit.ActionApplyApprove:
		_, err = h.Engine.DecideApplication(ctx, targetID, models.ApplicationApproved, actor)
	case recruit.ActionApplyReject:
		_, err = h.Engine.DecideApplication(ctx, targetID, models.ApplicationRejected, actor)
	case recruit.ActionCreativeApprove:
		_, err = h.Engine.DecideCompanyCreative(ctx, targetID, models.CreativeApproved, actor)
	case recruit.ActionCreativeReject:
		_, err = h.Engine.DecideCompanyCreative(ctx, targetID, models.CreativeRejected, actor)
	default:
		h.reply(w, "不明な操作です")
		return
	}

	if err != nil {
		h.Log.Info("interaction decision rejected",
			zap.String("action", action),
			zap.String("target", targetID),
			zap.Error(err))
		h.reply(w, replyForError(err))
		return
	}

	switch action {
	case recruit.ActionApplyApprove, recruit.ActionCreativeApprove:
		h.reply(w, "承認しました")
	default:
		h.reply(w, "拒否しました")
	}
}

// reply writes an ephemeral channel message only the presser sees.
func (h *Handler) reply(w http.ResponseWriter, content string) {
	webapi.WriteJSON(w, http.StatusOK, discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func replyForError(err error) string {
	switch {
	case errors.Is(err, recruit.ErrNotFound):
		return "申請が見つかりません"
	case errors.Is(err, recruit.ErrInvalidTransition):
		return "この申請はすでに処理されています"
	case errors.Is(err, recruit.ErrForbidden):
		return "権限がありません"
	default:
		return "処理に失敗しました"
	}
}

// interactionPrincipal maps the interaction invoker to a principal. Guild
// interactions carry a member, DM interactions a bare user.
func interactionPrincipal(ic *discordgo.Interaction) auth.Principal {
	var u *discordgo.User
	switch {
	case ic.Member != nil && ic.Member.User != nil:
		u = ic.Member.User
	case ic.User != nil:
		u = ic.User
	}
	if u == nil {
		return auth.Principal{}
	}
	return auth.Principal{DiscordID: u.ID, Name: u.Username}
}
