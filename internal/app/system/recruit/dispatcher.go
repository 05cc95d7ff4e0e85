// internal/app/system/recruit/dispatcher.go
package recruit

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sakuramc/craftport/internal/app/store/ledger"
	"github.com/sakuramc/craftport/internal/app/system/notify"
	"github.com/sakuramc/craftport/internal/domain/models"
	"go.uber.org/zap"
)

// Dispatcher fires the side effects of a committed transition: assignment
// bookkeeping in the ledger and Discord notifications. Effects run after
// the authoritative write, each failure is logged exactly once, and no
// failure ever propagates back into the transition result. At-most-once,
// no retries.
type Dispatcher struct {
	ledger   ledger.Ledger
	notifier notify.Notifier
	// adminChannelID receives creative-permission requests.
	adminChannelID string
	effectTimeout  time.Duration
	log            *zap.Logger
}

// NewDispatcher wires the dispatcher. effectTimeout bounds each ledger
// side-effect write; the notifier carries its own timeout.
func NewDispatcher(l ledger.Ledger, n notify.Notifier, adminChannelID string, effectTimeout time.Duration, logger *zap.Logger) *Dispatcher {
	if effectTimeout <= 0 {
		effectTimeout = 10 * time.Second
	}
	return &Dispatcher{
		ledger:         l,
		notifier:       n,
		adminChannelID: adminChannelID,
		effectTimeout:  effectTimeout,
		log:            logger,
	}
}

// ApplicationSubmitted notifies the company creator of a new application
// with approve/reject buttons.
func (d *Dispatcher) ApplicationSubmitted(ctx context.Context, a *models.Application, c *models.Company) {
	msg := notify.Message{
		Content: fmt.Sprintf("【%s】に %s さんから入社申請が届きました。\n志望動機: %s",
			c.Name, a.DisplayName(), a.Motivation),
		Buttons: []notify.Button{
			{Label: "承認", CustomID: FormatCustomID(ActionApplyApprove, a.ID)},
			{Label: "拒否", CustomID: FormatCustomID(ActionApplyReject, a.ID), Danger: true},
		},
	}
	if a.GameTag != "" {
		msg.ImageURL = "https://minotar.net/avatar/" + url.PathEscape(a.GameTag)
	}

	res := d.notifier.SendDM(d.effectCtx(ctx), c.CreatedByDiscordID, msg)
	d.logSend("application submitted DM", a.ID, res)
}

// ApplicationApproved records the employment assignment and sends the
// approval DM to the applicant.
func (d *Dispatcher) ApplicationApproved(ctx context.Context, a *models.Application, c *models.Company) {
	ectx, cancel := context.WithTimeout(d.effectCtx(ctx), d.effectTimeout)
	defer cancel()

	if err := d.ledger.SetAssignment(ectx, a.UserID, c.Name, c.AssignmentEmploymentType()); err != nil {
		d.log.Warn("assignment create failed",
			zap.String("application_id", a.ID),
			zap.String("user_id", a.UserID),
			zap.Error(err))
	}

	msg := notify.Message{
		Content: fmt.Sprintf("%s さん、【%s】への入社申請が承認されました！（雇用形態: %s）",
			a.DisplayName(), c.Name, c.AssignmentEmploymentType()),
	}
	res := d.notifier.SendDM(d.effectCtx(ctx), a.DiscordID, msg)
	d.logSend("approval DM", a.ID, res)
}

// ApplicationDismissed removes the employment assignment and sends the
// dismissal DM with the reason and the dismisser's name.
func (d *Dispatcher) ApplicationDismissed(ctx context.Context, a *models.Application, c *models.Company, reason, dismissedBy string) {
	ectx, cancel := context.WithTimeout(d.effectCtx(ctx), d.effectTimeout)
	defer cancel()

	if err := d.ledger.RemoveAssignment(ectx, a.UserID, c.Name); err != nil {
		d.log.Warn("assignment remove failed",
			zap.String("application_id", a.ID),
			zap.String("user_id", a.UserID),
			zap.Error(err))
	}

	msg := notify.Message{
		Content: fmt.Sprintf("【%s】から解雇されました。\n理由: %s\n担当: %s", c.Name, reason, dismissedBy),
	}
	res := d.notifier.SendDM(d.effectCtx(ctx), a.DiscordID, msg)
	d.logSend("dismissal DM", a.ID, res)
}

// CreativeApproved sends the approval DM to the company creator.
func (d *Dispatcher) CreativeApproved(ctx context.Context, c *models.Company) {
	msg := notify.Message{
		Content: fmt.Sprintf("【%s】のクリエイティブ権限申請が承認されました。", c.Name),
	}
	res := d.notifier.SendDM(d.effectCtx(ctx), c.CreatedByDiscordID, msg)
	d.logSend("creative approval DM", c.ID, res)
}

// CreativeRequested posts the request with decision buttons to the admin
// channel when a company registers with creative permission required.
func (d *Dispatcher) CreativeRequested(ctx context.Context, c *models.Company) {
	msg := notify.Message{
		Content: fmt.Sprintf("【%s】がクリエイティブ権限を申請しています。（申請者: %s）",
			c.Name, c.CreatedByDiscordName),
		Buttons: []notify.Button{
			{Label: "承認", CustomID: FormatCustomID(ActionCreativeApprove, c.ID)},
			{Label: "拒否", CustomID: FormatCustomID(ActionCreativeReject, c.ID), Danger: true},
		},
	}
	res := d.notifier.SendChannel(d.effectCtx(ctx), d.adminChannelID, msg)
	d.logSend("creative request message", c.ID, res)
}

// effectCtx detaches effects from request cancellation: a client that
// hangs up mid-response must not abort an effect that is already owed,
// while deadlines set here still bound each call.
func (d *Dispatcher) effectCtx(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func (d *Dispatcher) logSend(what, targetID string, res notify.Result) {
	if res.Sent {
		d.log.Info("notification sent", zap.String("effect", what), zap.String("target", targetID))
		return
	}
	d.log.Warn("notification not sent",
		zap.String("effect", what),
		zap.String("target", targetID),
		zap.Error(res.Err))
}
