// Package recruit implements the approval workflow: the application and
// creative-permission state machines, per-transition authorization, and
// the dispatch of best-effort side effects after a committed transition.
//
// The ledger's update-by-id is the only concurrency boundary. Operations
// read current state immediately before writing and treat the source-state
// check as the sole guard; the loser of a concurrent decision race
// observes a state that already moved and gets ErrInvalidTransition.
package recruit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sakuramc/craftport/internal/app/policy/companypolicy"
	"github.com/sakuramc/craftport/internal/app/store/ledger"
	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/domain/models"
	"go.uber.org/zap"
)

// Engine validates and applies state transitions. It is the only writer
// of application status and company creative status after creation.
type Engine struct {
	ledger     ledger.Ledger
	guard      *companypolicy.Guard
	dispatcher *Dispatcher
	log        *zap.Logger
}

// NewEngine wires the engine to its collaborators.
func NewEngine(l ledger.Ledger, guard *companypolicy.Guard, d *Dispatcher, logger *zap.Logger) *Engine {
	return &Engine{ledger: l, guard: guard, dispatcher: d, log: logger}
}

// SubmitApplication records a new application and notifies the company
// creator. Creation is not a state-machine transition; the row always
// starts at pending. Resubmission after a terminal state is a new row.
func (e *Engine) SubmitApplication(ctx context.Context, a *models.Application) error {
	company, err := e.getCompany(ctx, a.CompanyID)
	if err != nil {
		return err
	}
	if !company.Active {
		return fmt.Errorf("%w: company is not recruiting", ErrValidation)
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CompanyName = company.Name
	a.Status = models.ApplicationPending
	a.CreatedAt = time.Now()

	if err := e.ledger.AppendApplication(ctx, a); err != nil {
		return fmt.Errorf("append application: %w", err)
	}

	e.dispatcher.ApplicationSubmitted(ctx, a, company)
	return nil
}

// DecideApplication applies approve/reject to a pending application.
// A second call after a successful decision fails with
// ErrInvalidTransition and dispatches nothing.
func (e *Engine) DecideApplication(ctx context.Context, id string, decision models.ApplicationStatus, actor auth.Principal) (*models.Application, error) {
	if decision != models.ApplicationApproved && decision != models.ApplicationRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", ErrValidation)
	}

	app, company, err := e.loadForDecision(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if app.Status != models.ApplicationPending {
		return nil, fmt.Errorf("%w: application %s is %s, not pending", ErrInvalidTransition, id, app.Status)
	}

	if err := e.ledger.UpdateApplicationStatus(ctx, id, decision); err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	app.Status = decision

	e.log.Info("application decided",
		zap.String("application_id", id),
		zap.String("decision", string(decision)),
		zap.String("actor", actorLabel(actor)))

	if decision == models.ApplicationApproved {
		e.dispatcher.ApplicationApproved(ctx, app, company)
	}
	return app, nil
}

// DismissApplication removes an active employee. Only approved
// applications can be dismissed, and a reason is mandatory (it is shown
// verbatim to the dismissed player).
func (e *Engine) DismissApplication(ctx context.Context, id, reason string, actor auth.Principal) (*models.Application, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: dismissal reason is required", ErrValidation)
	}

	app, company, err := e.loadForDecision(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if app.Status != models.ApplicationApproved {
		return nil, fmt.Errorf("%w: application %s is %s, not approved", ErrInvalidTransition, id, app.Status)
	}

	if err := e.ledger.UpdateApplicationStatus(ctx, id, models.ApplicationDismissed); err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	app.Status = models.ApplicationDismissed

	e.log.Info("employee dismissed",
		zap.String("application_id", id),
		zap.String("actor", actorLabel(actor)))

	e.dispatcher.ApplicationDismissed(ctx, app, company, strings.TrimSpace(reason), actorLabel(actor))
	return app, nil
}

// DecideCompanyCreative applies the admin decision on a company's
// creative-permission request. Terminal once decided.
func (e *Engine) DecideCompanyCreative(ctx context.Context, companyID string, decision models.CreativeStatus, actor auth.Principal) (*models.Company, error) {
	if decision != models.CreativeApproved && decision != models.CreativeRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", ErrValidation)
	}

	company, err := e.getCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if !e.guard.IsAdmin(actor) {
		return nil, fmt.Errorf("%w: creative decisions are admin-only", ErrForbidden)
	}

	if !company.CreativeRequired || company.CreativeStatus != models.CreativePending {
		return nil, fmt.Errorf("%w: company %s creative status is %s", ErrInvalidTransition, companyID, company.CreativeStatus)
	}

	patch := ledger.CompanyPatch{CreativeStatus: &decision}
	if err := e.ledger.UpdateCompany(ctx, companyID, patch); err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	company.CreativeStatus = decision

	e.log.Info("creative permission decided",
		zap.String("company_id", companyID),
		zap.String("decision", string(decision)),
		zap.String("actor", actorLabel(actor)))

	if decision == models.CreativeApproved {
		e.dispatcher.CreativeApproved(ctx, company)
	}
	return company, nil
}

// loadForDecision fetches the application and its company and authorizes
// the actor. The guard runs here on every call, so each control surface
// re-checks with its own independently resolved principal.
func (e *Engine) loadForDecision(ctx context.Context, id string, actor auth.Principal) (*models.Application, *models.Company, error) {
	app, err := e.ledger.GetApplication(ctx, id)
	if err != nil {
		if err == ledger.ErrNotFound {
			return nil, nil, fmt.Errorf("%w: application %s", ErrNotFound, id)
		}
		return nil, nil, fmt.Errorf("load application: %w", err)
	}

	company, err := e.getCompany(ctx, app.CompanyID)
	if err != nil {
		return nil, nil, err
	}

	if !e.guard.CanManage(actor, company) {
		return nil, nil, fmt.Errorf("%w: not an admin or creator of company %s", ErrForbidden, company.ID)
	}
	return app, company, nil
}

func (e *Engine) getCompany(ctx context.Context, id string) (*models.Company, error) {
	company, err := e.ledger.GetCompany(ctx, id)
	if err != nil {
		if err == ledger.ErrNotFound {
			return nil, fmt.Errorf("%w: company %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load company: %w", err)
	}
	return company, nil
}

func actorLabel(p auth.Principal) string {
	switch {
	case p.Name != "":
		return p.Name
	case p.Email != "":
		return p.Email
	case p.UserID != "":
		return p.UserID
	case p.DiscordID != "":
		return p.DiscordID
	}
	return "unknown"
}
