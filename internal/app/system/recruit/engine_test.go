package recruit_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sakuramc/craftport/internal/app/policy/companypolicy"
	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/app/system/recruit"
	"github.com/sakuramc/craftport/internal/domain/models"
	"github.com/sakuramc/craftport/internal/testutil"
	"go.uber.org/zap"
)

type fixture struct {
	ledger   *testutil.FakeLedger
	notifier *testutil.FakeNotifier
	engine   *recruit.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fl := testutil.NewFakeLedger()
	fn := &testutil.FakeNotifier{}
	guard := companypolicy.NewGuard("admin@test.example", "500")
	d := recruit.NewDispatcher(fl, fn, "admin-channel", time.Second, zap.NewNop())
	return &fixture{
		ledger:   fl,
		notifier: fn,
		engine:   recruit.NewEngine(fl, guard, d, zap.NewNop()),
	}
}

func (f *fixture) seedCompany() *models.Company {
	return f.ledger.AddCompany(models.Company{
		ID:                 "c-1",
		Name:               "青葉建設",
		EmploymentType:     "正社員",
		CreatedBy:          "u-creator",
		CreatedByDiscordID: "999",
		Active:             true,
	})
}

func (f *fixture) seedApplication(status models.ApplicationStatus) *models.Application {
	return f.ledger.AddApplication(models.Application{
		ID:              "a-1",
		CompanyID:       "c-1",
		CompanyName:     "青葉建設",
		UserID:          "u-applicant",
		DiscordID:       "111",
		DiscordUsername: "player_one",
		GameTag:         "MC_Taro",
		Status:          status,
	})
}

var (
	creator = auth.Principal{UserID: "u-creator", Name: "Creator D"}
	admin   = auth.Principal{Email: "admin@test.example", Name: "Admin"}
	nobody  = auth.Principal{UserID: "u-random", DiscordID: "777"}
)

func TestDecideApplication_Approve(t *testing.T) {
	f := newFixture(t)
	f.seedCompany()
	f.seedApplication(models.ApplicationPending)

	app, err := f.engine.DecideApplication(context.Background(), "a-1", models.ApplicationApproved, creator)
	if err != nil {
		t.Fatalf("DecideApplication: %v", err)
	}
	if app.Status != models.ApplicationApproved {
		t.Errorf("status: got %q", app.Status)
	}

	et, ok := f.ledger.Assignment("u-applicant", "青葉建設")
	if !ok {
		t.Fatal("expected assignment after approval")
	}
	if et != models.EmploymentFullTime {
		t.Errorf("employment type: got %q, want %q", et, models.EmploymentFullTime)
	}
	if n := f.notifier.DMCount("111"); n != 1 {
		t.Errorf("approval DMs sent: got %d, want 1", n)
	}
}

func TestDecideApplication_UnrecognizedEmploymentTypeDefaultsPartTime(t *testing.T) {
	f := newFixture(t)
	c := f.seedCompany()
	c2 := *c
	c2.EmploymentType = "週末だけ"
	f.ledger.AddCompany(c2)
	f.seedApplication(models.ApplicationPending)

	if _, err := f.engine.DecideApplication(context.Background(), "a-1", models.ApplicationApproved, creator); err != nil {
		t.Fatalf("DecideApplication: %v", err)
	}
	et, _ := f.ledger.Assignment("u-applicant", "青葉建設")
	if et != models.EmploymentPartTime {
		t.Errorf("employment type: got %q, want %q", et, models.EmploymentPartTime)
	}
}

func TestDecideApplication_RejectSendsNoEffects(t *testing.T) {
	f := newFixture(t)
	f.seedCompany()
	f.seedApplication(models.ApplicationPending)

	app, err := f.engine.DecideApplication(context.Background(), "a-1", models.ApplicationRejected, admin)
	if err != nil {
		t.Fatalf("DecideApplication: %v", err)
	}
	if app.Status != models.ApplicationRejected {
		t.Errorf("status: got %q", app.Status)
	}
	if f.ledger.SetAssignmentCalls != 0 {
		t.Error("rejection must not create an assignment")
	}
	if len(f.notifier.Sent) != 0 {
		t.Errorf("rejection dispatched %d notifications, want 0", len(f.notifier.Sent))
	}
}

func TestDecideApplication_NonPendingSource(t *testing.T) {
	for _, status := range []models.ApplicationStatus{
		models.ApplicationApproved,
		models.ApplicationRejected,
		models.ApplicationDismissed,
	} {
		f := newFixture(t)
		f.seedCompany()
		f.seedApplication(status)

		_, err := f.engine.DecideApplication(context.Background(), "a-1", models.ApplicationApproved, admin)
		if !errors.Is(err, recruit.ErrInvalidTransition) {
			t.Errorf("from %s: got %v, want ErrInvalidTransition", status, err)
		}

		stored, _ := f.ledger.GetApplication(context.Background(), "a-1")
		if stored.Status != status {
			t.Errorf("from %s: stored status changed to %s", status, stored.Status)
		}
	}
}

func TestDecideApplication_SecondCallIsRejectedWithOneDispatch(t *testing.T) {
	f := newFixture(t)
	f.seedCompany()
	f.seedApplication(models.ApplicationPending)
	ctx := context.Background()

	if _, err := f.engine.DecideApplication(ctx, "a-1", models.ApplicationApproved, admin); err != nil {
		t.Fatalf("first decide: %v", err)
	}
	_, err := f.engine.DecideApplication(ctx, "a-1", models.ApplicationApproved, admin)
	if !errors.Is(err, recruit.ErrInvalidTransition) {
		t.Fatalf("second decide: got %v, want ErrInvalidTransition", err)
	}

	if f.ledger.SetAssignmentCalls != 1 {
		t.Errorf("assignment writes: got %d, want 1", f.ledger.SetAssignmentCalls)
	}
	if n := f.notifier.DMCount("111"); n != 1 {
		t.Errorf("approval DMs: got %d, want 1", n)
	}
}

func TestDecideApplication_Forbidden(t *testing.T) {
	f := newFixture(t)
	f.seedCompany()
	f.seedApplication(models.ApplicationPending)

	_, err := f.engine.DecideApplication(context.Background(), "a-1", models.ApplicationApproved, nobody)
	if !errors.Is(err, recruit.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	if _, err := f.engine.DecideApplication(context.Background(), "a-1", models.ApplicationApproved, auth.Principal{}); !errors.Is(err, recruit.ErrForbidden) {
		t.Fatalf("unresolved principal: got %v, want ErrForbidden", err)
	}

	stored, _ := f.ledger.GetApplication(context.Background(), "a-1")
	if stored.Status != models.ApplicationPending {
		t.Error("forbidden attempt must not change stored status")
	}
}

func TestDecideApplication_CreatorByDiscordIDOnly(t *testing.T) {
	// The company row may carry only the creator's Discord ID; a principal
	// resolved from the webhook must still pass the guard.
	f := newFixture(t)
	f.ledger.AddCompany(models.Company{
		ID:                 "c-1",
		Name:               "青葉建設",
		CreatedByDiscordID: "999",
		Active:             true,
	})
	f.seedApplication(models.ApplicationPending)

	actor := auth.Principal{DiscordID: "999", Name: "creator-from-webhook"}
	if _, err := f.engine.DecideApplication(context.Background(), "a-1", models.ApplicationApproved, actor); err != nil {
		t.Fatalf("DecideApplication: %v", err)
	}
}

func TestDecideApplication_NotFound(t *testing.T) {
	f := newFixture(t)
	f.seedCompany()

	_, err := f.engine.DecideApplication(context.Background(), "missing", models.ApplicationApproved, admin)
	if !errors.Is(err, recruit.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDecideApplication_LedgerWriteFailureSkipsEffects(t *testing.T) {
	f := newFixture(t)
	f.seedCompany()
	f.seedApplication(models.ApplicationPending)
	f.ledger.FailWrites = errors.New("sheet unavailable")

	_, err := f.engine.DecideApplication(context.Background(), "a-1", models.ApplicationApproved, admin)
	if err == nil {
		t.Fatal("expected error when the ledger write fails")
	}
	if errors.Is(err, recruit.ErrInvalidTransition) || errors.Is(err, recruit.ErrForbidden) {
		t.Fatalf("collaborator failure misclassified: %v", err)
	}
	if len(f.notifier.Sent) != 0 {
		t.Error("effects must not fire when the authoritative write failed")
	}
}

func TestDecideApplication_NotifierFailureDoesNotFailTransition(t *testing.T) {
	f := newFixture(t)
	f.seedCompany()
	f.seedApplication(models.ApplicationPending)
	f.notifier.Fail = errors.New("discord 502")

	app, err := f.engine.DecideApplication(context.Background(), "a-1", models.ApplicationApproved, admin)
	if err != nil {
		t.Fatalf("transition must succeed despite notifier failure: %v", err)
	}
	if app.Status != models.ApplicationApproved {
		t.Errorf("status: got %q", app.Status)
	}
}

func TestDismissApplication(t *testing.T) {
	f := newFixture(t)
	f.seedCompany()
	f.seedApplication(models.ApplicationApproved)
	f.ledger.Assignments["u-applicant|青葉建設"] = models.EmploymentFullTime

	app, err := f.engine.DismissApplication(context.Background(), "a-1", "規約違反", creator)
	if err != nil {
		t.Fatalf("DismissApplication: %v", err)
	}
	if app.Status != models.ApplicationDismissed {
		t.Errorf("status: got %q", app.Status)
	}
	if _, ok := f.ledger.Assignment("u-applicant", "青葉建設"); ok {
		t.Error("assignment must be removed on dismissal")
	}

	if len(f.notifier.Sent) != 1 {
		t.Fatalf("notifications: got %d, want 1", len(f.notifier.Sent))
	}
	dm := f.notifier.Sent[0]
	if dm.Recipient != "111" {
		t.Errorf("DM recipient: got %q", dm.Recipient)
	}
	if !strings.Contains(dm.Msg.Content, "規約違反") {
		t.Errorf("dismissal DM must include the reason verbatim: %q", dm.Msg.Content)
	}
	if !strings.Contains(dm.Msg.Content, "Creator D") {
		t.Errorf("dismissal DM must include the dismisser's name: %q", dm.Msg.Content)
	}
}

func TestDismissApplication_EmptyReason(t *testing.T) {
	f := newFixture(t)
	f.seedCompany()
	f.seedApplication(models.ApplicationApproved)

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := f.engine.DismissApplication(context.Background(), "a-1", reason, creator)
		if !errors.Is(err, recruit.ErrValidation) {
			t.Errorf("reason %q: got %v, want ErrValidation", reason, err)
		}
	}
}

func TestDismissApplication_NotApproved(t *testing.T) {
	f := newFixture(t)
	f.seedCompany()
	f.seedApplication(models.ApplicationPending)

	_, err := f.engine.DismissApplication(context.Background(), "a-1", "規約違反", creator)
	if !errors.Is(err, recruit.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}

func TestDecideCompanyCreative(t *testing.T) {
	f := newFixture(t)
	f.ledger.AddCompany(models.Company{
		ID:                 "c-1",
		Name:               "青葉建設",
		CreatedByDiscordID: "999",
		CreativeRequired:   true,
		CreativeStatus:     models.CreativePending,
		Active:             true,
	})

	c, err := f.engine.DecideCompanyCreative(context.Background(), "c-1", models.CreativeApproved, admin)
	if err != nil {
		t.Fatalf("DecideCompanyCreative: %v", err)
	}
	if c.CreativeStatus != models.CreativeApproved {
		t.Errorf("creative status: got %q", c.CreativeStatus)
	}
	if n := f.notifier.DMCount("999"); n != 1 {
		t.Errorf("creator DMs: got %d, want 1", n)
	}
}

func TestDecideCompanyCreative_AdminOnly(t *testing.T) {
	f := newFixture(t)
	f.ledger.AddCompany(models.Company{
		ID:               "c-1",
		Name:             "青葉建設",
		CreatedBy:        "u-creator",
		CreativeRequired: true,
		CreativeStatus:   models.CreativePending,
	})

	// Even the creator cannot decide their own creative request.
	_, err := f.engine.DecideCompanyCreative(context.Background(), "c-1", models.CreativeApproved, creator)
	if !errors.Is(err, recruit.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestDecideCompanyCreative_Guard(t *testing.T) {
	cases := []struct {
		name     string
		required bool
		status   models.CreativeStatus
	}{
		{"not required", false, models.CreativeNone},
		{"already approved", true, models.CreativeApproved},
		{"already rejected", true, models.CreativeRejected},
	}
	for _, tc := range cases {
		f := newFixture(t)
		f.ledger.AddCompany(models.Company{
			ID:               "c-1",
			CreativeRequired: tc.required,
			CreativeStatus:   tc.status,
		})
		_, err := f.engine.DecideCompanyCreative(context.Background(), "c-1", models.CreativeApproved, admin)
		if !errors.Is(err, recruit.ErrInvalidTransition) {
			t.Errorf("%s: got %v, want ErrInvalidTransition", tc.name, err)
		}
	}
}

func TestSubmitApplication(t *testing.T) {
	f := newFixture(t)
	f.seedCompany()

	a := &models.Application{
		CompanyID:       "c-1",
		UserID:          "u-applicant",
		DiscordID:       "111",
		DiscordUsername: "player_one",
		GameTag:         "MC_Taro",
		Motivation:      "建築が得意です",
	}
	if err := f.engine.SubmitApplication(context.Background(), a); err != nil {
		t.Fatalf("SubmitApplication: %v", err)
	}

	if a.ID == "" {
		t.Error("expected a generated application id")
	}
	if a.Status != models.ApplicationPending {
		t.Errorf("status: got %q, want pending", a.Status)
	}
	if a.CompanyName != "青葉建設" {
		t.Errorf("company name not denormalized: %q", a.CompanyName)
	}

	// Creator gets a DM with both response buttons.
	if n := f.notifier.DMCount("999"); n != 1 {
		t.Fatalf("creator DMs: got %d, want 1", n)
	}
	btns := f.notifier.Sent[0].Msg.Buttons
	if len(btns) != 2 {
		t.Fatalf("buttons: got %d, want 2", len(btns))
	}
	if btns[0].CustomID != recruit.FormatCustomID(recruit.ActionApplyApprove, a.ID) {
		t.Errorf("approve button custom id: %q", btns[0].CustomID)
	}
	if btns[1].CustomID != recruit.FormatCustomID(recruit.ActionApplyReject, a.ID) {
		t.Errorf("reject button custom id: %q", btns[1].CustomID)
	}
}

func TestSubmitApplication_InactiveCompany(t *testing.T) {
	f := newFixture(t)
	f.ledger.AddCompany(models.Company{ID: "c-1", Name: "休止中", Active: false})

	err := f.engine.SubmitApplication(context.Background(), &models.Application{CompanyID: "c-1"})
	if !errors.Is(err, recruit.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestParseCustomID(t *testing.T) {
	action, target, ok := recruit.ParseCustomID("apply_approve:a-123")
	if !ok || action != recruit.ActionApplyApprove || target != "a-123" {
		t.Errorf("got (%q, %q, %v)", action, target, ok)
	}
	for _, bad := range []string{"", "apply_approve", ":a-1", "apply_approve:"} {
		if _, _, ok := recruit.ParseCustomID(bad); ok {
			t.Errorf("ParseCustomID(%q) should fail", bad)
		}
	}
}
