package companies_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sakuramc/craftport/internal/app/features/companies"
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
	handler  *companies.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fl := testutil.NewFakeLedger()
	fn := &testutil.FakeNotifier{}
	guard := companypolicy.NewGuard("admin@test.example", "500")
	d := recruit.NewDispatcher(fl, fn, "admin-channel", time.Second, zap.NewNop())
	engine := recruit.NewEngine(fl, guard, d, zap.NewNop())
	return &fixture{
		ledger:   fl,
		notifier: fn,
		handler:  companies.NewHandler(engine, d, fl, guard, zap.NewNop()),
	}
}

func creatorPrincipal() auth.Principal {
	return auth.Principal{UserID: "u-creator", DiscordID: "999", Name: "Creator D"}
}

func TestCreateCompany(t *testing.T) {
	f := newFixture(t)

	req := testutil.JSONRequest(t, http.MethodPost, "/companies", map[string]any{
		"name":            "青葉建設",
		"description":     "建築メインの会社です",
		"employment_type": "正社員",
		"tags":            []string{"建築", "週末"},
	})
	req = testutil.WithPrincipal(req, creatorPrincipal())
	rec := httptest.NewRecorder()
	f.handler.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got models.Company
	testutil.DecodeJSON(t, rec, &got)
	if got.ID == "" {
		t.Error("expected generated company id")
	}
	if got.CreatedBy != "u-creator" || got.CreatedByDiscordID != "999" {
		t.Errorf("creator identity = %q/%q, want principal identity", got.CreatedBy, got.CreatedByDiscordID)
	}
	if !got.Active {
		t.Error("new company should be active")
	}
	if got.CreativeStatus != models.CreativeNone {
		t.Errorf("creative status = %q, want none", got.CreativeStatus)
	}
	if _, err := f.ledger.GetCompany(req.Context(), got.ID); err != nil {
		t.Errorf("company not persisted: %v", err)
	}
	if n := len(f.notifier.Sent); n != 0 {
		t.Errorf("sent %d messages, want none without a creative request", n)
	}
}

func TestCreateCompanyCreativeRequest(t *testing.T) {
	f := newFixture(t)

	req := testutil.JSONRequest(t, http.MethodPost, "/companies", map[string]any{
		"name":              "夜景工房",
		"creative_required": true,
	})
	req = testutil.WithPrincipal(req, creatorPrincipal())
	rec := httptest.NewRecorder()
	f.handler.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got models.Company
	testutil.DecodeJSON(t, rec, &got)
	if got.CreativeStatus != models.CreativePending {
		t.Errorf("creative status = %q, want pending", got.CreativeStatus)
	}

	if len(f.notifier.Sent) != 1 {
		t.Fatalf("sent %d messages, want 1 admin-channel ping", len(f.notifier.Sent))
	}
	sent := f.notifier.Sent[0]
	if !sent.Channel || sent.Recipient != "admin-channel" {
		t.Errorf("creative request went to %q (channel=%v), want admin channel", sent.Recipient, sent.Channel)
	}
	if len(sent.Msg.Buttons) != 2 {
		t.Fatalf("admin ping has %d buttons, want 2", len(sent.Msg.Buttons))
	}
	want := recruit.FormatCustomID(recruit.ActionCreativeApprove, got.ID)
	if sent.Msg.Buttons[0].CustomID != want {
		t.Errorf("approve button custom id = %q, want %q", sent.Msg.Buttons[0].CustomID, want)
	}
}

func TestCreateCompanyValidation(t *testing.T) {
	f := newFixture(t)

	t.Run("no principal", func(t *testing.T) {
		req := testutil.JSONRequest(t, http.MethodPost, "/companies", map[string]any{"name": "x"})
		rec := httptest.NewRecorder()
		f.handler.HandleCreate(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("blank name", func(t *testing.T) {
		req := testutil.JSONRequest(t, http.MethodPost, "/companies", map[string]any{"name": "   "})
		req = testutil.WithPrincipal(req, creatorPrincipal())
		rec := httptest.NewRecorder()
		f.handler.HandleCreate(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader("{"))
		req = testutil.WithPrincipal(req, creatorPrincipal())
		rec := httptest.NewRecorder()
		f.handler.HandleCreate(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestCreateCompanySanitizesDescription(t *testing.T) {
	f := newFixture(t)

	req := testutil.JSONRequest(t, http.MethodPost, "/companies", map[string]any{
		"name":        "青葉建設",
		"description": `<script>alert(1)</script>楽しい会社`,
	})
	req = testutil.WithPrincipal(req, creatorPrincipal())
	rec := httptest.NewRecorder()
	f.handler.HandleCreate(rec, req)

	var got models.Company
	testutil.DecodeJSON(t, rec, &got)
	if strings.Contains(got.Description, "<script>") {
		t.Errorf("description kept markup: %q", got.Description)
	}
	if !strings.Contains(got.Description, "楽しい会社") {
		t.Errorf("description lost text content: %q", got.Description)
	}
}

func TestListCompanies(t *testing.T) {
	f := newFixture(t)
	f.ledger.AddCompany(models.Company{ID: "c-1", Name: "青葉建設", Active: true})
	f.ledger.AddCompany(models.Company{ID: "c-2", Name: "廃業済み", Active: false})

	rec := httptest.NewRecorder()
	f.handler.ServeList(rec, httptest.NewRequest(http.MethodGet, "/companies", nil))
	var all []models.Company
	testutil.DecodeJSON(t, rec, &all)
	if len(all) != 2 {
		t.Errorf("listed %d companies, want 2", len(all))
	}

	rec = httptest.NewRecorder()
	f.handler.ServeList(rec, httptest.NewRequest(http.MethodGet, "/companies?active=true", nil))
	var active []models.Company
	testutil.DecodeJSON(t, rec, &active)
	if len(active) != 1 || active[0].ID != "c-1" {
		t.Errorf("active filter returned %+v, want only c-1", active)
	}
}

func TestViewCompany(t *testing.T) {
	f := newFixture(t)
	f.ledger.AddCompany(models.Company{ID: "c-1", Name: "青葉建設", Active: true})

	req := testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/companies/c-1", nil), "id", "c-1")
	rec := httptest.NewRecorder()
	f.handler.ServeView(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got models.Company
	testutil.DecodeJSON(t, rec, &got)
	if got.Name != "青葉建設" {
		t.Errorf("name = %q", got.Name)
	}

	req = testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/companies/missing", nil), "id", "missing")
	rec = httptest.NewRecorder()
	f.handler.ServeView(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCreativeStatusDecision(t *testing.T) {
	f := newFixture(t)
	f.ledger.AddCompany(models.Company{
		ID:               "c-1",
		Name:             "夜景工房",
		CreatedBy:        "u-creator",
		CreativeRequired: true,
		CreativeStatus:   models.CreativePending,
		Active:           true,
	})

	req := testutil.JSONRequest(t, http.MethodPatch, "/companies/c-1/creative-status", map[string]any{"status": "approved"})
	req = testutil.WithPrincipal(testutil.WithChiURLParam(req, "id", "c-1"), testutil.AdminPrincipal())
	rec := httptest.NewRecorder()
	f.handler.HandleCreativeStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	stored, _ := f.ledger.GetCompany(req.Context(), "c-1")
	if stored.CreativeStatus != models.CreativeApproved {
		t.Errorf("stored creative status = %q, want approved", stored.CreativeStatus)
	}
}

func TestCreativeStatusRejections(t *testing.T) {
	f := newFixture(t)
	f.ledger.AddCompany(models.Company{
		ID:               "c-1",
		Name:             "夜景工房",
		CreatedBy:        "u-creator",
		CreativeRequired: true,
		CreativeStatus:   models.CreativePending,
		Active:           true,
	})

	t.Run("creator is not enough", func(t *testing.T) {
		req := testutil.JSONRequest(t, http.MethodPatch, "/companies/c-1/creative-status", map[string]any{"status": "approved"})
		req = testutil.WithPrincipal(testutil.WithChiURLParam(req, "id", "c-1"), creatorPrincipal())
		rec := httptest.NewRecorder()
		f.handler.HandleCreativeStatus(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("bad decision value", func(t *testing.T) {
		req := testutil.JSONRequest(t, http.MethodPatch, "/companies/c-1/creative-status", map[string]any{"status": "maybe"})
		req = testutil.WithPrincipal(testutil.WithChiURLParam(req, "id", "c-1"), testutil.AdminPrincipal())
		rec := httptest.NewRecorder()
		f.handler.HandleCreativeStatus(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown company", func(t *testing.T) {
		req := testutil.JSONRequest(t, http.MethodPatch, "/companies/nope/creative-status", map[string]any{"status": "approved"})
		req = testutil.WithPrincipal(testutil.WithChiURLParam(req, "id", "nope"), testutil.AdminPrincipal())
		rec := httptest.NewRecorder()
		f.handler.HandleCreativeStatus(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
