// Package testutil provides in-memory fakes and request helpers shared by
// handler and engine tests.
package testutil

import (
	"context"
	"sync"

	"github.com/sakuramc/craftport/internal/app/store/ledger"
	"github.com/sakuramc/craftport/internal/app/system/notify"
	"github.com/sakuramc/craftport/internal/domain/models"
)

// FakeLedger is an in-memory ledger.Ledger. Zero value is not usable;
// call NewFakeLedger.
type FakeLedger struct {
	mu sync.Mutex

	Companies    map[string]*models.Company
	Applications map[string]*models.Application
	// Assignments maps "userID|companyName" to the employment type.
	Assignments map[string]string

	// SetAssignmentCalls / RemoveAssignmentCalls count side-effect writes
	// so tests can assert exactly-once dispatch.
	SetAssignmentCalls    int
	RemoveAssignmentCalls int

	// FailWrites, when non-nil, is returned from every write operation.
	FailWrites error
}

// NewFakeLedger returns an empty fake.
func NewFakeLedger() *FakeLedger {
	return &FakeLedger{
		Companies:    make(map[string]*models.Company),
		Applications: make(map[string]*models.Application),
		Assignments:  make(map[string]string),
	}
}

// AddCompany seeds a company and returns it.
func (f *FakeLedger) AddCompany(c models.Company) *models.Company {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := c
	f.Companies[c.ID] = &cp
	return &cp
}

// AddApplication seeds an application and returns it.
func (f *FakeLedger) AddApplication(a models.Application) *models.Application {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := a
	f.Applications[a.ID] = &cp
	return &cp
}

func (f *FakeLedger) GetCompany(_ context.Context, id string) (*models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.Companies[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *FakeLedger) ListCompanies(context.Context) ([]models.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Company, 0, len(f.Companies))
	for _, c := range f.Companies {
		out = append(out, *c)
	}
	return out, nil
}

func (f *FakeLedger) AppendCompany(_ context.Context, c *models.Company) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWrites != nil {
		return f.FailWrites
	}
	cp := *c
	f.Companies[c.ID] = &cp
	return nil
}

func (f *FakeLedger) UpdateCompany(_ context.Context, id string, patch ledger.CompanyPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWrites != nil {
		return f.FailWrites
	}
	c, ok := f.Companies[id]
	if !ok {
		return ledger.ErrNotFound
	}
	if patch.CreativeStatus != nil {
		c.CreativeStatus = *patch.CreativeStatus
	}
	if patch.Active != nil {
		c.Active = *patch.Active
	}
	return nil
}

func (f *FakeLedger) GetApplication(_ context.Context, id string) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.Applications[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *FakeLedger) ListApplications(_ context.Context, companyID string) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Application, 0, len(f.Applications))
	for _, a := range f.Applications {
		if companyID != "" && a.CompanyID != companyID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *FakeLedger) AppendApplication(_ context.Context, a *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWrites != nil {
		return f.FailWrites
	}
	cp := *a
	f.Applications[a.ID] = &cp
	return nil
}

func (f *FakeLedger) UpdateApplicationStatus(_ context.Context, id string, status models.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailWrites != nil {
		return f.FailWrites
	}
	a, ok := f.Applications[id]
	if !ok {
		return ledger.ErrNotFound
	}
	a.Status = status
	return nil
}

func (f *FakeLedger) SetAssignment(_ context.Context, userID, companyName, employmentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetAssignmentCalls++
	if f.FailWrites != nil {
		return f.FailWrites
	}
	f.Assignments[userID+"|"+companyName] = employmentType
	return nil
}

func (f *FakeLedger) RemoveAssignment(_ context.Context, userID, companyName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RemoveAssignmentCalls++
	if f.FailWrites != nil {
		return f.FailWrites
	}
	delete(f.Assignments, userID+"|"+companyName)
	return nil
}

// Assignment returns the recorded employment type for (userID, company)
// and whether one exists.
func (f *FakeLedger) Assignment(userID, companyName string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	et, ok := f.Assignments[userID+"|"+companyName]
	return et, ok
}

// SentMessage is one recorded notifier send.
type SentMessage struct {
	// Recipient is the discord user ID for DMs, the channel ID otherwise.
	Recipient string
	Channel   bool
	Msg       notify.Message
}

// FakeNotifier records sends. When Fail is non-nil every send reports it.
type FakeNotifier struct {
	mu   sync.Mutex
	Sent []SentMessage
	Fail error
}

func (f *FakeNotifier) SendDM(_ context.Context, discordID string, msg notify.Message) notify.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, SentMessage{Recipient: discordID, Msg: msg})
	if f.Fail != nil {
		return notify.Result{Err: f.Fail}
	}
	return notify.Result{Sent: true}
}

func (f *FakeNotifier) SendChannel(_ context.Context, channelID string, msg notify.Message) notify.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = append(f.Sent, SentMessage{Recipient: channelID, Channel: true, Msg: msg})
	if f.Fail != nil {
		return notify.Result{Err: f.Fail}
	}
	return notify.Result{Sent: true}
}

// DMCount returns how many DMs were recorded for the given recipient.
func (f *FakeNotifier) DMCount(discordID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.Sent {
		if !s.Channel && s.Recipient == discordID {
			n++
		}
	}
	return n
}
