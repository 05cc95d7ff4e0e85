// Package ledger is the typed client for the external application/company
// store. The store itself (a shared spreadsheet operated outside this
// service) owns the data; this package only reads and writes it. The
// update-by-id operations are the concurrency boundary for the approval
// workflow: callers re-read current state immediately before writing and
// rely on the source-state check, never on in-process locks.
package ledger

import (
	"context"
	"errors"

	"github.com/sakuramc/craftport/internal/domain/models"
)

// ErrNotFound is returned when the requested company or application does
// not exist in the store.
var ErrNotFound = errors.New("ledger: not found")

// CompanyPatch is a partial company update. Nil fields are left unchanged.
type CompanyPatch struct {
	CreativeStatus *models.CreativeStatus
	Active         *bool
}

// Ledger is the full client surface. The Sheets implementation is the one
// used in production; tests substitute an in-memory fake.
type Ledger interface {
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	AppendCompany(ctx context.Context, c *models.Company) error
	UpdateCompany(ctx context.Context, id string, patch CompanyPatch) error

	GetApplication(ctx context.Context, id string) (*models.Application, error)
	// ListApplications returns all applications, or only those for one
	// company when companyID is non-empty.
	ListApplications(ctx context.Context, companyID string) ([]models.Application, error)
	AppendApplication(ctx context.Context, a *models.Application) error
	UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) error

	// SetAssignment records employment of userID at companyName, replacing
	// any existing assignment for the pair.
	SetAssignment(ctx context.Context, userID, companyName, employmentType string) error
	RemoveAssignment(ctx context.Context, userID, companyName string) error
}
