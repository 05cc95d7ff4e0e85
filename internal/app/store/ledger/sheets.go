// internal/app/store/ledger/sheets.go
package ledger

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sakuramc/craftport/internal/domain/models"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsLedger talks to the shared Google Sheets spreadsheet that backs
// companies, applications, and assignments. One sheet (tab) per entity;
// row 1 is the header.
type SheetsLedger struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsLedger builds a ledger client from a service-account
// credentials file.
func NewSheetsLedger(ctx context.Context, spreadsheetID, credentialsFile string) (*SheetsLedger, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("ledger: read credentials: %w", err)
	}
	cfg, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("ledger: parse credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("ledger: sheets service: %w", err)
	}
	return &SheetsLedger{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (l *SheetsLedger) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	rows, err := l.readRows(ctx, companiesSheet, companyCols)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if cell(row, 0) == id {
			c := companyFromRow(row)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (l *SheetsLedger) ListCompanies(ctx context.Context) ([]models.Company, error) {
	rows, err := l.readRows(ctx, companiesSheet, companyCols)
	if err != nil {
		return nil, err
	}
	companies := make([]models.Company, 0, len(rows))
	for _, row := range rows {
		if cell(row, 0) == "" {
			continue
		}
		companies = append(companies, companyFromRow(row))
	}
	return companies, nil
}

func (l *SheetsLedger) AppendCompany(ctx context.Context, c *models.Company) error {
	return l.appendRow(ctx, companiesSheet, companyCols, companyToRow(c))
}

func (l *SheetsLedger) UpdateCompany(ctx context.Context, id string, patch CompanyPatch) error {
	idx, row, err := l.findRow(ctx, companiesSheet, companyCols, id)
	if err != nil {
		return err
	}
	c := companyFromRow(row)
	if patch.CreativeStatus != nil {
		c.CreativeStatus = *patch.CreativeStatus
	}
	if patch.Active != nil {
		c.Active = *patch.Active
	}
	return l.writeRow(ctx, companiesSheet, companyCols, idx, companyToRow(&c))
}

func (l *SheetsLedger) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	rows, err := l.readRows(ctx, applicationsSheet, applicationCols)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if cell(row, 0) == id {
			a := applicationFromRow(row)
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (l *SheetsLedger) ListApplications(ctx context.Context, companyID string) ([]models.Application, error) {
	rows, err := l.readRows(ctx, applicationsSheet, applicationCols)
	if err != nil {
		return nil, err
	}
	apps := make([]models.Application, 0, len(rows))
	for _, row := range rows {
		if cell(row, 0) == "" {
			continue
		}
		if companyID != "" && cell(row, 1) != companyID {
			continue
		}
		apps = append(apps, applicationFromRow(row))
	}
	return apps, nil
}

func (l *SheetsLedger) AppendApplication(ctx context.Context, a *models.Application) error {
	return l.appendRow(ctx, applicationsSheet, applicationCols, applicationToRow(a))
}

func (l *SheetsLedger) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	idx, _, err := l.findRow(ctx, applicationsSheet, applicationCols, id)
	if err != nil {
		return err
	}
	// Status is column J (index 9); only that one cell is rewritten.
	rng := fmt.Sprintf("%s!J%d", applicationsSheet, idx)
	vr := &sheets.ValueRange{Values: [][]interface{}{{string(status)}}}
	_, err = l.svc.Spreadsheets.Values.Update(l.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ledger: update application status: %w", err)
	}
	return nil
}

func (l *SheetsLedger) SetAssignment(ctx context.Context, userID, companyName, employmentType string) error {
	// Replace semantics: drop any existing row for the pair first.
	if err := l.RemoveAssignment(ctx, userID, companyName); err != nil {
		return err
	}
	a := models.Assignment{
		UserID:         userID,
		CompanyName:    companyName,
		EmploymentType: employmentType,
		CreatedAt:      time.Now(),
	}
	return l.appendRow(ctx, assignmentsSheet, assignmentCols, assignmentToRow(&a))
}

func (l *SheetsLedger) RemoveAssignment(ctx context.Context, userID, companyName string) error {
	rows, err := l.readRows(ctx, assignmentsSheet, assignmentCols)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if cell(row, 0) == userID && cell(row, 1) == companyName {
			rng := fmt.Sprintf("%s!A%d:%s%d", assignmentsSheet, i+2, colLetter(assignmentCols), i+2)
			_, err := l.svc.Spreadsheets.Values.Clear(l.spreadsheetID, rng, &sheets.ClearValuesRequest{}).
				Context(ctx).Do()
			if err != nil {
				return fmt.Errorf("ledger: clear assignment: %w", err)
			}
			return nil
		}
	}
	// Nothing to remove is not an error; dismissal of a user whose
	// assignment row was already cleaned up should still succeed.
	return nil
}

// readRows returns all data rows of a sheet (everything below the header).
func (l *SheetsLedger) readRows(ctx context.Context, sheet string, cols int) ([][]interface{}, error) {
	rng := fmt.Sprintf("%s!A2:%s", sheet, colLetter(cols))
	resp, err := l.svc.Spreadsheets.Values.Get(l.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ledger: read %s: %w", sheet, err)
	}
	return resp.Values, nil
}

// findRow locates the data row whose first cell equals id and returns its
// 1-based sheet row number along with the row values.
func (l *SheetsLedger) findRow(ctx context.Context, sheet string, cols int, id string) (int, []interface{}, error) {
	rows, err := l.readRows(ctx, sheet, cols)
	if err != nil {
		return 0, nil, err
	}
	for i, row := range rows {
		if cell(row, 0) == id {
			return i + 2, row, nil
		}
	}
	return 0, nil, ErrNotFound
}

func (l *SheetsLedger) writeRow(ctx context.Context, sheet string, cols, rowNum int, row []interface{}) error {
	rng := fmt.Sprintf("%s!A%d:%s%d", sheet, rowNum, colLetter(cols), rowNum)
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := l.svc.Spreadsheets.Values.Update(l.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ledger: update %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

func (l *SheetsLedger) appendRow(ctx context.Context, sheet string, cols int, row []interface{}) error {
	rng := fmt.Sprintf("%s!A:%s", sheet, colLetter(cols))
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := l.svc.Spreadsheets.Values.Append(l.spreadsheetID, rng, vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ledger: append to %s: %w", sheet, err)
	}
	return nil
}

func colLetter(n int) string {
	// Sheets are narrow enough that single letters suffice (A=1).
	return string(rune('A' + n - 1))
}
