// internal/app/store/ledger/rows.go
package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/sakuramc/craftport/internal/domain/models"
)

// Row codecs between sheet rows ([]interface{} of cell values) and domain
// structs. Sheets returns short rows when trailing cells are empty, so
// every read goes through cell(), which tolerates missing columns.

// Column layouts. Header row is row 1; data starts at row 2.
const (
	companiesSheet    = "companies"
	applicationsSheet = "applications"
	assignmentsSheet  = "assignments"

	companyCols     = 14
	applicationCols = 11
	assignmentCols  = 4
)

const rowTimeLayout = time.RFC3339

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, ok := row[i].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func companyFromRow(row []interface{}) models.Company {
	maxPart, _ := strconv.Atoi(cell(row, 6))
	c := models.Company{
		ID:                   cell(row, 0),
		Name:                 cell(row, 1),
		Description:          cell(row, 2),
		Location:             cell(row, 3),
		EmploymentType:       cell(row, 4),
		Tags:                 splitList(cell(row, 5)),
		MaxParticipants:      maxPart,
		ImageURLs:            splitList(cell(row, 7)),
		CreatedBy:            cell(row, 8),
		CreatedByDiscordID:   cell(row, 9),
		CreatedByDiscordName: cell(row, 10),
		CreativeRequired:     cell(row, 11) == "TRUE",
		CreativeStatus:       models.CreativeStatus(cell(row, 12)),
		Active:               cell(row, 13) != "FALSE", // blank means active
	}
	if c.CreativeStatus == "" {
		c.CreativeStatus = models.CreativeNone
	}
	return c
}

func companyToRow(c *models.Company) []interface{} {
	return []interface{}{
		c.ID,
		c.Name,
		c.Description,
		c.Location,
		c.EmploymentType,
		joinList(c.Tags),
		strconv.Itoa(c.MaxParticipants),
		joinList(c.ImageURLs),
		c.CreatedBy,
		c.CreatedByDiscordID,
		c.CreatedByDiscordName,
		boolCell(c.CreativeRequired),
		string(c.CreativeStatus),
		boolCell(c.Active),
	}
}

func applicationFromRow(row []interface{}) models.Application {
	createdAt, _ := time.Parse(rowTimeLayout, cell(row, 10))
	a := models.Application{
		ID:              cell(row, 0),
		CompanyID:       cell(row, 1),
		CompanyName:     cell(row, 2),
		UserID:          cell(row, 3),
		Email:           cell(row, 4),
		DiscordID:       cell(row, 5),
		DiscordUsername: cell(row, 6),
		GameTag:         cell(row, 7),
		Motivation:      cell(row, 8),
		Status:          models.ApplicationStatus(cell(row, 9)),
		CreatedAt:       createdAt,
	}
	if a.Status == "" {
		a.Status = models.ApplicationPending
	}
	return a
}

func applicationToRow(a *models.Application) []interface{} {
	return []interface{}{
		a.ID,
		a.CompanyID,
		a.CompanyName,
		a.UserID,
		a.Email,
		a.DiscordID,
		a.DiscordUsername,
		a.GameTag,
		a.Motivation,
		string(a.Status),
		a.CreatedAt.UTC().Format(rowTimeLayout),
	}
}

func assignmentToRow(a *models.Assignment) []interface{} {
	return []interface{}{
		a.UserID,
		a.CompanyName,
		a.EmploymentType,
		a.CreatedAt.UTC().Format(rowTimeLayout),
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinList(vals []string) string {
	return strings.Join(vals, ",")
}

func boolCell(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
