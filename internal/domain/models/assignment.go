// internal/domain/models/assignment.go
package models

import "time"

// Assignment links a user to a company as an employee. It is a derived
// projection of the latest approved/dismissed application per
// (user, company): created when an application is approved, removed on
// dismissal or resignation. At most one active assignment exists per
// (user, company) pair.
type Assignment struct {
	UserID         string    `json:"user_id"`
	CompanyName    string    `json:"company_name"`
	EmploymentType string    `json:"employment_type"`
	CreatedAt      time.Time `json:"created_at"`
}
