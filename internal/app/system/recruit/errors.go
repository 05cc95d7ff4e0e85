// internal/app/system/recruit/errors.go
package recruit

import "errors"

// Domain errors for the approval workflow. Transport layers map these to
// status codes (403/404/400) or to the webhook's ephemeral reply text;
// anything else that escapes an operation is a collaborator failure and
// maps to 500.
var (
	// ErrForbidden: the principal resolved but lacks rights for the company.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound: the application or company does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition: the current state is not the required source
	// state. This is also the duplicate-delivery guard: a second decision
	// on the same application observes the moved state and lands here.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrValidation: a required input is missing or malformed.
	ErrValidation = errors.New("validation failed")
)
