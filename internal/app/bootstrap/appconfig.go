// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP/HTTPS ports,
// TLS, logging level, request limits). AppConfig is everything specific
// to craftport: backend connection details, the Discord credentials, the
// admin allowlists, and workflow behavior flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: craftport-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Bearer-token auth for the companion launcher and bots
	JWTSecret string // HMAC secret for bearer tokens

	// Admin allowlists. Admins can decide any application and are the
	// only principals allowed to grant creative permission.
	AdminEmails     string // comma-separated email allowlist
	AdminDiscordIDs string // comma-separated Discord user ID allowlist

	// Discord integration
	DiscordBotToken  string // bot token for DMs and channel posts
	DiscordPublicKey string // hex-encoded Ed25519 key for webhook verification
	AdminChannelID   string // channel that receives creative-permission requests

	// Spreadsheet ledger
	SheetsSpreadsheetID   string // spreadsheet holding companies/applications/assignments
	SheetsCredentialsFile string // path to the service-account JSON key

	// Workflow behavior
	RequireLoginForApply bool          // reject anonymous application submissions
	NotifyTimeout        time.Duration // per-call budget for Discord sends
}
