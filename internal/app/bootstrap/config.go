// internal/app/bootstrap/config.go
package bootstrap

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for craftport.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: CRAFTPORT_MONGO_URI, CRAFTPORT_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "craftport", Desc: "MongoDB database name"},

	{Name: "session_key", Default: "", Desc: "Session signing key (must be strong in production; blank generates an ephemeral dev key)"},
	{Name: "session_name", Default: "craftport-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "jwt_secret", Default: "", Desc: "HMAC secret for bearer tokens"},

	{Name: "admin_emails", Default: "", Desc: "Comma-separated admin email allowlist"},
	{Name: "admin_discord_ids", Default: "", Desc: "Comma-separated admin Discord user ID allowlist"},

	{Name: "discord_bot_token", Default: "", Desc: "Discord bot token for DMs and channel posts"},
	{Name: "discord_public_key", Default: "", Desc: "Hex-encoded Ed25519 public key for webhook verification"},
	{Name: "admin_channel_id", Default: "", Desc: "Discord channel for creative-permission requests"},

	{Name: "sheets_spreadsheet_id", Default: "", Desc: "Google Sheets spreadsheet ID for the ledger"},
	{Name: "sheets_credentials_file", Default: "credentials.json", Desc: "Path to the Google service-account JSON key"},

	{Name: "require_login_for_apply", Default: false, Desc: "Reject anonymous application submissions"},
	{Name: "notify_timeout", Default: "10s", Desc: "Per-call budget for Discord sends (e.g., 5s, 10s)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific to
// this app. config.LoadWithAppConfig merges .env files, config files,
// CRAFTPORT_* environment variables, and command-line flags, with
// precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CRAFTPORT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		JWTSecret:     appValues.String("jwt_secret"),

		AdminEmails:     appValues.String("admin_emails"),
		AdminDiscordIDs: appValues.String("admin_discord_ids"),

		DiscordBotToken:  appValues.String("discord_bot_token"),
		DiscordPublicKey: appValues.String("discord_public_key"),
		AdminChannelID:   appValues.String("admin_channel_id"),

		SheetsSpreadsheetID:   appValues.String("sheets_spreadsheet_id"),
		SheetsCredentialsFile: appValues.String("sheets_credentials_file"),

		RequireLoginForApply: appValues.Bool("require_login_for_apply"),
		NotifyTimeout:        appValues.Duration("notify_timeout", 10*time.Second),
	}

	// An unset session key locks everyone out of sessions; in dev an
	// ephemeral key is more useful than a fatal error. Sessions will not
	// survive restarts until a real key is configured.
	if appCfg.SessionKey == "" {
		appCfg.SessionKey = hex.EncodeToString(securecookie.GenerateRandomKey(32))
		logger.Warn("session_key not set; generated an ephemeral key (sessions reset on restart)")
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Catching bad connection settings here means a clear message at boot
// instead of a confusing failure on first use.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.SheetsSpreadsheetID == "" {
		return fmt.Errorf("sheets_spreadsheet_id must be set")
	}
	if appCfg.DiscordBotToken == "" {
		return fmt.Errorf("discord_bot_token must be set")
	}
	if appCfg.DiscordPublicKey == "" {
		return fmt.Errorf("discord_public_key must be set")
	}

	return nil
}
