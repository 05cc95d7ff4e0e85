// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	applicationsfeature "github.com/sakuramc/craftport/internal/app/features/applications"
	companiesfeature "github.com/sakuramc/craftport/internal/app/features/companies"
	healthfeature "github.com/sakuramc/craftport/internal/app/features/health"
	statusfeature "github.com/sakuramc/craftport/internal/app/features/status"
	webhookfeature "github.com/sakuramc/craftport/internal/app/features/webhook"
	"github.com/sakuramc/craftport/internal/app/policy/companypolicy"
	livestatusstore "github.com/sakuramc/craftport/internal/app/store/livestatus"
	"github.com/sakuramc/craftport/internal/app/system/auth"
	"github.com/sakuramc/craftport/internal/app/system/notify"
	"github.com/sakuramc/craftport/internal/app/system/recruit"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The wiring order mirrors the data
// flow: identity resolver and policy guard first, then the Discord
// notifier and dispatcher, then the transition engine, then the feature
// routers that drive it.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	resolver, err := auth.NewResolver(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, appCfg.JWTSecret, logger)
	if err != nil {
		logger.Error("auth resolver init failed", zap.Error(err))
		return nil, err
	}

	guard := companypolicy.NewGuard(appCfg.AdminEmails, appCfg.AdminDiscordIDs)

	notifier, err := notify.NewDiscordNotifier(appCfg.DiscordBotToken, appCfg.NotifyTimeout, logger)
	if err != nil {
		logger.Error("discord notifier init failed", zap.Error(err))
		return nil, err
	}

	dispatcher := recruit.NewDispatcher(deps.Ledger, notifier, appCfg.AdminChannelID, appCfg.NotifyTimeout, logger)
	engine := recruit.NewEngine(deps.Ledger, guard, dispatcher, logger)

	webhookHandler, err := webhookfeature.NewHandler(engine, appCfg.DiscordPublicKey, logger)
	if err != nil {
		logger.Error("webhook handler init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global auth middleware: resolves the caller (bearer token or session
	// cookie) into a principal for all handlers via auth.CurrentPrincipal.
	r.Use(resolver.LoadPrincipal)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Recruitment workflow
	companiesHandler := companiesfeature.NewHandler(engine, dispatcher, deps.Ledger, guard, logger)
	r.Mount("/companies", companiesfeature.Routes(companiesHandler))

	applicationsHandler := applicationsfeature.NewHandler(engine, deps.Ledger, guard, appCfg.RequireLoginForApply, logger)
	r.Mount("/applications", applicationsfeature.Routes(applicationsHandler))

	// Discord interaction callbacks (button presses)
	r.Mount("/webhooks", webhookfeature.Routes(webhookHandler))

	// Live-status board
	statusHandler := statusfeature.NewHandler(livestatusstore.New(deps.MongoDatabase), logger)
	r.Mount("/status", statusfeature.Routes(statusHandler))

	return r, nil
}
