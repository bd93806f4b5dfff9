package routes

import (
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Authenticator builds the authentication gate for a route; onUnavailable answers
// requests whose identity provider could not be reached.
type Authenticator func(onUnavailable middleware.UnavailableHandler) fiber.Handler

// NewAuthenticator returns the gate for cfg.AuthProvider. provider is only used
// by the supabase mode.
func NewAuthenticator(cfg *config.Config, provider identity.Provider) Authenticator {
	if cfg.AuthProvider == config.AuthProviderJWT {
		jwtGate := middleware.JWTIdentity(cfg)
		return func(middleware.UnavailableHandler) fiber.Handler { return jwtGate }
	}
	return func(onUnavailable middleware.UnavailableHandler) fiber.Handler {
		return middleware.RequireIdentity(provider, cfg.IdentityTimeout, onUnavailable)
	}
}

func Setup(
	app *fiber.App,
	auth Authenticator,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	extractHandler *handlers.ExtractHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// The method gate runs before authentication: only the listed verb reaches auth.
	api.Post("/saveReport", auth(handlers.SaveUnavailable), reportHandler.SaveReport)
	api.All("/saveReport", middleware.MethodNotAllowed(fiber.MethodPost))

	api.Get("/getReports", auth(handlers.ListUnavailable), reportHandler.GetReports)
	api.All("/getReports", middleware.MethodNotAllowed(fiber.MethodGet))

	api.Post("/extract", auth(handlers.ExtractUnavailable), extractHandler.Extract)
	api.All("/extract", middleware.MethodNotAllowed(fiber.MethodPost))

	api.Get("/me", auth(handlers.MeUnavailable), handlers.Me)
}
