// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/projectrefind/refind/internal/app/features/admin"
	errorsfeature "github.com/projectrefind/refind/internal/app/features/errors"
	healthfeature "github.com/projectrefind/refind/internal/app/features/health"
	loginfeature "github.com/projectrefind/refind/internal/app/features/login"
	logoutfeature "github.com/projectrefind/refind/internal/app/features/logout"
	profilefeature "github.com/projectrefind/refind/internal/app/features/profile"
	registerfeature "github.com/projectrefind/refind/internal/app/features/register"
	reportsfeature "github.com/projectrefind/refind/internal/app/features/reports"
	userinfofeature "github.com/projectrefind/refind/internal/app/features/userinfo"
	userstore "github.com/projectrefind/refind/internal/app/store/users"
	"github.com/projectrefind/refind/internal/app/system/auth"
	"github.com/projectrefind/refind/internal/app/system/metrics"
	"github.com/projectrefind/refind/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. ReFind wires the session
// manager, request metrics, and the JSON feature routers: health,
// auth (login/logout/register), userinfo, profile, reports, history,
// and the admin review surface.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	tokens := auth.NewTokenManager(appCfg.TokenSecret, appCfg.TokenDuration)
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, tokens, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request so role
	// changes and disabled accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.Users))

	authn := auth.NewPasswordAuthenticator(deps.Users)
	errs := errorsfeature.NewResponder(logger)
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus scrape endpoint.
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// Authentication and account lifecycle. Login attempts are rate
	// limited per IP and per account.
	loginLimiter := ratelimit.NewLoginLimiter()
	loginfeature.MountRoutes(r, loginfeature.NewHandler(authn, sessionMgr, loginLimiter, errs, logger))
	logoutfeature.MountRoutes(r, logoutfeature.NewHandler(sessionMgr, logger))
	registerfeature.MountRoutes(r, registerfeature.NewHandler(authn, deps.Users, deps.Profiles, appCfg.AdminEmail, errs, logger))
	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	// Profile (nama, NIM) for the signed-in user.
	profileHandler := profilefeature.NewHandler(deps.Profiles, errs, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	// Lost and found reports, plus the per-user history view.
	reportsHandler := reportsfeature.NewHandler(deps.Reports, deps.Agg, errs, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, sessionMgr))
	reportsfeature.MountHistory(r, reportsHandler, sessionMgr)

	// Admin review surface over the combined snapshot.
	adminHandler := adminfeature.NewHandler(deps.Agg, adminfeature.MongoCounts(deps.MongoDatabase), errs, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler, sessionMgr))

	return r, nil
}
