// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/projectrefind/refind/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// refreshCancel stops the background snapshot refresh on shutdown.
var refreshCancel context.CancelFunc

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// It promotes the configured admin account, primes the combined report
// snapshot, and starts the background refresh loop.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := promoteConfiguredAdmin(ctx, deps.Users, appCfg.AdminEmail, logger); err != nil {
		return err
	}

	var refreshCtx context.Context
	refreshCtx, refreshCancel = context.WithCancel(context.Background())
	go deps.Agg.RunRefresh(refreshCtx, appCfg.RefreshInterval)

	return nil
}

// promoteConfiguredAdmin grants the admin role to the account matching
// admin_email. A blank email or a not-yet-registered account is fine;
// registration promotes the account the moment it appears.
func promoteConfiguredAdmin(ctx context.Context, users userstore.Store, adminEmail string, logger *zap.Logger) error {
	if adminEmail == "" {
		return nil
	}
	if err := users.EnsureAdmin(ctx, adminEmail); err != nil {
		logger.Error("admin promotion failed", zap.String("email", adminEmail), zap.Error(err))
		return err
	}
	logger.Info("admin role ensured", zap.String("email", adminEmail))
	return nil
}
