// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ReFind.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: REFIND_MONGO_URI, REFIND_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "refind", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "refind_session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Bearer tokens for the mobile client
	{Name: "token_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "HMAC secret for bearer tokens (must be strong in production)"},
	{Name: "token_duration", Default: "24h", Desc: "Bearer token lifetime (e.g., 24h, 30m)"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the admin account (promoted on startup and at registration)"},

	// Combined-view aggregator
	{Name: "refresh_interval", Default: "5m", Desc: "Background refresh interval for the combined report snapshot"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// environment variables (WAFFLE_* for core, REFIND_* for app), and
// command-line flags, with precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "REFIND", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),

		TokenSecret:   appValues.String("token_secret"),
		TokenDuration: appValues.Duration("token_duration", 24*time.Hour),

		AdminEmail: appValues.String("admin_email"),

		RefreshInterval: appValues.Duration("refresh_interval", 5*time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// ReFind validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and rejects signing keys too
// short to be meaningful.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters")
	}
	if len(appCfg.TokenSecret) < 32 {
		return fmt.Errorf("token_secret must be at least 32 characters")
	}
	if appCfg.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	if appCfg.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive")
	}

	return nil
}
