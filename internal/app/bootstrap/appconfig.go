// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, body limits). AppConfig is everything specific to
// ReFind itself, loaded in LoadConfig from files, environment
// variables, or flags.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: refind_session)
	SessionDomain string // Cookie domain (blank means current host)

	// Bearer token configuration for the mobile client
	TokenSecret   string        // HMAC secret for signing bearer tokens
	TokenDuration time.Duration // Token lifetime (e.g., 24h)

	// AdminEmail, when set, promotes the matching account to the admin
	// role at startup and at registration. Blank disables promotion.
	AdminEmail string

	// RefreshInterval controls how often the combined-view aggregator
	// refreshes its snapshot in the background.
	RefreshInterval time.Duration
}
