// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging, timeouts); AppConfig is
// everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Identity token configuration
	JWTSecret string        // HMAC signing key for bearer tokens (must be strong in production)
	JWTTTL    time.Duration // token lifetime

	// FacilitatorCode gates facilitator self-registration.
	FacilitatorCode string

	// BcryptCost is the work factor for password hashing.
	BcryptCost int
}
