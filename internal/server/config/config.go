// Package config handles configuration for the userhub server: defaults,
// then an optional JSON file, then environment variables, then command-line
// flags. The merged result is validated before the server starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the userhub server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - AccessTokenValidityDuration: access token lifetime.
//   - S3RootUser / S3RootPassword: media host access key and secret.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - S3PublicBaseURL: base of the durable URLs handed to clients.
//   - LoginRateLimit / LoginRateWindow: login attempts allowed per client IP per window.
//   - MaxUploadBytes: profile picture size cap.
//   - PasswordHashCost: bcrypt cost factor.
type Config struct {
	EndpointAddrHTTP            string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
	S3PublicBaseURL             string
	LoginRateLimit              int
	LoginRateWindow             time.Duration
	MaxUploadBytes              int64
	PasswordHashCost            int
	LogLevel                    string
}

// LoadDefaults populates the settings that have a safe default. Secrets and
// connection strings intentionally have none.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3000"
	c.AccessTokenValidityDuration = 60 * time.Second
	c.S3Region = "us-east-1"
	c.LoginRateLimit = 5
	c.LoginRateWindow = 2 * time.Minute
	c.MaxUploadBytes = 5 << 20
	c.PasswordHashCost = 10
	c.LogLevel = "info"
}

// Validate reports every missing or out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{"http endpoint address", c.EndpointAddrHTTP},
		{"database DSN", c.DatabaseDSN},
		{"token secret key", c.SecretKey},
		{"media access key", c.S3RootUser},
		{"media secret key", c.S3RootPassword},
		{"media bucket", c.S3Bucket},
		{"media region", c.S3Region},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.name))
		}
	}

	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("access token validity duration must be positive"))
	}
	if c.LoginRateLimit <= 0 {
		errs = append(errs, errors.New("login rate limit must be positive"))
	}
	if c.LoginRateWindow <= 0 {
		errs = append(errs, errors.New("login rate window must be positive"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("max upload bytes must be positive"))
	}
	if c.PasswordHashCost < bcrypt.MinCost || c.PasswordHashCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("password hash cost must be within [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost))
	}

	return errors.Join(errs...)
}

// Load builds a Config from defaults, the JSON file named by -c/-config in
// args, the environment seen through lookupEnv, and the flags in args.
func Load(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg, lookupEnv); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadConfig is Load over the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.LookupEnv)
}
