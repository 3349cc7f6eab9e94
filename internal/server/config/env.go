package config

import (
	"fmt"
	"strconv"
	"time"
)

// parseEnv overlays values from the environment. PORT is honored for
// platforms that only hand out a port number; ENDPOINT_ADDR_HTTP wins over it.
func parseEnv(config *Config, lookupEnv func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookupEnv(name); ok && v != "" {
			*dst = v
		}
	}

	if port, ok := lookupEnv("PORT"); ok && port != "" {
		config.EndpointAddrHTTP = ":" + port
	}
	str("ENDPOINT_ADDR_HTTP", &config.EndpointAddrHTTP)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("JWT_SECRET", &config.SecretKey)
	str("S3_ACCESS_KEY", &config.S3RootUser)
	str("S3_SECRET_KEY", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_ENDPOINT", &config.S3BaseEndpoint)
	str("S3_PUBLIC_BASE_URL", &config.S3PublicBaseURL)
	str("LOG_LEVEL", &config.LogLevel)

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration},
		{"LOGIN_RATE_WINDOW", &config.LoginRateWindow},
	}
	for _, d := range durations {
		v, ok := lookupEnv(d.name)
		if !ok || v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = parsed
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"LOGIN_RATE_LIMIT", &config.LoginRateLimit},
		{"BCRYPT_COST", &config.PasswordHashCost},
	}
	for _, i := range ints {
		v, ok := lookupEnv(i.name)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", i.name, err)
		}
		*i.dst = parsed
	}

	if v, ok := lookupEnv("MAX_UPLOAD_BYTES"); ok && v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
		config.MaxUploadBytes = parsed
	}

	return nil
}
