package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/userhub/internal/flagx"
)

// parseFlags overlays values from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":3000")
//	-d string     PostgreSQL DSN
//	-s string     token HMAC secret key
//	-t duration   access token validity (e.g., "60s")
//	-u string     media access key
//	-p string     media secret key
//	-b string     media bucket
//	-g string     media region
//	-e string     media base endpoint (e.g., "http://127.0.0.1:9000/")
//	-w string     public base URL for stored objects
//	-l int        login attempts per window
//	-i duration   login rate window
//	-m int        max upload size, bytes
//	-k int        bcrypt cost
//	-v string     log level
//
// Only the flags above are picked out of args (see flagx.FilterArgs), so the
// -c/-config flag handled by parseJson does not collide.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-a", "-d", "-s", "-t", "-u", "-p", "-b", "-g", "-e", "-w", "-l", "-i", "-m", "-k", "-v",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "access token validity duration")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 access key")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicBaseURL, "w", config.S3PublicBaseURL, "public base URL of stored objects")

	fs.IntVar(&config.LoginRateLimit, "l", config.LoginRateLimit, "login attempts per window and client")
	fs.DurationVar(&config.LoginRateWindow, "i", config.LoginRateWindow, "login rate window")
	fs.Int64Var(&config.MaxUploadBytes, "m", config.MaxUploadBytes, "max upload size in bytes")
	fs.IntVar(&config.PasswordHashCost, "k", config.PasswordHashCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	return fs.Parse(args)
}
