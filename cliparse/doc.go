// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Server Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

  - Port: Server listen port (default: 8001)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: connection string (default for sqlite: agroconnect.db)
  - SecretKey: token signing key (required)
  - CORSOrigins: allowed origins (default: *)
  - LogFile, LogFormat: optional rotating log file and text/json output

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-secret     Token signing key
	-cors       Comma-separated allowed origins
	-log-file   Rotating log file
	-log-format text or json

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	SECRET_KEY    → -secret
	CORS_ORIGINS  → -cors
	LOG_FILE      → -log-file
	LOG_FORMAT    → -log-format

CLI flags take precedence over environment variables. LoadEnv reads a .env
file first so both the server and the terminal client can be configured from
one place.

# Client Configuration

ClientFromEnv reads AGROCONNECT_BACKEND_URL, AGROCONNECT_SESSION_FILE and
AGROCONNECT_TIMEOUT for the terminal client.
*/
package cliparse
