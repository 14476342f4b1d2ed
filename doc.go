// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the AgroConnect API server.

AgroConnect connects farmers, who list harvested or upcoming crops, with
buyers, who search those listings and send inquiries to the farmer. The
terminal client lives in cmd/agroconnect.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	SECRET_KEY=change-me go run .

Or with flags:

	go run . -p 8001 -t postgres -d "postgres://..." -secret change-me

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - SECRET_KEY (-secret): token signing key

Optional settings:

  - PORT (-p): server port (default: 8001)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string (default: agroconnect.db)
  - CORS_ORIGINS (-cors): comma-separated allowed origins (default: *)
  - LOG_FILE (-log-file), LOG_FORMAT (-log-format): rotating log file, text or json

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, crops, messages, market prices)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer authentication, JSON helpers
  - models: Request/response types shared with the client
  - auth: Password hashing and token issue/verify
  - db: Connection, schema creation and seeding
  - cliparse: Configuration parsing
  - logging: slog setup with optional file rotation

The client side is layered as session (persisted login), apiclient (HTTP
calls), navigation (route resolution) and views (screen behavior).

See package documentation for each component.
*/
package main
