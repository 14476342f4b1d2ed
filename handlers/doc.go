// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the AgroConnect API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: registration and login
  - CropHandler: crop listings, owned listings, create, delete, status
  - MessageHandler: buyer inquiries and the farmer inbox
  - MarketHandler: reference market prices

Handlers are created via constructor functions that accept *sql.DB and Config:

	cropHandler := handlers.NewCropHandler(db, cfg)

# Authentication

Handlers behind middleware.Authenticator read the caller with
middleware.UserFromContext. Role checks live in the router, ownership checks
live in the queries: deleting or updating another farmer's crop yields 404.

# Error Handling

All errors are returned as JSON:

	{"error": "Bad Request", "detail": "Email already registered"}

List endpoints return at most 100 rows, newest first, and always encode an
empty result as [] rather than null.
*/
package handlers
