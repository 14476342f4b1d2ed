// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# Authentication

Authenticator resolves "Authorization: Bearer <token>" to a user and stores
it in the request context:

	authn := middleware.NewAuthenticator(db, cfg.SecretKey)
	mux.HandleFunc("GET /api/crops/my-crops", authn.RequireUser(
		middleware.RequireRole(models.RoleFarmer, "Only farmers can access this", h.MyCrops)))

	user, _ := middleware.UserFromContext(r.Context())

Failures answer 401 with detail "Not authenticated", "Token expired",
"Invalid authentication" or "User not found"; RequireRole answers 403.

# CORS Middleware

Enable cross-origin requests for the configured origins:

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigins, mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Email already registered")

Error bodies are {"error": <status text>, "detail": <message>}; clients show
the detail verbatim.

	var req models.CreateCropRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)
*/
package middleware
