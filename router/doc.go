// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the AgroConnect API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Authentication (public):

	POST /api/auth/register - Create account, returns {token, user}
	POST /api/auth/login    - Exchange credentials for {token, user}

Crops:

	GET    /api/crops                 - Search available crops (public)
	GET    /api/crops/my-crops        - Caller's crops (farmer)
	POST   /api/crops                 - Create crop (farmer)
	DELETE /api/crops/{id}            - Delete own crop
	PUT    /api/crops/{id}/status     - Set status of own crop

Messages:

	POST /api/messages          - Contact a farmer about a crop (buyer)
	GET  /api/messages/received - Inquiries addressed to the caller (farmer)

Market prices (public):

	GET  /api/market-prices
	POST /api/init-market-prices

Authenticated routes expect "Authorization: Bearer <token>". Role-restricted
routes answer 403 for the other role.
*/
package router
