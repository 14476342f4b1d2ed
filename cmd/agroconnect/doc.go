// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Command agroconnect is the terminal client for AgroConnect.

It keeps one session in a file and shows whichever screen the session's role
may see:

	agroconnect register --name Asha --phone 98... --email a@b.test --role farmer
	agroconnect open /            # farmer dashboard for farmers, listings for buyers
	agroconnect crops add --type Wheat --quantity 40 --price 2150 --harvest 2026-04-01 --description Lokwan
	agroconnect crops status <id> # toggle available/sold
	agroconnect search --type rice --location guntur
	agroconnect contact <crop-id> --message "Rate for 20 quintal?"
	agroconnect logout

# Configuration

	AGROCONNECT_BACKEND_URL   backend address (default http://localhost:8001), or --backend
	AGROCONNECT_SESSION_FILE  session file (default $XDG_CONFIG_HOME/agroconnect/session.json), or --session
	AGROCONNECT_TIMEOUT       per-request timeout (default 30s, 0 disables)

A .env file in the working directory is read first.
*/
package main
