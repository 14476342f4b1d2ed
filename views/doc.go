// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views holds the screen behavior of the AgroConnect client, independent
of how it is drawn.

# Views

  - AuthView: login and registration, single-flight per form
  - ProducerView: a farmer's listings, inbox and market prices
  - PurchaserView: search, market prices and the compose context
  - App: owns the session store, resolves paths and builds the view the
    current role may see

Every view takes the same three collaborators:

	api     API (satisfied by *apiclient.Client)
	store   *session.Store
	notify  Notifier (transient success/error messages)

# Synchronization

Views never patch their lists locally. After every successful write the
affected list is read again from the backend; when that read fails the
previous list stays on screen. Two clients editing the same listing race and
the last write wins.

# Errors

Operations return the error they notified about:

  - *ValidationError: rejected before any request was made
  - *apiclient.APIError: the backend refused; its detail is shown verbatim
  - apiclient.ErrUnreachable: the backend could not be reached

ErrInFlight is returned without a request when the same action is still
running.
*/
package views
