// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session persists the client's authenticated identity.

A Store holds at most one Session (token plus user profile) in memory and
mirrors it into a Storage under two fixed keys:

	token  the bearer token
	user   the user profile as JSON

Storage implementations:

  - FileStorage: a single JSON document replaced atomically on every write
  - MemoryStorage: a map, for tests and ephemeral clients

Typical lifecycle:

	store := session.NewStore(session.NewFileStorage(path))
	sess, err := store.Load()        // nil when nothing usable is stored
	err = store.Save(token, user)    // after login or registration
	err = store.Clear()              // logout

Tokens are never refreshed or expired locally; a token is trusted until the
backend rejects it.
*/
package session
