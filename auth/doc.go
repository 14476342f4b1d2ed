// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifiers, password hashing and bearer tokens.

# ID Generation

Random UUIDs for database records:

	id := auth.GenerateID()

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password) // ErrInvalidCredentials on mismatch

# Bearer Tokens

Tokens are HS256 JWTs whose subject is the user ID. They expire after
TokenTTL (30 days) and are never refreshed:

	token, err := auth.IssueToken(userID, secret, time.Now())
	userID, err := auth.ParseToken(token, secret)

ParseToken returns ErrTokenExpired for expired tokens and ErrInvalidToken for
anything else it cannot verify.
*/
package auth
