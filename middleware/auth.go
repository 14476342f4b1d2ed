// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/agroconnect/agroconnect/auth"
	"github.com/agroconnect/agroconnect/models"
)

type userKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the user stored by RequireUser
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey{}).(*models.User)
	return user, ok && user != nil
}

// Authenticator resolves bearer tokens to users
type Authenticator struct {
	db     *sql.DB
	secret string
}

func NewAuthenticator(db *sql.DB, secret string) *Authenticator {
	return &Authenticator{db: db, secret: secret}
}

// RequireUser rejects requests without a valid bearer token and stores the
// token's user in the request context.
func (a *Authenticator) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		userID, err := auth.ParseToken(token, a.secret)
		if errors.Is(err, auth.ErrTokenExpired) {
			ErrorResponse(w, http.StatusUnauthorized, "Token expired")
			return
		}
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Invalid authentication")
			return
		}

		user, err := LookupUser(a.db, userID)
		if err == sql.ErrNoRows {
			ErrorResponse(w, http.StatusUnauthorized, "User not found")
			return
		}
		if err != nil {
			slog.Error("failed to query user", "error", err)
			ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// RequireRole rejects authenticated users whose role differs from role.
// Must run inside RequireUser.
func RequireRole(role, detail string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if user.Role != role {
			ErrorResponse(w, http.StatusForbidden, detail)
			return
		}
		next(w, r)
	}
}

// LookupUser loads a user by ID
func LookupUser(db *sql.DB, userID string) (*models.User, error) {
	var user models.User
	err := db.QueryRow(`
		SELECT id, email, password_hash, name, phone, role, location, created_at
		FROM users
		WHERE id = $1
	`, userID).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.Phone, &user.Role, &user.Location, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
