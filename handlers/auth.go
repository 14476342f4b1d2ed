// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/agroconnect/agroconnect/auth"
	"github.com/agroconnect/agroconnect/cliparse"
	"github.com/agroconnect/agroconnect/middleware"
	"github.com/agroconnect/agroconnect/models"
)

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	// Validate input
	if !isValidEmail(req.Email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if strings.TrimSpace(req.Phone) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "phone is required")
		return
	}
	if !models.IsValidRole(req.Role) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role must be one of: farmer, buyer")
		return
	}

	// Check if user exists
	var existingID string
	err := h.db.QueryRow("SELECT id FROM users WHERE email = $1", req.Email).Scan(&existingID)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != sql.ErrNoRows {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user := models.User{
		ID:        auth.GenerateID(),
		Email:     req.Email,
		Name:      req.Name,
		Phone:     req.Phone,
		Role:      req.Role,
		Location:  req.Location,
		CreatedAt: time.Now().UTC(),
	}

	_, err = h.db.Exec(`
		INSERT INTO users (id, email, password_hash, name, phone, role, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, user.Email, hash, user.Name, user.Phone, user.Role, user.Location, user.CreatedAt)

	if err != nil {
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	token, err := auth.IssueToken(user.ID, h.cfg.SecretKey, time.Now())
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "role", user.Role)

	middleware.JSONResponse(w, http.StatusCreated, models.AuthResponse{
		Token: token,
		User:  user,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, email, password_hash, name, phone, role, location, created_at
		FROM users
		WHERE email = $1
	`, strings.TrimSpace(req.Email)).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.Phone, &user.Role, &user.Location, &user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(user.ID, h.cfg.SecretKey, time.Now())
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		Token: token,
		User:  user,
	})
}

// isValidEmail accepts a bare address such as "a@b.test"
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
