// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/agroconnect/agroconnect/models"
	"github.com/agroconnect/agroconnect/session"
)

type LoginForm struct {
	Email    string
	Password string
}

type RegisterForm struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Role     string // defaults to farmer
	Location string
}

func (f LoginForm) validate() error {
	switch {
	case strings.TrimSpace(f.Email) == "":
		return invalid("email", "Email is required")
	case f.Password == "":
		return invalid("password", "Password is required")
	}
	return nil
}

func (f RegisterForm) validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return invalid("name", "Name is required")
	case strings.TrimSpace(f.Phone) == "":
		return invalid("phone", "Phone is required")
	case strings.TrimSpace(f.Email) == "":
		return invalid("email", "Email is required")
	case f.Password == "":
		return invalid("password", "Password is required")
	case !models.IsValidRole(f.Role):
		return invalid("role", "Role must be farmer or buyer")
	}
	return nil
}

// AuthView exchanges credentials for a session. Form values survive failed
// submits.
type AuthView struct {
	api    API
	store  *session.Store
	notify Notifier

	loginBusy    atomic.Bool
	registerBusy atomic.Bool

	mu       sync.Mutex
	login    LoginForm
	register RegisterForm
}

func NewAuthView(api API, store *session.Store, notify Notifier) *AuthView {
	return &AuthView{
		api:      api,
		store:    store,
		notify:   notify,
		register: RegisterForm{Role: models.RoleFarmer},
	}
}

// LoginForm returns the last submitted login values
func (v *AuthView) LoginForm() LoginForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.login
}

// RegisterForm returns the last submitted registration values
func (v *AuthView) RegisterForm() RegisterForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.register
}

// Busy reports whether either form has a request in flight
func (v *AuthView) Busy() bool {
	return v.loginBusy.Load() || v.registerBusy.Load()
}

// Login submits the login form. A second call while one is running returns
// ErrInFlight and sends nothing.
func (v *AuthView) Login(ctx context.Context, form LoginForm) (*session.Session, error) {
	if !v.loginBusy.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer v.loginBusy.Store(false)

	v.mu.Lock()
	v.login = form
	v.mu.Unlock()

	if err := form.validate(); err != nil {
		v.notify.Error(UserMessage(err, msgAuthFailed))
		return nil, err
	}

	resp, err := v.api.Login(ctx, strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		v.notify.Error(UserMessage(err, msgAuthFailed))
		return nil, fmt.Errorf("login: %w", err)
	}

	return v.establish(resp, msgLoginOK)
}

// Register submits the registration form. An empty role registers a farmer.
func (v *AuthView) Register(ctx context.Context, form RegisterForm) (*session.Session, error) {
	if !v.registerBusy.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer v.registerBusy.Store(false)

	if form.Role == "" {
		form.Role = models.RoleFarmer
	}

	v.mu.Lock()
	v.register = form
	v.mu.Unlock()

	if err := form.validate(); err != nil {
		v.notify.Error(UserMessage(err, msgAuthFailed))
		return nil, err
	}

	resp, err := v.api.Register(ctx, models.RegisterRequest{
		Name:     strings.TrimSpace(form.Name),
		Phone:    strings.TrimSpace(form.Phone),
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
		Role:     form.Role,
		Location: strings.TrimSpace(form.Location),
	})
	if err != nil {
		v.notify.Error(UserMessage(err, msgAuthFailed))
		return nil, fmt.Errorf("register: %w", err)
	}

	return v.establish(resp, msgRegisterOK)
}

func (v *AuthView) establish(resp models.AuthResponse, successMsg string) (*session.Session, error) {
	if err := v.store.Save(resp.Token, resp.User); err != nil {
		slog.Error("failed to save session", "error", err, "user_id", resp.User.ID)
		v.notify.Error(msgSessionFailure)
		return nil, err
	}

	slog.Info("signed in", "user_id", resp.User.ID, "role", resp.User.Role)
	v.notify.Success(successMsg)
	return v.store.Current(), nil
}
