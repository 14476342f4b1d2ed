// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"fmt"
	"log/slog"

	"github.com/agroconnect/agroconnect/navigation"
	"github.com/agroconnect/agroconnect/session"
)

// App is the client shell. It owns the session store and only builds the
// views the current session may see.
type App struct {
	api    API
	store  *session.Store
	notify Notifier
}

func NewApp(api API, store *session.Store, notify Notifier) *App {
	return &App{api: api, store: store, notify: notify}
}

func (a *App) Store() *session.Store {
	return a.store
}

// State derives the routing state from the current session
func (a *App) State() navigation.State {
	return navigation.StateOf(a.store.Current())
}

// Navigate resolves path for the current state, following redirects
func (a *App) Navigate(path string) (navigation.View, string, error) {
	return navigation.Navigate(path, a.State())
}

func (a *App) AuthView() (*AuthView, error) {
	if err := a.require(navigation.Anonymous, navigation.Auth); err != nil {
		return nil, err
	}
	return NewAuthView(a.api, a.store, a.notify), nil
}

func (a *App) ProducerView() (*ProducerView, error) {
	if err := a.require(navigation.Farmer, navigation.Producer); err != nil {
		return nil, err
	}
	return NewProducerView(a.api, a.store, a.notify), nil
}

func (a *App) PurchaserView() (*PurchaserView, error) {
	if err := a.require(navigation.Buyer, navigation.Purchaser); err != nil {
		return nil, err
	}
	return NewPurchaserView(a.api, a.store, a.notify), nil
}

// Logout clears the session. The state is Anonymous afterwards even when
// storage fails.
func (a *App) Logout() error {
	prev := a.State()
	if err := a.store.Clear(); err != nil {
		slog.Error("failed to clear session", "error", err)
		return err
	}
	slog.Info("signed out", "was", prev.String())
	return nil
}

func (a *App) require(state navigation.State, view navigation.View) error {
	if current := a.State(); current != state {
		return fmt.Errorf("%w: %s view as %s", ErrWrongRole, view, current)
	}
	return nil
}
