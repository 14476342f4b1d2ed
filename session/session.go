// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/agroconnect/agroconnect/models"
)

// Storage keys
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Session is the authenticated identity held by the client
type Session struct {
	Token string
	User  models.User
}

// Store is the single session context shared by the views. It is safe for
// concurrent use.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	current *Session
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Load restores the session from storage and makes it current. It returns
// nil when either key is missing or the user document does not parse.
func (s *Store) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	token, ok, err := s.storage.Get(KeyToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	if !ok || token == "" {
		return nil, nil
	}

	raw, ok, err := s.storage.Get(KeyUser)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		return nil, nil
	}

	s.current = &Session{Token: token, User: user}
	return s.copyCurrent(), nil
}

// Save persists token and user, replacing any previous session, and makes
// them current.
func (s *Store) Save(token string, user models.User) error {
	if token == "" {
		return errors.New("empty token")
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.storage.SetAll(map[string]string{
		KeyToken: token,
		KeyUser:  string(raw),
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.current = &Session{Token: token, User: user}
	return nil
}

// Clear removes the session from storage and memory. Memory is cleared even
// when storage fails.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	return errors.Join(s.storage.Remove(KeyToken), s.storage.Remove(KeyUser))
}

// Current returns a copy of the in-memory session, or nil
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyCurrent()
}

// Token returns the current bearer token, or "" when signed out
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) copyCurrent() *Session {
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}
