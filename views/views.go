// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"context"
	"errors"

	"github.com/agroconnect/agroconnect/apiclient"
	"github.com/agroconnect/agroconnect/models"
)

// Fallback and success texts
const (
	msgLoginOK        = "Login successful!"
	msgRegisterOK     = "Registration successful!"
	msgAuthFailed     = "An error occurred"
	msgCropAdded      = "Crop added successfully!"
	msgAddFailed      = "Failed to add crop"
	msgCropDeleted    = "Crop deleted successfully"
	msgDeleteFailed   = "Failed to delete crop"
	msgStatusUpdated  = "Status updated successfully"
	msgStatusFailed   = "Failed to update status"
	msgSearchFailed   = "Search failed"
	msgEmptyMessage   = "Please enter a message"
	msgMessageSent    = "Message sent successfully!"
	msgSendFailed     = "Failed to send message"
	msgSessionFailure = "Could not save session"
)

var (
	// ErrInFlight rejects a submit while the previous one is unresolved
	ErrInFlight = errors.New("views: request already in flight")
	// ErrWrongRole is returned by App when the session may not see a view
	ErrWrongRole = errors.New("views: view not available for this session")
	// ErrNoCompose is returned by compose actions when no target is open
	ErrNoCompose = errors.New("views: no message being composed")
	// ErrUnknownCrop is returned by ToggleStatus for an ID not on screen
	ErrUnknownCrop = errors.New("views: crop not in list")
)

// API is the backend surface the views use
type API interface {
	Login(ctx context.Context, email, password string) (models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	ListCrops(ctx context.Context, filter apiclient.SearchFilter) ([]models.Crop, error)
	MyCrops(ctx context.Context, token string) ([]models.Crop, error)
	CreateCrop(ctx context.Context, token string, req models.CreateCropRequest) (models.Crop, error)
	DeleteCrop(ctx context.Context, token, cropID string) error
	UpdateCropStatus(ctx context.Context, token, cropID, status string) (models.Crop, error)
	MarketPrices(ctx context.Context) ([]models.MarketPrice, error)
	ReceivedMessages(ctx context.Context, token string) ([]models.Message, error)
	SendMessage(ctx context.Context, token string, req models.SendMessageRequest) (models.Message, error)
}

var _ API = (*apiclient.Client)(nil)

// Notifier shows transient messages to the user
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ValidationError is a form rejected before any request was made
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// UserMessage returns the text to show for err: a validation message, the
// backend's detail, or fallback.
func UserMessage(err error, fallback string) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return apiclient.Message(err, fallback)
}

// LoadResult carries one error slot per joined read. A nil slot means that
// read succeeded and was applied.
type LoadResult struct {
	Crops    error
	Messages error
	Prices   error
}

// Err joins the failed slots, nil when every read succeeded
func (r LoadResult) Err() error {
	return errors.Join(r.Crops, r.Messages, r.Prices)
}
