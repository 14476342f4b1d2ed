// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"context"
	"fmt"
	"sync"

	"github.com/agroconnect/agroconnect/apiclient"
	"github.com/agroconnect/agroconnect/models"
	"github.com/agroconnect/agroconnect/session"
)

// fakeAPI is an in-memory backend. Listings written through it are visible
// to later reads so refetches observe mutations.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	lastFilter apiclient.SearchFilter
	lastCreate models.CreateCropRequest
	lastSend   models.SendMessageRequest

	authResp models.AuthResponse
	authErr  error

	crops       []models.Crop
	cropsErr    error
	createErr   error
	deleteErr   error
	statusErr   error
	messages    []models.Message
	messagesErr error
	prices      []models.MarketPrice
	pricesErr   error
	sendErr     error

	// gate, when set, holds Login, Register and SendMessage until closed.
	// entered receives once per held call.
	gate    chan struct{}
	entered chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int)}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) hold() {
	if f.gate == nil {
		return
	}
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	<-f.gate
}

func (f *fakeAPI) set(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	f.record("Login")
	f.hold()
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authResp, f.authErr
}

func (f *fakeAPI) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	f.record("Register")
	f.hold()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authErr != nil {
		return models.AuthResponse{}, f.authErr
	}
	user := models.User{ID: "u-" + req.Email, Email: req.Email, Name: req.Name, Phone: req.Phone, Role: req.Role, Location: req.Location}
	return models.AuthResponse{Token: "tok-" + req.Email, User: user}, nil
}

func (f *fakeAPI) ListCrops(ctx context.Context, filter apiclient.SearchFilter) ([]models.Crop, error) {
	f.record("ListCrops")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	if f.cropsErr != nil {
		return nil, f.cropsErr
	}
	return append([]models.Crop(nil), f.crops...), nil
}

func (f *fakeAPI) MyCrops(ctx context.Context, token string) ([]models.Crop, error) {
	f.record("MyCrops")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cropsErr != nil {
		return nil, f.cropsErr
	}
	return append([]models.Crop(nil), f.crops...), nil
}

func (f *fakeAPI) CreateCrop(ctx context.Context, token string, req models.CreateCropRequest) (models.Crop, error) {
	f.record("CreateCrop")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCreate = req
	if f.createErr != nil {
		return models.Crop{}, f.createErr
	}
	crop := models.Crop{
		ID:       fmt.Sprintf("c%d", len(f.crops)+1),
		CropType: req.CropType, Quantity: req.Quantity, Unit: req.Unit, Price: req.Price,
		Status: models.StatusAvailable,
	}
	f.crops = append([]models.Crop{crop}, f.crops...)
	return crop, nil
}

func (f *fakeAPI) DeleteCrop(ctx context.Context, token, cropID string) error {
	f.record("DeleteCrop")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, c := range f.crops {
		if c.ID == cropID {
			f.crops = append(f.crops[:i:i], f.crops[i+1:]...)
			return nil
		}
	}
	return &apiclient.APIError{StatusCode: 404, Detail: "Crop not found"}
}

func (f *fakeAPI) UpdateCropStatus(ctx context.Context, token, cropID, status string) (models.Crop, error) {
	f.record("UpdateCropStatus")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return models.Crop{}, f.statusErr
	}
	for i := range f.crops {
		if f.crops[i].ID == cropID {
			f.crops[i].Status = status
			return f.crops[i], nil
		}
	}
	return models.Crop{}, &apiclient.APIError{StatusCode: 404, Detail: "Crop not found"}
}

func (f *fakeAPI) MarketPrices(ctx context.Context) ([]models.MarketPrice, error) {
	f.record("MarketPrices")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prices, f.pricesErr
}

func (f *fakeAPI) ReceivedMessages(ctx context.Context, token string) ([]models.Message, error) {
	f.record("ReceivedMessages")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages, f.messagesErr
}

func (f *fakeAPI) SendMessage(ctx context.Context, token string, req models.SendMessageRequest) (models.Message, error) {
	f.record("SendMessage")
	f.hold()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSend = req
	if f.sendErr != nil {
		return models.Message{}, f.sendErr
	}
	return models.Message{ID: "m1", CropID: req.CropID, FarmerID: req.FarmerID, Message: req.Message}, nil
}

// recorder collects notifications
type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *recorder) lastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errors) == 0 {
		return ""
	}
	return r.errors[len(r.errors)-1]
}

func (r *recorder) lastSuccess() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.successes) == 0 {
		return ""
	}
	return r.successes[len(r.successes)-1]
}

// signedIn returns a store holding a session for role
func signedIn(role string) *session.Store {
	store := session.NewStore(session.NewMemoryStorage())
	if err := store.Save("tok-"+role, models.User{ID: "u-" + role, Name: role, Role: role}); err != nil {
		panic(err)
	}
	return store
}
