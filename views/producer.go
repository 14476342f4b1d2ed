// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agroconnect/agroconnect/models"
	"github.com/agroconnect/agroconnect/session"
)

// DashboardMessages is how many inquiries the producer dashboard shows
const DashboardMessages = 5

// CropForm holds a new listing as typed. Quantity and Price are parsed on
// submit.
type CropForm struct {
	CropType    string
	Quantity    string
	Unit        string
	Price       string
	HarvestDate string // YYYY-MM-DD
	Description string
	ImageURL    string
}

// NewCropForm returns an empty form with the default unit
func NewCropForm() CropForm {
	return CropForm{Unit: models.UnitQuintal}
}

// Request validates the form and converts it to a create request
func (f CropForm) Request() (models.CreateCropRequest, error) {
	if strings.TrimSpace(f.CropType) == "" {
		return models.CreateCropRequest{}, invalid("crop_type", "Crop type is required")
	}

	quantity, err := parseNumber(f.Quantity)
	if err != nil {
		return models.CreateCropRequest{}, invalid("quantity", "Quantity must be a number")
	}

	if !models.IsValidUnit(f.Unit) {
		return models.CreateCropRequest{}, invalid("unit", "Unit must be kg, quintal or ton")
	}

	price, err := parseNumber(f.Price)
	if err != nil {
		return models.CreateCropRequest{}, invalid("price", "Price must be a number")
	}

	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(f.HarvestDate)); err != nil {
		return models.CreateCropRequest{}, invalid("expected_harvest_date", "Harvest date must be YYYY-MM-DD")
	}

	if strings.TrimSpace(f.Description) == "" {
		return models.CreateCropRequest{}, invalid("description", "Description is required")
	}

	return models.CreateCropRequest{
		CropType:            strings.TrimSpace(f.CropType),
		Quantity:            quantity,
		Unit:                f.Unit,
		Price:               price,
		ExpectedHarvestDate: strings.TrimSpace(f.HarvestDate),
		Description:         strings.TrimSpace(f.Description),
		Image:               strings.TrimSpace(f.ImageURL),
	}, nil
}

// decimalNumber rejects the hex, inf and nan forms strconv would accept
var decimalNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// parseNumber accepts finite decimal numbers only
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !decimalNumber.MatchString(s) {
		return 0, fmt.Errorf("not a decimal number: %q", s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

// ProducerView is a farmer's dashboard
type ProducerView struct {
	api    API
	store  *session.Store
	notify Notifier

	mu       sync.RWMutex
	closed   bool
	crops    []models.Crop
	messages []models.Message
	prices   []models.MarketPrice
	form     CropForm
}

func NewProducerView(api API, store *session.Store, notify Notifier) *ProducerView {
	return &ProducerView{
		api:    api,
		store:  store,
		notify: notify,
		form:   NewCropForm(),
	}
}

// Load reads owned listings, received messages and market prices
// concurrently. Each successful read is applied even when others fail.
func (v *ProducerView) Load(ctx context.Context) LoadResult {
	token := v.store.Token()

	var (
		wg       sync.WaitGroup
		result   LoadResult
		crops    []models.Crop
		messages []models.Message
		prices   []models.MarketPrice
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		crops, result.Crops = v.api.MyCrops(ctx, token)
	}()
	go func() {
		defer wg.Done()
		messages, result.Messages = v.api.ReceivedMessages(ctx, token)
	}()
	go func() {
		defer wg.Done()
		prices, result.Prices = v.api.MarketPrices(ctx)
	}()
	wg.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return result
	}

	if result.Crops == nil {
		v.crops = crops
	} else {
		slog.Warn("failed to load crops", "error", result.Crops)
	}
	if result.Messages == nil {
		v.messages = messages
	} else {
		slog.Warn("failed to load messages", "error", result.Messages)
	}
	if result.Prices == nil {
		v.prices = prices
	} else {
		slog.Warn("failed to load market prices", "error", result.Prices)
	}

	return result
}

// Crops returns the owned listings as last read
func (v *ProducerView) Crops() []models.Crop {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]models.Crop(nil), v.crops...)
}

func (v *ProducerView) Messages() []models.Message {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]models.Message(nil), v.messages...)
}

func (v *ProducerView) Prices() []models.MarketPrice {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]models.MarketPrice(nil), v.prices...)
}

// RecentMessages returns at most n inquiries, newest first
func (v *ProducerView) RecentMessages(n int) []models.Message {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n > len(v.messages) {
		n = len(v.messages)
	}
	return append([]models.Message(nil), v.messages[:n]...)
}

// Form returns the add-crop form as last submitted, or a fresh one after a
// successful create
func (v *ProducerView) Form() CropForm {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.form
}

// Create validates form, posts it and re-reads the owned listings. On any
// failure the listings are left as they were.
func (v *ProducerView) Create(ctx context.Context, form CropForm) (models.Crop, error) {
	v.mu.Lock()
	v.form = form
	v.mu.Unlock()

	req, err := form.Request()
	if err != nil {
		v.notifyError(err, msgAddFailed)
		return models.Crop{}, err
	}

	crop, err := v.api.CreateCrop(ctx, v.store.Token(), req)
	if err != nil {
		v.notifyError(err, msgAddFailed)
		return models.Crop{}, fmt.Errorf("create crop: %w", err)
	}

	if v.isClosed() {
		return crop, nil
	}

	v.notify.Success(msgCropAdded)
	v.mu.Lock()
	v.form = NewCropForm()
	v.mu.Unlock()

	v.refetchCrops(ctx)
	return crop, nil
}

// Delete removes a listing and re-reads the owned listings
func (v *ProducerView) Delete(ctx context.Context, cropID string) error {
	if err := v.api.DeleteCrop(ctx, v.store.Token(), cropID); err != nil {
		v.notifyError(err, msgDeleteFailed)
		return fmt.Errorf("delete crop %s: %w", cropID, err)
	}

	if v.isClosed() {
		return nil
	}

	v.notify.Success(msgCropDeleted)
	v.refetchCrops(ctx)
	return nil
}

// SetStatus moves a listing to status and re-reads the owned listings
func (v *ProducerView) SetStatus(ctx context.Context, cropID, status string) error {
	if !models.IsValidStatus(status) {
		err := invalid("status", "Status must be available or sold")
		v.notifyError(err, msgStatusFailed)
		return err
	}

	if _, err := v.api.UpdateCropStatus(ctx, v.store.Token(), cropID, status); err != nil {
		v.notifyError(err, msgStatusFailed)
		return fmt.Errorf("update status of %s: %w", cropID, err)
	}

	if v.isClosed() {
		return nil
	}

	v.notify.Success(msgStatusUpdated)
	v.refetchCrops(ctx)
	return nil
}

// ToggleStatus flips a listing between available and sold based on the
// status currently shown
func (v *ProducerView) ToggleStatus(ctx context.Context, cropID string) error {
	v.mu.RLock()
	current := ""
	for _, c := range v.crops {
		if c.ID == cropID {
			current = c.Status
			break
		}
	}
	v.mu.RUnlock()

	if current == "" {
		return fmt.Errorf("%w: %s", ErrUnknownCrop, cropID)
	}
	return v.SetStatus(ctx, cropID, models.NextStatus(current))
}

// Close detaches the view; responses arriving afterwards are dropped
func (v *ProducerView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

func (v *ProducerView) refetchCrops(ctx context.Context) {
	crops, err := v.api.MyCrops(ctx, v.store.Token())
	if err != nil {
		slog.Warn("failed to refetch crops", "error", err)
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.closed {
		v.crops = crops
	}
}

func (v *ProducerView) isClosed() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.closed
}

func (v *ProducerView) notifyError(err error, fallback string) {
	if v.isClosed() {
		return
	}
	v.notify.Error(UserMessage(err, fallback))
}
