// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/agroconnect/agroconnect/apiclient"
	"github.com/agroconnect/agroconnect/models"
	"github.com/agroconnect/agroconnect/session"
)

// Compose is the single open message target
type Compose struct {
	Crop  models.Crop
	Draft string
}

// PurchaserView is a buyer's dashboard
type PurchaserView struct {
	api    API
	store  *session.Store
	notify Notifier

	mu      sync.RWMutex
	closed  bool
	crops   []models.Crop
	prices  []models.MarketPrice
	filter  apiclient.SearchFilter
	compose *Compose
	sending bool
}

func NewPurchaserView(api API, store *session.Store, notify Notifier) *PurchaserView {
	return &PurchaserView{api: api, store: store, notify: notify}
}

// Load reads available listings and market prices concurrently
func (v *PurchaserView) Load(ctx context.Context) LoadResult {
	var (
		wg     sync.WaitGroup
		result LoadResult
		crops  []models.Crop
		prices []models.MarketPrice
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		crops, result.Crops = v.api.ListCrops(ctx, apiclient.SearchFilter{})
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
	if result.Prices == nil {
		v.prices = prices
	} else {
		slog.Warn("failed to load market prices", "error", result.Prices)
	}

	return result
}

// Search re-reads the listings with the given filters; empty filters are not
// sent. On failure the previous list stays.
func (v *PurchaserView) Search(ctx context.Context, cropType, location string) error {
	filter := apiclient.SearchFilter{CropType: cropType, Location: location}

	crops, err := v.api.ListCrops(ctx, filter)

	v.mu.Lock()
	closed := v.closed
	if !closed && err == nil {
		v.crops = crops
		v.filter = filter
	}
	v.mu.Unlock()

	if closed {
		return err
	}
	if err != nil {
		v.notify.Error(UserMessage(err, msgSearchFailed))
		return fmt.Errorf("search: %w", err)
	}
	return nil
}

func (v *PurchaserView) Crops() []models.Crop {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]models.Crop(nil), v.crops...)
}

func (v *PurchaserView) Prices() []models.MarketPrice {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]models.MarketPrice(nil), v.prices...)
}

// Filter returns the filters of the last successful search
func (v *PurchaserView) Filter() apiclient.SearchFilter {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filter
}

// OpenCompose targets crop, replacing any idle compose context. It returns
// ErrInFlight while a send is running.
func (v *PurchaserView) OpenCompose(crop models.Crop) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sending {
		return ErrInFlight
	}
	v.compose = &Compose{Crop: crop}
	return nil
}

// SetDraft replaces the message text
func (v *PurchaserView) SetDraft(text string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.compose == nil {
		return ErrNoCompose
	}
	v.compose.Draft = text
	return nil
}

// Composing returns a copy of the open compose context, or nil
func (v *PurchaserView) Composing() *Compose {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.compose == nil {
		return nil
	}
	c := *v.compose
	return &c
}

// CloseCompose discards the compose context unless a send is running
func (v *PurchaserView) CloseCompose() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sending {
		return ErrInFlight
	}
	v.compose = nil
	return nil
}

// Send delivers the draft to the target's farmer. A blank draft is rejected
// without a request. On failure the context stays open with the draft intact.
func (v *PurchaserView) Send(ctx context.Context) (models.Message, error) {
	v.mu.Lock()
	if v.compose == nil {
		v.mu.Unlock()
		return models.Message{}, ErrNoCompose
	}
	if v.sending {
		v.mu.Unlock()
		return models.Message{}, ErrInFlight
	}
	if strings.TrimSpace(v.compose.Draft) == "" {
		v.mu.Unlock()
		v.notify.Error(msgEmptyMessage)
		return models.Message{}, invalid("message", msgEmptyMessage)
	}

	target := *v.compose
	v.sending = true
	v.mu.Unlock()

	msg, err := v.api.SendMessage(ctx, v.store.Token(), models.SendMessageRequest{
		CropID:   target.Crop.ID,
		FarmerID: target.Crop.FarmerID,
		Message:  target.Draft,
	})

	v.mu.Lock()
	v.sending = false
	closed := v.closed
	if !closed && err == nil {
		v.compose = nil
	}
	v.mu.Unlock()

	// Notifiers may read view state, so they run unlocked
	if closed {
		return msg, err
	}
	if err != nil {
		v.notify.Error(UserMessage(err, msgSendFailed))
		return models.Message{}, fmt.Errorf("send message: %w", err)
	}

	v.notify.Success(msgMessageSent)
	return msg, nil
}

// Close detaches the view; responses arriving afterwards are dropped
func (v *PurchaserView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}
