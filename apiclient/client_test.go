// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroconnect/agroconnect/models"
	"github.com/agroconnect/agroconnect/router"
	"github.com/agroconnect/agroconnect/testutil"
)

// newBackend serves the real API over an in-memory database
func newBackend(t *testing.T) (*Client, *sql.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	srv := httptest.NewServer(router.NewRouter(db, testutil.GetTestConfig()))
	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})

	return New(srv.URL + "/"), db
}

func registerFarmer(t *testing.T, c *Client) models.AuthResponse {
	t.Helper()
	resp, err := c.Register(context.Background(), models.RegisterRequest{
		Name: "Asha", Phone: "9876543210", Email: "asha@example.test",
		Password: "secret", Role: models.RoleFarmer, Location: "Nashik",
	})
	require.NoError(t, err)
	return resp
}

func TestClient_AuthRoundTrip(t *testing.T) {
	c, _ := newBackend(t)
	ctx := context.Background()

	registered := registerFarmer(t, c)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, models.RoleFarmer, registered.User.Role)

	loggedIn, err := c.Login(ctx, "asha@example.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = c.Login(ctx, "asha@example.test", "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials", Message(err, "An error occurred"))

	_, err = c.Register(ctx, models.RegisterRequest{
		Name: "Dup", Phone: "1", Email: "asha@example.test", Password: "x", Role: models.RoleBuyer,
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Email already registered", apiErr.Detail)
}

func TestClient_CropLifecycle(t *testing.T) {
	c, _ := newBackend(t)
	ctx := context.Background()
	farmer := registerFarmer(t, c)

	created, err := c.CreateCrop(ctx, farmer.Token, models.CreateCropRequest{
		CropType: "Wheat", Quantity: 40, Unit: models.UnitQuintal, Price: 2150,
		ExpectedHarvestDate: "2026-04-01", Description: "Lokwan",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, created.Status)
	assert.Equal(t, farmer.User.ID, created.FarmerID)

	mine, err := c.MyCrops(ctx, farmer.Token)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	updated, err := c.UpdateCropStatus(ctx, farmer.Token, created.ID, models.StatusSold)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, updated.Status)

	public, err := c.ListCrops(ctx, SearchFilter{})
	require.NoError(t, err)
	assert.Empty(t, public, "sold crops are not listed publicly")

	require.NoError(t, c.DeleteCrop(ctx, farmer.Token, created.ID))

	mine, err = c.MyCrops(ctx, farmer.Token)
	require.NoError(t, err)
	assert.Empty(t, mine)

	err = c.DeleteCrop(ctx, farmer.Token, created.ID)
	assert.Equal(t, "Crop not found", Message(err, ""))
}

func TestClient_MessagingAndRoles(t *testing.T) {
	c, _ := newBackend(t)
	ctx := context.Background()
	farmer := registerFarmer(t, c)

	buyer, err := c.Register(ctx, models.RegisterRequest{
		Name: "Bharat", Phone: "9000000000", Email: "bharat@example.test",
		Password: "secret", Role: models.RoleBuyer,
	})
	require.NoError(t, err)

	crop, err := c.CreateCrop(ctx, farmer.Token, models.CreateCropRequest{
		CropType: "Onion", Quantity: 5, Unit: models.UnitTon, Price: 30,
		ExpectedHarvestDate: "2026-02-01", Description: "Red",
	})
	require.NoError(t, err)

	_, err = c.CreateCrop(ctx, buyer.Token, models.CreateCropRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Only farmers can post crops", apiErr.Detail)

	msg, err := c.SendMessage(ctx, buyer.Token, models.SendMessageRequest{
		CropID: crop.ID, FarmerID: crop.FarmerID, Message: "Rate for 2 ton?",
	})
	require.NoError(t, err)
	assert.Equal(t, buyer.User.ID, msg.BuyerID)

	inbox, err := c.ReceivedMessages(ctx, farmer.Token)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Rate for 2 ton?", inbox[0].Message)

	_, err = c.ReceivedMessages(ctx, buyer.Token)
	assert.Equal(t, "Only farmers can access this", Message(err, ""))

	_, err = c.MyCrops(ctx, "")
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Not authenticated", Message(err, ""))
}

func TestClient_MarketPrices(t *testing.T) {
	c, _ := newBackend(t)
	ctx := context.Background()

	prices, err := c.MarketPrices(ctx)
	require.NoError(t, err)
	assert.Empty(t, prices)

	msg, err := c.InitMarketPrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Market prices initialized", msg)

	prices, err = c.MarketPrices(ctx)
	require.NoError(t, err)
	assert.Len(t, prices, 8)
}

func TestSearchFilter_Query(t *testing.T) {
	tests := []struct {
		name     string
		filter   SearchFilter
		expected url.Values
	}{
		{"no filters", SearchFilter{}, url.Values{}},
		{"crop type only", SearchFilter{CropType: "Wheat"}, url.Values{"crop_type": {"Wheat"}}},
		{"whitespace location omitted", SearchFilter{CropType: "Wheat", Location: "  "}, url.Values{"crop_type": {"Wheat"}}},
		{"both", SearchFilter{CropType: "Rice", Location: "Guntur"}, url.Values{"crop_type": {"Rice"}, "location": {"Guntur"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Query())
		})
	}
}

func TestClient_SearchOmitsEmptyParameters(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListCrops(context.Background(), SearchFilter{CropType: "Wheat"})
	require.NoError(t, err)

	assert.Equal(t, "Wheat", gotQuery.Get("crop_type"))
	_, hasLocation := gotQuery["location"]
	assert.False(t, hasLocation, "empty location must not be sent")
}

func TestClient_RequestShape(t *testing.T) {
	var gotAuth, gotPath, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"m1","message":"hi"}`))
	}))
	defer srv.Close()

	msg, err := New(srv.URL).SendMessage(context.Background(), "tok-123", models.SendMessageRequest{Message: "hi"})
	require.NoError(t, err)

	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "/api/messages", gotPath)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_ErrorBodies(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		expectedDetail string
	}{
		{"string detail", http.StatusBadRequest, `{"error":"Bad Request","detail":"quantity must be a positive number"}`, "quantity must be a positive number"},
		{"structured detail dropped", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body"],"msg":"field required"}]}`, ""},
		{"no json", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
		{"empty body", http.StatusInternalServerError, ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).MarketPrices(context.Background())

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.expectedDetail, apiErr.Detail)
			assert.False(t, errors.Is(err, ErrUnreachable))

			fallback := "Failed to load"
			if tt.expectedDetail != "" {
				fallback = tt.expectedDetail
			}
			assert.Equal(t, fallback, Message(err, "Failed to load"))
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := New(addr).MarketPrices(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, "An error occurred", Message(err, "An error occurred"))
	assert.False(t, IsUnauthorized(err))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(srv.URL, WithTimeout(50*time.Millisecond)).MarketPrices(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
