// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agroconnect/agroconnect/models"
	"github.com/agroconnect/agroconnect/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "agroconnect API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig())

	// 400, 401, 404 are all valid responses depending on handler logic
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"POST", "/api/auth/register"},
		{"POST", "/api/auth/login"},
		{"GET", "/api/crops"},
		{"GET", "/api/crops/my-crops"},
		{"POST", "/api/crops"},
		{"DELETE", "/api/crops/some-id"},
		{"PUT", "/api/crops/some-id/status"},
		{"POST", "/api/messages"},
		{"GET", "/api/messages/received"},
		{"GET", "/api/market-prices"},
		{"POST", "/api/init-market-prices"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/api/crops"},
		{"GET", "/api/auth/login"},
		{"PUT", "/api/market-prices"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestUnknownPath(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/api/unknown", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestRoleGating(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig())
	_, farmerToken := testutil.CreateTestUser(t, db, "farmer1", models.RoleFarmer, "Nashik")
	_, buyerToken := testutil.CreateTestUser(t, db, "buyer1", models.RoleBuyer, "Mumbai")

	testCases := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{"buyer cannot list my-crops", "GET", "/api/crops/my-crops", buyerToken, http.StatusForbidden},
		{"buyer cannot post crops", "POST", "/api/crops", buyerToken, http.StatusForbidden},
		{"buyer cannot read inbox", "GET", "/api/messages/received", buyerToken, http.StatusForbidden},
		{"farmer cannot send messages", "POST", "/api/messages", farmerToken, http.StatusForbidden},
		{"farmer lists my-crops", "GET", "/api/crops/my-crops", farmerToken, http.StatusOK},
		{"anonymous my-crops", "GET", "/api/crops/my-crops", "", http.StatusUnauthorized},
		{"anonymous search", "GET", "/api/crops?crop_type=wheat", "", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			headers := map[string]string{}
			if tc.token != "" {
				headers = testutil.Bearer(tc.token)
			}
			req := testutil.MakeRequest(tc.method, tc.path, nil, headers)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}
}
