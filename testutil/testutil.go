// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agroconnect/agroconnect/auth"
	"github.com/agroconnect/agroconnect/cliparse"
	"github.com/agroconnect/agroconnect/db"
	"github.com/agroconnect/agroconnect/models"
)

// TestSecret signs tokens in tests
const TestSecret = "test-secret-key"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8001,
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  ":memory:",
		SecretKey:    TestSecret,
		CORSOrigins:  []string{"*"},
	}
}

// CreateTestUser inserts a user with password "password123" and returns it
// together with a valid bearer token
func CreateTestUser(t *testing.T, conn *sql.DB, name, role, location string) (models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		ID:        auth.GenerateID(),
		Email:     name + "@example.test",
		Name:      name,
		Phone:     "555-0100",
		Role:      role,
		Location:  location,
		CreatedAt: time.Now().UTC(),
	}

	_, err = conn.Exec(`
		INSERT INTO users (id, email, password_hash, name, phone, role, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, user.Email, hash, user.Name, user.Phone, user.Role, user.Location, user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, err := auth.IssueToken(user.ID, TestSecret, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	return user, token
}

// CreateTestCrop inserts a crop owned by farmer and returns its ID
func CreateTestCrop(t *testing.T, conn *sql.DB, farmer models.User, cropType, status string) string {
	t.Helper()

	cropID := auth.GenerateID()
	_, err := conn.Exec(`
		INSERT INTO crop (id, farmer_id, farmer_name, farmer_phone, farmer_location,
		                  crop_type, quantity, unit, price, expected_harvest_date,
		                  description, image, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 10, 'quintal', 2000, '2026-12-01', 'Test crop', '', $7, $8)
	`, cropID, farmer.ID, farmer.Name, farmer.Phone, farmer.Location, cropType, status, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test crop: %v", err)
	}

	return cropID
}

// CreateTestMessage inserts a message from buyer to the crop's farmer
func CreateTestMessage(t *testing.T, conn *sql.DB, buyer models.User, farmerID, cropID, text string) string {
	t.Helper()

	messageID := auth.GenerateID()
	_, err := conn.Exec(`
		INSERT INTO message (id, crop_id, farmer_id, buyer_id, buyer_name, buyer_phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, messageID, cropID, farmerID, buyer.ID, buyer.Name, buyer.Phone, text, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test message: %v", err)
	}

	return messageID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer returns the Authorization header map for token
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertDetail checks the detail string of a JSON error response
func AssertDetail(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v (%s)", err, w.Body.String())
	}
	if resp.Detail != expected {
		t.Errorf("Expected detail %q, got %q", expected, resp.Detail)
	}
}
