package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNextStatus(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{StatusAvailable, StatusSold},
		{StatusSold, StatusAvailable},
		{"", StatusSold},
	}

	for _, tc := range testCases {
		if got := NextStatus(tc.in); got != tc.want {
			t.Errorf("NextStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidators(t *testing.T) {
	for _, unit := range []string{UnitKg, UnitQuintal, UnitTon} {
		if !IsValidUnit(unit) {
			t.Errorf("Expected %q to be a valid unit", unit)
		}
	}
	if IsValidUnit("bushel") {
		t.Error("Expected bushel to be rejected")
	}

	if !IsValidRole(RoleFarmer) || !IsValidRole(RoleBuyer) {
		t.Error("Expected farmer and buyer to be valid roles")
	}
	if IsValidRole("admin") {
		t.Error("Expected admin to be rejected")
	}

	if !IsValidStatus(StatusSold) || IsValidStatus("pending") {
		t.Error("Unexpected status validation result")
	}
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	data, err := json.Marshal(User{ID: "u1", Email: "a@b.test", PasswordHash: "secret-hash"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), "secret-hash") {
		t.Errorf("Password hash leaked into JSON: %s", data)
	}
}
