package models

import "time"

// User roles
const (
	RoleFarmer = "farmer"
	RoleBuyer  = "buyer"
)

// Crop status constants
const (
	StatusAvailable = "available"
	StatusSold      = "sold"
)

// Quantity units
const (
	UnitKg      = "kg"
	UnitQuintal = "quintal"
	UnitTon     = "ton"
)

// IsValidRole reports whether role is farmer or buyer
func IsValidRole(role string) bool {
	return role == RoleFarmer || role == RoleBuyer
}

// IsValidStatus reports whether status is a known crop status
func IsValidStatus(status string) bool {
	return status == StatusAvailable || status == StatusSold
}

// IsValidUnit reports whether unit is one of kg, quintal, ton
func IsValidUnit(unit string) bool {
	switch unit {
	case UnitKg, UnitQuintal, UnitTon:
		return true
	}
	return false
}

// NextStatus returns the other side of the available <-> sold toggle.
func NextStatus(status string) string {
	if status == StatusSold {
		return StatusAvailable
	}
	return StatusSold
}

// Request types

type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Location string `json:"location"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateCropRequest struct {
	CropType            string  `json:"crop_type"`
	Quantity            float64 `json:"quantity"`
	Unit                string  `json:"unit"`
	Price               float64 `json:"price"`
	ExpectedHarvestDate string  `json:"expected_harvest_date"`
	Description         string  `json:"description"`
	Image               string  `json:"image,omitempty"`
}

type SendMessageRequest struct {
	CropID   string `json:"crop_id"`
	FarmerID string `json:"farmer_id"`
	Message  string `json:"message"`
}

// Response types

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type StatusMessageResponse struct {
	Message string `json:"message"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	Location     string    `json:"location"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// Crop is a farmer's listing of a produce lot.
type Crop struct {
	ID                  string    `json:"id"`
	FarmerID            string    `json:"farmer_id"`
	FarmerName          string    `json:"farmer_name"`
	FarmerPhone         string    `json:"farmer_phone"`
	FarmerLocation      string    `json:"farmer_location"`
	CropType            string    `json:"crop_type"`
	Quantity            float64   `json:"quantity"`
	Unit                string    `json:"unit"`
	Price               float64   `json:"price"`
	ExpectedHarvestDate string    `json:"expected_harvest_date"`
	Description         string    `json:"description"`
	Image               string    `json:"image,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

// Message is a buyer's inquiry about a crop, addressed to its farmer
type Message struct {
	ID         string    `json:"id"`
	CropID     string    `json:"crop_id"`
	FarmerID   string    `json:"farmer_id"`
	BuyerID    string    `json:"buyer_id"`
	BuyerName  string    `json:"buyer_name"`
	BuyerPhone string    `json:"buyer_phone"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type MarketPrice struct {
	ID        string    `json:"id"`
	CropType  string    `json:"crop_type"`
	Price     float64   `json:"price"`
	Unit      string    `json:"unit"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Error response

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
