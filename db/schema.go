// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/agroconnect/agroconnect/auth"
	"github.com/agroconnect/agroconnect/cliparse"
	"github.com/agroconnect/agroconnect/models"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	conn, err := sql.Open(driverName(dbType), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbType == cliparse.DatabaseSQLite {
		// One connection: in-memory databases are per connection and
		// SQLite allows a single writer anyway.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(5)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func driverName(dbType string) string {
	if dbType == cliparse.DatabasePostgres {
		return "postgres"
	}
	return "sqlite"
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// DefaultMarketPrices are the reference prices seeded into an empty table
var DefaultMarketPrices = []models.MarketPrice{
	{CropType: "Wheat", Price: 2200, Unit: models.UnitQuintal},
	{CropType: "Rice", Price: 2500, Unit: models.UnitQuintal},
	{CropType: "Cotton", Price: 6500, Unit: models.UnitQuintal},
	{CropType: "Sugarcane", Price: 300, Unit: models.UnitQuintal},
	{CropType: "Maize", Price: 1850, Unit: models.UnitQuintal},
	{CropType: "Potato", Price: 20, Unit: models.UnitKg},
	{CropType: "Tomato", Price: 25, Unit: models.UnitKg},
	{CropType: "Onion", Price: 30, Unit: models.UnitKg},
}

// SeedMarketPrices inserts DefaultMarketPrices when the table is empty.
// Reports whether anything was inserted.
func SeedMarketPrices(db *sql.DB) (bool, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM market_price").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count market prices: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, p := range DefaultMarketPrices {
		_, err := tx.Exec(`
			INSERT INTO market_price (id, crop_type, price, unit, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, auth.GenerateID(), p.CropType, p.Price, p.Unit, now)
		if err != nil {
			return false, fmt.Errorf("failed to insert market price %s: %w", p.CropType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit market prices: %w", err)
	}
	return true, nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name TEXT NOT NULL,
    phone TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('farmer', 'buyer')),
    location TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Crops
CREATE TABLE IF NOT EXISTS crop (
    id TEXT PRIMARY KEY,
    farmer_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    farmer_name TEXT NOT NULL,
    farmer_phone TEXT NOT NULL,
    farmer_location TEXT NOT NULL DEFAULT '',
    crop_type TEXT NOT NULL,
    quantity DOUBLE PRECISION NOT NULL,
    unit TEXT NOT NULL CHECK (unit IN ('kg', 'quintal', 'ton')),
    price DOUBLE PRECISION NOT NULL,
    expected_harvest_date TEXT NOT NULL,
    description TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'available' CHECK (status IN ('available', 'sold')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_crop_farmer_id ON crop(farmer_id);
CREATE INDEX IF NOT EXISTS idx_crop_status ON crop(status);

-- Messages (kept when the crop they refer to is deleted)
CREATE TABLE IF NOT EXISTS message (
    id TEXT PRIMARY KEY,
    crop_id TEXT NOT NULL,
    farmer_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    buyer_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    buyer_name TEXT NOT NULL,
    buyer_phone TEXT NOT NULL,
    message TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_message_farmer_id ON message(farmer_id);

-- Market reference prices
CREATE TABLE IF NOT EXISTS market_price (
    id TEXT PRIMARY KEY,
    crop_type TEXT NOT NULL,
    price DOUBLE PRECISION NOT NULL,
    unit TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
