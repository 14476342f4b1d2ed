// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and handles schema creation.

# Connecting

Open picks the driver from the configured type (modernc.org/sqlite for
"sqlite", github.com/lib/pq for "postgres") and pings the connection:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections are limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL sticks to types and defaults both SQLite and PostgreSQL accept.

# Tables

  - users: farmer and buyer accounts (email unique)
  - crop: listings, denormalised with the farmer's name, phone and location
  - message: buyer inquiries addressed to a farmer
  - market_price: reference prices

# Relationships

	users 1──* crop     (farmer_id)
	users 1──* message  (farmer_id, buyer_id)

Messages keep their crop_id after the crop is deleted.

# Seeding

SeedMarketPrices fills an empty market_price table with DefaultMarketPrices
and is a no-op otherwise.
*/
package db
