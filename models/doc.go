// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types shared by the API
server and the client.

# Request Types

Types for JSON request bodies:

  - RegisterRequest: name, phone, email, password, role, location
  - LoginRequest: email, password
  - CreateCropRequest: crop_type, quantity, unit, price, expected_harvest_date, description, image
  - SendMessageRequest: crop_id, farmer_id, message

# Response Types

  - AuthResponse: token, user
  - StatusMessageResponse: message
  - ErrorResponse: error, detail

# Domain Types

  - User: a farmer or buyer account (password hash never serialized)
  - Crop: a listing posted by a farmer
  - Message: a buyer inquiry addressed to a farmer about one crop
  - MarketPrice: reference price per crop type

# Constants

Roles:

	RoleFarmer = "farmer"
	RoleBuyer  = "buyer"

Crop status, toggled with NextStatus:

	StatusAvailable = "available"
	StatusSold      = "sold"

Units:

	UnitKg      = "kg"
	UnitQuintal = "quintal"
	UnitTon     = "ton"
*/
package models
