// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/agroconnect/agroconnect/cliparse"
	"github.com/agroconnect/agroconnect/db"
	"github.com/agroconnect/agroconnect/middleware"
	"github.com/agroconnect/agroconnect/models"
)

type MarketHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewMarketHandler(db *sql.DB, cfg cliparse.Config) *MarketHandler {
	return &MarketHandler{db: db, cfg: cfg}
}

// ListPrices handles GET /api/market-prices
func (h *MarketHandler) ListPrices(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, crop_type, price, unit, updated_at
		FROM market_price
		ORDER BY crop_type
	`)
	if err != nil {
		slog.Error("failed to query market prices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	prices := []models.MarketPrice{}
	for rows.Next() {
		var p models.MarketPrice
		if err := rows.Scan(&p.ID, &p.CropType, &p.Price, &p.Unit, &p.UpdatedAt); err != nil {
			slog.Error("failed to scan market price", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		prices = append(prices, p)
	}

	middleware.JSONResponse(w, http.StatusOK, prices)
}

// InitPrices handles POST /api/init-market-prices
// Seeds the default reference prices once
func (h *MarketHandler) InitPrices(w http.ResponseWriter, r *http.Request) {
	inserted, err := db.SeedMarketPrices(h.db)
	if err != nil {
		slog.Error("failed to seed market prices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to initialize market prices")
		return
	}

	if !inserted {
		middleware.JSONResponse(w, http.StatusOK, models.StatusMessageResponse{Message: "Market prices already initialized"})
		return
	}

	slog.Info("market prices initialized", "count", len(db.DefaultMarketPrices))
	middleware.JSONResponse(w, http.StatusOK, models.StatusMessageResponse{Message: "Market prices initialized"})
}
