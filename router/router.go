// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/agroconnect/agroconnect/cliparse"
	"github.com/agroconnect/agroconnect/handlers"
	"github.com/agroconnect/agroconnect/middleware"
	"github.com/agroconnect/agroconnect/models"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	cropHandler := handlers.NewCropHandler(db, cfg)
	messageHandler := handlers.NewMessageHandler(db, cfg)
	marketHandler := handlers.NewMarketHandler(db, cfg)

	authn := middleware.NewAuthenticator(db, cfg.SecretKey)
	farmerOnly := func(detail string, h http.HandlerFunc) http.HandlerFunc {
		return authn.RequireUser(middleware.RequireRole(models.RoleFarmer, detail, h))
	}
	buyerOnly := func(detail string, h http.HandlerFunc) http.HandlerFunc {
		return authn.RequireUser(middleware.RequireRole(models.RoleBuyer, detail, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication (public)
	mux.HandleFunc("POST /api/auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(authHandler.Login))

	// Crops
	mux.HandleFunc("GET /api/crops", middleware.WithLogging(cropHandler.ListCrops))
	mux.HandleFunc("GET /api/crops/my-crops", middleware.WithLogging(
		farmerOnly("Only farmers can access this", cropHandler.MyCrops)))
	mux.HandleFunc("POST /api/crops", middleware.WithLogging(
		farmerOnly("Only farmers can post crops", cropHandler.CreateCrop)))
	mux.HandleFunc("DELETE /api/crops/{id}", middleware.WithLogging(authn.RequireUser(cropHandler.DeleteCrop)))
	mux.HandleFunc("PUT /api/crops/{id}/status", middleware.WithLogging(authn.RequireUser(cropHandler.UpdateStatus)))

	// Messages
	mux.HandleFunc("POST /api/messages", middleware.WithLogging(
		buyerOnly("Only buyers can send messages", messageHandler.SendMessage)))
	mux.HandleFunc("GET /api/messages/received", middleware.WithLogging(
		farmerOnly("Only farmers can access this", messageHandler.Received)))

	// Market prices (public)
	mux.HandleFunc("GET /api/market-prices", middleware.WithLogging(marketHandler.ListPrices))
	mux.HandleFunc("POST /api/init-market-prices", middleware.WithLogging(marketHandler.InitPrices))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("agroconnect API v1"))
	})

	return mux
}
