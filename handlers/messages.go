// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agroconnect/agroconnect/auth"
	"github.com/agroconnect/agroconnect/cliparse"
	"github.com/agroconnect/agroconnect/middleware"
	"github.com/agroconnect/agroconnect/models"
)

type MessageHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewMessageHandler(db *sql.DB, cfg cliparse.Config) *MessageHandler {
	return &MessageHandler{db: db, cfg: cfg}
}

// SendMessage handles POST /api/messages
// Buyer only; the crop must exist and belong to farmer_id
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	buyer, _ := middleware.UserFromContext(r.Context())

	var req models.SendMessageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.CropID == "" || req.FarmerID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "crop_id and farmer_id are required")
		return
	}

	var ownerID string
	err := h.db.QueryRow("SELECT farmer_id FROM crop WHERE id = $1", req.CropID).Scan(&ownerID)
	if err == sql.ErrNoRows || (err == nil && ownerID != req.FarmerID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Crop not found")
		return
	}
	if err != nil {
		slog.Error("failed to query crop", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	msg := models.Message{
		ID:         auth.GenerateID(),
		CropID:     req.CropID,
		FarmerID:   req.FarmerID,
		BuyerID:    buyer.ID,
		BuyerName:  buyer.Name,
		BuyerPhone: buyer.Phone,
		Message:    req.Message,
		CreatedAt:  time.Now().UTC(),
	}

	_, err = h.db.Exec(`
		INSERT INTO message (id, crop_id, farmer_id, buyer_id, buyer_name, buyer_phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, msg.ID, msg.CropID, msg.FarmerID, msg.BuyerID, msg.BuyerName, msg.BuyerPhone, msg.Message, msg.CreatedAt)

	if err != nil {
		slog.Error("failed to insert message", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	slog.Info("message sent", "message_id", msg.ID, "crop_id", msg.CropID, "buyer_id", buyer.ID)

	middleware.JSONResponse(w, http.StatusCreated, msg)
}

// Received handles GET /api/messages/received
// Farmer only; newest first
func (h *MessageHandler) Received(w http.ResponseWriter, r *http.Request) {
	farmer, _ := middleware.UserFromContext(r.Context())

	rows, err := h.db.Query(`
		SELECT id, crop_id, farmer_id, buyer_id, buyer_name, buyer_phone, message, created_at
		FROM message
		WHERE farmer_id = $1
		ORDER BY created_at DESC
		LIMIT `+fmt.Sprint(listLimit), farmer.ID)

	if err != nil {
		slog.Error("failed to query messages", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	messages, err := scanMessages(rows)
	if err != nil {
		slog.Error("failed to read messages", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, messages)
}

type rowIterator interface {
	rowScanner
	Next() bool
	Err() error
}

// scanMessages drains rows; an iteration error discards the partial result
func scanMessages(rows rowIterator) ([]models.Message, error) {
	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.CropID, &m.FarmerID, &m.BuyerID,
			&m.BuyerName, &m.BuyerPhone, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
