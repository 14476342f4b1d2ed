// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/agroconnect/agroconnect/auth"
	"github.com/agroconnect/agroconnect/cliparse"
	"github.com/agroconnect/agroconnect/middleware"
	"github.com/agroconnect/agroconnect/models"
)

// listLimit caps every list endpoint
const listLimit = 100

const cropColumns = `id, farmer_id, farmer_name, farmer_phone, farmer_location,
	crop_type, quantity, unit, price, expected_harvest_date,
	description, image, status, created_at`

type CropHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCropHandler(db *sql.DB, cfg cliparse.Config) *CropHandler {
	return &CropHandler{db: db, cfg: cfg}
}

// ListCrops handles GET /api/crops
// Public; returns available crops filtered by crop_type and location substrings
func (h *CropHandler) ListCrops(w http.ResponseWriter, r *http.Request) {
	query := "SELECT " + cropColumns + " FROM crop WHERE status = $1"
	args := []interface{}{models.StatusAvailable}

	if cropType := r.URL.Query().Get("crop_type"); cropType != "" {
		args = append(args, containsPattern(cropType))
		query += fmt.Sprintf(` AND LOWER(crop_type) LIKE LOWER($%d) ESCAPE '\'`, len(args))
	}
	if location := r.URL.Query().Get("location"); location != "" {
		args = append(args, containsPattern(location))
		query += fmt.Sprintf(` AND LOWER(farmer_location) LIKE LOWER($%d) ESCAPE '\'`, len(args))
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", listLimit)

	crops, err := h.queryCrops(query, args...)
	if err != nil {
		slog.Error("failed to query crops", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, crops)
}

// MyCrops handles GET /api/crops/my-crops
// Farmer only; returns every crop the caller owns regardless of status
func (h *CropHandler) MyCrops(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	crops, err := h.queryCrops(
		"SELECT "+cropColumns+" FROM crop WHERE farmer_id = $1 "+
			fmt.Sprintf("ORDER BY created_at DESC LIMIT %d", listLimit),
		user.ID,
	)
	if err != nil {
		slog.Error("failed to query crops", "error", err, "farmer_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, crops)
}

// CreateCrop handles POST /api/crops
func (h *CropHandler) CreateCrop(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req models.CreateCropRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateCrop(req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	crop := models.Crop{
		ID:                  auth.GenerateID(),
		FarmerID:            user.ID,
		FarmerName:          user.Name,
		FarmerPhone:         user.Phone,
		FarmerLocation:      user.Location,
		CropType:            strings.TrimSpace(req.CropType),
		Quantity:            req.Quantity,
		Unit:                req.Unit,
		Price:               req.Price,
		ExpectedHarvestDate: req.ExpectedHarvestDate,
		Description:         req.Description,
		Image:               req.Image,
		Status:              models.StatusAvailable,
		CreatedAt:           time.Now().UTC(),
	}

	_, err := h.db.Exec(`
		INSERT INTO crop (`+cropColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, crop.ID, crop.FarmerID, crop.FarmerName, crop.FarmerPhone, crop.FarmerLocation,
		crop.CropType, crop.Quantity, crop.Unit, crop.Price, crop.ExpectedHarvestDate,
		crop.Description, crop.Image, crop.Status, crop.CreatedAt)

	if err != nil {
		slog.Error("failed to insert crop", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create crop")
		return
	}

	slog.Info("crop created", "crop_id", crop.ID, "farmer_id", user.ID, "crop_type", crop.CropType)

	middleware.JSONResponse(w, http.StatusCreated, crop)
}

// DeleteCrop handles DELETE /api/crops/{id}
// Only the owner may delete; anyone else gets 404
func (h *CropHandler) DeleteCrop(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	cropID := r.PathValue("id")

	result, err := h.db.Exec("DELETE FROM crop WHERE id = $1 AND farmer_id = $2", cropID, user.ID)
	if err != nil {
		slog.Error("failed to delete crop", "error", err, "crop_id", cropID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete crop")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Crop not found")
		return
	}

	slog.Info("crop deleted", "crop_id", cropID, "farmer_id", user.ID)
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus handles PUT /api/crops/{id}/status?status=
// Returns the updated crop
func (h *CropHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	cropID := r.PathValue("id")

	status := r.URL.Query().Get("status")
	if !models.IsValidStatus(status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be one of: available, sold")
		return
	}

	result, err := h.db.Exec(
		"UPDATE crop SET status = $1 WHERE id = $2 AND farmer_id = $3",
		status, cropID, user.ID,
	)
	if err != nil {
		slog.Error("failed to update crop status", "error", err, "crop_id", cropID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Crop not found")
		return
	}

	crop, err := scanCrop(h.db.QueryRow("SELECT "+cropColumns+" FROM crop WHERE id = $1", cropID))
	if err != nil {
		slog.Error("failed to reload crop", "error", err, "crop_id", cropID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("crop status updated", "crop_id", cropID, "status", status)

	middleware.JSONResponse(w, http.StatusOK, crop)
}

func (h *CropHandler) queryCrops(query string, args ...interface{}) ([]models.Crop, error) {
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crops := []models.Crop{}
	for rows.Next() {
		crop, err := scanCrop(rows)
		if err != nil {
			return nil, err
		}
		crops = append(crops, crop)
	}
	return crops, rows.Err()
}

// likeEscaper makes LIKE metacharacters in user input match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere in the column
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCrop(row rowScanner) (models.Crop, error) {
	var c models.Crop
	err := row.Scan(
		&c.ID, &c.FarmerID, &c.FarmerName, &c.FarmerPhone, &c.FarmerLocation,
		&c.CropType, &c.Quantity, &c.Unit, &c.Price, &c.ExpectedHarvestDate,
		&c.Description, &c.Image, &c.Status, &c.CreatedAt,
	)
	return c, err
}

// validateCrop returns a detail message for the first invalid field
func validateCrop(req models.CreateCropRequest) string {
	switch {
	case strings.TrimSpace(req.CropType) == "":
		return "crop_type is required"
	case !isPositive(req.Quantity):
		return "quantity must be a positive number"
	case !models.IsValidUnit(req.Unit):
		return "unit must be one of: kg, quintal, ton"
	case !isPositive(req.Price):
		return "price must be a positive number"
	case req.ExpectedHarvestDate == "":
		return "expected_harvest_date is required"
	case strings.TrimSpace(req.Description) == "":
		return "description is required"
	}
	return ""
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
