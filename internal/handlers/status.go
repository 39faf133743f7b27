package handlers

import (
	"net/http"

	"dolegal-backend/internal/models"
)

const statusMessage = "DoLegal Backend is running"

// Root answers GET / with the static status payload.
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.StatusResponse{Status: statusMessage})
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
