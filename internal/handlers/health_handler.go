package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sndpbag/Library-Management-API/internal/utils"
)

type HealthHandler struct {
	Ping func(ctx context.Context) error
}

// GET /health
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "Connected"
	if h.Ping == nil || h.Ping(ctx) != nil {
		dbStatus = "Not Connected"
	}

	utils.JSONSuccess(w, http.StatusOK, "Library Management API is running", map[string]any{
		"dbConnection": dbStatus,
		"time":         time.Now(),
	})
}
