package handler

import (
	"context"
	"net/http"
	"time"

	"resort/pkg/config"
	httpresp "resort/pkg/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/health", h.Health)
	router.HandlerFunc(http.MethodGet, "/health/live", h.Live)
	router.HandlerFunc(http.MethodGet, "/health/ready", h.Ready)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	httpresp.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "bookings",
	})
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	httpresp.WriteJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Ready pings the store; a failing ping returns 503 so load balancers stop
// routing here.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.cfg.Client.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.cfg.Log.Error("Readiness check failed", "error", err)
		httpresp.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"reason": "database unreachable",
		})
		return
	}
	httpresp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
