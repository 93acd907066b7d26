package controllers

import (
	"net/http"
	"time"
)

// HealthController answers liveness probes.
type HealthController struct{}

// NewHealthController creates a new HealthController.
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Healthz reports liveness. It succeeds whenever the process can respond.
func (hc *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"ok": true,
		"ts": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
