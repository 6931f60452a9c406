package handlers

import (
	"net/http"

	"notes-api/health"
	"notes-api/middleware"
)

type HealthHandler struct {
	Probe *health.Probe
}

// Check answers 503 when the database does not respond, otherwise the
// current row counts.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) error {
	if !h.Probe.IsHealthy(r.Context()) {
		middleware.JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":    health.StatusError,
			"message":   "Database unavailable",
			"timestamp": h.Probe.Timestamp(),
		})
		return nil
	}

	stats := h.Probe.Stats(r.Context())
	status := http.StatusOK
	if stats.Status != health.StatusHealthy {
		status = http.StatusServiceUnavailable
	}
	middleware.JSON(w, status, stats)
	return nil
}

type operationsResponse struct {
	health.OperationsResult
	Timestamp      string `json:"timestamp"`
	AllTestsPassed bool   `json:"allTestsPassed"`
}

// Test runs the connect/read/write/delete probe and answers 503 unless
// every stage passed.
func (h *HealthHandler) Test(w http.ResponseWriter, r *http.Request) error {
	res := h.Probe.TestOperations(r.Context())

	status := http.StatusOK
	if !res.AllPassed() {
		status = http.StatusServiceUnavailable
	}
	middleware.JSON(w, status, operationsResponse{
		OperationsResult: res,
		Timestamp:        h.Probe.Timestamp(),
		AllTestsPassed:   res.AllPassed(),
	})
	return nil
}
