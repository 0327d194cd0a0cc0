package http

import (
	"encoding/json"
	"net/http"

	applog "finhub/internal/log"
	"finhub/internal/services"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// dashboard fetches the latest analysis, replying 503 while no data exists
// yet and the source cannot produce any.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) (*services.DashboardData, bool) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false
	}

	data, err := s.data.Dashboard(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "dashboard unavailable", applog.FieldError, err)
		writeError(w, http.StatusServiceUnavailable, "dashboard data unavailable")
		return nil, false
	}
	return data, true
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if data, ok := s.dashboard(w, r); ok {
		writeJSON(w, http.StatusOK, data)
	}
}

func (s *Server) handleHealthScore(w http.ResponseWriter, r *http.Request) {
	if data, ok := s.dashboard(w, r); ok {
		writeJSON(w, http.StatusOK, data.HealthScore)
	}
}

func (s *Server) handlePayoff(w http.ResponseWriter, r *http.Request) {
	if data, ok := s.dashboard(w, r); ok {
		writeJSON(w, http.StatusOK, data.Payoff)
	}
}

func (s *Server) handleSpending(w http.ResponseWriter, r *http.Request) {
	if data, ok := s.dashboard(w, r); ok {
		writeJSON(w, http.StatusOK, data.Trends)
	}
}

func (s *Server) handleAnomalies(w http.ResponseWriter, r *http.Request) {
	if data, ok := s.dashboard(w, r); ok {
		writeJSON(w, http.StatusOK, data.Anomalies)
	}
}

func (s *Server) handleEmergencyFund(w http.ResponseWriter, r *http.Request) {
	if data, ok := s.dashboard(w, r); ok {
		writeJSON(w, http.StatusOK, data.EmergencyFund)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
