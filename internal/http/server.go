package http

import (
	"context"
	"net/http"
	"time"

	applog "finhub/internal/log"
	"finhub/internal/services"
)

// DataSource provides the latest analysis results to the API handlers.
type DataSource interface {
	Dashboard(ctx context.Context) (*services.DashboardData, error)
}

// requestsPerMinute caps per-client request rates. The dashboard refreshes at
// most every few seconds, so this is generous for legitimate use.
const requestsPerMinute = 120

type Server struct {
	http.Server
	data    DataSource
	logger  *applog.Logger
	limiter *rateLimiter
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, data DataSource, logger *applog.Logger) *Server {
	s := &Server{
		data:    data,
		logger:  logger.WithComponent(applog.ComponentHTTP),
		limiter: newRateLimiter(requestsPerMinute),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/health-score", s.handleHealthScore)
	mux.HandleFunc("/api/payoff", s.handlePayoff)
	mux.HandleFunc("/api/spending", s.handleSpending)
	mux.HandleFunc("/api/anomalies", s.handleAnomalies)
	mux.HandleFunc("/api/emergency-fund", s.handleEmergencyFund)
	mux.HandleFunc("/healthz", handleHealth)
	mux.Handle("/metrics", metricsHandler())

	handler := requestIDMiddleware(
		s.requestLogMiddleware(
			s.limiter.middleware(
				metricsMiddleware(mux))))

	s.Server = http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.Server.RegisterOnShutdown(s.limiter.stop)

	return s
}
