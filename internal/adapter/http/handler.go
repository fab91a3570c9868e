package httpadapter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"geo-bidder/internal/core/port"
	"geo-bidder/internal/metrics"
)

// maxBodyBytes caps request bodies on the bid endpoints.
const maxBodyBytes = 1 << 20

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the bid usecase and a logger for structured logging. Routes are
// registered on a chi.Router for convenient method handling.
type Handler struct {
	svc    port.BidUseCase
	logger *slog.Logger
	router chi.Router
	now    func() time.Time
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.BidUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger, now: time.Now}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.observe)

	r.Post("/bid", h.handleBid)
	r.Post("/openrtb2/bid", h.handleOpenRTB)
	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/campaigns/{id}/budget", h.handleBudget)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// observe records the handler duration per route pattern.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := h.now()
		next.ServeHTTP(w, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		metrics.HTTPRequestDurationMs.WithLabelValues(route).Observe(sinceMs(h.now, start))
	})
}

func sinceMs(now func() time.Time, start time.Time) float64 {
	return float64(now().Sub(start).Microseconds()) / 1000
}
