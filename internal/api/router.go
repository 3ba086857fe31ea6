// Package api serves the tax identifier validators over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/taxid/pkg/httpserver"
	"github.com/dmitrymomot/taxid/pkg/i18n"
	"github.com/dmitrymomot/taxid/pkg/logger"
	"github.com/dmitrymomot/taxid/pkg/requestid"
)

// DefaultBatchLimit caps the number of identifiers in one batch request.
const DefaultBatchLimit = 1000

// Handler holds the dependencies of the HTTP endpoints.
type Handler struct {
	tr         *i18n.Translator
	log        *slog.Logger
	metrics    *Metrics
	gatherer   prometheus.Gatherer
	batchLimit int
}

// Option configures a Handler.
type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithRegistry registers the metrics on reg and serves reg at /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(h *Handler) {
		if reg != nil {
			h.metrics = NewMetrics(reg)
			h.gatherer = reg
		}
	}
}

func WithBatchLimit(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.batchLimit = n
		}
	}
}

// New builds a Handler. Without WithRegistry metrics go to a private registry.
func New(tr *i18n.Translator, opts ...Option) *Handler {
	h := &Handler{
		tr:         tr,
		log:        logger.Discard(),
		batchLimit: DefaultBatchLimit,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.metrics == nil {
		reg := prometheus.NewRegistry()
		h.metrics = NewMetrics(reg)
		h.gatherer = reg
	}
	return h
}

// Metrics exposes the collectors, mainly for tests.
func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// Routes returns the full router, health and metrics endpoints included.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestid.Middleware)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(h.log, time.Second, map[string]httpserver.Check{
		"translations": h.translationsReady,
	}))
	r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(i18n.Middleware(h.tr.Extractor("lang"), h.tr.DefaultLanguage()))

		r.Get("/inn/{inn}", h.getINN)
		r.Post("/inn/validate", h.validateINN)
		r.Post("/inn/batch", h.validateBatch)
		r.Post("/kpp/validate", h.validateKPP)
		r.Post("/inn-kpp/validate", h.validateINNWithKPP)
		r.Post("/requisites/validate", h.validateRequisites)
	})

	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		h.log.InfoContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("route", chi.RouteContext(r.Context()).RoutePattern()),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
