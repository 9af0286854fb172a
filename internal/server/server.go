package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/LuckyWheel_Go/internal/auth"
	"github.com/osse101/LuckyWheel_Go/internal/claim"
	"github.com/osse101/LuckyWheel_Go/internal/draw"
	"github.com/osse101/LuckyWheel_Go/internal/handler"
	"github.com/osse101/LuckyWheel_Go/internal/i18n"
	"github.com/osse101/LuckyWheel_Go/internal/metrics"
	"github.com/osse101/LuckyWheel_Go/internal/sse"
	"github.com/osse101/LuckyWheel_Go/internal/wheel"
)

// Options carries the HTTP settings
type Options struct {
	Port           int
	Version        string
	APIKey         string
	TrustedProxies []string
	// ProofMaxBytes bounds a proof upload; the multipart envelope gets some
	// headroom on top.
	ProofMaxBytes int64
}

// Services are the dependencies the routes call into
type Services struct {
	Ready      handler.Pinger
	Wheels     wheel.Service
	Draws      draw.Service
	Claims     claim.Service
	Tokens     *auth.Tokens
	Translator *i18n.Translator
	Hub        *sse.Hub
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the route tree. Host routes require the API key,
// participant routes a Bearer token.
func NewRouter(opts Options, svc Services) http.Handler {
	r := chi.NewRouter()

	// Outermost first
	guard := NewGuard(DefaultRequestLimit, RateWindow)

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(opts.TrustedProxies, guard))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Ready))

	r.Get("/version", handler.HandleVersion(opts.Version))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	wheelHandler := handler.NewWheelHandler(svc.Wheels, svc.Draws, svc.Claims, svc.Translator)
	claimHandler := handler.NewClaimHandler(svc.Claims, svc.Translator)
	hostHandler := handler.NewHostHandler(svc.Wheels, svc.Translator)
	sessionHandler := handler.NewSessionHandler(svc.Tokens, svc.Translator)

	proofLimit := opts.ProofMaxBytes + ProofEnvelopeBytes
	if opts.ProofMaxBytes <= 0 {
		proofLimit = DefaultProofRequestBytes
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Host routes
		r.Group(func(r chi.Router) {
			r.Use(HostKeyMiddleware(opts.APIKey, opts.TrustedProxies, guard))

			r.With(BodyLimitMiddleware(MaxJSONBodyBytes)).Post("/auth/session", sessionHandler.HandleCreateSession)

			r.Route("/host", func(r chi.Router) {
				r.Get("/wheels/{code}/events", sse.Handler(svc.Hub))
				r.Get("/spins/{id}/proof", claimHandler.HandleGetProof)

				r.Group(func(r chi.Router) {
					r.Use(BodyLimitMiddleware(MaxJSONBodyBytes))
					r.Put("/wheels/{code}", hostHandler.HandleUpsertWheel)
					r.Post("/wheels/{code}/pause", hostHandler.HandleSetPaused)
					r.Post("/spins/{id}/status", claimHandler.HandleSetClaimStatus)
				})
			})
		})

		// Participant routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireParticipant(svc.Tokens, handler.RespondUnauthorized(svc.Translator)))

			r.Route("/wheels/{code}", func(r chi.Router) {
				r.Use(BodyLimitMiddleware(MaxJSONBodyBytes))
				r.Get("/", wheelHandler.HandleGetWheel)
				r.Get("/eligibility", wheelHandler.HandleEligibility)
				r.Post("/draw", wheelHandler.HandleDraw)
				r.Get("/winners", wheelHandler.HandleRecentWinners)
			})

			r.Route("/spins", func(r chi.Router) {
				r.Get("/pending", claimHandler.HandleListPending)
				r.With(BodyLimitMiddleware(proofLimit)).Post("/{id}/proof", claimHandler.HandleSubmitProof)
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
