package api

import (
	"context"
	"net/http"

	"github.com/dom/tutoring-scheduler/internal/api/handlers"
	"github.com/dom/tutoring-scheduler/internal/api/middleware"
	"github.com/dom/tutoring-scheduler/internal/config"
	"github.com/dom/tutoring-scheduler/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter builds the HTTP handler. ctx bounds background work owned by the
// router, such as the rate limiter's sweeper.
func NewRouter(ctx context.Context, services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	// RemoteAddr keys the auth rate limiter, so forwarding headers are
	// honoured only when a trusted proxy sets them.
	if cfg.TrustProxyHeaders {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Metrics)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg.JWTExpiration, cfg.IsProduction())
	consultationHandler := handlers.NewConsultationHandler(services.Consultation)
	directoryHandler := handlers.NewDirectoryHandler(services.Directory)

	limiter := middleware.NewRateLimiter(ctx, cfg.AuthRateLimit, cfg.AuthRateBurst)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(services.Tokens))

		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter))
			r.Post("/sign-up", authHandler.SignUp)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.With(middleware.RequireAuth).Post("/logout", authHandler.Logout)
		})

		// Tutor directory; listing auth is decided by the directory service
		r.Get("/tutors", directoryHandler.ListTutors)
		r.Get("/tutors/{id}", directoryHandler.GetTutor)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/students/{id}", directoryHandler.GetStudent)

			r.Route("/consultations", func(r chi.Router) {
				r.Get("/", consultationHandler.List)
				r.Post("/", consultationHandler.Create)
				r.Get("/next", consultationHandler.Next)
				r.Post("/local", consultationHandler.CreateLocal)
				r.Get("/{id}", consultationHandler.Get)
				r.Patch("/{id}", consultationHandler.UpdateStatus)
			})
		})
	})

	return otelhttp.NewHandler(r, "tutoring-scheduler")
}
