// Package router assembles the public HTTP surface of the front office.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cabinetx/front-office/internal/chatbot"
	"github.com/cabinetx/front-office/internal/content"
	"github.com/cabinetx/front-office/internal/directory"
	httpmiddleware "github.com/cabinetx/front-office/internal/http/middleware"
	"github.com/cabinetx/front-office/internal/wizard"
	"github.com/cabinetx/front-office/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	DirectoryHandler   *directory.Handler
	WizardHandler      *wizard.Handler
	ChatHandler        *chatbot.Handler
	ContentHandler     *content.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Rate limiting for the public write endpoints. Zero disables it.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.DirectoryHandler != nil {
			api.Get("/clinics", cfg.DirectoryHandler.ListActive)
			api.Post("/clinics/refresh", cfg.DirectoryHandler.Refresh)
		}

		if cfg.ContentHandler != nil {
			api.Route("/content", func(r chi.Router) {
				r.Get("/landing", cfg.ContentHandler.Landing)
				r.Get("/stats", cfg.ContentHandler.Stats)
				r.Get("/features", cfg.ContentHandler.Features)
				r.Get("/testimonials", cfg.ContentHandler.Testimonials)
				r.Get("/contact", cfg.ContentHandler.Contact)
			})
		}

		if cfg.WizardHandler != nil {
			api.Route("/wizard", func(r chi.Router) {
				r.Get("/meta", cfg.WizardHandler.Meta)
				r.Group(func(w chi.Router) {
					if cfg.RateLimitPerSecond > 0 {
						w.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
					}
					w.Post("/sessions", cfg.WizardHandler.CreateSession)
					w.Route("/sessions/{sessionID}", func(s chi.Router) {
						s.Get("/", cfg.WizardHandler.GetSession)
						s.Post("/personal", cfg.WizardHandler.SubmitPersonal)
						s.Post("/appointment", cfg.WizardHandler.SubmitAppointment)
						s.Post("/back", cfg.WizardHandler.Back)
						s.Post("/reset", cfg.WizardHandler.Reset)
					})
				})
			})
		}

		if cfg.ChatHandler != nil {
			api.Route("/chat", func(r chi.Router) {
				if cfg.RateLimitPerSecond > 0 {
					r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
				}
				r.Post("/message", cfg.ChatHandler.HandleMessage)
				r.Get("/ws", cfg.ChatHandler.HandleWebSocket)
			})
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
