package content

import (
	"encoding/json"
	"net/http"
)

// Handler serves the landing copy as JSON.
type Handler struct {
	landing Landing
}

// NewHandler creates a content handler.
func NewHandler() *Handler {
	return &Handler{landing: Default()}
}

// Landing handles GET /api/content/landing.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.landing)
}

// Stats handles GET /api/content/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.landing.Stats)
}

// Features handles GET /api/content/features.
func (h *Handler) Features(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.landing.Features)
}

// Testimonials handles GET /api/content/testimonials.
func (h *Handler) Testimonials(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.landing.Testimonials)
}

// Contact handles GET /api/content/contact.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.landing.Contact)
}

func (h *Handler) respond(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_ = json.NewEncoder(w).Encode(v)
}
