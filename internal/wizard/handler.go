package wizard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cabinetx/front-office/internal/scheduling"
	"github.com/cabinetx/front-office/pkg/logging"
)

// Handler exposes the wizard to the landing page over HTTP. Each request
// names its session explicitly; the handler is only a transport binding
// around the controller.
type Handler struct {
	registry *Registry
	sched    *scheduling.Service
	logger   *logging.Logger
}

// NewHandler creates a wizard handler.
func NewHandler(registry *Registry, sched *scheduling.Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{registry: registry, sched: sched, logger: logger}
}

// SessionResponse pairs a session id with its current snapshot.
type SessionResponse struct {
	SessionID string   `json:"sessionId"`
	Snapshot  Snapshot `json:"snapshot"`
}

// CreateSession handles POST /api/wizard/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, controller := h.registry.Create(r.Context())
	writeJSON(w, http.StatusCreated, SessionResponse{SessionID: id, Snapshot: controller.Snapshot()})
}

// GetSession handles GET /api/wizard/sessions/{sessionID}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	controller, err := h.registry.Get(r.Context(), id)
	if err != nil {
		h.sessionError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: id, Snapshot: controller.Snapshot()})
}

// SubmitPersonal handles POST /api/wizard/sessions/{sessionID}/personal.
func (h *Handler) SubmitPersonal(w http.ResponseWriter, r *http.Request) {
	var draft PersonalDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "sessionID")
	controller, err := h.registry.Get(r.Context(), id)
	if err != nil {
		h.sessionError(w, id, err)
		return
	}

	snap, err := controller.SubmitPersonal(r.Context(), draft)
	if err != nil {
		h.transitionError(w, err)
		return
	}

	h.registry.Persist(r.Context(), id, snap)
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: id, Snapshot: snap})
}

// SubmitAppointment handles POST /api/wizard/sessions/{sessionID}/appointment.
func (h *Handler) SubmitAppointment(w http.ResponseWriter, r *http.Request) {
	var draft scheduling.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "sessionID")
	controller, err := h.registry.Get(r.Context(), id)
	if err != nil {
		h.sessionError(w, id, err)
		return
	}

	snap, err := controller.SubmitAppointment(r.Context(), draft)
	if err != nil {
		h.transitionError(w, err)
		return
	}

	h.registry.Persist(r.Context(), id, snap)
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: id, Snapshot: snap})
}

// Back handles POST /api/wizard/sessions/{sessionID}/back.
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	controller, err := h.registry.Get(r.Context(), id)
	if err != nil {
		h.sessionError(w, id, err)
		return
	}

	snap, err := controller.Back()
	if err != nil {
		h.transitionError(w, err)
		return
	}

	h.registry.Persist(r.Context(), id, snap)
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: id, Snapshot: snap})
}

// Reset handles POST /api/wizard/sessions/{sessionID}/reset.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	controller, err := h.registry.Get(r.Context(), id)
	if err != nil {
		h.sessionError(w, id, err)
		return
	}

	snap := controller.Reset()
	h.registry.Persist(r.Context(), id, snap)
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: id, Snapshot: snap})
}

// MetaResponse carries the static form options.
type MetaResponse struct {
	Slots     []string `json:"slots"`
	Reasons   []string `json:"reasons"`
	Mutuelles []string `json:"mutuelles"`
	MinDate   string   `json:"minDate"`
}

// Meta handles GET /api/wizard/meta.
func (h *Handler) Meta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MetaResponse{
		Slots:     scheduling.Slots(),
		Reasons:   scheduling.Reasons(),
		Mutuelles: []string{"AUCUNE", "CNSS", "CNOPS", "PRIVEE"},
		MinDate:   h.sched.MinDate(),
	})
}

func (h *Handler) sessionError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	h.logger.Error("failed to load wizard session", "session_id", id, "error", err)
	writeError(w, http.StatusInternalServerError, "failed to load session")
}

func (h *Handler) transitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBusy):
		writeError(w, http.StatusConflict, "a submission is already in flight")
	case errors.Is(err, ErrWrongStep):
		writeError(w, http.StatusConflict, "operation not allowed in current step")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
