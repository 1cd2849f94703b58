package directory

import (
	"encoding/json"
	"net/http"

	"github.com/cabinetx/front-office/pkg/logging"
)

// Handler serves the clinic list to the landing page.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a directory handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// ListResponse is the payload for GET /api/clinics.
type ListResponse struct {
	Clinics  []ClinicView `json:"clinics"`
	Fallback bool         `json:"fallback"`
}

// ClinicView is the subset of a clinic the form needs.
type ClinicView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// ListActive handles GET /api/clinics. It serves the cached directory and
// never fails: a missing cache resolves to the fallback list.
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	res := h.service.Cached()

	views := make([]ClinicView, 0, len(res.Clinics))
	for _, c := range res.Clinics {
		views = append(views, ClinicView{
			ID:        c.ID,
			Name:      c.Name,
			Specialty: c.Specialty,
			Address:   c.Address,
			Phone:     c.Phone,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ListResponse{Clinics: views, Fallback: res.Fallback})
}

// Refresh handles POST /api/clinics/refresh, forcing a synchronous reload.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	res := h.service.ActiveClinics(r.Context())
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"clinics":  len(res.Clinics),
		"fallback": res.Fallback,
	})
}
