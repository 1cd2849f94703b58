// Package scheduling books appointments for registered patients.
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cabinetx/front-office/internal/gateway"
	"github.com/cabinetx/front-office/pkg/logging"
)

// GenericErrorMessage is shown when the server did not provide one.
const GenericErrorMessage = "Erreur lors de la création du rendez-vous"

// ConsultationDuration is the fixed slot length added to the start time.
const ConsultationDuration = 60 * time.Minute

// Display labels offered by the form, mapped onto the backend enumeration
// before submission.
const (
	ReasonConsultation = "Consultation"
	ReasonControl      = "Contrôle"
)

// ErrIncomplete is returned when a required appointment field is missing.
var ErrIncomplete = errors.New("scheduling: date, heure and motif are required")

// Booker is the slice of the gateway client the service needs.
type Booker interface {
	CreateAppointment(ctx context.Context, req gateway.AppointmentRequest) (*gateway.Appointment, error)
}

// Draft holds the appointment fields collected in step 2.
type Draft struct {
	Date  string `json:"date"`  // YYYY-MM-DD
	Heure string `json:"heure"` // HH:MM, 24-hour
	Motif string `json:"motif"` // Consultation or Contrôle
	Notes string `json:"notes,omitempty"`
}

// Complete reports whether all required fields are present. Notes stay
// optional.
func (d Draft) Complete() bool {
	return d.Date != "" && d.Heure != "" && d.Motif != ""
}

// Confirmation is the booked appointment as shown on the final step.
type Confirmation struct {
	AppointmentID int64  `json:"appointmentId"`
	Date          string `json:"date"`
	HeureDebut    string `json:"heureDebut"`
	HeureFin      string `json:"heureFin"`
	Statut        string `json:"statut"`
}

// Service books appointments through the API gateway.
type Service struct {
	booker Booker
	logger *logging.Logger
	now    func() time.Time
}

// NewService creates a scheduling service.
func NewService(booker Booker, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{booker: booker, logger: logger, now: time.Now}
}

// Book creates the rendez-vous for an already-registered patient. The end
// time is the start plus the fixed consultation duration.
func (s *Service) Book(ctx context.Context, patientID, cabinetID int64, draft Draft) (*Confirmation, error) {
	if !draft.Complete() {
		return nil, ErrIncomplete
	}

	heureFin, err := EndTime(draft.Heure)
	if err != nil {
		return nil, fmt.Errorf("scheduling: %w", err)
	}

	req := gateway.AppointmentRequest{
		PatientID:  patientID,
		CabinetID:  cabinetID,
		Date:       draft.Date,
		HeureDebut: draft.Heure,
		HeureFin:   heureFin,
		MotifRDV:   mapMotif(draft.Motif),
		Notes:      draft.Notes,
	}

	appt, err := s.booker.CreateAppointment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("scheduling: create appointment: %w", err)
	}

	s.logger.Info("appointment booked",
		"appointment_id", appt.ID,
		"cabinet_id", cabinetID,
		"date", draft.Date,
	)
	return &Confirmation{
		AppointmentID: appt.ID,
		Date:          appt.Date,
		HeureDebut:    appt.HeureDebut,
		HeureFin:      appt.HeureFin,
		Statut:        appt.Statut,
	}, nil
}

// EndTime adds the consultation duration to an HH:MM start using wall-clock
// arithmetic. Hours past 23 are kept as-is rather than wrapped; the
// published slots end at 18:00 so overflow never occurs through the form.
func EndTime(start string) (string, error) {
	parts := strings.SplitN(start, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid start time %q", start)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("invalid start time %q", start)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("invalid start time %q", start)
	}
	return fmt.Sprintf("%02d:%02d", hours+1, minutes), nil
}

func mapMotif(label string) gateway.MotifRDV {
	if label == ReasonConsultation {
		return gateway.MotifConsultation
	}
	return gateway.MotifControl
}

// Slots returns the bookable start times: hourly from 08:00 to 18:00 with
// no 13:00 slot.
func Slots() []string {
	return []string{"08:00", "09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00", "18:00"}
}

// Reasons returns the selectable appointment reasons in display form.
func Reasons() []string {
	return []string{ReasonConsultation, ReasonControl}
}

// MinDate returns the earliest selectable appointment date (today).
func (s *Service) MinDate() string {
	return s.now().Format("2006-01-02")
}

// UserMessage maps a Book error onto the single message shown to the
// patient.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := gateway.ServerMessage(err); msg != "" {
		return msg
	}
	return GenericErrorMessage
}
