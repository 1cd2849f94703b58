// Package registration creates or recovers patient records ahead of booking.
// A CIN collision on creation is not an error for the caller: the service
// falls back to a lookup by CIN so resubmitting the same identity always
// converges to one server-side record.
package registration

import (
	"context"
	"fmt"
	"strings"

	"github.com/cabinetx/front-office/internal/gateway"
	"github.com/cabinetx/front-office/internal/observability/metrics"
	"github.com/cabinetx/front-office/pkg/logging"
)

// GenericErrorMessage is shown when the server did not provide one.
const GenericErrorMessage = "Erreur lors de la création du patient"

// Registrar is the slice of the gateway client the service needs.
type Registrar interface {
	CreatePatient(ctx context.Context, patient gateway.Patient) (*gateway.Patient, error)
	PatientByCIN(ctx context.Context, cin string) (*gateway.Patient, error)
}

// Input is the normalizable patient identity collected in step 1.
type Input struct {
	CIN           string
	Nom           string
	Prenom        string
	Tel           string
	Sexe          string // "M" or "F" as selected in the form
	DateNaissance string // YYYY-MM-DD
	TypeMutuelle  string
	CabinetID     int64
}

// Identity is the server-assigned patient identifier. FromConflict is true
// when it was recovered from an existing record instead of a fresh insert.
type Identity struct {
	PatientID    int64
	FromConflict bool
}

// Service registers patients through the API gateway.
type Service struct {
	registrar Registrar
	logger    *logging.Logger
	metrics   *metrics.Metrics
}

// NewService creates a registration service. metrics may be nil.
func NewService(registrar Registrar, logger *logging.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{registrar: registrar, logger: logger, metrics: m}
}

// CreateOrFetch submits the patient record and resolves CIN collisions by
// looking the existing record up. Only when both creation and the lookup
// fail does it return an error.
func (s *Service) CreateOrFetch(ctx context.Context, in Input) (Identity, error) {
	patient := toPatient(in)

	created, err := s.registrar.CreatePatient(ctx, patient)
	if err == nil {
		return Identity{PatientID: created.ID}, nil
	}

	if !gateway.IsConflict(err) {
		return Identity{}, fmt.Errorf("registration: create patient: %w", err)
	}

	s.logger.Info("patient creation conflicted, resolving by CIN", "cin", patient.CIN)
	existing, lookupErr := s.registrar.PatientByCIN(ctx, patient.CIN)
	if lookupErr != nil {
		if gateway.IsNotFound(lookupErr) {
			s.logger.Warn("conflict reported but no patient exists for CIN", "cin", patient.CIN)
		} else {
			s.logger.Warn("conflict recovery failed", "cin", patient.CIN, "error", lookupErr)
		}
		// Report the original failure; the lookup is an internal detail.
		return Identity{}, fmt.Errorf("registration: create patient: %w", err)
	}

	s.metrics.ObserveConflictRecovery()
	return Identity{PatientID: existing.ID, FromConflict: true}, nil
}

// toPatient normalizes the form input into the backend DTO: CIN uppercased,
// phone whitespace-stripped, M/F mapped onto the backend sex enumeration.
func toPatient(in Input) gateway.Patient {
	return gateway.Patient{
		CIN:           strings.ToUpper(strings.TrimSpace(in.CIN)),
		Nom:           in.Nom,
		Prenom:        in.Prenom,
		DateNaissance: in.DateNaissance,
		Sexe:          mapSexe(in.Sexe),
		NumTel:        stripWhitespace(in.Tel),
		TypeMutuelle:  gateway.TypeMutuelle(in.TypeMutuelle),
		CabinetID:     in.CabinetID,
	}
}

func mapSexe(s string) gateway.Sexe {
	switch s {
	case "M":
		return gateway.SexeMasculin
	case "F":
		return gateway.SexeFeminin
	default:
		return gateway.SexeAutre
	}
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// UserMessage maps a CreateOrFetch error onto the single message shown to
// the patient: the server's own message when it sent one, otherwise the
// French generic.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := gateway.ServerMessage(err); msg != "" {
		return msg
	}
	return GenericErrorMessage
}
