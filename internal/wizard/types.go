// Package wizard owns the two-step registration-and-booking flow: the step
// state machine, the personal-information validation, and the orchestration
// of the registration and scheduling gateways.
package wizard

import (
	"github.com/cabinetx/front-office/internal/scheduling"
)

// Step is the wizard's position in the flow.
type Step string

const (
	StepPersonal    Step = "PERSONAL"
	StepAppointment Step = "APPOINTMENT"
	StepConfirmed   Step = "CONFIRMED"
)

// PersonalDraft holds the identity fields collected in step 1. CabinetID
// zero means no cabinet selected yet.
type PersonalDraft struct {
	CIN           string `json:"cin"`
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	Tel           string `json:"tel"`
	Sexe          string `json:"sexe"` // "M" or "F"
	DateNaissance string `json:"dateNaissance"`
	TypeMutuelle  string `json:"typeMutuelle"`
	CabinetID     int64  `json:"cabinetId"`
}

// FieldErrors maps form field names to human-readable messages. It is
// regenerated wholesale on every validation pass, never merged.
type FieldErrors map[string]string

// Snapshot is the serializable wizard state the presentation layer binds
// to. Every mutation produces a fresh snapshot.
type Snapshot struct {
	Step         Step                     `json:"step"`
	Personal     PersonalDraft            `json:"personal"`
	Appointment  scheduling.Draft         `json:"appointment"`
	PatientID    int64                    `json:"patientId,omitempty"`
	FromConflict bool                     `json:"fromConflict,omitempty"`
	Errors       FieldErrors              `json:"errors,omitempty"`
	Message      string                   `json:"message,omitempty"`
	Loading      bool                     `json:"loading"`
	Confirmation *scheduling.Confirmation `json:"confirmation,omitempty"`
}

// clone returns a copy safe to hand to observers and handlers.
func (s Snapshot) clone() Snapshot {
	out := s
	if s.Errors != nil {
		out.Errors = make(FieldErrors, len(s.Errors))
		for k, v := range s.Errors {
			out.Errors[k] = v
		}
	}
	if s.Confirmation != nil {
		conf := *s.Confirmation
		out.Confirmation = &conf
	}
	return out
}
