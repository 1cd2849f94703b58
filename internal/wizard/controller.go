package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cabinetx/front-office/internal/observability/metrics"
	"github.com/cabinetx/front-office/internal/registration"
	"github.com/cabinetx/front-office/internal/scheduling"
	"github.com/cabinetx/front-office/pkg/logging"
)

// BannerValidation is the aggregate message shown above the form when
// field validation fails.
const BannerValidation = "Veuillez corriger les erreurs dans le formulaire"

var (
	// ErrBusy is returned when a submission arrives while another request
	// for the same session is still in flight.
	ErrBusy = errors.New("wizard: a submission is already in flight")
	// ErrWrongStep is returned when an operation is not defined for the
	// session's current step.
	ErrWrongStep = errors.New("wizard: operation not allowed in current step")
)

// PatientRegistrar creates or recovers the patient record for step 1.
type PatientRegistrar interface {
	CreateOrFetch(ctx context.Context, in registration.Input) (registration.Identity, error)
}

// AppointmentBooker books the rendez-vous for step 2.
type AppointmentBooker interface {
	Book(ctx context.Context, patientID, cabinetID int64, draft scheduling.Draft) (*scheduling.Confirmation, error)
}

// Observer receives a snapshot after every state change.
type Observer func(Snapshot)

// Controller drives one wizard session: it validates drafts, invokes the
// gateways in order, and keeps the snapshot the presentation layer binds
// to. Failed transitions leave the drafts untouched so the user corrects
// and resubmits without re-entering data.
type Controller struct {
	registrar PatientRegistrar
	booker    AppointmentBooker
	logger    *logging.Logger
	metrics   *metrics.Metrics
	now       func() time.Time

	mu       sync.Mutex
	snap     Snapshot
	busy     bool
	observer Observer
}

// NewController creates a controller in the initial step. metrics may be
// nil.
func NewController(registrar PatientRegistrar, booker AppointmentBooker, logger *logging.Logger, m *metrics.Metrics) *Controller {
	if logger == nil {
		logger = logging.Default()
	}
	return &Controller{
		registrar: registrar,
		booker:    booker,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
		snap:      Snapshot{Step: StepPersonal},
	}
}

// Subscribe registers the observer notified on every state change. One
// observer per controller; a later call replaces the earlier one.
func (c *Controller) Subscribe(fn Observer) {
	c.mu.Lock()
	c.observer = fn
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.clone()
}

// Restore replaces the controller state with a persisted snapshot. A
// snapshot saved mid-request comes back with the loading flag cleared.
func (c *Controller) Restore(snap Snapshot) {
	c.mu.Lock()
	if snap.Step == "" {
		snap.Step = StepPersonal
	}
	snap.Loading = false
	c.snap = snap.clone()
	c.mu.Unlock()
}

// SubmitPersonal validates the step 1 draft and, when it passes, creates
// or recovers the patient record and advances to the appointment step.
// Validation or gateway failures land in the snapshot (errors, banner
// message); the step does not advance and the draft is preserved.
func (c *Controller) SubmitPersonal(ctx context.Context, draft PersonalDraft) (Snapshot, error) {
	c.mu.Lock()
	if c.snap.Step != StepPersonal {
		c.mu.Unlock()
		return Snapshot{}, ErrWrongStep
	}
	if c.busy {
		c.mu.Unlock()
		return Snapshot{}, ErrBusy
	}

	c.snap.Personal = draft
	ok, errs := validateAt(draft, c.now())
	if !ok {
		c.snap.Errors = errs
		c.snap.Message = BannerValidation
		c.metrics.ObserveSubmission("personal", "validation_error")
		snap := c.finishLocked()
		return snap, nil
	}

	c.snap.Errors = nil
	c.snap.Message = ""
	c.busy = true
	c.snap.Loading = true
	c.notifyLocked()
	c.mu.Unlock()

	identity, err := c.registrar.CreateOrFetch(ctx, registration.Input{
		CIN:           draft.CIN,
		Nom:           draft.Nom,
		Prenom:        draft.Prenom,
		Tel:           draft.Tel,
		Sexe:          draft.Sexe,
		DateNaissance: draft.DateNaissance,
		TypeMutuelle:  draft.TypeMutuelle,
		CabinetID:     draft.CabinetID,
	})

	c.mu.Lock()
	c.busy = false
	c.snap.Loading = false
	if err != nil {
		c.snap.Message = registration.UserMessage(err)
		c.metrics.ObserveSubmission("personal", "gateway_error")
		c.logger.Warn("patient registration failed", "error", err)
		snap := c.finishLocked()
		return snap, nil
	}

	c.snap.PatientID = identity.PatientID
	c.snap.FromConflict = identity.FromConflict
	c.snap.Step = StepAppointment
	c.metrics.ObserveSubmission("personal", "ok")
	c.logger.Info("patient resolved",
		"patient_id", identity.PatientID,
		"from_conflict", identity.FromConflict,
	)
	snap := c.finishLocked()
	return snap, nil
}

// Back returns from the appointment step to the personal step, keeping
// both drafts and the resolved identity.
func (c *Controller) Back() (Snapshot, error) {
	c.mu.Lock()
	if c.snap.Step != StepAppointment {
		c.mu.Unlock()
		return Snapshot{}, ErrWrongStep
	}
	c.snap.Step = StepPersonal
	c.snap.Message = ""
	snap := c.finishLocked()
	return snap, nil
}

// SubmitAppointment books the rendez-vous and moves to the confirmation
// step. The patient identity from step 1 must be set; the step machine
// guarantees it is.
func (c *Controller) SubmitAppointment(ctx context.Context, draft scheduling.Draft) (Snapshot, error) {
	c.mu.Lock()
	if c.snap.Step != StepAppointment {
		c.mu.Unlock()
		return Snapshot{}, ErrWrongStep
	}
	if c.busy {
		c.mu.Unlock()
		return Snapshot{}, ErrBusy
	}

	c.snap.Appointment = draft
	if !draft.Complete() {
		c.snap.Message = "Veuillez renseigner la date, l'heure et le motif"
		c.metrics.ObserveSubmission("appointment", "validation_error")
		snap := c.finishLocked()
		return snap, nil
	}

	patientID := c.snap.PatientID
	cabinetID := c.snap.Personal.CabinetID
	c.snap.Message = ""
	c.busy = true
	c.snap.Loading = true
	c.notifyLocked()
	c.mu.Unlock()

	conf, err := c.booker.Book(ctx, patientID, cabinetID, draft)

	c.mu.Lock()
	c.busy = false
	c.snap.Loading = false
	if err != nil {
		c.snap.Message = scheduling.UserMessage(err)
		c.metrics.ObserveSubmission("appointment", "gateway_error")
		c.logger.Warn("appointment booking failed", "error", err)
		snap := c.finishLocked()
		return snap, nil
	}

	c.snap.Confirmation = conf
	c.snap.Step = StepConfirmed
	c.metrics.ObserveSubmission("appointment", "ok")
	snap := c.finishLocked()
	return snap, nil
}

// Reset clears all drafts, the identity, the errors and the confirmation,
// and returns the wizard to the initial step.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	c.snap = Snapshot{Step: StepPersonal}
	c.busy = false
	snap := c.finishLocked()
	return snap
}

// finishLocked notifies the observer and returns a snapshot copy,
// releasing the lock.
func (c *Controller) finishLocked() Snapshot {
	c.notifyLocked()
	snap := c.snap.clone()
	c.mu.Unlock()
	return snap
}

// notifyLocked invokes the observer with a copy of the current state.
// Called with the lock held; the observer must not call back into the
// controller synchronously.
func (c *Controller) notifyLocked() {
	if c.observer != nil {
		c.observer(c.snap.clone())
	}
}
