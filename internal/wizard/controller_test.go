package wizard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinetx/front-office/internal/gateway"
	"github.com/cabinetx/front-office/internal/registration"
	"github.com/cabinetx/front-office/internal/scheduling"
	"github.com/cabinetx/front-office/pkg/logging"
)

// fakeRegistrar scripts step 1 outcomes.
type fakeRegistrar struct {
	identity registration.Identity
	err      error
	calls    int
	gate     chan struct{} // when set, CreateOrFetch blocks until closed
	mu       sync.Mutex
}

func (f *fakeRegistrar) CreateOrFetch(_ context.Context, _ registration.Input) (registration.Identity, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.identity, f.err
}

// fakeBooker scripts step 2 outcomes.
type fakeBooker struct {
	conf      *scheduling.Confirmation
	err       error
	patientID int64
	cabinetID int64
	draft     scheduling.Draft
}

func (f *fakeBooker) Book(_ context.Context, patientID, cabinetID int64, draft scheduling.Draft) (*scheduling.Confirmation, error) {
	f.patientID = patientID
	f.cabinetID = cabinetID
	f.draft = draft
	return f.conf, f.err
}

func newTestController(reg *fakeRegistrar, booker *fakeBooker) *Controller {
	c := NewController(reg, booker, logging.New("error"), nil)
	c.now = func() time.Time { return testNow }
	return c
}

func appointmentDraft() scheduling.Draft {
	return scheduling.Draft{Date: "2026-09-01", Heure: "10:00", Motif: scheduling.ReasonConsultation}
}

func TestInitialState(t *testing.T) {
	c := newTestController(&fakeRegistrar{}, &fakeBooker{})
	snap := c.Snapshot()
	assert.Equal(t, StepPersonal, snap.Step)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Errors)
}

func TestSubmitPersonalValidationFailureDoesNotAdvance(t *testing.T) {
	reg := &fakeRegistrar{}
	c := newTestController(reg, &fakeBooker{})

	draft := validDraft()
	draft.CIN = "123456"
	snap, err := c.SubmitPersonal(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, StepPersonal, snap.Step)
	assert.Contains(t, snap.Errors, "cin")
	assert.Equal(t, BannerValidation, snap.Message)
	assert.Equal(t, 0, reg.calls)
	// The draft is preserved for correction.
	assert.Equal(t, "123456", snap.Personal.CIN)
}

func TestSubmitPersonalAdvances(t *testing.T) {
	reg := &fakeRegistrar{identity: registration.Identity{PatientID: 42}}
	c := newTestController(reg, &fakeBooker{})

	snap, err := c.SubmitPersonal(context.Background(), validDraft())
	require.NoError(t, err)

	assert.Equal(t, StepAppointment, snap.Step)
	assert.Equal(t, int64(42), snap.PatientID)
	assert.False(t, snap.FromConflict)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Message)
}

func TestSubmitPersonalConflictRecoveredAdvances(t *testing.T) {
	reg := &fakeRegistrar{identity: registration.Identity{PatientID: 7, FromConflict: true}}
	c := newTestController(reg, &fakeBooker{})

	snap, err := c.SubmitPersonal(context.Background(), validDraft())
	require.NoError(t, err)

	// Conflict recovery is invisible: the wizard still advances.
	assert.Equal(t, StepAppointment, snap.Step)
	assert.Equal(t, int64(7), snap.PatientID)
	assert.True(t, snap.FromConflict)
	assert.Empty(t, snap.Message)
}

func TestSubmitPersonalGatewayFailureStays(t *testing.T) {
	reg := &fakeRegistrar{err: &gateway.APIError{Status: 500, Message: "service indisponible"}}
	c := newTestController(reg, &fakeBooker{})

	snap, err := c.SubmitPersonal(context.Background(), validDraft())
	require.NoError(t, err)

	assert.Equal(t, StepPersonal, snap.Step)
	assert.Equal(t, "service indisponible", snap.Message)
	assert.False(t, snap.Loading)
	assert.Equal(t, validDraft(), snap.Personal)
}

func TestSubmitPersonalWrongStep(t *testing.T) {
	reg := &fakeRegistrar{identity: registration.Identity{PatientID: 1}}
	c := newTestController(reg, &fakeBooker{})

	_, err := c.SubmitPersonal(context.Background(), validDraft())
	require.NoError(t, err)

	_, err = c.SubmitPersonal(context.Background(), validDraft())
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestSubmitPersonalRejectsOverlap(t *testing.T) {
	gate := make(chan struct{})
	reg := &fakeRegistrar{identity: registration.Identity{PatientID: 1}, gate: gate}
	c := newTestController(reg, &fakeBooker{})

	done := make(chan Snapshot, 1)
	go func() {
		snap, err := c.SubmitPersonal(context.Background(), validDraft())
		assert.NoError(t, err)
		done <- snap
	}()

	// Wait until the first submission is in flight.
	require.Eventually(t, func() bool {
		return c.Snapshot().Loading
	}, time.Second, time.Millisecond)

	_, err := c.SubmitPersonal(context.Background(), validDraft())
	assert.ErrorIs(t, err, ErrBusy)

	close(gate)
	snap := <-done
	assert.Equal(t, StepAppointment, snap.Step)
}

func TestBack(t *testing.T) {
	reg := &fakeRegistrar{identity: registration.Identity{PatientID: 42}}
	c := newTestController(reg, &fakeBooker{})
	_, err := c.SubmitPersonal(context.Background(), validDraft())
	require.NoError(t, err)

	snap, err := c.Back()
	require.NoError(t, err)
	assert.Equal(t, StepPersonal, snap.Step)
	// Identity and draft survive the backward transition.
	assert.Equal(t, int64(42), snap.PatientID)
	assert.Equal(t, validDraft(), snap.Personal)

	// The whole point of going back: the personal step accepts a corrected
	// draft and advances again.
	corrected := validDraft()
	corrected.Prenom = "Yasmine"
	snap, err = c.SubmitPersonal(context.Background(), corrected)
	require.NoError(t, err)
	assert.Equal(t, StepAppointment, snap.Step)
	assert.Equal(t, "Yasmine", snap.Personal.Prenom)
}

func TestBackWrongStep(t *testing.T) {
	c := newTestController(&fakeRegistrar{}, &fakeBooker{})
	_, err := c.Back()
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestSubmitAppointmentConfirms(t *testing.T) {
	reg := &fakeRegistrar{identity: registration.Identity{PatientID: 42}}
	booker := &fakeBooker{conf: &scheduling.Confirmation{AppointmentID: 99, Statut: "PLANIFIE"}}
	c := newTestController(reg, booker)
	_, err := c.SubmitPersonal(context.Background(), validDraft())
	require.NoError(t, err)

	snap, err := c.SubmitAppointment(context.Background(), appointmentDraft())
	require.NoError(t, err)

	assert.Equal(t, StepConfirmed, snap.Step)
	require.NotNil(t, snap.Confirmation)
	assert.Equal(t, int64(99), snap.Confirmation.AppointmentID)
	// The booking call carries the identity from step 1 and the selected cabinet.
	assert.Equal(t, int64(42), booker.patientID)
	assert.Equal(t, validDraft().CabinetID, booker.cabinetID)
}

func TestSubmitAppointmentRequiresStepOne(t *testing.T) {
	c := newTestController(&fakeRegistrar{}, &fakeBooker{})
	_, err := c.SubmitAppointment(context.Background(), appointmentDraft())
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestSubmitAppointmentIncompleteDraftStays(t *testing.T) {
	reg := &fakeRegistrar{identity: registration.Identity{PatientID: 1}}
	c := newTestController(reg, &fakeBooker{})
	_, err := c.SubmitPersonal(context.Background(), validDraft())
	require.NoError(t, err)

	snap, err := c.SubmitAppointment(context.Background(), scheduling.Draft{Date: "2026-09-01"})
	require.NoError(t, err)
	assert.Equal(t, StepAppointment, snap.Step)
	assert.NotEmpty(t, snap.Message)
}

func TestSubmitAppointmentFailureStays(t *testing.T) {
	reg := &fakeRegistrar{identity: registration.Identity{PatientID: 1}}
	booker := &fakeBooker{err: &gateway.APIError{Status: 500, Message: "créneau pris"}}
	c := newTestController(reg, booker)
	_, err := c.SubmitPersonal(context.Background(), validDraft())
	require.NoError(t, err)

	snap, err := c.SubmitAppointment(context.Background(), appointmentDraft())
	require.NoError(t, err)
	assert.Equal(t, StepAppointment, snap.Step)
	assert.Equal(t, "créneau pris", snap.Message)
	assert.False(t, snap.Loading)
	assert.Equal(t, appointmentDraft(), snap.Appointment)
}

func TestResetClearsEverything(t *testing.T) {
	reg := &fakeRegistrar{identity: registration.Identity{PatientID: 42}}
	booker := &fakeBooker{conf: &scheduling.Confirmation{AppointmentID: 99}}
	c := newTestController(reg, booker)
	_, err := c.SubmitPersonal(context.Background(), validDraft())
	require.NoError(t, err)
	_, err = c.SubmitAppointment(context.Background(), appointmentDraft())
	require.NoError(t, err)

	snap := c.Reset()
	assert.Equal(t, StepPersonal, snap.Step)
	assert.Zero(t, snap.PatientID)
	assert.Equal(t, PersonalDraft{}, snap.Personal)
	assert.Equal(t, scheduling.Draft{}, snap.Appointment)
	assert.Empty(t, snap.Errors)
	assert.Empty(t, snap.Message)
	assert.Nil(t, snap.Confirmation)
}

func TestObserverNotified(t *testing.T) {
	reg := &fakeRegistrar{identity: registration.Identity{PatientID: 42}}
	c := newTestController(reg, &fakeBooker{})

	var mu sync.Mutex
	var steps []Step
	c.Subscribe(func(s Snapshot) {
		mu.Lock()
		steps = append(steps, s.Step)
		mu.Unlock()
	})

	_, err := c.SubmitPersonal(context.Background(), validDraft())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, steps)
	assert.Equal(t, StepAppointment, steps[len(steps)-1])
}

func TestRestore(t *testing.T) {
	c := newTestController(&fakeRegistrar{}, &fakeBooker{})
	c.Restore(Snapshot{
		Step:      StepAppointment,
		PatientID: 42,
		Personal:  validDraft(),
		Loading:   true, // persisted mid-request; cleared on restore
	})

	snap := c.Snapshot()
	assert.Equal(t, StepAppointment, snap.Step)
	assert.Equal(t, int64(42), snap.PatientID)
	assert.False(t, snap.Loading)
}

func TestRestoreEmptySnapshotDefaultsToFirstStep(t *testing.T) {
	c := newTestController(&fakeRegistrar{}, &fakeBooker{})
	c.Restore(Snapshot{})
	assert.Equal(t, StepPersonal, c.Snapshot().Step)
}
