package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinetx/front-office/pkg/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, logging.New("error"))
}

func TestActiveClinics(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/clinics/active", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]Clinic{
			{ID: 1, Name: "Cabinet Dr. Alami", Specialty: "Médecine générale", Status: ClinicActive},
		})
	})

	clinics, err := c.ActiveClinics(context.Background())
	require.NoError(t, err)
	require.Len(t, clinics, 1)
	assert.Equal(t, int64(1), clinics[0].ID)
	assert.Equal(t, ClinicActive, clinics[0].Status)
}

func TestCreatePatient(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/patients", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var p Patient
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, "AB123456", p.CIN)
		assert.Equal(t, SexeMasculin, p.Sexe)

		p.ID = 42
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(p)
	})

	created, err := c.CreatePatient(context.Background(), Patient{
		CIN:          "AB123456",
		Nom:          "Benali",
		Prenom:       "Omar",
		Sexe:         SexeMasculin,
		TypeMutuelle: MutuelleCNSS,
		CabinetID:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
}

func TestCreatePatientConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Un patient avec ce CIN existe déjà"})
	})

	_, err := c.CreatePatient(context.Background(), Patient{CIN: "AB123456"})
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Un patient avec ce CIN existe déjà", apiErr.Message)
	assert.Equal(t, "Un patient avec ce CIN existe déjà", ServerMessage(err))
}

func TestBadRequestTreatedAsConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	_, err := c.CreatePatient(context.Background(), Patient{CIN: "AB123456"})
	assert.True(t, IsConflict(err))
}

func TestPatientByCIN(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/patients/cin/AB123456", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Patient{ID: 7, CIN: "AB123456"})
	})

	p, err := c.PatientByCIN(context.Background(), "AB123456")
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
}

func TestPatientByCINNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := c.PatientByCIN(context.Background(), "ZZ999999")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
}

func TestCreateAppointment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appointments/rendezvous", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// The appointment service expects the snake-cased hour fields.
		assert.Equal(t, "10:00", req["Heure_debut"])
		assert.Equal(t, "11:00", req["Heure_fin"])
		assert.Equal(t, "CONSULTATION", req["motifRDV"])

		_ = json.NewEncoder(w).Encode(Appointment{ID: 99, Statut: "PLANIFIE"})
	})

	appt, err := c.CreateAppointment(context.Background(), AppointmentRequest{
		PatientID:  42,
		CabinetID:  1,
		Date:       "2026-09-01",
		HeureDebut: "10:00",
		HeureFin:   "11:00",
		MotifRDV:   MotifConsultation,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), appt.ID)
	assert.Equal(t, "PLANIFIE", appt.Statut)
}

func TestAppointmentsByDate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appointments/by-date", r.URL.Path)
		assert.Equal(t, "2026-09-01", r.URL.Query().Get("date"))
		assert.Equal(t, "3", r.URL.Query().Get("cabinetId"))
		_ = json.NewEncoder(w).Encode([]Appointment{{ID: 1}, {ID: 2}})
	})

	appts, err := c.AppointmentsByDate(context.Background(), "2026-09-01", 3)
	require.NoError(t, err)
	assert.Len(t, appts, 2)
}

func TestExtractMessageNonJSON(t *testing.T) {
	assert.Equal(t, "plain text error", extractMessage([]byte("plain text error")))
	assert.Equal(t, "boom", extractMessage([]byte(`{"message":"boom"}`)))
}

func TestAPIErrorString(t *testing.T) {
	assert.Equal(t, "gateway: status 500: boom", (&APIError{Status: 500, Message: "boom"}).Error())
	assert.Equal(t, "gateway: status 502", (&APIError{Status: 502}).Error())
}
