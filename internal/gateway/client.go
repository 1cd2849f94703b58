// Package gateway provides the REST client for the CabinetX API gateway.
// The gateway fronts the clinic, patient and appointment services; only
// paths and payload shapes matter here.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cabinetx/front-office/pkg/logging"
)

const defaultTimeout = 15 * time.Second

// Client is the HTTP client for the API gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a gateway client rooted at baseURL.
func NewClient(baseURL string, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ActiveClinics returns the cabinets currently accepting registrations.
func (c *Client) ActiveClinics(ctx context.Context) ([]Clinic, error) {
	var clinics []Clinic
	if err := c.get(ctx, "/api/clinics/active", &clinics); err != nil {
		return nil, err
	}
	return clinics, nil
}

// AllClinics returns every cabinet regardless of status.
func (c *Client) AllClinics(ctx context.Context) ([]Clinic, error) {
	var clinics []Clinic
	if err := c.get(ctx, "/api/clinics", &clinics); err != nil {
		return nil, err
	}
	return clinics, nil
}

// ClinicByID returns a single cabinet.
func (c *Client) ClinicByID(ctx context.Context, id int64) (*Clinic, error) {
	var clinic Clinic
	if err := c.get(ctx, fmt.Sprintf("/api/clinics/%d", id), &clinic); err != nil {
		return nil, err
	}
	return &clinic, nil
}

// CreatePatient registers a new patient and returns the record with its
// server-assigned id. A CIN that already exists yields an *APIError for
// which IsConflict reports true.
func (c *Client) CreatePatient(ctx context.Context, patient Patient) (*Patient, error) {
	var created Patient
	if err := c.post(ctx, "/api/patients", patient, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// PatientByCIN looks a patient up by national identity card number.
func (c *Client) PatientByCIN(ctx context.Context, cin string) (*Patient, error) {
	var patient Patient
	if err := c.get(ctx, "/api/patients/cin/"+url.PathEscape(cin), &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// PatientByID returns a patient by server-assigned id.
func (c *Client) PatientByID(ctx context.Context, id int64) (*Patient, error) {
	var patient Patient
	if err := c.get(ctx, fmt.Sprintf("/api/patients/%d", id), &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// CreateAppointment books a rendez-vous for an already-registered patient.
func (c *Client) CreateAppointment(ctx context.Context, req AppointmentRequest) (*Appointment, error) {
	var appt Appointment
	if err := c.post(ctx, "/api/appointments/rendezvous", req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// AppointmentsByDate lists a cabinet's appointments on a given day.
func (c *Client) AppointmentsByDate(ctx context.Context, date string, cabinetID int64) ([]Appointment, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("cabinetId", fmt.Sprintf("%d", cabinetID))
	var appts []Appointment
	if err := c.get(ctx, "/api/appointments/by-date?"+q.Encode(), &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("gateway: marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("gateway: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gateway: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: extractMessage(respBody)}
		c.logger.Warn("gateway request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("gateway: unmarshal response: %w", err)
	}
	return nil
}

// extractMessage pulls the "message" field out of an error body. Bodies
// that are not JSON objects yield a truncated raw excerpt.
func extractMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	msg := string(body)
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
