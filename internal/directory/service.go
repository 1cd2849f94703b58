// Package directory exposes the clinic list the booking form selects from.
// Availability wins over freshness: when the clinic service is down or
// returns nothing, a built-in fallback list keeps the form usable.
package directory

import (
	"context"
	"sync"
	"time"

	"github.com/cabinetx/front-office/internal/gateway"
	"github.com/cabinetx/front-office/internal/observability/metrics"
	"github.com/cabinetx/front-office/pkg/logging"
)

// Lister is the slice of the gateway client the directory needs.
type Lister interface {
	ActiveClinics(ctx context.Context) ([]gateway.Clinic, error)
}

// Result is the two-outcome reply of a directory load: either the remote
// list, or the fallback list with Fallback set and Err carrying the cause
// (nil when the remote list was merely empty). Clinics is never empty.
type Result struct {
	Clinics  []gateway.Clinic
	Fallback bool
	Err      error
}

// Service loads and caches the active clinic list.
type Service struct {
	lister  Lister
	logger  *logging.Logger
	metrics *metrics.Metrics

	mu     sync.RWMutex
	cached Result
	loaded bool
}

// NewService creates a directory service. metrics may be nil.
func NewService(lister Lister, logger *logging.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{lister: lister, logger: logger, metrics: m}
}

// ActiveClinics fetches the active clinic list, substituting the fallback
// list on any failure or an empty remote reply. It never returns an error
// to the caller; the substitution is visible through Result.Fallback.
func (s *Service) ActiveClinics(ctx context.Context) Result {
	clinics, err := s.lister.ActiveClinics(ctx)
	var res Result
	switch {
	case err != nil:
		s.logger.Warn("clinic directory unavailable, using fallback list", "error", err)
		s.metrics.ObserveDirectoryLoad("fallback")
		res = Result{Clinics: FallbackClinics(), Fallback: true, Err: err}
	case len(clinics) == 0:
		s.logger.Warn("clinic directory returned no clinics, using fallback list")
		s.metrics.ObserveDirectoryLoad("fallback")
		res = Result{Clinics: FallbackClinics(), Fallback: true}
	default:
		s.metrics.ObserveDirectoryLoad("ok")
		res = Result{Clinics: clinics}
	}

	s.mu.Lock()
	s.cached = res
	s.loaded = true
	s.mu.Unlock()
	return res
}

// Cached returns the last loaded result without touching the network.
// Before any load completes it returns the fallback list so callers always
// see a non-empty directory.
func (s *Service) Cached() Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return Result{Clinics: FallbackClinics(), Fallback: true}
	}
	return s.cached
}

// WarmUp kicks off a background load so the first form render does not
// wait on the clinic service. Fire and forget: the result lands in the
// cache whenever it resolves.
func (s *Service) WarmUp(ctx context.Context, timeout time.Duration) {
	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		res := s.ActiveClinics(loadCtx)
		s.logger.Info("clinic directory warmed up",
			"clinics", len(res.Clinics),
			"fallback", res.Fallback,
		)
	}()
}
