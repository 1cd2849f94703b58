package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters for the booking wizard and its gateways.
type Metrics struct {
	submissionsTotal   *prometheus.CounterVec
	conflictRecoveries prometheus.Counter
	directoryLoads     *prometheus.CounterVec
	chatRelayTotal     *prometheus.CounterVec
}

// New registers the front-office metrics on reg (or the default registerer
// when reg is nil).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontoffice",
			Subsystem: "wizard",
			Name:      "submissions_total",
			Help:      "Wizard step submissions by step and outcome",
		}, []string{"step", "outcome"}),
		conflictRecoveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "frontoffice",
			Subsystem: "wizard",
			Name:      "conflict_recoveries_total",
			Help:      "Patient creations recovered via lookup by CIN",
		}),
		directoryLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontoffice",
			Subsystem: "directory",
			Name:      "loads_total",
			Help:      "Clinic directory loads by outcome (ok or fallback)",
		}, []string{"outcome"}),
		chatRelayTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontoffice",
			Subsystem: "chat",
			Name:      "relay_total",
			Help:      "Chatbot relay calls by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.conflictRecoveries, m.directoryLoads, m.chatRelayTotal)
	return m
}

// ObserveSubmission counts a wizard step submission.
func (m *Metrics) ObserveSubmission(step, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(step, outcome).Inc()
}

// ObserveConflictRecovery counts a patient creation resolved by CIN lookup.
func (m *Metrics) ObserveConflictRecovery() {
	if m == nil {
		return
	}
	m.conflictRecoveries.Inc()
}

// ObserveDirectoryLoad counts a clinic directory load.
func (m *Metrics) ObserveDirectoryLoad(outcome string) {
	if m == nil {
		return
	}
	m.directoryLoads.WithLabelValues(outcome).Inc()
}

// ObserveChatRelay counts a chatbot relay call.
func (m *Metrics) ObserveChatRelay(outcome string) {
	if m == nil {
		return
	}
	m.chatRelayTotal.WithLabelValues(outcome).Inc()
}
