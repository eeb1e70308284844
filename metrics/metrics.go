package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "raidercore"

// Metrics counts what the actor loop does each frame. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Transitions       *prometheus.CounterVec
	ProbeResults      *prometheus.CounterVec
	Corrections       *prometheus.CounterVec
	TriggerDispatches *prometheus.CounterVec
	Effects           *prometheus.CounterVec
	LevelErrors       prometheus.Counter
}

// New creates the collectors and registers them with reg. A nil reg uses
// the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "Discrete state changes per actor kind.",
		}, []string{"kind", "from", "to"}),
		ProbeResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probe_results_total",
			Help:      "Collision probe outcomes by kind.",
		}, []string{"result"}),
		Corrections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "position_corrections_total",
			Help:      "Probe shifts applied to actors.",
		}, []string{"result"}),
		TriggerDispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trigger_dispatches_total",
			Help:      "Sector programs run, split by player and doppelganger passes.",
		}, []string{"pass"}),
		Effects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trigger_effects_total",
			Help:      "Trigger effects applied by kind.",
		}, []string{"effect"}),
		LevelErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_errors_total",
			Help:      "Malformed level data errors that stopped the level.",
		}),
	}
	reg.MustRegister(m.Transitions, m.ProbeResults, m.Corrections, m.TriggerDispatches, m.Effects, m.LevelErrors)
	return m
}

func (m *Metrics) Transition(kind, from, to string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(kind, from, to).Inc()
}

func (m *Metrics) Probe(result string) {
	if m == nil {
		return
	}
	m.ProbeResults.WithLabelValues(result).Inc()
}

func (m *Metrics) Correction(result string) {
	if m == nil {
		return
	}
	m.Corrections.WithLabelValues(result).Inc()
}

// Dispatch counts one program run. doppelganger selects the pass label.
func (m *Metrics) Dispatch(doppelganger bool) {
	if m == nil {
		return
	}
	pass := "player"
	if doppelganger {
		pass = "doppelganger"
	}
	m.TriggerDispatches.WithLabelValues(pass).Inc()
}

func (m *Metrics) Effect(kind string) {
	if m == nil {
		return
	}
	m.Effects.WithLabelValues(kind).Inc()
}

func (m *Metrics) LevelError() {
	if m == nil {
		return
	}
	m.LevelErrors.Inc()
}
