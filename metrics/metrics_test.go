package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersRegisterAndCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Transition("lara", "stop", "run")
	m.Transition("lara", "stop", "run")
	m.Dispatch(false)
	m.Dispatch(true)
	m.Dispatch(true)
	m.Effect("activate")
	m.LevelError()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transitions.WithLabelValues("lara", "stop", "run")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TriggerDispatches.WithLabelValues("player")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TriggerDispatches.WithLabelValues("doppelganger")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Effects.WithLabelValues("activate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LevelErrors))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["raidercore_state_transitions_total"])
	assert.True(t, names["raidercore_level_errors_total"])
}

func TestNilMetricsIsSilent(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Transition("wolf", "walk", "run")
		m.Probe("clear")
		m.Correction("front")
		m.Dispatch(false)
		m.Effect("kill")
		m.LevelError()
	})
}
