package telemetry

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureIsIdempotent(t *testing.T) {
	logger := logrus.New()
	Configure(Options{Logger: logger})
	Configure(Options{Logger: logger})
	assert.NotNil(t, logger.Formatter)
}

func TestNewMetricsRegistersAllCollectors(t *testing.T) {
	m := NewMetrics()
	got, err := m.Registry.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range got {
		names[mf.GetName()] = true
	}
	assert.True(t, names["elreasoner_tbox_statements"])
	assert.True(t, names["elreasoner_abox_statements"])
	assert.True(t, names["elreasoner_rbox_statements"])
}

func TestObservePhaseRecordsIntoHistogram(t *testing.T) {
	m := NewMetrics()
	m.ObservePhase("normalize", 0.5)
	m.ObservePhase("normalize", 1.5)

	got, err := m.Registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range got {
		if mf.GetName() != "elreasoner_phase_duration_seconds" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if metric.GetHistogram().GetSampleCount() == 2 {
				found = true
			}
		}
	}
	assert.True(t, found, "expected two observations recorded against the normalize phase")
}

func TestMetricsAreSafeForConcurrentGather(t *testing.T) {
	m := NewMetrics()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			m.ObservePhase("rbox", 0.01)
		}
		close(done)
	}()
	for i := 0; i < 100; i++ {
		_, _ = m.Registry.Gather()
	}
	<-done
}
