package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPI_NilRegistry(t *testing.T) {
	m, err := NewAPI(nil)
	require.NoError(t, err)
	assert.Nil(t, m)
	m.Observe("search", time.Now(), nil)
}

func TestAPI_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewAPI(reg)
	require.NoError(t, err)

	m.Observe("search", time.Now(), nil)
	m.Observe("search", time.Now(), errors.New("boom"))
	m.Observe("summarize", time.Now(), nil)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Requests.WithLabelValues("search", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Requests.WithLabelValues("search", "error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Requests.WithLabelValues("summarize", "ok")), 0)
}

func TestNewAPI_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewAPI(reg)
	require.NoError(t, err)
	second, err := NewAPI(reg)
	require.NoError(t, err)

	second.Observe("search", time.Now(), nil)
	assert.InDelta(t, 1, testutil.ToFloat64(first.Requests.WithLabelValues("search", "ok")), 0)
}
