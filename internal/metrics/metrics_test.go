package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIsIdempotent(t *testing.T) {
	require.NotPanics(t, func() {
		Init()
		Init()
	})
}

func TestCountersAccumulate(t *testing.T) {
	Init()

	before := testutil.ToFloat64(RecordsAccepted)
	RecordsAccepted.Inc()
	RecordsAccepted.Inc()
	assert.Equal(t, before+2, testutil.ToFloat64(RecordsAccepted))

	excluded := testutil.ToFloat64(RecordsExcluded.WithLabelValues("state"))
	RecordsExcluded.WithLabelValues("state").Inc()
	assert.Equal(t, excluded+1, testutil.ToFloat64(RecordsExcluded.WithLabelValues("state")))
}
