package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(ScansTotal.WithLabelValues(SourceSimulated))
	ScansTotal.WithLabelValues(SourceSimulated).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ScansTotal.WithLabelValues(SourceSimulated)))

	before = testutil.ToFloat64(QRCodesGenerated)
	QRCodesGenerated.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(QRCodesGenerated))
}
