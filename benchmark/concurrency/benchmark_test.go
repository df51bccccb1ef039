package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	t.Run("should aggregate latencies of successful workflows", func(t *testing.T) {
		var r Result
		r.add(WorkflowResult{Success: true, Latency: 30 * time.Millisecond})
		r.add(WorkflowResult{Success: true, Latency: 10 * time.Millisecond})
		r.add(WorkflowResult{Success: false, Latency: time.Second, ErrorMsg: "Logout: HTTP 500"})
		r.add(WorkflowResult{Success: true, Latency: 20 * time.Millisecond})
		r.finish(2 * time.Second)

		assert.EqualValues(t, 4, r.TotalRequests)
		assert.EqualValues(t, 3, r.SuccessfulReqs)
		assert.EqualValues(t, 1, r.FailedReqs)
		assert.Equal(t, 10*time.Millisecond, r.MinLatency)
		assert.Equal(t, 30*time.Millisecond, r.MaxLatency)
		assert.Equal(t, 20*time.Millisecond, r.AvgLatency)
		assert.InDelta(t, 1.5, r.TPS, 1e-9)
		assert.Equal(t, "Logout: HTTP 500", r.LastError)
	})

	t.Run("should report zero percent on an empty run", func(t *testing.T) {
		assert.Zero(t, percent(0, 0))
	})
}
