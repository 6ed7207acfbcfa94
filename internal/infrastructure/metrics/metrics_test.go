package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLLMRequest(t *testing.T) {
	before := testutil.ToFloat64(LLMRequestsTotal.WithLabelValues("gemini", "test_task", "error"))

	RecordLLMRequest("gemini", "test_task", 150*time.Millisecond, false)

	after := testutil.ToFloat64(LLMRequestsTotal.WithLabelValues("gemini", "test_task", "error"))
	assert.Equal(t, before+1, after)
}

func TestSetAnalysisQueueDepth(t *testing.T) {
	SetAnalysisQueueDepth(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(AnalysisQueueDepth))
}

func TestRecordIntervention(t *testing.T) {
	before := testutil.ToFloat64(InterventionsTotal.WithLabelValues("requested"))
	RecordIntervention("requested")
	assert.Equal(t, before+1, testutil.ToFloat64(InterventionsTotal.WithLabelValues("requested")))
}
