// internal/common/metrics/metrics_test.go
package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordJob(t *testing.T) {
	completed := testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("metrics-test"))
	failed := testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("metrics-test", "ANCHOR_NOT_FOUND"))

	RecordJob("metrics-test", 10*time.Millisecond, "")
	RecordJob("metrics-test", 5*time.Millisecond, "ANCHOR_NOT_FOUND")
	RecordJob("metrics-test", 5*time.Millisecond, "ANCHOR_NOT_FOUND")

	assert.Equal(t, completed+1, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("metrics-test")))
	assert.Equal(t, failed+2, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("metrics-test", "ANCHOR_NOT_FOUND")))
}
