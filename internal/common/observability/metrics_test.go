// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNilObservabilityIsSafe(t *testing.T) {
	var o *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		spanCtx, span := o.StartSpan(ctx, "match-sake")
		assert.Equal(t, ctx, spanCtx)
		EndSpan(span, errors.New("boom"))
		o.RecordJobProcessed(ctx, "match-sake", "completed")
		o.RecordJobDuration(ctx, "match-sake", time.Millisecond, "completed")
		o.RecordCatalogLoad(ctx, "success")
		o.Shutdown()
	})
}

func TestObservabilityRecords(t *testing.T) {
	o := New("sake-reco-test")
	defer o.Shutdown()
	ctx := context.Background()

	assert.NotPanics(t, func() {
		spanCtx, span := o.StartSpan(ctx, "refresh-catalog", attribute.String("jobKey", "1"))
		assert.NotNil(t, spanCtx)
		EndSpan(span, nil)
		o.RecordJobProcessed(ctx, "refresh-catalog", "completed")
		o.RecordJobDuration(ctx, "refresh-catalog", 12*time.Millisecond, "completed")
		o.RecordCatalogLoad(ctx, "failure")
	})
}
