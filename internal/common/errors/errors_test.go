// internal/common/errors/errors_test.go
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{name: "server error is retried once", err: NewCatalogHTTPStatusError(502), wantCode: "CATALOG_UNAVAILABLE", wantRetries: 1},
		{name: "client error is not retried", err: NewCatalogHTTPStatusError(404), wantCode: "CATALOG_UNAVAILABLE", wantRetries: 0},
		{name: "ok=false", err: NewCatalogNotOKError(), wantCode: "CATALOG_REJECTED", wantRetries: 0},
		{name: "cache", err: NewCacheUnavailableError(stderrors.New("dial tcp")), wantCode: "CACHE_UNAVAILABLE", wantRetries: 3},
		{name: "unknown option", err: NewUnknownOptionError("scene", "x"), wantCode: "INVALID_STEP_ACTION", wantRetries: 0},
		{name: "anchor", err: NewAnchorNotFoundError("s9"), wantCode: "ANCHOR_NOT_FOUND", wantRetries: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, b.Code)
			assert.Equal(t, tt.wantRetries, b.Retries)
			assert.Equal(t, string(tt.err.Code), b.ToErrorVariables()["originalErrorCode"])
		})
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", NewCatalogNotOKError())
	assert.Equal(t, ErrCodeCatalogNotOK, CodeOf(wrapped))
	assert.Equal(t, ErrCodeInternal, CodeOf(stderrors.New("boom")))

	stdErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "API returned ok=false", stdErr.Message)
}

func TestNormalizeError(t *testing.T) {
	assert.Equal(t, ErrCodeCatalogTimeout, normalizeError(context.DeadlineExceeded).Code)
	assert.Equal(t, ErrCodeInternal, normalizeError(stderrors.New("boom")).Code)

	orig := NewInvalidInputError("bad")
	assert.Same(t, orig, normalizeError(fmt.Errorf("wrap: %w", orig)))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "CATALOG", GetErrorCategory(ErrCodeCatalogTimeout))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "QUESTIONNAIRE", GetErrorCategory(ErrCodeInvalidStepAction))
	assert.Equal(t, "QUESTIONNAIRE", GetErrorCategory(ErrCodeSessionNotFound))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidPreferences))
	assert.Equal(t, "SIMILARITY", GetErrorCategory(ErrCodeAnchorNotFound))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
