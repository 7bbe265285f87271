// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	apperrors "sake-reco/internal/common/errors"
	"sake-reco/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewDefaultValidator()
	require.NoError(t, err)
	return v
}

func TestValidateVariables(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name      string
		taskType  string
		variables string
		wantErr   bool
		contains  string
	}{
		{name: "similar ok", taskType: "find-similar-sake", variables: `{"anchorId":"s1","limit":3,"other":true}`},
		{name: "similar missing anchor", taskType: "find-similar-sake", variables: `{"limit":3}`, wantErr: true, contains: "anchorId"},
		{name: "similar empty anchor", taskType: "find-similar-sake", variables: `{"anchorId":""}`, wantErr: true},
		{name: "similar negative limit", taskType: "find-similar-sake", variables: `{"anchorId":"a","limit":-1}`, wantErr: true},
		{name: "similar limit above five", taskType: "find-similar-sake", variables: `{"anchorId":"a","limit":6}`, wantErr: true},
		{name: "parse bad temperature", taskType: "parse-preferences", variables: `{"temperature":"hot"}`, wantErr: true},
		{name: "parse empty form", taskType: "parse-preferences", variables: ``},
		{name: "step bad action", taskType: "questionnaire-step", variables: `{"action":{"type":"jump"}}`, wantErr: true},
		{name: "step null session", taskType: "questionnaire-step", variables: `{"session":null,"action":{"type":"reset"}}`},
		{name: "match null tag lists", taskType: "match-sake", variables: `{"preferences":{"tempKeys":null,"styleTags":["辛口"]}}`},
		{name: "unknown task passes", taskType: "not-registered", variables: `{"anything":1}`},
		{name: "malformed json", taskType: "match-sake", variables: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateVariables(tt.taskType, tt.variables)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestValidateOutput(t *testing.T) {
	v := newTestValidator(t)

	err := v.ValidateOutput("refresh-catalog", map[string]interface{}{"ok": true, "count": 3})
	assert.NoError(t, err)

	err = v.ValidateOutput("refresh-catalog", map[string]interface{}{"ok": "yes"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeResponseValidationFailed, apperrors.CodeOf(err))
}

func TestValidateInput_Struct(t *testing.T) {
	v := newTestValidator(t)
	type input struct {
		AnchorID string `json:"anchorId"`
	}

	assert.NoError(t, v.ValidateInput("find-similar-sake", input{AnchorID: "x"}))
	assert.Error(t, v.ValidateInput("find-similar-sake", input{}))
}

func TestNewValidator_BadSchema(t *testing.T) {
	reg := &registry.ActivityRegistry{Activities: []registry.Activity{{
		ID:          "broken",
		TaskType:    "broken",
		InputSchema: map[string]interface{}{"type": "banana"},
	}}}

	_, err := NewValidator(reg)
	require.Error(t, err)
}
