// internal/workers/recommendation/parse-preferences/handler_test.go
package parsepreferences

import (
	"context"
	"testing"
	"time"

	apperrors "sake-reco/internal/common/errors"
	"sake-reco/internal/common/logger"
	"sake-reco/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 3 * time.Second,
	}
}

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), nil, nil, logger.NewTestLogger(t))
}

// ==========================
// Tests
// ==========================

func TestExecute(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:  "simple filter form",
			input: &Input{Temperature: "cold", TagQuery: " フルーティ, 食中酒 ,,", FreeText: "  魚に合う  "},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, []models.TempKey{models.TempCold}, output.Preferences.TempKeys.Values())
				assert.Equal(t, []string{"フルーティ", "食中酒"}, output.Preferences.TasteTags.Values())
				assert.Equal(t, "魚に合う", output.Preferences.FreeText)
				assert.False(t, output.Empty)
			},
		},
		{
			name:  "japanese comma in tag query",
			input: &Input{TagQuery: "辛口、すっきり"},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, []string{"辛口", "すっきり"}, output.Preferences.TasteTags.Values())
			},
		},
		{
			name: "explicit lists merged with the form",
			input: &Input{
				Temperature: "warm",
				TempKeys:    []string{"room", "warm"},
				StyleTags:   []string{"食中酒", "食中酒"},
				TasteTags:   []string{"辛口"},
				TagQuery:    "辛口,旨口",
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, []models.TempKey{models.TempWarm, models.TempRoom}, output.Preferences.TempKeys.Values())
				assert.Equal(t, []string{"食中酒"}, output.Preferences.StyleTags.Values())
				assert.Equal(t, []string{"辛口", "旨口"}, output.Preferences.TasteTags.Values())
			},
		},
		{
			name:  "long tag query keeps every tag",
			input: &Input{TagQuery: "a1,b2,c3,d4,e5,f6,g7,h8,i9,j10,k11,l12,m13,n14,o15,p16,q17,r18,s19,t20,u21,v22"},
			validateOutput: func(t *testing.T, output *Output) {
				tags := output.Preferences.TasteTags.Values()
				require.Len(t, tags, 22)
				assert.Equal(t, "a1", tags[0])
				assert.Equal(t, "v22", tags[21])
			},
		},
		{
			name:  "empty input",
			input: &Input{},
			validateOutput: func(t *testing.T, output *Output) {
				assert.True(t, output.Empty)
				assert.Equal(t, 0, output.Preferences.TempKeys.Len())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := newTestHandler(t).Execute(context.Background(), tt.input)
			require.NoError(t, err)
			tt.validateOutput(t, output)
		})
	}
}

func TestExecute_InvalidTemperature(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{name: "form temperature", input: &Input{Temperature: "hot"}},
		{name: "explicit list", input: &Input{TempKeys: []string{"cold", "lukewarm"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestHandler(t).Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidPreferences, apperrors.CodeOf(err))
		})
	}
}

func TestExecute_NilInput(t *testing.T) {
	_, err := newTestHandler(t).Execute(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
}
