// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"refresh-catalog",
		"parse-preferences",
		"match-sake",
		"find-similar-sake",
		"questionnaire-step",
		"build-sake-response",
	}, reg.TaskTypes())

	a, ok := reg.Find("find-similar-sake")
	require.True(t, ok)
	assert.Contains(t, a.ErrorCodes, "ANCHOR_NOT_FOUND")
	assert.NotEmpty(t, a.InputSchema)

	_, ok = reg.Find("nope")
	assert.False(t, ok)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "invalid json", data: `{`},
		{name: "missing task type", data: `{"activities":[{"id":"x"}]}`},
		{name: "duplicate task type", data: `{"activities":[{"id":"a","taskType":"t"},{"id":"b","taskType":"t"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2","activities":[{"id":"a","taskType":"a"}]}`), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2", reg.Version)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
