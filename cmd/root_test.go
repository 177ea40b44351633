package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duna-ai/duna/internal/analyzer"
)

func resetViper(t *testing.T) {
	t.Helper()

	viper.Reset()
	setDefaults()
	t.Cleanup(func() {
		viper.Reset()
		setDefaults()
	})
}

func TestGetConfigDefaults(t *testing.T) {
	resetViper(t)

	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, analyzer.DefaultEndpoint, config.Endpoint)
	assert.Equal(t, analyzer.DefaultTimeout, config.Timeout)
	assert.Equal(t, 4, config.Concurrency)
	assert.Equal(t, "similarity", config.View.Sort)
	assert.Zero(t, config.View.MinScore)
}

func TestGetConfigFromEnvironment(t *testing.T) {
	t.Setenv("DUNA_ENDPOINT", "https://ranker.example.com")
	t.Setenv("DUNA_VIEW_MIN_SCORE", "55")
	t.Setenv("DUNA_TIMEOUT", "30s")
	resetViper(t)

	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://ranker.example.com", config.Endpoint)
	assert.Equal(t, 55.0, config.View.MinScore)
	assert.Equal(t, 30*time.Second, config.Timeout)
}

func TestGetConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "endpoint must be a url", key: "endpoint", value: "not a url"},
		{name: "sort key must be known", key: "view.sort", value: "salary"},
		{name: "min score above 100", key: "view.min-score", value: 101},
		{name: "negative timeout", key: "timeout", value: -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			viper.Set(tt.key, tt.value)

			_, err := getConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestReadConfig(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "duna.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: http://ranker:5001\nview:\n  sort: rank\n  min-score: 20\n"), 0o600))

	require.NoError(t, readConfig(path))

	config, err := getConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://ranker:5001", config.Endpoint)
	assert.Equal(t, "rank", config.View.Sort)
	assert.Equal(t, 20.0, config.View.MinScore)

	resetViper(t)
	require.Error(t, readConfig(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestReadConfigIsOptionalWithoutFlag(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())

	require.NoError(t, readConfig(""))
}
