package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	ws := t.TempDir()

	cfg, err := Load(ws)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.APIKey)
	assert.Contains(t, cfg.Watch.Ignores, ".git")
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ws := t.TempDir()

	cfg := Default()
	cfg.APIKey = "tk_secret"
	cfg.ProjectID = "proj-42"
	cfg.AutoApply = true
	cfg.Watch.Roots = []string{"src", "internal"}

	require.NoError(t, Save(ws, cfg))

	loaded, err := Load(ws)
	require.NoError(t, err)
	assert.Equal(t, "tk_secret", loaded.APIKey)
	assert.Equal(t, "proj-42", loaded.ProjectID)
	assert.True(t, loaded.AutoApply)
	assert.Equal(t, []string{"src", "internal"}, loaded.Watch.Roots)
}

func TestLoad_EnvOverrides(t *testing.T) {
	ws := t.TempDir()

	cfg := Default()
	cfg.APIKey = "from-file"
	cfg.ProjectID = "file-project"
	require.NoError(t, Save(ws, cfg))

	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvProject, "env-project")

	loaded, err := Load(ws)
	require.NoError(t, err)
	assert.Equal(t, "from-env", loaded.APIKey)
	assert.Equal(t, "env-project", loaded.ProjectID)
}

func TestLoad_MalformedFile(t *testing.T) {
	ws := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(ws, ".tasklink"), 0755))
	require.NoError(t, os.WriteFile(Path(ws), []byte("{not json"), 0644))

	_, err := Load(ws)
	assert.Error(t, err)
}
