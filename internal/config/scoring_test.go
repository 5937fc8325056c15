package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklink/internal/match"
)

func writeScoring(t *testing.T, ws, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(ws, ".tasklink"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(ws, ".tasklink", "scoring.yaml"), []byte(content), 0644))
}

func TestLoadWeights_MissingFileYieldsDefaults(t *testing.T) {
	w, err := LoadWeights(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, match.DefaultWeights, w)
}

func TestLoadWeights_PartialOverride(t *testing.T) {
	ws := t.TempDir()
	writeScoring(t, ws, "title_hit: 20\nword_overlap: 1\n")

	w, err := LoadWeights(ws)
	require.NoError(t, err)
	assert.Equal(t, 20, w.TitleHit)
	assert.Equal(t, 1, w.WordOverlap)
	assert.Equal(t, match.DefaultWeights.DescriptionHit, w.DescriptionHit)
	assert.Equal(t, match.DefaultWeights.TagHit, w.TagHit)
}

func TestLoadWeights_RejectsNonPositive(t *testing.T) {
	ws := t.TempDir()
	writeScoring(t, ws, "tag_hit: 0\n")

	_, err := LoadWeights(ws)
	assert.Error(t, err)
}

func TestLoadWeights_MalformedYAML(t *testing.T) {
	ws := t.TempDir()
	writeScoring(t, ws, "title_hit: [broken\n")

	_, err := LoadWeights(ws)
	assert.Error(t, err)
}
