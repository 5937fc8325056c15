package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tasklink/internal/match"
)

// scoringFile is the optional weight-override file. Only the fields present
// in the file replace the defaults; zero or negative values are rejected so
// the matcher's "score >= 0, zero excluded" invariant holds.
const scoringFile = "scoring.yaml"

type scoringOverrides struct {
	TitleHit       *int `yaml:"title_hit"`
	DescriptionHit *int `yaml:"description_hit"`
	TagHit         *int `yaml:"tag_hit"`
	WordOverlap    *int `yaml:"word_overlap"`
}

// LoadWeights returns the match weights for a workspace: the defaults,
// overlaid with any values from .tasklink/scoring.yaml. A missing file
// yields the defaults.
func LoadWeights(workspace string) (match.Weights, error) {
	w := match.DefaultWeights

	path := filepath.Join(workspace, ".tasklink", scoringFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return w, nil
		}
		return w, fmt.Errorf("failed to read %s: %w", scoringFile, err)
	}

	var o scoringOverrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return w, fmt.Errorf("failed to parse %s: %w", scoringFile, err)
	}

	if err := applyOverride(&w.TitleHit, o.TitleHit, "title_hit"); err != nil {
		return match.DefaultWeights, err
	}
	if err := applyOverride(&w.DescriptionHit, o.DescriptionHit, "description_hit"); err != nil {
		return match.DefaultWeights, err
	}
	if err := applyOverride(&w.TagHit, o.TagHit, "tag_hit"); err != nil {
		return match.DefaultWeights, err
	}
	if err := applyOverride(&w.WordOverlap, o.WordOverlap, "word_overlap"); err != nil {
		return match.DefaultWeights, err
	}

	return w, nil
}

func applyOverride(dst *int, src *int, name string) error {
	if src == nil {
		return nil
	}
	if *src <= 0 {
		return fmt.Errorf("%s: weight %s must be positive, got %d", scoringFile, name, *src)
	}
	*dst = *src
	return nil
}
