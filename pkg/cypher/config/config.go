// Package config holds the engine tuning knobs and their YAML loader.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML files can use forms like "500ms".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Tuning collects the runtime limits of the engine. Zero values fall back to
// the defaults at construction, so a YAML file can override just one knob.
type Tuning struct {
	// CacheCapacity bounds the analysis result cache.
	CacheCapacity int `yaml:"cache_capacity"`
	// CacheTTL expires cached analysis results.
	CacheTTL Duration `yaml:"cache_ttl"`
	// GuardInterval is the minimum interval between overlapping analyses.
	GuardInterval Duration `yaml:"guard_interval"`
	// GuardDepth is the maximum analysis nesting depth.
	GuardDepth int `yaml:"guard_depth"`
	// BattleCapacity bounds how many battles the progression tracker holds.
	BattleCapacity int `yaml:"battle_capacity"`
	// EnhanceBudget is the wall-clock budget for one enhancement call.
	EnhanceBudget Duration `yaml:"enhance_budget"`

	// Scoring weights; must sum to 1 when all are set.
	RhymeWeight      float64 `yaml:"rhyme_weight"`
	FlowWeight       float64 `yaml:"flow_weight"`
	CreativityWeight float64 `yaml:"creativity_weight"`
}

// DefaultTuning returns the production defaults.
func DefaultTuning() Tuning {
	return Tuning{
		CacheCapacity:    100,
		CacheTTL:         Duration(5 * time.Minute),
		GuardInterval:    Duration(500 * time.Millisecond),
		GuardDepth:       3,
		BattleCapacity:   10,
		EnhanceBudget:    Duration(120 * time.Millisecond),
		RhymeWeight:      0.40,
		FlowWeight:       0.35,
		CreativityWeight: 0.25,
	}
}

// LoadTuning loads tuning from a YAML file, with defaults for absent keys.
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}

	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, err
	}
	return t, nil
}
