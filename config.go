package companionsdk

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// ──────────────────────────────────────────────
// Configuration
// ──────────────────────────────────────────────

// Config holds the tunables of the monitoring and coordination core.
// Defaults match the base design.
type Config struct {
	HistoryCapacity     int           `env:"COMPANION_HISTORY_CAPACITY" envDefault:"100"`
	StateWindow         int           `env:"COMPANION_STATE_WINDOW" envDefault:"5"`
	AnalysisInterval    time.Duration `env:"COMPANION_ANALYSIS_INTERVAL" envDefault:"10s"`
	AnalysisWindow      int           `env:"COMPANION_ANALYSIS_WINDOW" envDefault:"10"`
	NegativeThreshold   int           `env:"COMPANION_NEGATIVE_THRESHOLD" envDefault:"5"`
	PatternLearningRate float64       `env:"COMPANION_PATTERN_LEARNING_RATE" envDefault:"0.1"`
	PatternThreshold    float64       `env:"COMPANION_PATTERN_THRESHOLD" envDefault:"0.7"`
	CoordinationHistory int           `env:"COMPANION_COORDINATION_HISTORY" envDefault:"100"`
	ActivationThreshold float64       `env:"COMPANION_ACTIVATION_THRESHOLD" envDefault:"0.3"`
}

// DefaultConfig returns the built-in defaults without consulting the
// environment.
func DefaultConfig() Config {
	return Config{
		HistoryCapacity:     100,
		StateWindow:         5,
		AnalysisInterval:    10 * time.Second,
		AnalysisWindow:      10,
		NegativeThreshold:   5,
		PatternLearningRate: 0.1,
		PatternThreshold:    0.7,
		CoordinationHistory: 100,
		ActivationThreshold: 0.3,
	}
}

// LoadConfig reads the configuration from environment variables, falling
// back to the defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}
