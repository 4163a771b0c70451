package candle

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNonPositiveInterval = errors.New("candle: decay interval must be positive")
	ErrNegativeCharge      = errors.New("candle: max charge must not be negative")
	ErrInvalidColor        = errors.New("candle: invalid color")
)

// Config is the immutable data a candle is loaded from.
type Config struct {
	Color Color `yaml:"color"`
	// DecayInterval is the number of seconds needed to burn one charge.
	DecayInterval float64 `yaml:"decay_interval"`
	MaxCharge     int     `yaml:"max_charge"`
	// Animation names the animation profile the render layer resolves.
	Animation string `yaml:"animation"`
}

// DefaultConfig is the built-in profile used when no data can be loaded.
func DefaultConfig() Config {
	return Config{
		Color:         Yellow,
		DecayInterval: 1.0,
		MaxCharge:     12,
		Animation:     "candle_yellow",
	}
}

func (c Config) Validate() error {
	if !c.Color.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidColor, int(c.Color))
	}
	if c.DecayInterval <= 0 {
		return fmt.Errorf("%w: %v", ErrNonPositiveInterval, c.DecayInterval)
	}
	if c.MaxCharge < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCharge, c.MaxCharge)
	}
	return nil
}

// Cues holds optional audio identifiers. Blank entries are skipped.
type Cues struct {
	RefillSound string `yaml:"refill_sfx"`
	OutSound    string `yaml:"out_sfx"`
	OutMusic    string `yaml:"out_bgm"`
	LevelMusic  string `yaml:"level_bgm"`
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
