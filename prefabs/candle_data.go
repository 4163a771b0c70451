package prefabs

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/candle/candle"
)

// DefaultCandleData is loaded when a candle names no data file or its data
// file cannot be used.
const DefaultCandleData = "candle_yellow.yaml"

// LoadCandleConfig loads and validates a candle data file.
func LoadCandleConfig(name string) (*candle.Config, error) {
	cfg, err := LoadSpec[candle.Config](name)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &cfg, nil
}

// ResolveCandleConfig loads name, falling back to DefaultCandleData with a
// logged warning. It returns the file that was used, or a nil config and an
// error when neither loads; callers then use the built-in profile.
func ResolveCandleConfig(name string) (*candle.Config, string, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		cfg, err := LoadCandleConfig(name)
		if err == nil {
			return cfg, name, nil
		}
		log.Printf("candle: %v; using default data %s", err, DefaultCandleData)
	} else {
		log.Printf("candle: candle data not assigned; using default data %s", DefaultCandleData)
	}

	cfg, err := LoadCandleConfig(DefaultCandleData)
	if err != nil {
		return nil, "", fmt.Errorf("prefabs: default candle data: %w", err)
	}
	return cfg, DefaultCandleData, nil
}

// IsCandleData reports whether path names a candle data file.
func IsCandleData(path string) bool {
	base := filepath.Base(filepath.ToSlash(path))
	return strings.HasPrefix(base, "candle_") && isSpecFile(base)
}
