package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/prefabs"
)

// NewCandle builds the candle prefab. A non-empty dataFile replaces the data
// file named by the prefab.
func NewCandle(w *ecs.World, dataFile string) (ecs.Entity, error) {
	spec, err := prefabs.LoadEntityBuildSpec("candle.yaml")
	if err != nil {
		return 0, fmt.Errorf("candle: %w", err)
	}
	if dataFile = strings.TrimSpace(dataFile); dataFile != "" {
		raw, _ := spec.Components["candle"].(map[string]any)
		if raw == nil {
			raw = make(map[string]any)
		}
		raw["data"] = dataFile
		spec.Components["candle"] = raw
	}
	ent, err := BuildEntityFromSpec(w, "candle.yaml", spec)
	if err != nil {
		return 0, fmt.Errorf("candle: %w", err)
	}
	return ent, nil
}
