package entity

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/candle/ecs"
	"github.com/milk9111/candle/ecs/component"
	"github.com/milk9111/candle/prefabs"
)

var errNoResetRule = errors.New("level script does not define reset_after")

func NewLevel(w *ecs.World) (ecs.Entity, error) {
	ent, err := BuildEntity(w, "level.yaml")
	if err != nil {
		return 0, fmt.Errorf("level: %w", err)
	}
	return ent, nil
}

type levelRulesSpec = prefabs.LevelRulesComponentSpec

func addLevelRules(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[levelRulesSpec](raw)
	if err != nil {
		return fmt.Errorf("decode level rules spec: %w", err)
	}
	rules := &component.LevelRules{Script: spec.Script}
	if spec.Script != "" {
		compiled, err := CompileLevelScript(spec.Script)
		if err != nil {
			return fmt.Errorf("compile %q: %w", spec.Script, err)
		}
		rules.Compiled = compiled
	}
	return ecs.Add(w, e, component.LevelRulesComponent.Kind(), rules)
}

// CompileLevelScript compiles a level rules script. The script reads the
// global `color` and must assign `reset_after`.
func CompileLevelScript(name string) (*tengo.Compiled, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("color", ""); err != nil {
		return nil, err
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	if !compiled.IsDefined("reset_after") {
		return nil, errNoResetRule
	}
	return compiled, nil
}
