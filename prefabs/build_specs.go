package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	RunMultiplier float64 `yaml:"run_multiplier"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image              string  `yaml:"image"`
	OriginX            float64 `yaml:"origin_x"`
	OriginY            float64 `yaml:"origin_y"`
	CenterOriginIfZero bool    `yaml:"center_origin_if_zero"`
	FacingLeft         bool    `yaml:"facing_left"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type AnimationDefComponentSpec struct {
	Row        int     `yaml:"row"`
	ColStart   int     `yaml:"col_start"`
	FrameCount int     `yaml:"frame_count"`
	FrameW     int     `yaml:"frame_w"`
	FrameH     int     `yaml:"frame_h"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

type AnimationComponentSpec struct {
	Sheet      string                               `yaml:"sheet"`
	Defs       map[string]AnimationDefComponentSpec `yaml:"defs"`
	Current    string                               `yaml:"current"`
	Frame      int                                  `yaml:"frame"`
	FrameTimer int                                  `yaml:"frame_timer"`
	Playing    bool                                 `yaml:"playing"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips    []AudioClipSpec `yaml:"clips"`
	Autoplay []string        `yaml:"autoplay"`
}

type MusicTrackSpec struct {
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type MusicPlayerComponentSpec struct {
	Tracks []MusicTrackSpec `yaml:"tracks"`
}

// CandleComponentSpec points a candle entity at its data file and audio cues.
type CandleComponentSpec struct {
	Data       string `yaml:"data"`
	Frozen     bool   `yaml:"frozen"`
	RefillSFX  string `yaml:"refill_sfx"`
	OutSFX     string `yaml:"out_sfx"`
	OutMusic   string `yaml:"out_bgm"`
	LevelMusic string `yaml:"level_bgm"`
}

type LevelRulesComponentSpec struct {
	Script string `yaml:"script"`
}
