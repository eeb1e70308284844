package prefabs

import (
	"gopkg.in/yaml.v3"

	"github.com/milk9111/raidercore/nav"
)

// EntityBuildSpec names a kind and the components its entities start with.
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

type ActorComponentSpec struct {
	Radius int `yaml:"radius"`
	Health int `yaml:"health"`
}

type AnimatorComponentSpec struct {
	Table string `yaml:"table"`
	Start int    `yaml:"start"`
}

type CreatureComponentSpec struct {
	// TurnRate is in degrees per frame.
	TurnRate  float64       `yaml:"turn_rate"`
	Damage    int           `yaml:"damage"`
	Script    string        `yaml:"script"`
	Heavy     bool          `yaml:"heavy"`
	Traversal nav.Traversal `yaml:"traversal"`
}

type SwitchComponentSpec struct {
	On bool `yaml:"on"`
}

type DoorComponentSpec struct {
	Blocks bool `yaml:"blocks"`
}

type BlockComponentSpec struct {
	Step int `yaml:"step"`
}

type PickupComponentSpec struct{}
