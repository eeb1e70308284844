package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/raidercore/anim"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// KindsSpec lists the build specs of every kind in a catalog file such as
// creatures.yaml or items.yaml.
type KindsSpec struct {
	Kinds []EntityBuildSpec `yaml:"kinds"`
}

// Find returns the build spec named kind.
func (s KindsSpec) Find(kind string) (EntityBuildSpec, bool) {
	for _, k := range s.Kinds {
		if k.Name == kind {
			return k, true
		}
	}
	return EntityBuildSpec{}, false
}

func LoadCreaturesSpec() (KindsSpec, error) {
	return LoadSpec[KindsSpec]("creatures.yaml")
}

func LoadItemsSpec() (KindsSpec, error) {
	return LoadSpec[KindsSpec]("items.yaml")
}

// LoadAnimations reads and validates a clip table.
func LoadAnimations(name string) (*anim.Table, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	t, err := anim.ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: animations %s: %w", name, err)
	}
	return t, nil
}

// ViewerSpec configures the debug viewer.
type ViewerSpec struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
	Colors struct {
		Floor    YAMLColor `yaml:"floor"`
		Wall     YAMLColor `yaml:"wall"`
		Slope    YAMLColor `yaml:"slope"`
		Trigger  YAMLColor `yaml:"trigger"`
		Player   YAMLColor `yaml:"player"`
		Creature YAMLColor `yaml:"creature"`
		Item     YAMLColor `yaml:"item"`
		Path     YAMLColor `yaml:"path"`
	} `yaml:"colors"`
}

func LoadViewerSpec() (*ViewerSpec, error) {
	spec, err := LoadSpec[ViewerSpec]("viewer.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Scale <= 0 {
		return nil, fmt.Errorf("prefabs: viewer.yaml: scale must be positive")
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
