package anim

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Table holds the clips of one actor kind.
type Table struct {
	Name  string
	clips map[ID]*Clip
	names map[string]ID
}

type tableSpec struct {
	Name  string  `yaml:"name"`
	Clips []*Clip `yaml:"clips"`
}

// NewTable builds a table and checks that every clip reference resolves.
func NewTable(name string, clips []*Clip) (*Table, error) {
	t := &Table{Name: name, clips: make(map[ID]*Clip, len(clips)), names: make(map[string]ID, len(clips))}
	for _, c := range clips {
		if c == nil {
			continue
		}
		if _, dup := t.clips[c.ID]; dup {
			return nil, fmt.Errorf("anim: table %s: duplicate clip %d", name, c.ID)
		}
		if c.Frames <= 0 {
			return nil, fmt.Errorf("anim: table %s: clip %d (%s) has no frames", name, c.ID, c.Name)
		}
		t.clips[c.ID] = c
		if c.Name != "" {
			t.names[c.Name] = c.ID
		}
	}

	for _, c := range t.clips {
		next, ok := t.clips[c.Next]
		if !ok {
			return nil, fmt.Errorf("anim: table %s: clip %d next: %w: %d", name, c.ID, ErrUnknownAnimation, c.Next)
		}
		if c.NextFrame < 0 || c.NextFrame > next.LastFrame() {
			return nil, fmt.Errorf("anim: table %s: clip %d next frame %d out of range", name, c.ID, c.NextFrame)
		}
		for _, ch := range c.Changes {
			to, ok := t.clips[ch.Anim]
			if !ok {
				return nil, fmt.Errorf("anim: table %s: clip %d change: %w: %d", name, c.ID, ErrUnknownAnimation, ch.Anim)
			}
			if ch.Frame < 0 || ch.Frame > to.LastFrame() {
				return nil, fmt.Errorf("anim: table %s: clip %d change frame %d out of range", name, c.ID, ch.Frame)
			}
		}
	}
	return t, nil
}

// ParseTable decodes a YAML clip table.
func ParseTable(data []byte) (*Table, error) {
	var spec tableSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("anim: parse table: %w", err)
	}
	return NewTable(spec.Name, spec.Clips)
}

// Clip returns the clip with id.
func (t *Table) Clip(id ID) (*Clip, error) {
	if t != nil {
		if c, ok := t.clips[id]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownAnimation, id)
}

// Lookup resolves a clip by name.
func (t *Table) Lookup(name string) (ID, bool) {
	if t == nil {
		return 0, false
	}
	id, ok := t.names[name]
	return id, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.clips)
}
