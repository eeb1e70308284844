package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/ecs/system"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/trigger"
)

func TestRegistryWalksInIndexOrder(t *testing.T) {
	w := ecs.NewWorld()
	reg := system.NewRegistry(w)
	ents := map[level.ObjectID]ecs.Entity{}
	for _, id := range []level.ObjectID{4, 1, 9, 3} {
		e := ecs.CreateEntity(w)
		ents[id] = e
		reg.Register(id, e)
	}
	ecs.DestroyEntity(w, ents[9])

	var seen []level.ObjectID
	reg.Each(func(id level.ObjectID, _ ecs.Entity) bool {
		seen = append(seen, id)
		return true
	})
	assert.Equal(t, []level.ObjectID{1, 3, 4}, seen)
	assert.Equal(t, 4, reg.Len())
	assert.False(t, reg.Exists(9))
	assert.True(t, reg.Exists(3))

	seen = seen[:0]
	reg.Each(func(id level.ObjectID, _ ecs.Entity) bool {
		seen = append(seen, id)
		return id < 3
	})
	assert.Equal(t, []level.ObjectID{1, 3}, seen)
}

func TestRegistryLookupExposesBehaviour(t *testing.T) {
	w := ecs.NewWorld()
	reg := system.NewRegistry(w)

	lever := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, lever, component.ItemComponent.Kind(), &component.Item{Index: 0}))
	sw := &component.Switch{On: true, Pulled: true}
	require.NoError(t, ecs.Add(w, lever, component.SwitchComponent.Kind(), sw))
	reg.Register(0, lever)

	plain := ecs.CreateEntity(w)
	reg.Register(1, plain)

	obj, ok := reg.Lookup(0)
	require.True(t, ok)
	s, ok := obj.(trigger.Switch)
	require.True(t, ok)
	assert.True(t, s.TriggerSwitch(2))
	assert.False(t, s.TriggerSwitch(2), "a pull is consumed once")
	assert.Equal(t, trigger.TimeoutFrames(2), sw.Timer)

	_, ok = reg.Lookup(1)
	assert.False(t, ok)
	_, ok = reg.Lookup(5)
	assert.False(t, ok)
}
