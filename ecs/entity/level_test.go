package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/ecs/entity"
	"github.com/milk9111/raidercore/ecs/system"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/levels"
)

func loadDemo(t *testing.T) (*ecs.World, *system.Registry, *component.LevelState) {
	t.Helper()
	lvl, err := levels.LoadAndBuild("demo.yaml")
	require.NoError(t, err)
	w := ecs.NewWorld()
	reg := system.NewRegistry(w)
	ls, err := entity.LoadLevelToWorld(w, lvl, reg)
	require.NoError(t, err)
	return w, reg, ls
}

func TestDemoSpawnsEveryItemInIndexOrder(t *testing.T) {
	w, reg, ls := loadDemo(t)

	require.Equal(t, len(ls.Level.Items), reg.Len())
	var ids []level.ObjectID
	reg.Each(func(id level.ObjectID, _ ecs.Entity) bool {
		ids = append(ids, id)
		return true
	})
	for i, id := range ids {
		assert.Equal(t, level.ObjectID(i), id)
	}

	cam, ok := ecs.Singleton(w, component.CameraComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, -1, cam.Fixed)
	assert.Equal(t, -1, ls.FlipEffect)
	assert.NotNil(t, ls.Triggers)
}

func TestPlayerIsPlacedWithoutItemRecord(t *testing.T) {
	w, reg, ls := loadDemo(t)

	e, ok := reg.Entity(0)
	require.True(t, ok)
	assert.True(t, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.InputComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.StateMachineComponent.Kind()))
	assert.False(t, ecs.Has(w, e, component.ItemComponent.Kind()))

	a, ok := ecs.Get(w, e, component.ActorComponent.Kind())
	require.True(t, ok)
	it := ls.Level.Items[0]
	assert.Equal(t, it.Pos, a.Pos)
	assert.Equal(t, it.Yaw, a.Yaw)
	assert.Equal(t, it.Yaw, a.MoveAngle)
	assert.Equal(t, common.HandFree, a.Hands)
	assert.Equal(t, common.DefaultCollisionRadius, a.Radius)
	assert.Equal(t, entity.PlayerKind, a.Kind)
}

func TestCreaturesWakeOnlyWithFullMask(t *testing.T) {
	w, reg, _ := loadDemo(t)

	kinds := map[string]bool{}
	reg.Each(func(_ level.ObjectID, e ecs.Entity) bool {
		if !ecs.Has(w, e, component.CreatureTagComponent.Kind()) {
			return true
		}
		it, ok := ecs.Get(w, e, component.ItemComponent.Kind())
		require.True(t, ok)
		kinds[it.Kind] = it.Active
		cr, ok := ecs.Get(w, e, component.CreatureComponent.Kind())
		require.True(t, ok)
		assert.NotNil(t, cr.Finder, "%s has a pathfinder", it.Kind)
		return true
	})
	assert.Equal(t, map[string]bool{"wolf": true, "bat": false}, kinds)
}

func TestRestingObjectsPatchTheFloor(t *testing.T) {
	_, _, ls := loadDemo(t)
	lvl := ls.Level

	block, _, ok := lvl.Locate(common.Vec3{X: 4608, Z: 3584}, 0)
	require.True(t, ok)
	assert.Equal(t, -4, block.Floor, "a block raises its sector by a full sector height")

	door, _, ok := lvl.Locate(common.Vec3{X: 7680, Z: 5632}, 0)
	require.True(t, ok)
	assert.True(t, door.IsWall(), "a closed blocking door fills its doorway")
	assert.True(t, lvl.Box(2).Blocked)
}

func TestLoadRejectsBadItems(t *testing.T) {
	base := func(items ...level.Item) *level.Level {
		lvl, err := levels.Build(&levels.Level{
			Name:  "bad",
			Rooms: []levels.Room{{SectorsX: 4, SectorsZ: 4, Ceiling: -16}},
		})
		require.NoError(t, err)
		lvl.Items = items
		return lvl
	}
	lara := level.Item{Kind: entity.PlayerKind, Pos: common.Vec3{X: 1536, Z: 1536}}

	cases := map[string]*level.Level{
		"unknown kind": base(lara, level.Item{Kind: "mummy", Pos: common.Vec3{X: 2560, Z: 2560}}),
		"two players":  base(lara, lara),
	}
	for name, lvl := range cases {
		t.Run(name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := entity.LoadLevelToWorld(w, lvl, system.NewRegistry(w))
			require.Error(t, err)
			assert.ErrorIs(t, err, level.ErrMalformed)
		})
	}

	t.Run("nil level", func(t *testing.T) {
		w := ecs.NewWorld()
		_, err := entity.LoadLevelToWorld(w, nil, system.NewRegistry(w))
		assert.Error(t, err)
	})
}
