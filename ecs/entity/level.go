package entity

import (
	"fmt"

	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/ecs/system"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/prefabs"
	"github.com/milk9111/raidercore/trigger"
)

// PlayerKind is the item kind that places the player.
const PlayerKind = "lara"

type catalogs struct {
	player    entityPrefabSpec
	creatures prefabs.KindsSpec
	items     prefabs.KindsSpec
}

func loadCatalogs() (*catalogs, error) {
	player, err := prefabs.LoadEntityBuildSpec("lara.yaml")
	if err != nil {
		return nil, err
	}
	creatures, err := prefabs.LoadCreaturesSpec()
	if err != nil {
		return nil, err
	}
	items, err := prefabs.LoadItemsSpec()
	if err != nil {
		return nil, err
	}
	return &catalogs{player: player, creatures: creatures, items: items}, nil
}

func (c *catalogs) find(kind string) (entityPrefabSpec, bool) {
	if kind == PlayerKind {
		return c.player, true
	}
	if spec, ok := c.creatures.Find(kind); ok {
		return spec, true
	}
	return c.items.Find(kind)
}

// LoadLevelToWorld adds the level singletons to the world and spawns one
// entity per placed item, registering each under its item index.
func LoadLevelToWorld(w *ecs.World, lvl *level.Level, reg *system.Registry) (*component.LevelState, error) {
	if lvl == nil {
		return nil, fmt.Errorf("load level: level is nil")
	}
	cats, err := loadCatalogs()
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", lvl.Name, err)
	}

	ls := &component.LevelState{
		Level:      lvl,
		Triggers:   trigger.NewState(),
		FlipEffect: -1,
		Current:    -1,
	}
	levelEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, levelEntity, component.LevelStateComponent.Kind(), ls); err != nil {
		return nil, err
	}
	if err := ecs.Add(w, levelEntity, component.CameraComponent.Kind(), &component.Camera{Fixed: -1}); err != nil {
		return nil, err
	}
	if err := ecs.Add(w, levelEntity, component.AudioComponent.Kind(), &component.Audio{}); err != nil {
		return nil, err
	}

	ctx := newBuildContext(lvl)
	players := 0
	for i, it := range lvl.Items {
		id := level.ObjectID(i)
		spec, ok := cats.find(it.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: item %d has unknown kind %q", level.ErrMalformed, i, it.Kind)
		}
		e, err := BuildEntity(w, spec, ctx)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if err := place(w, e, id, it, lvl); err != nil {
			return nil, fmt.Errorf("item %d %q: %w", i, it.Kind, err)
		}
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			players++
			if players > 1 {
				return nil, fmt.Errorf("%w: more than one %s", level.ErrMalformed, PlayerKind)
			}
		}
		reg.Register(id, e)
	}

	if err := lvl.ValidateTriggers(reg.Exists); err != nil {
		return nil, fmt.Errorf("load level %q: %w", lvl.Name, err)
	}
	return ls, nil
}

// place copies the placement of it onto the freshly built entity and applies
// the floor changes the object makes while at rest.
func place(w *ecs.World, e ecs.Entity, id level.ObjectID, it level.Item, lvl *level.Level) error {
	if a, ok := ecs.Get(w, e, component.ActorComponent.Kind()); ok {
		a.Index = id
		a.Pos = it.Pos
		a.Room = it.Room
		a.Yaw = it.Yaw
		a.MoveAngle = it.Yaw
		a.Hands = common.HandFree
		a.FloorY = lvl.FloorAt(it.Pos, it.Room).Y
	}

	if c, ok := ecs.Get(w, e, component.CreatureComponent.Kind()); ok {
		if script, ok := it.Props["script"]; ok {
			c.Script = script
		}
		c.Box = lvl.BoxAt(it.Pos, it.Room)
	}

	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		return nil
	}

	mask := trigger.MaskOf(it.Mask)
	item := &component.Item{
		Index:      id,
		Kind:       it.Kind,
		Pos:        it.Pos,
		Room:       it.Room,
		Yaw:        it.Yaw,
		Activation: trigger.Activation{Mask: mask},
	}
	if it.Invisible {
		item.Status = component.ItemInvisible
	}
	// Creatures placed with every code bit set wake up without a trigger.
	if ecs.Has(w, e, component.CreatureTagComponent.Kind()) && mask.Full() && !it.Invisible {
		item.Active = true
		item.Status = component.ItemActive
	}
	if err := ecs.Add(w, e, component.ItemComponent.Kind(), item); err != nil {
		return err
	}

	if ecs.Has(w, e, component.BlockComponent.Kind()) && !it.Invisible {
		return lvl.PatchHeightsForBlock(it.Pos, it.Room, -common.SectorSize)
	}
	if d, ok := ecs.Get(w, e, component.DoorComponent.Kind()); ok && d.Blocks {
		return lvl.PatchHeightsForBlock(it.Pos, it.Room, -common.SectorSize)
	}
	return nil
}
