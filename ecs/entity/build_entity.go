package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/nav"
	"github.com/milk9111/raidercore/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	Kind  string
	Level *level.Level
	// tables caches clip tables by path across the entities of one level.
	tables map[string]*anim.Table
}

func newBuildContext(lvl *level.Level) *buildContext {
	return &buildContext{Level: lvl, tables: map[string]*anim.Table{}}
}

func (c *buildContext) table(path string) (*anim.Table, error) {
	if t, ok := c.tables[path]; ok {
		return t, nil
	}
	t, err := prefabs.LoadAnimations(path)
	if err != nil {
		return nil, err
	}
	c.tables[path] = t
	return t, nil
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"creature_tag": addCreatureTag,
	"input":        addInput,
	"actor":        addActor,
	"animator":     addAnimator,
	"creature":     addCreature,
	"switch":       addSwitch,
	"door":         addDoor,
	"block":        addBlock,
	"pickup":       addPickup,
}

var componentBuildOrder = []string{
	"player_tag",
	"creature_tag",
	"input",
	"actor",
	"animator",
	"creature",
	"switch",
	"door",
	"block",
	"pickup",
}

// BuildEntity creates an entity carrying the components of spec.
func BuildEntity(w *ecs.World, spec entityPrefabSpec, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if ctx == nil {
		ctx = newBuildContext(nil)
	}
	ctx.Kind = spec.Name

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", spec.Name, names[0])
	}

	return e, nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCreatureTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CreatureTagComponent.Kind(), &component.CreatureTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type actorSpec = prefabs.ActorComponentSpec

func addActor(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[actorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode actor spec: %w", err)
	}
	radius := spec.Radius
	if radius <= 0 {
		radius = common.DefaultCollisionRadius
	}
	return ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{
		Kind:   ctx.Kind,
		Radius: radius,
		Health: spec.Health,
	})
}

type animatorSpec = prefabs.AnimatorComponentSpec

func addAnimator(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animatorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animator spec: %w", err)
	}
	if spec.Table == "" {
		return fmt.Errorf("animator needs a table")
	}
	t, err := ctx.table(spec.Table)
	if err != nil {
		return err
	}
	an, err := anim.NewAnimator(t, anim.ID(spec.Start))
	if err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.AnimatorComponent.Kind(), an); err != nil {
		return err
	}
	return ecs.Add(w, e, component.StateMachineComponent.Kind(), &component.StateMachine{})
}

type creatureSpec = prefabs.CreatureComponentSpec

func addCreature(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[creatureSpec](raw)
	if err != nil {
		return fmt.Errorf("decode creature spec: %w", err)
	}
	if spec.Traversal == (nav.Traversal{}) {
		spec.Traversal = nav.Ground
	}
	var finder *nav.Finder
	if ctx.Level != nil {
		finder = nav.NewFinder(ctx.Level, spec.Traversal)
		finder.Heavy = spec.Heavy
	}
	return ecs.Add(w, e, component.CreatureComponent.Kind(), &component.Creature{
		Finder:   finder,
		Box:      level.NoBox,
		TurnRate: common.Deg(spec.TurnRate),
		Damage:   spec.Damage,
		Script:   spec.Script,
	})
}

type switchSpec = prefabs.SwitchComponentSpec

func addSwitch(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[switchSpec](raw)
	if err != nil {
		return fmt.Errorf("decode switch spec: %w", err)
	}
	return ecs.Add(w, e, component.SwitchComponent.Kind(), &component.Switch{On: spec.On})
}

type doorSpec = prefabs.DoorComponentSpec

func addDoor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[doorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode door spec: %w", err)
	}
	return ecs.Add(w, e, component.DoorComponent.Kind(), &component.Door{Blocks: spec.Blocks})
}

type blockSpec = prefabs.BlockComponentSpec

func addBlock(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[blockSpec](raw)
	if err != nil {
		return fmt.Errorf("decode block spec: %w", err)
	}
	return ecs.Add(w, e, component.BlockComponent.Kind(), &component.Block{Step: spec.Step})
}

func addPickup(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{})
}
