package system

import (
	"fmt"
	"sort"

	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/level"
)

// ActorSnapshot is the externally visible state of one actor after a frame.
type ActorSnapshot struct {
	Entity ecs.Entity
	Index  level.ObjectID
	Kind   string
	Pos    common.Vec3
	Room   int

	Yaw, Pitch, Roll common.Angle

	State  anim.StateID
	Anim   anim.ID
	Clip   string
	Frame  int
	Health int
	Player bool
}

// Snapshot lists every actor in index order.
func Snapshot(w *ecs.World) []ActorSnapshot {
	var out []ActorSnapshot
	ecs.ForEach2(w, component.ActorComponent.Kind(), component.AnimatorComponent.Kind(), func(e ecs.Entity, a *component.Actor, an *anim.Animator) {
		clip := ""
		if c := an.Clip(); c != nil {
			clip = c.Name
		}
		out = append(out, ActorSnapshot{
			Entity: e,
			Index:  a.Index,
			Kind:   a.Kind,
			Pos:    a.Pos,
			Room:   a.Room,
			Yaw:    a.Yaw,
			Pitch:  a.Pitch,
			Roll:   a.Roll,
			State:  an.State(),
			Anim:   an.Anim,
			Clip:   clip,
			Frame:  an.Frame,
			Health: a.Health,
			Player: ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// RequestState makes an actor play clip id from its first frame. The state
// handler follows on the actor's next update.
func RequestState(w *ecs.World, e ecs.Entity, id anim.ID) error {
	an, ok := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if !ok {
		return fmt.Errorf("system: request state: entity %s has no animator", e)
	}
	if err := an.SetAnimation(id, 0); err != nil {
		return fmt.Errorf("system: request state: %w", err)
	}
	an.Goal = an.State()
	return nil
}
