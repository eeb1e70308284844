package system_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/ecs/entity"
	"github.com/milk9111/raidercore/ecs/system"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/levels"
	"github.com/milk9111/raidercore/logging"
	"github.com/milk9111/raidercore/trigger"
)

// openRoom is a walled 10x10 room with one navigation box over the
// interior. extra is spliced into the room's sector list and items into
// the item list.
func openRoom(extra, items string) string {
	var b strings.Builder
	b.WriteString(`name: test
rooms:
  - x: 0
    z: 0
    sectors_x: 10
    sectors_z: 10
    floor: 0
    ceiling: -20
    box: 0
    walls: true
    sectors:
`)
	if extra == "" {
		b.WriteString("      []\n")
	} else {
		b.WriteString(extra)
	}
	b.WriteString(`boxes:
  - x: [1024, 9215]
    z: [1024, 9215]
    floor: 0
    zones: {ground1: 1, ground2: 1, fly: 1}
items:
`)
	b.WriteString(items)
	return b.String()
}

// sim runs the actor loop the way the runner does, keeping every event.
type sim struct {
	t      *testing.T
	w      *ecs.World
	lvl    *level.Level
	reg    *system.Registry
	ls     *component.LevelState
	loop   *system.ActorLoop
	sched  *ecs.Scheduler
	events []ecs.Event
}

type recorder struct{ s *sim }

func (r recorder) Update(w *ecs.World) {
	r.s.events = append(r.s.events, w.Events().Drain()...)
}

func newSimFromYAML(t *testing.T, src string) *sim {
	t.Helper()
	spec, err := levels.Parse([]byte(src))
	require.NoError(t, err)
	lvl, err := levels.Build(spec)
	require.NoError(t, err)
	return newSim(t, lvl)
}

func newSim(t *testing.T, lvl *level.Level) *sim {
	t.Helper()
	w := ecs.NewWorld()
	reg := system.NewRegistry(w)
	ls, err := entity.LoadLevelToWorld(w, lvl, reg)
	require.NoError(t, err)

	log := logging.System(logging.Discard(), "test")
	loop := system.NewActorLoop(reg, trigger.NewDispatcher(reg, ls.Triggers), nil, log)
	s := &sim{t: t, w: w, lvl: lvl, reg: reg, ls: ls, loop: loop}
	s.sched = ecs.NewScheduler(loop, system.NewAudioSystem(nil), recorder{s: s})
	return s
}

// step latches held on the player and runs one frame.
func (s *sim) step(held component.Button) {
	s.t.Helper()
	if pe, ok := ecs.First(s.w, component.PlayerTagComponent.Kind()); ok {
		if in, ok := ecs.Get(s.w, pe, component.InputComponent.Kind()); ok {
			in.Latch(held)
		}
	}
	s.w.Update(s.sched)
	require.NoError(s.t, s.loop.Err())
}

func (s *sim) entity(id level.ObjectID) ecs.Entity {
	s.t.Helper()
	e, ok := s.reg.Entity(id)
	require.True(s.t, ok, "object %d", id)
	return e
}

func (s *sim) player() ecs.Entity {
	s.t.Helper()
	e, ok := ecs.First(s.w, component.PlayerTagComponent.Kind())
	require.True(s.t, ok)
	return e
}

func (s *sim) actor(e ecs.Entity) *component.Actor {
	s.t.Helper()
	a, ok := ecs.Get(s.w, e, component.ActorComponent.Kind())
	require.True(s.t, ok)
	return a
}

func (s *sim) animator(e ecs.Entity) *anim.Animator {
	s.t.Helper()
	an, ok := ecs.Get(s.w, e, component.AnimatorComponent.Kind())
	require.True(s.t, ok)
	return an
}

func (s *sim) item(id level.ObjectID) *component.Item {
	s.t.Helper()
	it, ok := ecs.Get(s.w, s.entity(id), component.ItemComponent.Kind())
	require.True(s.t, ok)
	return it
}

func (s *sim) state() anim.StateID {
	return s.animator(s.player()).State()
}

// runUntil steps until the player reaches want or frames run out.
func (s *sim) runUntil(held component.Button, want anim.StateID, frames int) bool {
	for i := 0; i < frames; i++ {
		s.step(held)
		if s.state() == want {
			return true
		}
	}
	return false
}

// handlersMatch checks that every actor's handler is the one for the state
// its animator is in.
func (s *sim) handlersMatch() error {
	var err error
	ecs.ForEach2(s.w, component.AnimatorComponent.Kind(), component.StateMachineComponent.Kind(), func(e ecs.Entity, an *anim.Animator, sm *component.StateMachine) {
		if err != nil || sm.Handler == nil {
			return
		}
		if sm.Handler.ID() != an.State() {
			err = fmt.Errorf("entity %s: handler %d, animator state %d", e, sm.Handler.ID(), an.State())
		}
	})
	return err
}

func (s *sim) eventsOf(kind string) []ecs.Event {
	var out []ecs.Event
	for _, ev := range s.events {
		if ev.Type == kind {
			out = append(out, ev)
		}
	}
	return out
}
