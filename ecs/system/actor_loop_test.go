package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/ecs/system"
	"github.com/milk9111/raidercore/levels"
	"github.com/milk9111/raidercore/trigger"
)

func TestHandlersFollowAnimatorEveryFrame(t *testing.T) {
	lvl, err := levels.LoadAndBuild("demo.yaml")
	require.NoError(t, err)
	s := newSim(t, lvl)

	script := []struct {
		held   component.Button
		frames int
	}{
		{component.ButtonForward, 40},
		{component.ButtonRight, 12},
		{component.ButtonForward | component.ButtonWalk, 30},
		{component.ButtonJump, 20},
		{0, 10},
		{component.ButtonBackward, 15},
		{component.ButtonStepLeft, 10},
		{component.ButtonLeft | component.ButtonForward, 40},
		{component.ButtonAction, 10},
		{component.ButtonRoll, 20},
	}
	for _, seg := range script {
		for i := 0; i < seg.frames; i++ {
			s.step(seg.held)
			require.NoError(t, s.handlersMatch(), "frame %d", s.w.Frame())
		}
	}
}

func TestTransitionsAreReported(t *testing.T) {
	s := newSimFromYAML(t, openRoom("", laraAt(5632, 2560, 0)))

	s.step(component.ButtonForward)

	var seen bool
	for _, ev := range s.eventsOf(ecs.EventTransition) {
		tr, ok := ev.Data.(system.Transition)
		require.True(t, ok)
		if tr.Entity == s.player() && tr.From == system.LaraStop && tr.To == system.LaraRun {
			seen = true
		}
	}
	assert.True(t, seen)
}

func TestMissingObjectStopsTheLevel(t *testing.T) {
	extra := `      - at: [5, 5]
        trigger:
          kind: trigger
          actions:
            - {func: object, param: 1}
`
	items := laraAt(5632, 5632, 0) + "  - {kind: trapdoor, pos: [2560, 0, 2560], room: 0, yaw: 0}\n"
	s := newSimFromYAML(t, openRoom(extra, items))
	require.True(t, s.reg.Unregister(1))

	s.w.Update(s.sched)
	require.ErrorIs(t, s.loop.Err(), trigger.ErrUnknownObject)
	require.ErrorIs(t, s.ls.Err, trigger.ErrUnknownObject)
	assert.Len(t, s.eventsOf(ecs.EventLevelError), 1)

	pos := s.actor(s.player()).Pos
	s.w.Update(s.sched)
	assert.Equal(t, pos, s.actor(s.player()).Pos)
}

func TestPadWakesCreature(t *testing.T) {
	extra := `      - at: [5, 5]
        trigger:
          kind: pad
          actions:
            - {func: object, param: 1}
`
	items := laraAt(5632, 5632, 0) + "  - {kind: bat, pos: [2560, -2048, 7680], room: 0, yaw: 0}\n"
	s := newSimFromYAML(t, openRoom(extra, items))
	bat := s.entity(1)
	before := s.actor(bat).Pos
	require.False(t, s.item(1).Active)

	s.step(0)
	assert.True(t, s.item(1).Active)
	assert.Equal(t, before, s.actor(bat).Pos)

	for i := 0; i < 10; i++ {
		s.step(0)
	}
	assert.NotEqual(t, before, s.actor(bat).Pos)
	assert.Equal(t, s.actor(bat).Pos, s.item(1).Pos)
}

func TestWolfBitesPlayerInFront(t *testing.T) {
	items := laraAt(5632, 5632, 0) + "  - {kind: wolf, pos: [5632, 0, 5932], room: 0, yaw: 180, mask: 31}\n"
	s := newSimFromYAML(t, openRoom("", items))
	wolf := s.entity(1)
	require.True(t, s.item(1).Active)

	attacked := false
	for i := 0; i < 40; i++ {
		s.step(0)
		if s.animator(wolf).State() == system.WolfAttack {
			attacked = true
		}
	}
	assert.True(t, attacked)
	assert.Less(t, s.actor(s.player()).Health, 1000)
}

func TestSnapshotAndRequestState(t *testing.T) {
	lvl, err := levels.LoadAndBuild("demo.yaml")
	require.NoError(t, err)
	s := newSim(t, lvl)
	s.step(0)

	snap := system.Snapshot(s.w)
	require.Len(t, snap, 3)
	assert.True(t, snap[0].Player)
	assert.Equal(t, "wolf", snap[1].Kind)
	assert.Equal(t, "bat", snap[2].Kind)
	for i := 1; i < len(snap); i++ {
		assert.Less(t, snap[i-1].Index, snap[i].Index)
	}

	require.NoError(t, system.RequestState(s.w, s.player(), anim.ID(1)))
	assert.Equal(t, system.LaraRun, s.state())
	s.step(component.ButtonForward)
	assert.Equal(t, system.LaraRun, s.state())
	require.NoError(t, s.handlersMatch())

	assert.Error(t, system.RequestState(s.w, s.player(), anim.ID(999)))
}
