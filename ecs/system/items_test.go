package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/ecs/system"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/trigger"
)

func (s *sim) door(id level.ObjectID) *component.Door {
	s.t.Helper()
	d, ok := ecs.Get(s.w, s.entity(id), component.DoorComponent.Kind())
	require.True(s.t, ok)
	return d
}

func (s *sim) effects(kind trigger.EffectKind) int {
	n := 0
	for _, ev := range s.eventsOf(ecs.EventEffect) {
		if fx, ok := ev.Data.(trigger.Effect); ok && fx.Kind == kind {
			n++
		}
	}
	return n
}

const leverRoom = `      - {at: [2, 7], ceiling: -4}
      - at: [5, 5]
        trigger:
          kind: switch
          actions:
            - {func: object, param: 1}
            - {func: object, param: 2}
`

const leverItems = `  - {kind: lara, pos: [5632, 0, 5632], room: 0, yaw: 0}
  - {kind: lever, pos: [5632, 0, 6000], room: 0, yaw: 0}
  - {kind: door, pos: [2560, 0, 7680], room: 0, yaw: 0}
`

func TestLeverOpensDoorOncePerPull(t *testing.T) {
	s := newSimFromYAML(t, openRoom(leverRoom, leverItems))
	door := s.door(2)
	require.False(t, door.Open)
	require.True(t, s.lvl.FloorAt(s.item(2).Pos, 0).IsWall())

	s.step(component.ButtonAction)
	assert.Equal(t, system.LaraSwitchDown, s.state())
	assert.Equal(t, 1, s.effects(trigger.EffectActivate))

	for i := 0; i < 25; i++ {
		s.step(0)
	}
	assert.True(t, door.Open)
	assert.Equal(t, component.ItemActive, s.item(2).Status)
	assert.False(t, s.lvl.FloorAt(s.item(2).Pos, 0).IsWall())
	assert.Equal(t, system.LaraStop, s.state())

	// The second pull puts the lever back up and the door shuts again.
	s.step(component.ButtonAction)
	require.Equal(t, system.LaraSwitchUp, s.state())
	for i := 0; i < 5; i++ {
		s.step(0)
	}
	assert.False(t, door.Open)
	assert.Equal(t, component.ItemDeactivated, s.item(2).Status)
	assert.True(t, s.lvl.FloorAt(s.item(2).Pos, 0).IsWall())
	assert.Equal(t, 1, s.effects(trigger.EffectActivate))
}

func TestLeverOutOfReachIsIgnored(t *testing.T) {
	items := `  - {kind: lara, pos: [5632, 0, 5200], room: 0, yaw: 180}
  - {kind: lever, pos: [5632, 0, 6000], room: 0, yaw: 0}
  - {kind: door, pos: [2560, 0, 7680], room: 0, yaw: 0}
`
	s := newSimFromYAML(t, openRoom(leverRoom, items))

	s.step(component.ButtonAction)

	assert.Equal(t, system.LaraStop, s.state())
	assert.Zero(t, s.effects(trigger.EffectActivate))
}

func TestPadDoorClosesAfterTimeout(t *testing.T) {
	extra := `      - at: [5, 5]
        trigger:
          kind: pad
          timeout: 2
          actions:
            - {func: object, param: 1}
`
	items := `  - {kind: lara, pos: [5632, 0, 5632], room: 0, yaw: 0}
  - {kind: trapdoor, pos: [2560, 0, 2560], room: 0, yaw: 0}
`
	s := newSimFromYAML(t, openRoom(extra, items))
	door := s.door(1)

	for i := 0; i < 5; i++ {
		s.step(0)
	}
	require.True(t, door.Open)

	s.actor(s.player()).Pos = common.Vec3{X: 3584, Y: 0, Z: 5632}
	frames := 0
	for door.Open && frames < 100 {
		s.step(0)
		frames++
	}
	assert.False(t, door.Open)
	assert.InDelta(t, 2*common.FrameRate, frames, 2)
}

func TestPickupReportsOnce(t *testing.T) {
	extra := `      - at: [5, 5]
        trigger:
          kind: pickup
          actions:
            - {func: object, param: 1}
            - {func: secret, param: 0}
`
	items := `  - {kind: lara, pos: [5632, 0, 5632], room: 0, yaw: 0}
  - {kind: medipack, pos: [5632, 0, 5700], room: 0, yaw: 0}
`
	s := newSimFromYAML(t, openRoom(extra, items))

	s.step(0)
	assert.Zero(t, s.effects(trigger.EffectSecret))

	s.step(component.ButtonAction)
	assert.Equal(t, system.LaraPickUp, s.state())
	// The trigger under it reported the pickup in the same frame.
	assert.Equal(t, component.ItemDeactivated, s.item(1).Status)

	for i := 0; i < 40; i++ {
		s.step(component.ButtonAction)
	}
	assert.Equal(t, 1, s.effects(trigger.EffectSecret))
	assert.True(t, s.ls.Triggers.SecretFound(0))
}

const blockItems = `  - {kind: lara, pos: [4608, 0, 2950], room: 0, yaw: 0}
  - {kind: block, pos: [4608, 0, 3584], room: 0, yaw: 0}
  - {kind: trapdoor, pos: [2560, 0, 2560], room: 0, yaw: 0}
`

const heavyRoom = `      - at: [4, 4]
        trigger:
          kind: heavy
          actions:
            - {func: object, param: 2}
`

func TestBlockPushMovesOneSector(t *testing.T) {
	s := newSimFromYAML(t, openRoom(heavyRoom, blockItems))
	from := s.item(1).Pos
	require.Equal(t, -common.SectorSize, s.lvl.FloorAt(from, 0).Y)

	s.step(component.ButtonAction)
	require.Equal(t, system.LaraPPReady, s.state())
	assert.Equal(t, 2*common.SectorSize+common.SectorSize-common.DefaultCollisionRadius, s.actor(s.player()).Pos.Z)
	start := s.actor(s.player()).Pos.Z

	s.step(component.ButtonAction | component.ButtonForward)
	require.Equal(t, system.LaraPush, s.state())
	block, ok := ecs.Get(s.w, s.entity(1), component.BlockComponent.Kind())
	require.True(t, ok)
	require.True(t, block.Moving)
	assert.Equal(t, 0, s.lvl.FloorAt(from, 0).Y)

	frames := 0
	for block.Moving && frames < 60 {
		s.step(component.ButtonAction | component.ButtonForward)
		frames++
	}
	require.False(t, block.Moving)
	assert.Equal(t, common.SectorSize/32, frames)

	to := s.item(1).Pos
	assert.Equal(t, from.Z+common.SectorSize, to.Z)
	assert.Equal(t, -common.SectorSize, s.lvl.FloorAt(to, 0).Y)
	assert.Equal(t, 0, s.lvl.FloorAt(from, 0).Y)
	assert.Equal(t, component.ItemDeactivated, s.item(1).Status)

	// The heavy trigger under the new spot ran for the block.
	assert.True(t, s.item(2).Active)

	require.True(t, s.runUntil(component.ButtonAction, system.LaraPPReady, 5))
	assert.Equal(t, start+common.SectorSize, s.actor(s.player()).Pos.Z)
}

func TestBlockAgainstWallCannotBePushed(t *testing.T) {
	items := `  - {kind: lara, pos: [4608, 0, 6022], room: 0, yaw: 0}
  - {kind: block, pos: [4608, 0, 6656], room: 0, yaw: 0}
`
	extra := "      - {at: [4, 7], wall: true}\n"
	s := newSimFromYAML(t, openRoom(extra, items))

	s.step(component.ButtonAction)
	require.Equal(t, system.LaraPPReady, s.state())

	for i := 0; i < 5; i++ {
		s.step(component.ButtonAction | component.ButtonForward)
	}
	assert.Equal(t, system.LaraPPReady, s.state())
	assert.Equal(t, 6656, s.item(1).Pos.Z)

	s.step(0)
	s.step(0)
	assert.Equal(t, common.HandFree, s.actor(s.player()).Hands)
}
