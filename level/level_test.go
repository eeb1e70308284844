package level

import (
	"testing"

	"github.com/milk9111/raidercore/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatRoom(x, z, sx, sz, floor, ceiling int) *Room {
	r := &Room{X: x, Z: z, SectorsX: sx, SectorsZ: sz, Alternate: NoRoom, Sectors: make([]Sector, sx*sz)}
	for i := range r.Sectors {
		r.Sectors[i] = Sector{Floor: floor, Ceiling: ceiling, Box: 0, FloorData: NoFloorData, RoomBelow: NoRoom, RoomAbove: NoRoom}
	}
	return r
}

func TestDecodeHandWrittenProgram(t *testing.T) {
	words := []uint16{
		uint16(ChunkFloorSlant), 0x02fe, // x=2, z=-2
		uint16(ChunkDeath),
		uint16(ChunkTrigger) | uint16(TriggerSwitch)<<8 | endBit,
		0x0105 | 0x03<<9, // timeout 5, oneshot, mask 0b00011
		uint16(ActionObject)<<10 | 7,
		uint16(ActionCameraTarget)<<10 | 2, 0x0003 | endBit,
	}
	prog, err := Decode(words, 0)
	require.NoError(t, err)

	require.NotNil(t, prog.FloorSlant)
	assert.Equal(t, Slant{X: 2, Z: -2}, *prog.FloorSlant)
	assert.True(t, prog.Death)
	require.NotNil(t, prog.Trigger)
	assert.Equal(t, TriggerSwitch, prog.Trigger.Kind)
	assert.Equal(t, Setup{Timeout: 5, Oneshot: true, Mask: 0x03}, prog.Trigger.Setup)
	require.Len(t, prog.Trigger.Actions, 2)
	assert.Equal(t, Action{Func: ActionObject, Param: 7}, prog.Trigger.Actions[0])
	assert.Equal(t, ActionCameraTarget, prog.Trigger.Actions[1].Func)
	assert.Equal(t, CameraParams{Timeout: 3}, prog.Trigger.Actions[1].Camera)
}

func TestDecodeOverrunIsMalformed(t *testing.T) {
	words := []uint16{uint16(ChunkTrigger), 0x3e00, uint16(ActionObject) << 10}
	_, err := Decode(words, 0)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestEncodeMatchesDecoder(t *testing.T) {
	prog := Program{
		Portal: NoRoom,
		Trigger: &TriggerChunk{
			Kind:    TriggerPad,
			Setup:   Setup{Mask: 0x1f},
			Actions: []Action{{Func: ActionSecret, Param: 3}, {Func: ActionPlayTrack, Param: 20}},
		},
	}
	data, off := Encode([]uint16{0xdead}, prog)
	assert.Equal(t, 1, off)

	got, err := Decode(data, off)
	require.NoError(t, err)
	assert.Equal(t, prog, got)
}

func TestFloorAtSlantAndCommands(t *testing.T) {
	lvl := &Level{Rooms: []*Room{flatRoom(0, 0, 2, 2, -4, -20)}}
	var off int
	lvl.FloorData, off = Encode(nil, Program{Portal: NoRoom, FloorSlant: &Slant{X: 0, Z: 2}, Death: true})
	lvl.Rooms[0].Sectors[1].FloorData = off // sector (0, 1)

	info := lvl.FloorAt(common.Vec3{X: 100, Y: -2000, Z: 1024 + 10}, 0)
	// base -1024, z slant 2 at in-sector x=100: +(2*923)>>2
	assert.Equal(t, -1024+461, info.Y)
	assert.Equal(t, SlopeDiagonal, info.Slope)
	assert.True(t, info.Death)
	assert.Equal(t, off, info.Commands)

	plain := lvl.FloorAt(common.Vec3{X: 1500, Y: -2000, Z: 100}, 0)
	assert.Equal(t, -1024, plain.Y)
	assert.Equal(t, NoFloorData, plain.Commands)
}

func TestLocateFollowsRoomBelow(t *testing.T) {
	upper := flatRoom(0, 0, 2, 2, 0, -8)
	lower := flatRoom(0, 0, 2, 2, 8, 0)
	upper.Sectors[0].RoomBelow = 1
	lower.Sectors[0].RoomAbove = 0
	lvl := &Level{Rooms: []*Room{upper, lower}}

	_, room, ok := lvl.Locate(common.Vec3{X: 100, Y: 500, Z: 100}, 0)
	require.True(t, ok)
	assert.Equal(t, 1, room)

	// The floor sample drops through the open sector.
	assert.Equal(t, 2048, lvl.FloorAt(common.Vec3{X: 100, Y: -100, Z: 100}, 0).Y)
	assert.Equal(t, 0, lvl.FloorAt(common.Vec3{X: 1100, Y: -100, Z: 100}, 0).Y)

	_, _, ok = lvl.Locate(common.Vec3{X: 9000, Z: 100}, 0)
	assert.False(t, ok)
	assert.True(t, lvl.FloorAt(common.Vec3{X: 9000, Z: 100}, 0).Missing)
}

func TestPatchHeightsForBlock(t *testing.T) {
	lvl := &Level{
		Rooms: []*Room{flatRoom(0, 0, 2, 2, 0, -16)},
		Boxes: []*Box{{X: common.Interval{Max: 2047}, Z: common.Interval{Max: 2047}, Blockable: true}},
	}
	pos := common.Vec3{X: 512, Y: 0, Z: 512}

	require.NoError(t, lvl.PatchHeightsForBlock(pos, 0, -common.SectorSize))
	assert.Equal(t, -4, lvl.Rooms[0].Sectors[0].Floor)
	assert.True(t, lvl.Boxes[0].Blocked)

	require.NoError(t, lvl.PatchHeightsForBlock(pos.Moved(0, -common.SectorSize, 0), 0, common.SectorSize))
	assert.Equal(t, 0, lvl.Rooms[0].Sectors[0].Floor)
	assert.False(t, lvl.Boxes[0].Blocked)
}

func TestPatchHeightsClosesToWall(t *testing.T) {
	lvl := &Level{Rooms: []*Room{flatRoom(0, 0, 1, 1, 0, -4)}}
	pos := common.Vec3{X: 512, Y: 0, Z: 512}

	require.NoError(t, lvl.PatchHeightsForBlock(pos, 0, -common.SectorSize))
	assert.True(t, lvl.Rooms[0].Sectors[0].IsWall())

	require.NoError(t, lvl.PatchHeightsForBlock(pos, 0, common.SectorSize))
	assert.Equal(t, 0, lvl.Rooms[0].Sectors[0].Floor)
}

func TestValidateTriggers(t *testing.T) {
	lvl := &Level{Rooms: []*Room{flatRoom(0, 0, 1, 1, 0, -4)}}
	var off int
	lvl.FloorData, off = Encode(nil, Program{Portal: NoRoom, Trigger: &TriggerChunk{
		Kind:    TriggerTrigger,
		Setup:   Setup{Mask: 0x1f},
		Actions: []Action{{Func: ActionObject, Param: 4}},
	}})
	lvl.Rooms[0].Sectors[0].FloorData = off

	err := lvl.ValidateTriggers(func(id ObjectID) bool { return id < 3 })
	assert.ErrorIs(t, err, ErrMalformed)
	assert.NoError(t, lvl.ValidateTriggers(func(id ObjectID) bool { return id == 4 }))
}

func TestBoxContainsUsesInclusiveBounds(t *testing.T) {
	b := &Box{X: common.Interval{Min: 1024, Max: 2047}, Z: common.Interval{Min: 0, Max: 1023}, Floor: -256}
	assert.True(t, b.Contains(2047, 1023))
	assert.False(t, b.Contains(2048, 10))
	assert.Equal(t, common.Vec3{X: 1535, Y: -256, Z: 511}, b.Center())
}
