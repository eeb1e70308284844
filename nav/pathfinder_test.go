package nav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/nav"
)

// strip builds a row of boxes along X with the given floors. Each box
// overlaps its neighbours.
func strip(floors ...int) *level.Level {
	lvl := &level.Level{}
	for i, f := range floors {
		b := &level.Box{
			X:     common.Interval{Min: i * common.SectorSize, Max: (i+1)*common.SectorSize - 1},
			Z:     common.Interval{Min: 0, Max: common.SectorSize - 1},
			Floor: f,
		}
		b.Zones.Normal = [3]int{1, 1, 1}
		b.Zones.Alternate = [3]int{1, 1, 1}
		if i > 0 {
			b.Overlaps = append(b.Overlaps, i-1)
		}
		if i < len(floors)-1 {
			b.Overlaps = append(b.Overlaps, i+1)
		}
		lvl.Boxes = append(lvl.Boxes, b)
	}
	return lvl
}

func aim(f *nav.Finder, box int) {
	b := f.Level.Boxes[box]
	f.SetTarget(b.Center(), level.NoRoom)
}

func TestRouteAlongSteps(t *testing.T) {
	lvl := strip(0, -256, -512, -256)
	lvl.Rooms = []*level.Room{{SectorsX: 4, SectorsZ: 1, Sectors: make([]level.Sector, 4)}}
	for i := range lvl.Rooms[0].Sectors {
		lvl.Rooms[0].Sectors[i] = level.Sector{Box: i, FloorData: level.NoFloorData, RoomBelow: level.NoRoom, RoomAbove: level.NoRoom}
	}

	f := nav.NewFinder(lvl, nav.Ground)
	aim(f, 3)
	require.Equal(t, 3, f.TargetBox())

	path, ok := f.Route(0)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2, 3}, path)
	assert.Equal(t, lvl.Boxes[1].Center(), f.Waypoint(0))
	assert.Equal(t, f.Target(), f.Waypoint(3))
}

func TestRouteRespectsStep(t *testing.T) {
	lvl := strip(0, -1024, 0)
	lvl.Rooms = []*level.Room{{SectorsX: 3, SectorsZ: 1, Sectors: []level.Sector{
		{Box: 0, FloorData: level.NoFloorData, RoomBelow: level.NoRoom, RoomAbove: level.NoRoom},
		{Box: 1, FloorData: level.NoFloorData, RoomBelow: level.NoRoom, RoomAbove: level.NoRoom},
		{Box: 2, FloorData: level.NoFloorData, RoomBelow: level.NoRoom, RoomAbove: level.NoRoom},
	}}}

	walker := nav.NewFinder(lvl, nav.Ground)
	aim(walker, 2)
	_, ok := walker.Route(0)
	assert.False(t, ok)
	assert.False(t, walker.Flying())

	flyer := nav.NewFinder(lvl, nav.Flyer)
	aim(flyer, 2)
	path, ok := flyer.Route(0)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, path)
	assert.True(t, flyer.Flying())
}

func TestBlockedBoxes(t *testing.T) {
	lvl := strip(0, 0, 0)
	lvl.Rooms = []*level.Room{{SectorsX: 3, SectorsZ: 1, Sectors: []level.Sector{
		{Box: 0, FloorData: level.NoFloorData, RoomBelow: level.NoRoom, RoomAbove: level.NoRoom},
		{Box: 1, FloorData: level.NoFloorData, RoomBelow: level.NoRoom, RoomAbove: level.NoRoom},
		{Box: 2, FloorData: level.NoFloorData, RoomBelow: level.NoRoom, RoomAbove: level.NoRoom},
	}}}
	lvl.Boxes[1].Blockable = true
	lvl.Boxes[1].Blocked = true

	f := nav.NewFinder(lvl, nav.Ground)
	aim(f, 2)
	assert.False(t, f.CanVisit(1))
	_, ok := f.Route(0)
	assert.False(t, ok)

	f.Heavy = true
	_, ok = f.Route(0)
	assert.True(t, ok)
	assert.False(t, f.CanVisit(7))
}

func TestZones(t *testing.T) {
	lvl := strip(0, 0)
	lvl.Boxes[1].Zones.Normal = [3]int{2, 2, 1}
	lvl.Boxes[1].Zones.Alternate = [3]int{1, 1, 1}

	f := nav.NewFinder(lvl, nav.Ground)
	assert.Equal(t, 1, f.ZoneOf(0))
	assert.Equal(t, 2, f.ZoneOf(1))
	assert.Equal(t, -1, f.ZoneOf(9))

	lvl.Flipped = true
	assert.Equal(t, 1, f.ZoneOf(1))
}
