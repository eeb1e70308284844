package collision_test

import (
	"testing"

	"github.com/milk9111/raidercore/collision"
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corridor: interior sectors x 1..2, z 1..6; walls around.
const corridor = `
name: corridor
rooms:
  - x: 0
    z: 0
    sectors_x: 4
    sectors_z: 8
    floor: 0
    ceiling: -16
    walls: true
    box: 0
    sectors:
      - at: [1, 3]
        floor: -1
      - at: [2, 3]
        floor: -1
        slant: {x: -4, z: 0}
      - at: [1, 5]
        wall: true
      - at: [2, 1]
        ceiling: -3
boxes:
  - x: [1024, 3071]
    z: [1024, 7167]
    floor: 0
`

func buildLevel(t *testing.T, src string) *level.Level {
	t.Helper()
	spec, err := levels.Parse([]byte(src))
	require.NoError(t, err)
	lvl, err := levels.Build(spec)
	require.NoError(t, err)
	return lvl
}

func stepPolicy() collision.Policy {
	return collision.Policy{
		StepUp:   common.QuarterSectorSize,
		StepDown: common.HeightLimit,
		Ceiling:  0,
		Height:   common.LaraWalkHeight,
	}
}

func TestProbeIsPure(t *testing.T) {
	lvl := buildLevel(t, corridor)
	q := collision.Query{
		Old:    common.Vec3{X: 1536, Y: 0, Z: 2900},
		Pos:    common.Vec3{X: 1536, Y: 0, Z: 3022},
		Room:   0,
		Facing: 0,
		Radius: common.DefaultCollisionRadius,
	}
	first := collision.Probe(lvl, q, stepPolicy())
	second := collision.Probe(lvl, q, stepPolicy())
	assert.Equal(t, first, second)
}

func TestProbeStepBoundary(t *testing.T) {
	lvl := buildLevel(t, corridor)
	tests := []struct {
		name string
		y    int
		want collision.Kind
	}{
		{"step_equal_to_limit", 0, collision.Clear},
		{"one_unit_beyond", 1, collision.FrontBlocked},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := common.Vec3{X: 1536, Y: tc.y, Z: 3022}
			res := collision.Probe(lvl, collision.Query{Old: pos, Pos: pos, Facing: 0, Radius: common.DefaultCollisionRadius}, stepPolicy())
			assert.Equal(t, tc.want, res.Kind)
			assert.Equal(t, -256-tc.y, res.Front.Floor)
		})
	}
}

func TestProbeWallAheadShiftsBackToSectorEdge(t *testing.T) {
	lvl := buildLevel(t, corridor)
	old := common.Vec3{X: 1536, Y: 0, Z: 5120 - 1 - 100}
	pos := old.Moved(0, 0, 30)

	res := collision.Probe(lvl, collision.Query{Old: old, Pos: pos, Facing: 0, Radius: 100}, collision.DefaultPolicy())
	require.Equal(t, collision.FrontBlocked, res.Kind)
	assert.Equal(t, old, res.Corrected(pos))
}

func TestProbeLeftWall(t *testing.T) {
	lvl := buildLevel(t, corridor)
	pos := common.Vec3{X: 1074, Y: 0, Z: 2500}

	res := collision.Probe(lvl, collision.Query{Old: pos, Pos: pos, Facing: 0, Radius: 100}, collision.DefaultPolicy())
	require.Equal(t, collision.LeftBlocked, res.Kind)
	assert.Equal(t, 51, res.Shift.X)
	assert.Equal(t, 0, res.Shift.Z)
}

func TestProbeOutsideRoomIsInvalid(t *testing.T) {
	lvl := buildLevel(t, corridor)
	old := common.Vec3{X: 1536, Y: 0, Z: 2500}
	pos := common.Vec3{X: -5000, Y: 0, Z: 2500}

	res := collision.Probe(lvl, collision.Query{Old: old, Pos: pos, Facing: 0, Radius: 100}, collision.DefaultPolicy())
	assert.Equal(t, collision.InvalidPosition, res.Kind)
	assert.Equal(t, old, res.Corrected(pos))
}

func TestProbeSteepSlopePolicy(t *testing.T) {
	lvl := buildLevel(t, corridor)
	pos := common.Vec3{X: 2560, Y: 0, Z: 3022}
	q := collision.Query{Old: pos, Pos: pos, Facing: 0, Radius: 100}

	policy := collision.DefaultPolicy()
	res := collision.Probe(lvl, q, policy)
	assert.Equal(t, collision.Clear, res.Kind)
	assert.Equal(t, -206, res.Front.Floor)
	assert.Equal(t, level.SlopeSteep, res.Front.Slope)

	policy.SlopesAreWalls = true
	res = collision.Probe(lvl, q, policy)
	assert.Equal(t, collision.FrontBlocked, res.Kind)
}

func TestProbeScalpCollision(t *testing.T) {
	lvl := buildLevel(t, corridor)
	// Mid-jump with the head poking above a low ceiling.
	pos := common.Vec3{X: 2560, Y: -200, Z: 1974}
	policy := collision.DefaultPolicy()
	policy.Height = 600

	res := collision.Probe(lvl, collision.Query{Old: pos, Pos: pos, Facing: 0, Radius: 100}, policy)
	assert.Equal(t, collision.ScalpCollision, res.Kind)
	assert.Equal(t, 32, res.Shift.Y)
	assert.False(t, res.Kind.Blocked())
}

const ledges = `
name: ledges
rooms:
  - x: 0
    z: 0
    sectors_x: 3
    sectors_z: 4
    floor: 0
    ceiling: -16
    sectors:
      - at: [0, 0]
        to: [0, 3]
        floor: -2
      - at: [2, 0]
        to: [2, 3]
        floor: -2
`

func TestProbeBothSidesBlocked(t *testing.T) {
	pos := common.Vec3{X: 1536, Y: 0, Z: 1536}
	q := collision.Query{Old: pos, Pos: pos, Facing: 0, Radius: 600}
	policy := collision.DefaultPolicy()
	policy.Ceiling = common.HeightLimit

	t.Run("equal_severity_prefers_left", func(t *testing.T) {
		lvl := buildLevel(t, ledges)
		res := collision.Probe(lvl, q, policy)
		assert.Equal(t, collision.LeftBlocked, res.Kind)
	})

	t.Run("more_severe_side_wins", func(t *testing.T) {
		lvl := buildLevel(t, ledges)
		for z := 0; z < 4; z++ {
			lvl.Rooms[0].Sectors[2*4+z].Floor = -3
		}
		res := collision.Probe(lvl, q, policy)
		assert.Equal(t, collision.RightBlocked, res.Kind)
	})
}

func TestFindGridShift(t *testing.T) {
	assert.Equal(t, 0, collision.FindGridShift(1100, 1500))
	assert.Equal(t, -30, collision.FindGridShift(3101, 3001))
	assert.Equal(t, 51, collision.FindGridShift(974, 1074))
}

const lavaPit = `
name: lava
rooms:
  - x: 0
    z: 0
    sectors_x: 3
    sectors_z: 4
    floor: 0
    ceiling: -16
    walls: true
    box: 0
    sectors:
      - at: [1, 2]
        floor: 1
        death: true
boxes:
  - x: [1024, 2047]
    z: [1024, 3071]
    floor: 0
`

func TestProbeLavaPolicy(t *testing.T) {
	lvl := buildLevel(t, lavaPit)
	pos := common.Vec3{X: 1536, Y: 0, Z: 2000}
	q := collision.Query{Old: pos, Pos: pos, Facing: 0, Radius: common.DefaultCollisionRadius}

	policy := stepPolicy()
	policy.StepDown = common.QuarterSectorSize
	res := collision.Probe(lvl, q, policy)
	assert.Equal(t, collision.Clear, res.Kind)
	assert.Equal(t, common.QuarterSectorSize, res.Front.Floor)

	policy.LavaIsPit = true
	res = collision.Probe(lvl, q, policy)
	assert.Equal(t, collision.FrontBlocked, res.Kind)
	assert.Equal(t, 2*common.QuarterSectorSize, res.Front.Floor)
}
