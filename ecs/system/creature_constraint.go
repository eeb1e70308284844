package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/nav"
)

var (
	maxCreatureTilt = common.Deg(3)
	pitchEase       = common.Deg(1)
)

// creatureDescent is how far a ground creature drops per frame when the
// floor is further below it.
const creatureDescent = common.QuarterSectorSize / 4

// Occupant is another creature taking part in the "already here" check.
type Occupant struct {
	Index  level.ObjectID
	Pos    common.Vec3
	Moving bool
}

// ConstrainCreature keeps a creature that its animation just moved from old
// inside the part of the level its path finder allows. It reports whether
// the move was held back in any way.
func ConstrainCreature(ctx *component.StateContext, old common.Vec3, others []Occupant) bool {
	a, cr, lvl := ctx.Actor, ctx.Creature, ctx.Level
	if cr == nil || cr.Finder == nil || lvl == nil {
		return false
	}
	var finder nav.PathFinder = cr.Finder
	held := false

	curBox := lvl.Box(cr.Box)
	if curBox == nil {
		cr.Box = lvl.BoxAt(old, a.Room)
		curBox = lvl.Box(cr.Box)
	}
	if curBox == nil {
		return false
	}
	boxHeight := curBox.Floor
	zone := finder.ZoneOf(cr.Box)

	next := lvl.BoxAt(a.Pos, a.Room)
	if outOfBox(finder, lvl, next, zone, boxHeight) {
		a.Pos.X = shove(a.Pos.X, old.X)
		a.Pos.Z = shove(a.Pos.Z, old.Z)
		next = lvl.BoxAt(a.Pos, a.Room)
		held = true
	}
	nextHeight := boxHeight
	if b := lvl.Box(next); b != nil {
		nextHeight = b.Floor
	}

	bad := func(dx, dz int) bool {
		at := a.Pos.Moved(dx, 0, dz)
		return badFloor(finder, lvl, at, a.Room, zone, boxHeight, nextHeight)
	}

	r := a.Radius
	safe := common.Interval{Min: r, Max: common.SectorSize - 1 - r}
	offX, offZ := common.InSector(a.Pos.X), common.InSector(a.Pos.Z)
	var shiftX, shiftZ int
	dirX, dirZ := 0, 0
	switch {
	case offX < safe.Min:
		dirX = -1
	case offX > safe.Max:
		dirX = 1
	}
	switch {
	case offZ < safe.Min:
		dirZ = -1
	case offZ > safe.Max:
		dirZ = 1
	}
	if dirZ != 0 && bad(0, dirZ*r) {
		shiftZ = safe.Clamp(offZ) - offZ
	}
	if dirX != 0 && bad(dirX*r, 0) {
		shiftX = safe.Clamp(offX) - offX
	}
	if dirX != 0 && dirZ != 0 && shiftX == 0 && shiftZ == 0 && bad(dirX*r, dirZ*r) {
		if holdsX(dirX, dirZ, common.AxisFromAngle(a.Yaw)) {
			shiftX = safe.Clamp(offX) - offX
		} else {
			shiftZ = safe.Clamp(offZ) - offZ
		}
	}
	if shiftX != 0 || shiftZ != 0 {
		a.Pos.X += shiftX
		a.Pos.Z += shiftZ
		held = true
	}

	// Someone got here first: skip the whole move this frame.
	if occupied(a, others) {
		a.Pos = old
		cr.Turn = 0
		return true
	}

	if finder.Flying() {
		flyToward(ctx, old)
	} else {
		floor := lvl.FloorAt(a.Pos, a.Room)
		switch {
		case floor.IsWall():
		case a.Pos.Y > floor.Y:
			a.Pos.Y = floor.Y
		case floor.Y-a.Pos.Y > creatureDescent:
			a.Pos.Y += creatureDescent
		default:
			a.Pos.Y = floor.Y
		}
	}

	a.Yaw = (a.Yaw + cr.Turn).Wrap()
	a.Roll += common.ClampAngle(cr.Tilt-a.Roll, maxCreatureTilt)
	cr.Turn = 0

	if _, room, ok := lvl.Locate(a.Pos, a.Room); ok {
		a.Room = room
	}
	if box := lvl.BoxAt(a.Pos, a.Room); box != level.NoBox {
		cr.Box = box
	}
	return held
}

// cornerHoldX lists, per corner the creature is pushing into, the facings
// for which the X axis is held when only the diagonal sample is blocked.
// Every other facing holds Z.
var cornerHoldX = map[[2]int][2]common.Axis{
	{-1, -1}: {common.NegZ, common.PosX},
	{1, -1}:  {common.NegZ, common.NegX},
	{-1, 1}:  {common.PosX, common.PosZ},
	{1, 1}:   {common.PosZ, common.NegX},
}

func holdsX(dirX, dirZ int, facing common.Axis) bool {
	axes := cornerHoldX[[2]int{dirX, dirZ}]
	return facing == axes[0] || facing == axes[1]
}

// outOfBox reports whether the box the animation moved into may not be
// entered at all.
func outOfBox(f nav.PathFinder, lvl *level.Level, box, zone, boxHeight int) bool {
	b := lvl.Box(box)
	if b == nil || !f.CanVisit(box) || f.ZoneOf(box) != zone {
		return true
	}
	d := boxHeight - b.Floor
	return d > f.Step() || d < f.Drop()
}

// shove puts v back into the sector of old along one axis.
func shove(v, old int) int {
	switch s, o := common.SectorOf(v), common.SectorOf(old); {
	case s < o:
		return old &^ (common.SectorSize - 1)
	case s > o:
		return old | (common.SectorSize - 1)
	}
	return v
}

// badFloor reports whether the sector at pos is out of reach for the
// creature standing in a box of height boxHeight.
func badFloor(f nav.PathFinder, lvl *level.Level, pos common.Vec3, room, zone, boxHeight, nextHeight int) bool {
	box := lvl.BoxAt(pos, room)
	b := lvl.Box(box)
	if b == nil || !f.CanVisit(box) || f.ZoneOf(box) != zone {
		return true
	}
	d := boxHeight - b.Floor
	if d > f.Step() || d < f.Drop() {
		return true
	}
	if d < -f.Step() && b.Floor > nextHeight {
		return true
	}
	return f.Flying() && pos.Y > b.Floor+f.Fly()
}

// occupied reports whether a moving creature with a lower index already
// stands within a's collision radius.
func occupied(a *component.Actor, others []Occupant) bool {
	here := cp.Vector{X: float64(a.Pos.X), Y: float64(a.Pos.Z)}
	for _, o := range others {
		if o.Index >= a.Index || !o.Moving {
			continue
		}
		there := cp.Vector{X: float64(o.Pos.X), Y: float64(o.Pos.Z)}
		if here.Distance(there) < float64(a.Radius) {
			return true
		}
	}
	return false
}

// flyToward moves a flying creature vertically toward its target without
// leaving the space between floor and ceiling.
func flyToward(ctx *component.StateContext, old common.Vec3) {
	a, cr := ctx.Actor, ctx.Creature
	fly := cr.Finder.Fly()

	dy := 0
	if cr.Decision.HasTarget {
		dy = common.Clamp(cr.Decision.Target.Y-a.Pos.Y, -fly, fly)
	}

	floor := ctx.Level.FloorAt(a.Pos, a.Room)
	ceiling := ctx.Level.CeilingAt(a.Pos, a.Room)
	switch {
	case !floor.IsWall() && a.Pos.Y+dy > floor.Y:
		if a.Pos.Y > floor.Y {
			a.Pos.X, a.Pos.Z = old.X, old.Z
			dy = -fly
		} else {
			a.Pos.Y = floor.Y
			dy = 0
		}
	case !ceiling.IsWall() && a.Pos.Y+dy < ceiling.Y:
		if a.Pos.Y < ceiling.Y {
			a.Pos.X, a.Pos.Z = old.X, old.Z
			dy = fly
		} else {
			a.Pos.Y = ceiling.Y
			dy = 0
		}
	}
	a.Pos.Y += dy

	cr.ClimbAngle = 0
	if a.Speed != 0 {
		cr.ClimbAngle = common.Atan(-dy, a.Speed)
	}
	switch d := (cr.ClimbAngle - a.Pitch).Wrap(); {
	case d > pitchEase:
		a.Pitch += pitchEase
	case d < -pitchEase:
		a.Pitch -= pitchEase
	default:
		a.Pitch = cr.ClimbAngle
	}
}
