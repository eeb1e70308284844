package collision

import (
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/level"
)

// Kind classifies a probed position.
type Kind int

const (
	Clear Kind = iota
	FrontBlocked
	LeftBlocked
	RightBlocked
	CeilingBlocked
	InvalidPosition
	// ScalpCollision means the ceiling touches the head; movement continues
	// with a vertical correction.
	ScalpCollision
	FrontCeilingBlocked
)

var kindNames = [...]string{
	Clear:               "clear",
	FrontBlocked:        "front",
	LeftBlocked:         "left",
	RightBlocked:        "right",
	CeilingBlocked:      "ceiling",
	InvalidPosition:     "invalid",
	ScalpCollision:      "scalp",
	FrontCeilingBlocked: "front_ceiling",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Blocked reports whether horizontal movement was refused.
func (k Kind) Blocked() bool {
	return k != Clear && k != ScalpCollision
}

// Policy is the set of bounds a state applies to a probe. Floor distances
// outside [-StepUp, StepDown] block; a front ceiling distance above Ceiling
// blocks.
type Policy struct {
	StepUp   int
	StepDown int
	Ceiling  int
	Height   int

	SlopesAreWalls bool
	SlopesArePits  bool
	LavaIsPit      bool
}

// DefaultPolicy allows any drop, a two-click step up and requires headroom.
func DefaultPolicy() Policy {
	return Policy{
		StepUp:   common.ClimbLimit2ClickMin,
		StepDown: common.HeightLimit,
		Ceiling:  0,
		Height:   common.LaraWalkHeight,
	}
}

func (p Policy) floorOK(d int) bool {
	return d <= p.StepDown && d >= -p.StepUp
}

// severity is how far d lies outside the floor bounds.
func (p Policy) severity(d int) int {
	return max(d-p.StepDown, -p.StepUp-d, 0)
}

// Sample is one probe point. Floor is positive when the floor is below the
// feet; Ceiling is negative when the ceiling is above the head.
type Sample struct {
	DX, DZ   int
	Floor    int
	Ceiling  int
	Slope    level.Slope
	Slant    level.Slant
	Commands int
	Death    bool
	Missing  bool
}

// Query describes the move being probed.
type Query struct {
	Old    common.Vec3
	Pos    common.Vec3
	Room   int
	Facing common.Angle
	Radius int
}

// Result is rebuilt for every probe and never kept across frames.
type Result struct {
	Kind     Kind
	Quadrant common.Axis
	Mid      Sample
	Front    Sample
	Left     Sample
	Right    Sample
	Shift    common.Vec3
}

// Corrected applies the shift to pos.
func (r Result) Corrected(pos common.Vec3) common.Vec3 {
	return pos.Add(r.Shift)
}

// Probe samples the height field around q.Pos and classifies the move from
// q.Old. It reads lvl only.
func Probe(lvl *level.Level, q Query, p Policy) Result {
	res := Result{Quadrant: common.AxisFromAngle(q.Facing)}
	r := q.Radius
	fx := int(q.Facing.Sin() * float64(r))
	fz := int(q.Facing.Cos() * float64(r))

	var front, left, right [2]int
	switch res.Quadrant {
	case common.PosZ:
		front, left, right = [2]int{fx, r}, [2]int{-r, r}, [2]int{r, r}
	case common.PosX:
		front, left, right = [2]int{r, fz}, [2]int{r, r}, [2]int{r, -r}
	case common.NegZ:
		front, left, right = [2]int{fx, -r}, [2]int{r, -r}, [2]int{-r, -r}
	case common.NegX:
		front, left, right = [2]int{-r, fz}, [2]int{-r, -r}, [2]int{-r, r}
	}

	res.Mid = sample(lvl, q, p, 0, 0)
	res.Front = applySlopePolicy(sample(lvl, q, p, front[0], front[1]), p)
	res.Left = applySlopePolicy(sample(lvl, q, p, left[0], left[1]), p)
	res.Right = applySlopePolicy(sample(lvl, q, p, right[0], right[1]), p)

	revert := q.Old.Sub(q.Pos)

	if res.Mid.Missing || res.Mid.Floor == -common.HeightLimit ||
		res.Front.Missing || res.Left.Missing || res.Right.Missing {
		res.Kind = InvalidPosition
		res.Shift = revert
		return res
	}
	if res.Mid.Floor-res.Mid.Ceiling <= 0 {
		res.Kind = CeilingBlocked
		res.Shift = revert
		return res
	}
	if res.Mid.Ceiling >= 0 {
		res.Kind = ScalpCollision
		res.Shift.Y = res.Mid.Ceiling
	}

	if !p.floorOK(res.Front.Floor) || res.Front.Ceiling > p.Ceiling {
		res.Kind = FrontBlocked
		switch res.Quadrant {
		case common.PosZ, common.NegZ:
			res.Shift.X = revert.X
			res.Shift.Z = FindGridShift(q.Pos.Z+res.Front.DZ, q.Pos.Z)
		default:
			res.Shift.X = FindGridShift(q.Pos.X+res.Front.DX, q.Pos.X)
			res.Shift.Z = revert.Z
		}
		return res
	}
	if res.Front.Ceiling == p.Ceiling {
		res.Kind = FrontCeilingBlocked
		res.Shift.X = revert.X
		res.Shift.Z = revert.Z
		return res
	}

	leftBad := !p.floorOK(res.Left.Floor)
	rightBad := !p.floorOK(res.Right.Floor)
	if !leftBad && !rightBad {
		return res
	}
	side := res.Left
	res.Kind = LeftBlocked
	if rightBad && (!leftBad || sidePrefersRight(p, res.Left, res.Right)) {
		side = res.Right
		res.Kind = RightBlocked
	}
	switch res.Quadrant {
	case common.PosZ, common.NegZ:
		res.Shift.X = FindGridShift(q.Pos.X+side.DX, q.Pos.X+res.Front.DX)
	default:
		res.Shift.Z = FindGridShift(q.Pos.Z+side.DZ, q.Pos.Z+res.Front.DZ)
	}
	return res
}

// sidePrefersRight resolves a double side obstruction: the more severe
// violation wins, then the sample closer to the centre line, then left.
func sidePrefersRight(p Policy, left, right Sample) bool {
	ls, rs := p.severity(left.Floor), p.severity(right.Floor)
	if ls != rs {
		return rs > ls
	}
	lo := common.Abs(left.DX) + common.Abs(left.DZ)
	ro := common.Abs(right.DX) + common.Abs(right.DZ)
	return ro < lo
}

func sample(lvl *level.Level, q Query, p Policy, dx, dz int) Sample {
	top := q.Pos.Y - p.Height
	at := common.Vec3{X: q.Pos.X + dx, Y: top, Z: q.Pos.Z + dz}
	floor := lvl.FloorAt(at, q.Room)
	ceiling := lvl.CeilingAt(at, q.Room)

	s := Sample{
		DX:       dx,
		DZ:       dz,
		Floor:    floor.Y,
		Ceiling:  ceiling.Y,
		Slope:    floor.Slope,
		Slant:    floor.Slant,
		Commands: floor.Commands,
		Death:    floor.Death,
		Missing:  floor.Missing,
	}
	if !floor.IsWall() {
		s.Floor -= q.Pos.Y
	}
	if !ceiling.IsWall() {
		s.Ceiling -= top
	}
	return s
}

func applySlopePolicy(s Sample, p Policy) Sample {
	switch {
	case p.SlopesAreWalls && s.Slope == level.SlopeSteep && s.Floor < 0:
		s.Floor = -common.HeightLimit
	case p.SlopesArePits && s.Slope == level.SlopeSteep && s.Floor > 0:
		s.Floor = 2 * common.QuarterSectorSize
	case p.LavaIsPit && s.Floor > 0 && s.Death:
		s.Floor = 2 * common.QuarterSectorSize
	}
	return s
}

// FindGridShift returns the correction that moves src back into the sector
// of dst along one axis, or 0 when both share a sector.
func FindGridShift(src, dst int) int {
	srcSector := common.SectorOf(src)
	dstSector := common.SectorOf(dst)
	if srcSector == dstSector {
		return 0
	}
	off := common.InSector(src)
	if dstSector > srcSector {
		return common.SectorSize - (off - 1)
	}
	return -(off + 1)
}

// FloorAhead returns the floor distance at dist units along yaw, sampled at
// head height like a ledge or pit test.
func FloorAhead(lvl *level.Level, pos common.Vec3, room int, yaw common.Angle, dist, height int) (int, level.HeightInfo) {
	at := common.Vec3{
		X: pos.X + int(yaw.Sin()*float64(dist)),
		Y: pos.Y - height,
		Z: pos.Z + int(yaw.Cos()*float64(dist)),
	}
	info := lvl.FloorAt(at, room)
	if info.IsWall() {
		return -common.HeightLimit, info
	}
	return info.Y - pos.Y, info
}

// CeilingAhead is the ceiling counterpart of FloorAhead, relative to pos.Y.
func CeilingAhead(lvl *level.Level, pos common.Vec3, room int, yaw common.Angle, dist, height int) int {
	at := common.Vec3{
		X: pos.X + int(yaw.Sin()*float64(dist)),
		Y: pos.Y - height,
		Z: pos.Z + int(yaw.Cos()*float64(dist)),
	}
	info := lvl.CeilingAt(at, room)
	if info.IsWall() {
		return common.HeightLimit
	}
	return info.Y - pos.Y
}
