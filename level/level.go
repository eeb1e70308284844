package level

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/raidercore/common"
)

const (
	NoRoom      = -1
	NoBox       = -1
	NoFloorData = -1
)

// ObjectID addresses an item in the level's object table.
type ObjectID int

// Sector is one grid cell of a room. Heights are in quarter-sector clicks.
type Sector struct {
	Floor     int
	Ceiling   int
	Material  string
	Box       int
	FloorData int
	RoomBelow int
	RoomAbove int
}

func (s *Sector) FloorY() int   { return common.Clicks(s.Floor) }
func (s *Sector) CeilingY() int { return common.Clicks(s.Ceiling) }

// IsWall reports whether the sector is solid.
func (s *Sector) IsWall() bool {
	return s.Floor == common.WallClicks
}

// Room owns a rectangular grid of sectors stored X-major.
type Room struct {
	X, Z      int
	SectorsX  int
	SectorsZ  int
	Sectors   []Sector
	Alternate int
}

// Contains reports whether world (x, z) lies on the room's grid.
func (r *Room) Contains(x, z int) bool {
	sx := common.SectorOf(x - r.X)
	sz := common.SectorOf(z - r.Z)
	return sx >= 0 && sz >= 0 && sx < r.SectorsX && sz < r.SectorsZ
}

// SectorAt returns the sector under world (x, z), or nil outside the grid.
func (r *Room) SectorAt(x, z int) *Sector {
	if !r.Contains(x, z) {
		return nil
	}
	sx := common.SectorOf(x - r.X)
	sz := common.SectorOf(z - r.Z)
	return &r.Sectors[sx*r.SectorsZ+sz]
}

// ZoneKind selects which zone id of a box applies to a traversal mode.
type ZoneKind int

const (
	ZoneGround1 ZoneKind = iota
	ZoneGround2
	ZoneFly
	zoneKinds
)

// ZoneFor picks the zone kind for a creature's step height and flight.
func ZoneFor(step int, flying bool) ZoneKind {
	if flying {
		return ZoneFly
	}
	if step == common.QuarterSectorSize {
		return ZoneGround1
	}
	return ZoneGround2
}

type Zones struct {
	Normal    [zoneKinds]int
	Alternate [zoneKinds]int
}

// Box is a coarse navigation cell. Intervals are inclusive world units.
type Box struct {
	X         common.Interval
	Z         common.Interval
	Floor     int
	Zones     Zones
	Blockable bool
	Blocked   bool
	Overlaps  []int
}

// Bounds returns the box footprint with X mapped to X and Z mapped to Y.
func (b *Box) Bounds() cp.BB {
	return cp.BB{L: float64(b.X.Min), B: float64(b.Z.Min), R: float64(b.X.Max), T: float64(b.Z.Max)}
}

func (b *Box) Contains(x, z int) bool {
	return b.Bounds().ContainsVect(cp.Vector{X: float64(x), Y: float64(z)})
}

// Center returns the middle of the box at floor height.
func (b *Box) Center() common.Vec3 {
	c := b.Bounds().Center()
	return common.Vec3{X: int(c.X), Y: b.Floor, Z: int(c.Y)}
}

func (b *Box) Zone(kind ZoneKind, flipped bool) int {
	if flipped {
		return b.Zones.Alternate[kind]
	}
	return b.Zones.Normal[kind]
}

// Level is the immutable-per-frame geometry of a loaded level. The only
// runtime mutations are PatchHeightsForBlock and FlipRooms.
type Level struct {
	Name      string
	Rooms     []*Room
	Boxes     []*Box
	FloorData []uint16
	Items     []Item
	Flipped   bool
}

func (l *Level) Room(id int) *Room {
	if id < 0 || id >= len(l.Rooms) {
		return nil
	}
	return l.Rooms[id]
}

func (l *Level) Box(id int) *Box {
	if id < 0 || id >= len(l.Boxes) {
		return nil
	}
	return l.Boxes[id]
}

// Program decodes the floor data program at offset.
func (l *Level) Program(offset int) (Program, error) {
	return Decode(l.FloorData, offset)
}

// Locate finds the sector containing pos, starting from room. It follows
// horizontal portals and then vertical room links by the Y coordinate. ok is
// false when no room has a sector at (x, z).
func (l *Level) Locate(pos common.Vec3, room int) (sector *Sector, roomID int, ok bool) {
	r := l.Room(room)
	if r == nil || !r.Contains(pos.X, pos.Z) {
		room = l.roomContaining(pos)
		if r = l.Room(room); r == nil {
			return nil, NoRoom, false
		}
	}

	sector = r.SectorAt(pos.X, pos.Z)
	for hops := 0; hops < len(l.Rooms); hops++ {
		prog, err := l.Program(sector.FloorData)
		if err != nil || prog.Portal == NoRoom {
			break
		}
		next := l.Room(prog.Portal)
		if next == nil || !next.Contains(pos.X, pos.Z) {
			break
		}
		room, sector = prog.Portal, next.SectorAt(pos.X, pos.Z)
	}

	for hops := 0; hops < len(l.Rooms) && sector.RoomBelow != NoRoom && pos.Y >= sector.FloorY(); hops++ {
		below := l.Room(sector.RoomBelow)
		if below == nil || !below.Contains(pos.X, pos.Z) {
			break
		}
		room, sector = sector.RoomBelow, below.SectorAt(pos.X, pos.Z)
	}
	for hops := 0; hops < len(l.Rooms) && sector.RoomAbove != NoRoom && pos.Y < sector.CeilingY(); hops++ {
		above := l.Room(sector.RoomAbove)
		if above == nil || !above.Contains(pos.X, pos.Z) {
			break
		}
		room, sector = sector.RoomAbove, above.SectorAt(pos.X, pos.Z)
	}
	return sector, room, true
}

func (l *Level) roomContaining(pos common.Vec3) int {
	fallback := NoRoom
	for i, r := range l.Rooms {
		s := r.SectorAt(pos.X, pos.Z)
		if s == nil {
			continue
		}
		if fallback == NoRoom {
			fallback = i
		}
		if !s.IsWall() && pos.Y >= s.CeilingY() && pos.Y <= s.FloorY() {
			return i
		}
	}
	return fallback
}

// floorSector follows room-below links to the sector that owns the solid floor.
func (l *Level) floorSector(s *Sector, x, z int) *Sector {
	for hops := 0; hops < len(l.Rooms) && s.RoomBelow != NoRoom; hops++ {
		below := l.Room(s.RoomBelow)
		if below == nil || !below.Contains(x, z) {
			break
		}
		s = below.SectorAt(x, z)
	}
	return s
}

func (l *Level) ceilingSector(s *Sector, x, z int) *Sector {
	for hops := 0; hops < len(l.Rooms) && s.RoomAbove != NoRoom; hops++ {
		above := l.Room(s.RoomAbove)
		if above == nil || !above.Contains(x, z) {
			break
		}
		s = above.SectorAt(x, z)
	}
	return s
}

// BoxAt returns the navigation box index under pos.
func (l *Level) BoxAt(pos common.Vec3, room int) int {
	s, _, ok := l.Locate(pos, room)
	if !ok {
		return NoBox
	}
	return l.floorSector(s, pos.X, pos.Z).Box
}

// PatchHeightsForBlock raises (negative height) or lowers the floor of the
// sector under pos by height units and updates the blocked flag of its box.
func (l *Level) PatchHeightsForBlock(pos common.Vec3, room int, height int) error {
	s, _, ok := l.Locate(pos, room)
	if !ok {
		return fmt.Errorf("%w: no sector for block at %s", ErrMalformed, pos)
	}
	top, _, ok := l.Locate(pos.Moved(0, height-common.SectorSize, 0), room)
	if !ok {
		top = s
	}

	clicks := height / common.QuarterSectorSize
	if s.Floor == common.WallClicks {
		s.Floor = top.Ceiling + clicks
	} else {
		s.Floor += clicks
		if s.Floor == top.Ceiling {
			s.Floor = common.WallClicks
		}
	}

	if b := l.Box(s.Box); b != nil && b.Blockable {
		b.Blocked = height < 0
	}
	return nil
}

// FlipRooms swaps every room with its alternate and toggles the box zone set.
func (l *Level) FlipRooms() {
	for i, r := range l.Rooms {
		if r.Alternate <= i {
			continue
		}
		alt := l.Room(r.Alternate)
		if alt == nil {
			continue
		}
		r.Sectors, alt.Sectors = alt.Sectors, r.Sectors
	}
	l.Flipped = !l.Flipped
}

// ValidateTriggers decodes every sector program and checks that object
// references resolve.
func (l *Level) ValidateTriggers(exists func(ObjectID) bool) error {
	for ri, r := range l.Rooms {
		for si := range r.Sectors {
			s := &r.Sectors[si]
			prog, err := l.Program(s.FloorData)
			if err != nil {
				return fmt.Errorf("level: room %d sector %d: %w", ri, si, err)
			}
			if prog.Portal != NoRoom && l.Room(prog.Portal) == nil {
				return fmt.Errorf("%w: room %d sector %d portal to missing room %d", ErrMalformed, ri, si, prog.Portal)
			}
			if prog.Trigger == nil {
				continue
			}
			for _, a := range prog.Trigger.Actions {
				if a.Func != ActionObject && a.Func != ActionLookAt {
					continue
				}
				if !exists(ObjectID(a.Param)) {
					return fmt.Errorf("%w: room %d sector %d %s references missing object %d", ErrMalformed, ri, si, a.Func, a.Param)
				}
			}
		}
	}
	return nil
}
