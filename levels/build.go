package levels

import (
	"fmt"

	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/level"
)

const fullMask = 0x1f

// Build turns a fixture into runtime level data, encoding sector programs
// into the floor data table.
func Build(spec *Level) (*level.Level, error) {
	if spec == nil {
		return nil, fmt.Errorf("levels: nil spec")
	}
	lvl := &level.Level{Name: spec.Name}

	for ri, rs := range spec.Rooms {
		if rs.SectorsX <= 0 || rs.SectorsZ <= 0 {
			return nil, fmt.Errorf("%w: room %d has no sectors", level.ErrMalformed, ri)
		}
		room := &level.Room{
			X:         rs.X,
			Z:         rs.Z,
			SectorsX:  rs.SectorsX,
			SectorsZ:  rs.SectorsZ,
			Sectors:   make([]level.Sector, rs.SectorsX*rs.SectorsZ),
			Alternate: level.NoRoom,
		}
		if rs.Alternate != nil {
			room.Alternate = *rs.Alternate
		}
		box := level.NoBox
		if rs.Box != nil {
			box = *rs.Box
		}

		for x := 0; x < rs.SectorsX; x++ {
			for z := 0; z < rs.SectorsZ; z++ {
				s := level.Sector{
					Floor:     rs.Floor,
					Ceiling:   rs.Ceiling,
					Box:       box,
					FloorData: level.NoFloorData,
					RoomBelow: level.NoRoom,
					RoomAbove: level.NoRoom,
				}
				if rs.Walls && (x == 0 || z == 0 || x == rs.SectorsX-1 || z == rs.SectorsZ-1) {
					makeWall(&s)
				}
				room.Sectors[x*rs.SectorsZ+z] = s
			}
		}

		for si, ss := range rs.Sectors {
			if err := applySector(lvl, room, ss); err != nil {
				return nil, fmt.Errorf("levels: room %d sector entry %d: %w", ri, si, err)
			}
		}
		lvl.Rooms = append(lvl.Rooms, room)
	}

	for bi, bs := range spec.Boxes {
		if bs.X[1] < bs.X[0] || bs.Z[1] < bs.Z[0] {
			return nil, fmt.Errorf("%w: box %d has inverted bounds", level.ErrMalformed, bi)
		}
		b := &level.Box{
			X:         common.Interval{Min: bs.X[0], Max: bs.X[1]},
			Z:         common.Interval{Min: bs.Z[0], Max: bs.Z[1]},
			Floor:     bs.Floor,
			Blockable: bs.Blockable,
			Blocked:   bs.Blocked,
			Overlaps:  append([]int(nil), bs.Overlaps...),
		}
		b.Zones.Normal = zoneArray(bs.Zones)
		b.Zones.Alternate = b.Zones.Normal
		if bs.AltZones != nil {
			b.Zones.Alternate = zoneArray(*bs.AltZones)
		}
		lvl.Boxes = append(lvl.Boxes, b)
	}

	for ii, is := range spec.Items {
		if lvl.Room(is.Room) == nil {
			return nil, fmt.Errorf("%w: item %d in missing room %d", level.ErrMalformed, ii, is.Room)
		}
		lvl.Items = append(lvl.Items, level.Item{
			Kind:      is.Kind,
			Pos:       common.Vec3{X: is.Pos[0], Y: is.Pos[1], Z: is.Pos[2]},
			Room:      is.Room,
			Yaw:       common.Deg(is.Yaw).Wrap(),
			Mask:      uint8(is.Mask & fullMask),
			Invisible: is.Invisible,
			Props:     is.Props,
		})
	}

	for ri, r := range lvl.Rooms {
		if r.Alternate != level.NoRoom && lvl.Room(r.Alternate) == nil {
			return nil, fmt.Errorf("%w: room %d alternate %d missing", level.ErrMalformed, ri, r.Alternate)
		}
	}
	return lvl, nil
}

// LoadAndBuild reads an embedded fixture and builds it.
func LoadAndBuild(name string) (*level.Level, error) {
	spec, err := LoadLevelFromFS(name)
	if err != nil {
		return nil, err
	}
	return Build(spec)
}

func makeWall(s *level.Sector) {
	s.Floor = common.WallClicks
	s.Ceiling = common.WallClicks
	s.Box = level.NoBox
}

func zoneArray(z Zones) [3]int {
	return [3]int{z.Ground1, z.Ground2, z.Fly}
}

func applySector(lvl *level.Level, room *level.Room, ss Sector) error {
	x0, z0 := ss.At[0], ss.At[1]
	x1, z1 := x0, z0
	if ss.To != nil {
		x1, z1 = ss.To[0], ss.To[1]
	}
	if x0 < 0 || z0 < 0 || x1 >= room.SectorsX || z1 >= room.SectorsZ || x1 < x0 || z1 < z0 {
		return fmt.Errorf("%w: sector range %v..%v outside %dx%d room", level.ErrMalformed, ss.At, [2]int{x1, z1}, room.SectorsX, room.SectorsZ)
	}

	prog, err := ss.program()
	if err != nil {
		return err
	}

	for x := x0; x <= x1; x++ {
		for z := z0; z <= z1; z++ {
			s := &room.Sectors[x*room.SectorsZ+z]
			if ss.Wall {
				makeWall(s)
				continue
			}
			if ss.Floor != nil {
				s.Floor = *ss.Floor
			}
			if ss.Ceiling != nil {
				s.Ceiling = *ss.Ceiling
			}
			if ss.Box != nil {
				s.Box = *ss.Box
			}
			if ss.Material != "" {
				s.Material = ss.Material
			}
			if ss.RoomBelow != nil {
				s.RoomBelow = *ss.RoomBelow
			}
			if ss.RoomAbove != nil {
				s.RoomAbove = *ss.RoomAbove
			}
			lvl.FloorData, s.FloorData = level.Encode(lvl.FloorData, prog)
		}
	}
	return nil
}

func (ss Sector) program() (level.Program, error) {
	prog := level.Program{Portal: level.NoRoom, Death: ss.Death}
	if ss.Portal != nil {
		prog.Portal = *ss.Portal
	}
	if ss.Slant != nil {
		prog.FloorSlant = &level.Slant{X: ss.Slant.X, Z: ss.Slant.Z}
	}
	if ss.Roof != nil {
		prog.CeilingSlant = &level.Slant{X: ss.Roof.X, Z: ss.Roof.Z}
	}
	if ts := ss.Trigger; ts != nil {
		kind, err := level.ParseTriggerKind(ts.Kind)
		if err != nil {
			return prog, err
		}
		mask := fullMask
		if ts.Mask != nil {
			mask = *ts.Mask
		}
		trig := &level.TriggerChunk{
			Kind:  kind,
			Setup: level.Setup{Timeout: ts.Timeout, Oneshot: ts.Oneshot, Mask: uint8(mask & fullMask)},
		}
		for _, as := range ts.Actions {
			fn, err := level.ParseActionFunc(as.Func)
			if err != nil {
				return prog, err
			}
			trig.Actions = append(trig.Actions, level.Action{
				Func:   fn,
				Param:  as.Param,
				Camera: level.CameraParams{Timeout: as.Timeout, Oneshot: as.Oneshot},
			})
		}
		if len(trig.Actions) == 0 {
			return prog, fmt.Errorf("%w: %s trigger without actions", level.ErrMalformed, kind)
		}
		prog.Trigger = trig
	}
	return prog, nil
}
