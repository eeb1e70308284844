package level

import "github.com/milk9111/raidercore/common"

// Slope classifies the walkability of a sampled surface.
type Slope int

const (
	SlopeNone Slope = iota
	SlopeDiagonal
	SlopeSteep
)

func (s Slope) String() string {
	switch s {
	case SlopeDiagonal:
		return "diagonal"
	case SlopeSteep:
		return "steep"
	}
	return "none"
}

// HeightInfo is a single floor or ceiling sample.
type HeightInfo struct {
	Y     int
	Slope Slope
	// Slant is the raw tilt of the sampled sector, used for slide directions.
	Slant Slant
	// Commands is the floor data offset of a program with a death or trigger
	// chunk, or NoFloorData.
	Commands int
	// Death is set when the sampled sector kills on contact.
	Death bool
	// Missing is set when no room has a sector at the sampled point.
	Missing bool
}

// IsWall reports whether the sample hit solid geometry.
func (h HeightInfo) IsWall() bool {
	return h.Missing || h.Y == -common.HeightLimit
}

// FloorAt samples the floor height under pos.
func (l *Level) FloorAt(pos common.Vec3, room int) HeightInfo {
	s, _, ok := l.Locate(pos, room)
	if !ok {
		return HeightInfo{Y: -common.HeightLimit, Commands: NoFloorData, Missing: true}
	}
	s = l.floorSector(s, pos.X, pos.Z)

	info := HeightInfo{Y: s.FloorY(), Commands: NoFloorData}
	if s.IsWall() {
		info.Y = -common.HeightLimit
		return info
	}
	prog, err := l.Program(s.FloorData)
	if err != nil {
		return info
	}
	if prog.HasCommands() {
		info.Commands = s.FloorData
	}
	info.Death = prog.Death
	if sl := prog.FloorSlant; sl != nil {
		x := common.InSector(pos.X)
		z := common.InSector(pos.Z)
		if sl.X < 0 {
			info.Y -= (sl.X * z) >> 2
		} else {
			info.Y += (sl.X * ((common.SectorSize - 1 - z) & (common.SectorSize - 1))) >> 2
		}
		if sl.Z < 0 {
			info.Y -= (sl.Z * x) >> 2
		} else {
			info.Y += (sl.Z * ((common.SectorSize - 1 - x) & (common.SectorSize - 1))) >> 2
		}
		info.Slant = *sl
		info.Slope = SlopeDiagonal
		if sl.Steep() {
			info.Slope = SlopeSteep
		}
		if sl.X == 0 && sl.Z == 0 {
			info.Slope = SlopeNone
		}
	}
	return info
}

// CeilingAt samples the ceiling height above pos.
func (l *Level) CeilingAt(pos common.Vec3, room int) HeightInfo {
	s, _, ok := l.Locate(pos, room)
	if !ok {
		return HeightInfo{Y: -common.HeightLimit, Commands: NoFloorData, Missing: true}
	}
	s = l.ceilingSector(s, pos.X, pos.Z)

	info := HeightInfo{Y: s.CeilingY(), Commands: NoFloorData}
	if s.IsWall() {
		info.Y = -common.HeightLimit
		return info
	}
	prog, err := l.Program(s.FloorData)
	if err != nil {
		return info
	}
	if sl := prog.CeilingSlant; sl != nil {
		x := common.InSector(pos.X)
		z := common.InSector(pos.Z)
		if sl.X < 0 {
			info.Y += (sl.X * z) >> 2
		} else {
			info.Y -= (sl.X * ((common.SectorSize - 1 - z) & (common.SectorSize - 1))) >> 2
		}
		if sl.Z < 0 {
			info.Y += (sl.Z * ((common.SectorSize - 1 - x) & (common.SectorSize - 1))) >> 2
		} else {
			info.Y -= (sl.Z * x) >> 2
		}
		info.Slant = *sl
		info.Slope = SlopeDiagonal
		if sl.Steep() {
			info.Slope = SlopeSteep
		}
	}
	return info
}
