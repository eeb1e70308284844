package common

import (
	"fmt"
	"math"
)

// Vec3 is a world position in integer units.
type Vec3 struct {
	X, Y, Z int
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Moved returns v offset by (dx, dy, dz).
func (v Vec3) Moved(dx, dy, dz int) Vec3 { return Vec3{v.X + dx, v.Y + dy, v.Z + dz} }

// MovedLocal moves v by (dx, dy, dz) expressed in a frame rotated by yaw.
func (v Vec3) MovedLocal(yaw Angle, dx, dy, dz int) Vec3 {
	s, c := yaw.Sin(), yaw.Cos()
	return Vec3{
		X: v.X + int(math.Round(float64(dz)*s+float64(dx)*c)),
		Y: v.Y + dy,
		Z: v.Z + int(math.Round(float64(dz)*c-float64(dx)*s)),
	}
}

// DistanceXZ is the horizontal distance between v and o.
func (v Vec3) DistanceXZ(o Vec3) float64 {
	dx := float64(v.X - o.X)
	dz := float64(v.Z - o.Z)
	return math.Hypot(dx, dz)
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// Interval is a closed integer range.
type Interval struct {
	Min, Max int
}

func (i Interval) Contains(v int) bool { return v >= i.Min && v <= i.Max }

func (i Interval) Clamp(v int) int { return Clamp(v, i.Min, i.Max) }

// Narrowed shrinks the interval by d on both ends.
func (i Interval) Narrowed(d int) Interval { return Interval{i.Min + d, i.Max - d} }

func (i Interval) Size() int { return i.Max - i.Min }
