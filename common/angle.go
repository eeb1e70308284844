package common

import "math"

// Angle is measured in angle units, 65536 per full turn. Yaw 0 faces +Z,
// yaw 90 degrees faces +X.
type Angle int32

const (
	FullTurn Angle = 65536
	Deg45    Angle = 8192
	Deg90    Angle = 16384
	Deg180   Angle = 32768
)

// Deg converts degrees to angle units.
func Deg(d float64) Angle {
	return Angle(math.Round(d * float64(FullTurn) / 360))
}

func (a Angle) Degrees() float64 {
	return float64(a) * 360 / float64(FullTurn)
}

func (a Angle) Radians() float64 {
	return float64(a) * 2 * math.Pi / float64(FullTurn)
}

// Wrap folds a into [-180, 180) degrees.
func (a Angle) Wrap() Angle {
	return Angle(int16(a))
}

func (a Angle) Sin() float64 { return math.Sin(a.Radians()) }
func (a Angle) Cos() float64 { return math.Cos(a.Radians()) }

func (a Angle) Abs() Angle {
	if a < 0 {
		return -a
	}
	return a
}

// ClampAngle limits a to [-limit, limit].
func ClampAngle(a, limit Angle) Angle {
	if a < -limit {
		return -limit
	}
	if a > limit {
		return limit
	}
	return a
}

// DampAngle moves a toward zero by step without crossing it.
func DampAngle(a, step Angle) Angle {
	switch {
	case a > step:
		return a - step
	case a < -step:
		return a + step
	}
	return 0
}

// Atan returns the angle of the vector (x, z) measured from +Z toward +X.
func Atan(x, z int) Angle {
	return Angle(math.Round(math.Atan2(float64(x), float64(z)) * float64(FullTurn) / (2 * math.Pi))).Wrap()
}

// Axis is one of the four world-aligned facing quadrants.
type Axis int

const (
	PosZ Axis = iota
	PosX
	NegZ
	NegX
)

func (a Axis) String() string {
	switch a {
	case PosZ:
		return "+Z"
	case PosX:
		return "+X"
	case NegZ:
		return "-Z"
	case NegX:
		return "-X"
	}
	return "?"
}

// Angle returns the yaw that faces along the axis.
func (a Axis) Angle() Angle {
	return (Angle(a) * Deg90).Wrap()
}

// AxisFromAngle returns the quadrant a falls in. Quadrants are centred on
// the axes; an angle exactly on a 45 degree diagonal belongs to the
// following quadrant.
func AxisFromAngle(a Angle) Axis {
	return Axis((uint16(int16(a.Wrap())) + uint16(Deg45)) / uint16(Deg90))
}

// SnapAxis reports the axis a is within margin of, if any.
func SnapAxis(a Angle, margin Angle) (Axis, bool) {
	axis := AxisFromAngle(a)
	if (a - axis.Angle()).Wrap().Abs() > margin {
		return axis, false
	}
	return axis, true
}

// AlignRotation snaps a to the nearest multiple of 90 degrees when it is
// within margin of one.
func AlignRotation(a Angle, margin Angle) (Angle, bool) {
	axis, ok := SnapAxis(a, margin)
	if !ok {
		return a, false
	}
	return axis.Angle(), true
}

// AlignDiagonal snaps a to the nearest multiple of 45 degrees.
func AlignDiagonal(a Angle) Angle {
	n := (int(a.Wrap()) + int(Deg45)/2) >> 13
	return (Angle(n) * Deg45).Wrap()
}
