package common

// World units. Y grows downward, so a larger Y is lower.
const (
	SectorSize        = 1024
	QuarterSectorSize = 256

	// HeightLimit is the "no height" sentinel magnitude used for walls.
	HeightLimit = 127 * QuarterSectorSize
	// WallClicks marks a solid sector when used for both floor and ceiling.
	WallClicks = -127

	SteppableHeight     = QuarterSectorSize / 2
	ClimbLimit2ClickMin = QuarterSectorSize + SteppableHeight
	ClimbLimit2ClickMax = ClimbLimit2ClickMin + QuarterSectorSize
	ClimbLimit3ClickMax = ClimbLimit2ClickMax + QuarterSectorSize

	ScalpHeight            = 762
	ScalpToHandsHeight     = 160
	LaraWalkHeight         = 762
	DefaultCollisionRadius = 100
	MaxGrabbableGradient   = 60

	FrameRate = 30

	Gravity                = 6
	FastFallSpeed          = 128
	FreeFallSpeedThreshold = 131
	FallDamageStart        = 140
	FallDamageLength       = 14

	LaraHitpoints = 1000
)

// Clicks converts a height in quarter-sector clicks to world units.
func Clicks(c int) int {
	return c * QuarterSectorSize
}

// SectorOf returns the sector index along one axis for a world coordinate.
func SectorOf(v int) int {
	if v < 0 {
		return (v - SectorSize + 1) / SectorSize
	}
	return v / SectorSize
}

// InSector returns the offset of v inside its sector, always in [0, SectorSize).
func InSector(v int) int {
	return v & (SectorSize - 1)
}
