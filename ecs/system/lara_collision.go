package system

import (
	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/collision"
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/level"
)

var (
	turnRate   = common.Deg(2.25)
	slowTurn   = common.Deg(4)
	fastTurn   = common.Deg(6)
	jumpTurn   = common.Deg(3)
	runTurn    = common.Deg(8)
	leanRate   = common.Deg(1.5)
	leanMax    = common.Deg(11)
	deflectYaw = common.Deg(5)
	grabMargin = common.Deg(35)
)

const (
	// reachHeight is how far the hands reach above the feet.
	reachHeight = common.ScalpHeight
	// jumpCeiling is the ceiling clearance an airborne actor needs ahead.
	jumpCeiling = 192
	// fallDistance is the floor drop that makes sliding and backward
	// states fall.
	fallDistance = 200
	// ledgeProbe is how far past the collision radius a hanging actor
	// looks for the ledge.
	ledgeProbe = common.QuarterSectorSize / 2
	runStepSnap = 50
)

func walkPolicy(step int) collision.Policy {
	return collision.Policy{
		StepUp:         step,
		StepDown:       step,
		Ceiling:        0,
		Height:         common.LaraWalkHeight,
		SlopesAreWalls: true,
		SlopesArePits:  true,
	}
}

func jumpPolicy() collision.Policy {
	return collision.Policy{
		StepUp:   common.ClimbLimit2ClickMin,
		StepDown: common.HeightLimit,
		Ceiling:  jumpCeiling,
		Height:   common.LaraWalkHeight,
	}
}

func turnLeft(a *component.Actor, limit common.Angle) {
	a.YawRate = max(a.YawRate-turnRate, -limit)
}

func turnRight(a *component.Actor, limit common.Angle) {
	a.YawRate = min(a.YawRate+turnRate, limit)
}

func steer(ctx *component.StateContext, limit common.Angle) {
	switch {
	case ctx.Input.Left():
		turnLeft(ctx.Actor, limit)
	case ctx.Input.Right():
		turnRight(ctx.Actor, limit)
	}
}

func standStill(a *component.Actor) {
	a.FallSpeed = 0
	a.Falling = false
}

// stopIfCeilingBlocked puts the actor back where the frame started when
// its head went into the ceiling.
func stopIfCeilingBlocked(ctx *component.StateContext) bool {
	switch ctx.Collision.Kind {
	case collision.CeilingBlocked, collision.ScalpCollision:
	default:
		return false
	}
	a := ctx.Actor
	a.Pos = ctx.Old
	ctx.SetAnimation(animStand, 0)
	ctx.SetGoal(LaraStop)
	a.Speed = 0
	standStill(a)
	return true
}

// checkWallCollision applies the probe's shift. A frontal hit stops the
// actor; a side hit turns it away from the obstacle.
func checkWallCollision(ctx *component.StateContext) bool {
	a := ctx.Actor
	switch ctx.Collision.Kind {
	case collision.FrontBlocked, collision.FrontCeilingBlocked:
		ctx.ApplyShift()
		ctx.SetGoal(LaraStop)
		a.Speed = 0
		a.Falling = false
		return true
	case collision.LeftBlocked:
		ctx.ApplyShift()
		a.Yaw = (a.Yaw + deflectYaw).Wrap()
	case collision.RightBlocked:
		ctx.ApplyShift()
		a.Yaw = (a.Yaw - deflectYaw).Wrap()
	}
	return false
}

// jumpAgainstWall bounces an airborne actor off whatever the probe hit.
func jumpAgainstWall(ctx *component.StateContext) {
	a := ctx.Actor
	ctx.ApplyShift()
	switch ctx.Collision.Kind {
	case collision.LeftBlocked:
		a.Yaw = (a.Yaw + deflectYaw).Wrap()
	case collision.RightBlocked:
		a.Yaw = (a.Yaw - deflectYaw).Wrap()
	case collision.FrontBlocked, collision.FrontCeilingBlocked:
		a.Speed = -a.Speed / 4
		if a.FallSpeed <= 0 {
			a.FallSpeed = 1
		}
	case collision.ScalpCollision:
		if a.FallSpeed <= 0 {
			a.FallSpeed = 1
		}
	case collision.CeilingBlocked:
		a.Speed = 0
		if a.FallSpeed <= 0 {
			a.FallSpeed = 16
		}
	}
}

func startFall(ctx *component.StateContext, clip anim.ID) {
	ctx.SetAnimation(clip, 0)
	ctx.SetGoal(ctx.State())
	ctx.Actor.Falling = true
	ctx.Actor.FallSpeed = 0
}

// slideDirection is the downhill yaw of a slant, snapped to 45 degrees.
// X tilts the surface along z and Z along x; a positive tilt is highest at
// the far edge of the sector.
func slideDirection(s level.Slant) common.Angle {
	return common.AlignDiagonal(common.Atan(-s.Z, -s.X))
}

// tryStartSlide starts or steers a slide when the actor stands on a steep
// slope. The slide faces downhill when the actor roughly does, otherwise it
// slides backwards.
func tryStartSlide(ctx *component.StateContext) bool {
	mid := ctx.Collision.Mid
	if mid.Slope != level.SlopeSteep {
		return false
	}
	a := ctx.Actor
	angle := slideDirection(mid.Slant)
	if (angle - a.Yaw).Wrap().Abs() <= common.Deg90 {
		if ctx.State() != LaraSlide || a.SlideAngle != angle {
			ctx.SetAnimation(animSlide, 0)
			ctx.SetGoal(LaraSlide)
			a.Yaw = angle
		}
	} else if ctx.State() != LaraSlideBack || a.SlideAngle != angle {
		ctx.SetAnimation(animSlideBack, 0)
		ctx.SetGoal(LaraSlideBack)
		a.Yaw = (angle + common.Deg180).Wrap()
	}
	a.MoveAngle = angle
	a.SlideAngle = angle
	return true
}

// tryClimb vaults onto a two or three click ledge in front when action is
// held.
func tryClimb(ctx *component.StateContext) bool {
	c := ctx.Collision
	a := ctx.Actor
	if c.Kind != collision.FrontBlocked || !ctx.Input.Has(component.ButtonAction) || a.Hands != common.HandFree {
		return false
	}
	yaw, ok := common.AlignRotation(a.Yaw, grabMargin)
	if !ok {
		return false
	}
	h := c.Front.Floor
	if c.Front.Floor-c.Front.Ceiling < 0 || c.Left.Floor-c.Left.Ceiling < 0 || c.Right.Floor-c.Right.Ceiling < 0 {
		return false
	}

	var clip anim.ID
	var lift int
	switch {
	case h >= -common.ClimbLimit2ClickMax && h <= -common.ClimbLimit2ClickMin:
		clip, lift = animVault2, 2*common.QuarterSectorSize
	case h >= -common.ClimbLimit3ClickMax && h < -common.ClimbLimit2ClickMax:
		clip, lift = animVault3, 3*common.QuarterSectorSize
	default:
		return false
	}

	ctx.ApplyShift()
	ctx.SetAnimation(clip, 0)
	ctx.SetGoal(LaraStop)
	a.Yaw = yaw
	a.Pos.Y += lift + h
	a.Speed = 0
	a.Hands = common.HandBusy
	standStill(a)
	return true
}

// tryReach grabs a ledge the hands pass this frame.
func tryReach(ctx *component.StateContext) bool {
	c := ctx.Collision
	a := ctx.Actor
	if c.Kind != collision.FrontBlocked || !ctx.Input.Has(component.ButtonAction) || a.Hands != common.HandFree {
		return false
	}
	if common.Abs(c.Left.Floor-c.Right.Floor) >= common.MaxGrabbableGradient {
		return false
	}
	if c.Front.Ceiling > 0 || c.Mid.Ceiling > -common.ClimbLimit2ClickMin || c.Mid.Floor < fallDistance {
		return false
	}
	space := c.Front.Floor + reachHeight
	if space < 0 && space+a.FallSpeed < 0 {
		return false
	}
	if space > 0 && space+a.FallSpeed > 0 {
		return false
	}
	yaw, ok := common.AlignRotation(a.Yaw, grabMargin)
	if !ok {
		return false
	}

	ctx.SetAnimation(animHang, 0)
	ctx.SetGoal(LaraHang)
	a.Pos.Y += space
	ctx.ApplyShift()
	a.Speed = 0
	a.YawRate = 0
	a.Yaw = yaw
	a.Hands = common.HandBusy
	standStill(a)
	return true
}

// applyLandingDamage hurts the actor for a fast landing and reports whether
// it died.
func applyLandingDamage(a *component.Actor) bool {
	excess := a.FallSpeed - common.FallDamageStart
	if excess <= 0 {
		return false
	}
	if excess > common.FallDamageLength {
		a.Health = 0
	} else {
		a.Health -= common.LaraHitpoints * excess * excess / (common.FallDamageLength * common.FallDamageLength)
	}
	return a.Dead()
}

// land puts an airborne actor on the floor. It returns false when the
// landing killed it, in which case the death clip is already playing.
func land(ctx *component.StateContext) bool {
	a := ctx.Actor
	dead := applyLandingDamage(a)
	standStill(a)
	ctx.PlaceOnFloor()
	if dead {
		ctx.SetAnimation(animDeath, 0)
		ctx.SetGoal(LaraDeath)
		a.Speed = 0
		return false
	}
	return true
}

// ledgeAhead is the floor of the sector the hands hold, relative to the
// hands, and the clearance above it.
func ledgeAhead(ctx *component.StateContext) (ledge, room int) {
	a := ctx.Actor
	dist := a.Radius + ledgeProbe
	floor, _ := collision.FloorAhead(ctx.Level, a.Pos, a.Room, a.Yaw, dist, reachHeight)
	ceiling := collision.CeilingAhead(ctx.Level, a.Pos, a.Room, a.Yaw, dist, reachHeight)
	return floor + reachHeight, floor - ceiling
}
