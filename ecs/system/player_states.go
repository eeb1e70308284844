package system

import (
	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/collision"
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/level"
)

// Player state singletons. Handlers carry no data, so every actor shares
// them.
var playerStates = NewStateRegistry("lara",
	laraStop{},
	laraWalk{},
	laraRun{},
	laraRunBack{},
	laraWalkBack{},
	laraTurn{id: LaraTurnRight},
	laraTurn{id: LaraTurnLeft},
	laraTurnFast{},
	laraStep{id: LaraStepRight},
	laraStep{id: LaraStepLeft},
	laraJumpPrepare{},
	laraJump{id: LaraJumpForward},
	laraJump{id: LaraJumpBack},
	laraJump{id: LaraJumpLeft},
	laraJump{id: LaraJumpRight},
	laraJumpUp{},
	laraFreeFall{},
	laraReach{},
	laraHang{},
	laraClimbing{},
	laraSplat{},
	laraDeath{},
	laraSlide{id: LaraSlide},
	laraSlide{id: LaraSlideBack},
	laraPushable{id: LaraPPReady},
	laraPushable{id: LaraPush},
	laraPushable{id: LaraPull},
	laraInteract{id: LaraPickUp},
	laraInteract{id: LaraSwitchDown},
	laraInteract{id: LaraSwitchUp},
	laraRoll{},
)

type laraStop struct{ baseState }

func (laraStop) ID() anim.StateID { return LaraStop }

func (laraStop) HandleInput(ctx *component.StateContext) {
	a, in := ctx.Actor, ctx.Input
	if a.Dead() {
		ctx.SetGoal(LaraDeath)
		return
	}
	if in.JustPressed(component.ButtonRoll) {
		ctx.SetAnimation(animRoll, 2)
		ctx.SetGoal(LaraStop)
		return
	}

	ctx.SetGoal(LaraStop)
	switch {
	case in.Has(component.ButtonStepLeft):
		ctx.SetGoal(LaraStepLeft)
		a.MoveAngle = (a.Yaw - common.Deg90).Wrap()
	case in.Has(component.ButtonStepRight):
		ctx.SetGoal(LaraStepRight)
		a.MoveAngle = (a.Yaw + common.Deg90).Wrap()
	case in.Left():
		ctx.SetGoal(LaraTurnLeft)
	case in.Right():
		ctx.SetGoal(LaraTurnRight)
	}

	switch {
	case in.Has(component.ButtonJump):
		ctx.SetGoal(LaraJumpPrepare)
	case in.Forward():
		a.MoveAngle = a.Yaw
		if in.Has(component.ButtonWalk) {
			ctx.SetGoal(LaraWalk)
		} else {
			ctx.SetGoal(LaraRun)
		}
	case in.Backward():
		a.MoveAngle = (a.Yaw + common.Deg180).Wrap()
		if in.Has(component.ButtonWalk) {
			ctx.SetGoal(LaraWalkBack)
		} else {
			ctx.SetGoal(LaraRunBack)
		}
	}
}

func (laraStop) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	a.MoveAngle = a.Yaw
	ctx.Probe(walkPolicy(common.ClimbLimit2ClickMin))
	if stopIfCeilingBlocked(ctx) {
		return
	}
	if ctx.Collision.Mid.Floor > common.ClimbLimit2ClickMin {
		startFall(ctx, animFallForward)
		return
	}
	if tryClimb(ctx) || tryStartSlide(ctx) {
		return
	}
	ctx.ApplyShift()
	ctx.PlaceOnFloor()
}

type laraWalk struct{ baseState }

func (laraWalk) ID() anim.StateID { return LaraWalk }

func (laraWalk) HandleInput(ctx *component.StateContext) {
	in := ctx.Input
	if ctx.Actor.Dead() {
		ctx.SetGoal(LaraStop)
		return
	}
	steer(ctx, slowTurn)
	switch {
	case !in.Forward():
		ctx.SetGoal(LaraStop)
	case in.Has(component.ButtonWalk):
		ctx.SetGoal(LaraWalk)
	default:
		ctx.SetGoal(LaraRun)
	}
}

func (laraWalk) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	a.MoveAngle = a.Yaw
	p := walkPolicy(common.ClimbLimit2ClickMin)
	p.LavaIsPit = true
	c := ctx.Probe(p)
	if stopIfCeilingBlocked(ctx) || tryClimb(ctx) {
		return
	}
	if checkWallCollision(ctx) {
		ctx.SetAnimation(animStand, 0)
	}
	if c.Mid.Floor > common.ClimbLimit2ClickMin {
		startFall(ctx, animFallForward)
		return
	}
	switch {
	case c.Mid.Floor > common.SteppableHeight:
		ctx.SetAnimation(animWalkStepDown, 0)
	case c.Mid.Floor >= -common.ClimbLimit2ClickMin && c.Mid.Floor < -common.SteppableHeight:
		ctx.SetAnimation(animWalkStepUp, 0)
	}
	if tryStartSlide(ctx) {
		return
	}
	ctx.PlaceOnFloor()
}

type laraRun struct{ baseState }

func (laraRun) ID() anim.StateID { return LaraRun }

func (laraRun) HandleInput(ctx *component.StateContext) {
	a, in := ctx.Actor, ctx.Input
	if a.Dead() {
		ctx.SetGoal(LaraDeath)
		return
	}
	if in.JustPressed(component.ButtonRoll) {
		ctx.SetAnimation(animRoll, 2)
		ctx.SetGoal(LaraStop)
		return
	}
	switch {
	case in.Left():
		turnLeft(a, runTurn)
		a.Roll = max(a.Roll-leanRate, -leanMax)
	case in.Right():
		turnRight(a, runTurn)
		a.Roll = min(a.Roll+leanRate, leanMax)
	}
	switch {
	case in.Has(component.ButtonJump) && !a.Falling:
		ctx.SetGoal(LaraJumpForward)
	case !in.Forward():
		ctx.SetGoal(LaraStop)
	case in.Has(component.ButtonWalk):
		ctx.SetGoal(LaraWalk)
	default:
		ctx.SetGoal(LaraRun)
	}
}

func (laraRun) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	a.MoveAngle = a.Yaw
	c := ctx.Probe(collision.Policy{
		StepUp:         common.ClimbLimit2ClickMin,
		StepDown:       common.HeightLimit,
		Ceiling:        0,
		Height:         common.LaraWalkHeight,
		SlopesAreWalls: true,
	})
	if stopIfCeilingBlocked(ctx) || tryClimb(ctx) {
		return
	}
	if checkWallCollision(ctx) {
		a.Roll = 0
		if c.Front.Slope == level.SlopeNone && c.Front.Floor < -common.ClimbLimit2ClickMax {
			switch frame := ctx.Frame(); {
			case frame < 10:
				ctx.SetAnimation(animWallSmashLeft, 0)
				return
			case frame < 22:
				ctx.SetAnimation(animWallSmashRight, 0)
				return
			}
		}
		ctx.SetAnimation(animStand, 0)
	}
	if c.Mid.Floor > common.ClimbLimit2ClickMin {
		startFall(ctx, animFallForward)
		return
	}
	if c.Mid.Floor >= -common.ClimbLimit2ClickMin && c.Mid.Floor < -common.SteppableHeight {
		if f := ctx.Frame(); f >= 3 && f <= 14 {
			ctx.SetAnimation(animRunStepUpLeft, 0)
		} else {
			ctx.SetAnimation(animRunStepUpRight, 0)
		}
	}
	if !tryStartSlide(ctx) {
		a.Pos.Y += min(c.Mid.Floor, runStepSnap)
	}
}

// laraRunBack is the hop backwards.
type laraRunBack struct{ baseState }

func (laraRunBack) ID() anim.StateID { return LaraRunBack }

func (laraRunBack) HandleInput(ctx *component.StateContext) {
	ctx.SetGoal(LaraStop)
	steer(ctx, fastTurn)
}

func (laraRunBack) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	a.MoveAngle = (a.Yaw + common.Deg180).Wrap()
	c := ctx.Probe(collision.Policy{
		StepUp:         common.ClimbLimit2ClickMin,
		StepDown:       common.HeightLimit,
		Ceiling:        0,
		Height:         common.LaraWalkHeight,
		SlopesAreWalls: true,
	})
	if stopIfCeilingBlocked(ctx) {
		return
	}
	if c.Mid.Floor > fallDistance {
		startFall(ctx, animFallBack)
		return
	}
	if checkWallCollision(ctx) {
		ctx.SetAnimation(animStand, 0)
	}
	ctx.PlaceOnFloor()
}

type laraWalkBack struct{ baseState }

func (laraWalkBack) ID() anim.StateID { return LaraWalkBack }

func (laraWalkBack) HandleInput(ctx *component.StateContext) {
	in := ctx.Input
	if ctx.Actor.Dead() {
		ctx.SetGoal(LaraStop)
		return
	}
	if in.Backward() && in.Has(component.ButtonWalk) {
		ctx.SetGoal(LaraWalkBack)
	} else {
		ctx.SetGoal(LaraStop)
	}
	steer(ctx, slowTurn)
}

func (laraWalkBack) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	a.MoveAngle = (a.Yaw + common.Deg180).Wrap()
	ctx.Probe(walkPolicy(common.QuarterSectorSize))
	if stopIfCeilingBlocked(ctx) {
		return
	}
	if checkWallCollision(ctx) {
		ctx.SetAnimation(animStand, 0)
	}
	if tryStartSlide(ctx) {
		return
	}
	ctx.PlaceOnFloor()
}

// laraTurn is the slow turn on the spot in either direction.
type laraTurn struct {
	baseState
	id anim.StateID
}

func (t laraTurn) ID() anim.StateID { return t.id }

func (t laraTurn) HandleInput(ctx *component.StateContext) {
	a, in := ctx.Actor, ctx.Input
	if a.Dead() {
		ctx.SetGoal(LaraStop)
		return
	}
	held := in.Right()
	if t.id == LaraTurnRight {
		a.YawRate += turnRate
		if a.YawRate > slowTurn {
			if in.Has(component.ButtonWalk) {
				a.YawRate = slowTurn
			} else {
				ctx.SetGoal(LaraTurnFast)
			}
		}
	} else {
		held = in.Left()
		a.YawRate -= turnRate
		if a.YawRate < -slowTurn {
			if in.Has(component.ButtonWalk) {
				a.YawRate = -slowTurn
			} else {
				ctx.SetGoal(LaraTurnFast)
			}
		}
	}

	switch {
	case in.Forward():
		if in.Has(component.ButtonWalk) {
			ctx.SetGoal(LaraWalk)
		} else {
			ctx.SetGoal(LaraRun)
		}
	case !held:
		ctx.SetGoal(LaraStop)
	}
}

func (laraTurn) PostprocessFrame(ctx *component.StateContext) { turnPostprocess(ctx) }

type laraTurnFast struct{ baseState }

func (laraTurnFast) ID() anim.StateID { return LaraTurnFast }

func (laraTurnFast) HandleInput(ctx *component.StateContext) {
	a, in := ctx.Actor, ctx.Input
	if a.Dead() {
		ctx.SetGoal(LaraStop)
		return
	}
	if a.YawRate < 0 {
		a.YawRate = -fastTurn
		if !in.Left() {
			ctx.SetGoal(LaraStop)
		}
		return
	}
	a.YawRate = fastTurn
	if !in.Right() {
		ctx.SetGoal(LaraStop)
	}
}

func (laraTurnFast) PostprocessFrame(ctx *component.StateContext) { turnPostprocess(ctx) }

func turnPostprocess(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	a.MoveAngle = a.Yaw
	c := ctx.Probe(walkPolicy(common.ClimbLimit2ClickMin))
	if c.Mid.Floor <= common.DefaultCollisionRadius {
		if !tryStartSlide(ctx) {
			ctx.PlaceOnFloor()
		}
		return
	}
	startFall(ctx, animFallForward)
}

// laraStep is the sidestep in either direction.
type laraStep struct {
	baseState
	id anim.StateID
}

func (s laraStep) ID() anim.StateID { return s.id }

func (s laraStep) HandleInput(ctx *component.StateContext) {
	in := ctx.Input
	if ctx.Actor.Dead() {
		ctx.SetGoal(LaraStop)
		return
	}
	button := component.ButtonStepRight
	if s.id == LaraStepLeft {
		button = component.ButtonStepLeft
	}
	if !in.Has(button) {
		ctx.SetGoal(LaraStop)
	}
	steer(ctx, slowTurn)
}

func (s laraStep) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	if s.id == LaraStepRight {
		a.MoveAngle = (a.Yaw + common.Deg90).Wrap()
	} else {
		a.MoveAngle = (a.Yaw - common.Deg90).Wrap()
	}
	c := ctx.Probe(walkPolicy(common.SteppableHeight))
	if stopIfCeilingBlocked(ctx) {
		return
	}
	if checkWallCollision(ctx) {
		ctx.SetAnimation(animStand, 0)
	}
	if c.Mid.Floor > common.ClimbLimit2ClickMin {
		startFall(ctx, animFallForward)
		return
	}
	if tryStartSlide(ctx) {
		return
	}
	ctx.PlaceOnFloor()
}

// laraJumpPrepare picks the jump direction while crouching for the jump.
// With no direction the clip runs out into a jump straight up.
type laraJumpPrepare struct{ baseState }

func (laraJumpPrepare) ID() anim.StateID { return LaraJumpPrepare }

func (laraJumpPrepare) HandleInput(ctx *component.StateContext) {
	a, in := ctx.Actor, ctx.Input
	clear := func(angle common.Angle) bool {
		return ctx.RelativeHeight(angle, common.QuarterSectorSize) >= -common.ClimbLimit2ClickMin
	}
	switch {
	case in.Forward() && clear(a.Yaw):
		ctx.SetGoal(LaraJumpForward)
		a.MoveAngle = a.Yaw
	case in.Left() && clear((a.Yaw - common.Deg90).Wrap()):
		ctx.SetGoal(LaraJumpLeft)
		a.MoveAngle = (a.Yaw - common.Deg90).Wrap()
	case in.Right() && clear((a.Yaw + common.Deg90).Wrap()):
		ctx.SetGoal(LaraJumpRight)
		a.MoveAngle = (a.Yaw + common.Deg90).Wrap()
	case in.Backward() && clear((a.Yaw + common.Deg180).Wrap()):
		ctx.SetGoal(LaraJumpBack)
		a.MoveAngle = (a.Yaw + common.Deg180).Wrap()
	}
	if a.FallSpeed > common.FreeFallSpeedThreshold {
		ctx.SetGoal(LaraFreeFall)
	}
}

func (laraJumpPrepare) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	c := ctx.Probe(collision.Policy{
		StepUp:   common.HeightLimit,
		StepDown: common.HeightLimit,
		Ceiling:  common.HeightLimit,
		Height:   common.LaraWalkHeight,
	})
	if c.Mid.Ceiling > -common.DefaultCollisionRadius {
		ctx.SetAnimation(animStand, 0)
		ctx.SetGoal(LaraStop)
		a.Speed = 0
		a.Pos = ctx.Old
	}
}

// laraJump covers the directional jumps. The direction was fixed by
// JumpPrepare through the movement angle.
type laraJump struct {
	baseState
	id anim.StateID
}

func (j laraJump) ID() anim.StateID { return j.id }

func (j laraJump) HandleInput(ctx *component.StateContext) {
	a, in := ctx.Actor, ctx.Input
	if j.id != LaraJumpForward {
		if a.FallSpeed > common.FastFallSpeed {
			ctx.SetGoal(LaraFreeFall)
		}
		return
	}
	if g := ctx.Goal(); g == LaraReach {
		ctx.SetGoal(LaraJumpForward)
	}
	if g := ctx.Goal(); g != LaraDeath && g != LaraStop && g != LaraRun {
		if in.Has(component.ButtonAction) && a.Hands == common.HandFree {
			ctx.SetGoal(LaraReach)
		}
		if a.FallSpeed > common.FastFallSpeed {
			ctx.SetGoal(LaraFreeFall)
		}
	}
	steer(ctx, jumpTurn)
}

func (j laraJump) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	if j.id == LaraJumpForward && a.Speed >= 0 {
		a.MoveAngle = a.Yaw
	}
	c := ctx.Probe(jumpPolicy())
	jumpAgainstWall(ctx)
	if a.FallSpeed <= 0 || c.Mid.Floor > 0 {
		return
	}
	if !land(ctx) {
		return
	}
	if j.id == LaraJumpForward && ctx.Input.Forward() && !ctx.Input.Has(component.ButtonWalk) {
		ctx.SetGoal(LaraRun)
	} else {
		ctx.SetGoal(LaraStop)
	}
}

type laraJumpUp struct{ baseState }

func (laraJumpUp) ID() anim.StateID { return LaraJumpUp }

func (laraJumpUp) HandleInput(ctx *component.StateContext) {
	if ctx.Actor.FallSpeed > common.FastFallSpeed {
		ctx.SetGoal(LaraFreeFall)
	}
}

func (laraJumpUp) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	p := jumpPolicy()
	p.Height = common.ScalpHeight
	c := ctx.Probe(p)
	if tryReach(ctx) {
		return
	}
	jumpAgainstWall(ctx)
	if a.FallSpeed <= 0 || c.Mid.Floor > 0 {
		return
	}
	if land(ctx) {
		ctx.SetGoal(LaraStop)
	}
}

type laraFreeFall struct{ baseState }

func (laraFreeFall) ID() anim.StateID { return LaraFreeFall }

func (laraFreeFall) HandleInput(ctx *component.StateContext) {
	ctx.Actor.Speed = ctx.Actor.Speed * 95 / 100
}

func (laraFreeFall) PostprocessFrame(ctx *component.StateContext) {
	c := ctx.Probe(jumpPolicy())
	jumpAgainstWall(ctx)
	if c.Mid.Floor > 0 {
		return
	}
	if land(ctx) {
		ctx.SetAnimation(animLandHard, 0)
		ctx.SetGoal(LaraStop)
	}
}

type laraReach struct{ baseState }

func (laraReach) ID() anim.StateID { return LaraReach }

func (laraReach) HandleInput(ctx *component.StateContext) {
	if ctx.Actor.FallSpeed > common.FreeFallSpeedThreshold {
		ctx.SetGoal(LaraFreeFall)
	}
}

func (laraReach) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	a.Falling = true
	a.MoveAngle = a.Yaw
	c := ctx.Probe(collision.Policy{
		StepUp:   0,
		StepDown: common.HeightLimit,
		Ceiling:  jumpCeiling,
		Height:   common.ScalpHeight,
	})
	if tryReach(ctx) {
		return
	}
	jumpAgainstWall(ctx)
	if a.FallSpeed <= 0 || c.Mid.Floor > 0 {
		return
	}
	if land(ctx) {
		ctx.SetGoal(LaraStop)
	}
}

type laraHang struct{ baseState }

func (laraHang) ID() anim.StateID { return LaraHang }

func (laraHang) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	a.Speed = 0
	a.MoveAngle = a.Yaw
	ledge, room := ledgeAhead(ctx)
	if !ctx.Input.Has(component.ButtonAction) || a.Dead() || common.Abs(ledge) > common.ScalpToHandsHeight {
		ctx.SetAnimation(animFallUp, 0)
		ctx.SetGoal(LaraJumpUp)
		a.Falling = true
		a.FallSpeed = 1
		a.Hands = common.HandFree
		return
	}
	a.Pos.Y += ledge
	if ctx.Input.Forward() && ctx.Goal() == LaraHang && room >= common.ScalpHeight {
		ctx.SetGoal(LaraClimbing)
	}
}

// laraClimbing covers pulling up from a hang and vaulting. The clip's end
// command puts the actor on the ledge.
type laraClimbing struct{ baseState }

func (laraClimbing) ID() anim.StateID { return LaraClimbing }

func (laraClimbing) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	a.MoveAngle = a.Yaw
}

type laraSplat struct{ baseState }

func (laraSplat) ID() anim.StateID { return LaraSplat }

func (laraSplat) PostprocessFrame(ctx *component.StateContext) {
	ctx.Probe(collision.Policy{
		StepUp:         common.ClimbLimit2ClickMin,
		StepDown:       common.ClimbLimit2ClickMin,
		Ceiling:        0,
		Height:         common.LaraWalkHeight,
		SlopesAreWalls: true,
	})
	ctx.ApplyShift()
}

type laraDeath struct{ baseState }

func (laraDeath) ID() anim.StateID { return LaraDeath }

func (laraDeath) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	a.MoveAngle = a.Yaw
	p := walkPolicy(common.ClimbLimit2ClickMin)
	p.SlopesArePits = false
	ctx.Probe(p)
	ctx.ApplyShift()
	ctx.PlaceOnFloor()
	a.Health = 0
	a.Speed = 0
	a.Hands = common.HandBusy
}

// laraSlide is the slide down a steep slope, facing downhill or away from
// it.
type laraSlide struct {
	baseState
	id anim.StateID
}

func (s laraSlide) ID() anim.StateID { return s.id }

func (s laraSlide) HandleInput(ctx *component.StateContext) {
	in := ctx.Input
	if !in.Has(component.ButtonJump) {
		return
	}
	if s.id == LaraSlide && !in.Has(component.ButtonBackward) {
		ctx.SetGoal(LaraJumpForward)
		ctx.Actor.MoveAngle = ctx.Actor.Yaw
	} else if s.id == LaraSlideBack {
		ctx.SetGoal(LaraJumpBack)
	}
}

func (s laraSlide) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	a.MoveAngle = a.SlideAngle
	c := ctx.Probe(collision.Policy{
		StepUp:   2 * common.QuarterSectorSize,
		StepDown: common.HeightLimit,
		Ceiling:  0,
		Height:   common.LaraWalkHeight,
	})
	if stopIfCeilingBlocked(ctx) {
		return
	}
	checkWallCollision(ctx)
	if c.Mid.Floor > fallDistance {
		if s.id == LaraSlide {
			startFall(ctx, animFallForward)
		} else {
			startFall(ctx, animFallBack)
		}
		return
	}
	tryStartSlide(ctx)
	ctx.PlaceOnFloor()
	if c.Mid.Slope != level.SlopeSteep {
		ctx.SetGoal(LaraStop)
	}
}

// laraPushable covers holding, pushing and pulling a block. The block
// drives the transitions.
type laraPushable struct {
	baseState
	id anim.StateID
}

func (p laraPushable) ID() anim.StateID { return p.id }

func (p laraPushable) HandleInput(ctx *component.StateContext) {
	if p.id == LaraPPReady && !ctx.Input.Has(component.ButtonAction) {
		ctx.SetGoal(LaraStop)
		ctx.Actor.Hands = common.HandFree
	}
}

func (laraPushable) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	a.MoveAngle = a.Yaw
	ctx.Probe(walkPolicy(common.ClimbLimit2ClickMin))
}

// laraInteract covers the fixed animations played against world objects.
type laraInteract struct {
	baseState
	id anim.StateID
}

func (i laraInteract) ID() anim.StateID { return i.id }

func (laraInteract) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	a.MoveAngle = a.Yaw
	ctx.Probe(walkPolicy(common.ClimbLimit2ClickMin))
}

type laraRoll struct{ baseState }

func (laraRoll) ID() anim.StateID { return LaraRoll }

func (laraRoll) PostprocessFrame(ctx *component.StateContext) {
	a := ctx.Actor
	standStill(a)
	a.MoveAngle = a.Yaw
	c := ctx.Probe(collision.Policy{
		StepUp:         common.ClimbLimit2ClickMin,
		StepDown:       common.HeightLimit,
		Ceiling:        0,
		Height:         common.LaraWalkHeight,
		SlopesAreWalls: true,
	})
	if stopIfCeilingBlocked(ctx) || tryStartSlide(ctx) {
		return
	}
	if c.Mid.Floor > fallDistance {
		startFall(ctx, animFallForward)
		return
	}
	ctx.ApplyShift()
	ctx.PlaceOnFloor()
}
