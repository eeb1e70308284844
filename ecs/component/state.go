package component

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/collision"
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/level"
)

// StateHandler is the behaviour of one discrete animation state. Handlers
// are stateless and shared; everything they touch comes through the
// context.
type StateHandler interface {
	ID() anim.StateID
	HandleInput(ctx *StateContext)
	Animate(ctx *StateContext)
	PostprocessFrame(ctx *StateContext)
}

// StateMachine holds the active handler of an actor.
type StateMachine struct {
	Handler StateHandler
}

var StateMachineComponent = NewComponent[StateMachine]()

// StateContext is what a handler may read and change during one frame.
// It keeps handlers away from the ECS world.
type StateContext struct {
	Actor    *Actor
	Anim     *anim.Animator
	Input    *Input
	Creature *Creature
	Level    *level.Level
	Log      *logrus.Entry

	// Old is the position at the start of the frame.
	Old common.Vec3
	// Collision is the probe made during this frame's postprocessing. It
	// is never carried to the next frame.
	Collision collision.Result
	Probed    bool

	// OnCorrection is called when a probe moved the actor.
	OnCorrection func(kind collision.Kind, shift common.Vec3)

	err error
}

// Err returns the first malformed-data error a handler ran into.
func (c *StateContext) Err() error { return c.err }

func (c *StateContext) fail(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func (c *StateContext) SetGoal(s anim.StateID) { c.Anim.Goal = s }

func (c *StateContext) Goal() anim.StateID { return c.Anim.Goal }

func (c *StateContext) State() anim.StateID { return c.Anim.State() }

// SetAnimation swaps the playing clip. The discrete state follows the clip
// so the handler is replaced on the next sync.
func (c *StateContext) SetAnimation(id anim.ID, frame int) {
	c.fail(c.Anim.SetAnimation(id, frame))
}

// SetState forces the discrete state without changing clip.
func (c *StateContext) SetState(s anim.StateID) { c.Anim.SetState(s) }

func (c *StateContext) Frame() int { return c.Anim.Frame }

// Probe samples the level around the actor for the given policy and stores
// the result for this frame. The probe faces the direction of travel.
func (c *StateContext) Probe(p collision.Policy) collision.Result {
	facing := c.Actor.MoveAngle
	if c.Actor.Speed < 0 {
		facing = (facing + common.Deg180).Wrap()
	}
	c.Collision = collision.Probe(c.Level, collision.Query{
		Old:    c.Old,
		Pos:    c.Actor.Pos,
		Room:   c.Actor.Room,
		Facing: facing,
		Radius: c.Actor.Radius,
	}, p)
	c.Probed = true
	return c.Collision
}

// ApplyShift moves the actor by the probe's correction.
func (c *StateContext) ApplyShift() {
	shift := c.Collision.Shift
	if shift == (common.Vec3{}) {
		return
	}
	c.Actor.Pos = c.Actor.Pos.Add(shift)
	if c.OnCorrection != nil {
		c.OnCorrection(c.Collision.Kind, shift)
	}
}

// RelativeHeight is the floor distance dist units away along angle,
// measured from the actor's feet. Walls read as -HeightLimit.
func (c *StateContext) RelativeHeight(angle common.Angle, dist int) int {
	y, _ := collision.FloorAhead(c.Level, c.Actor.Pos, c.Actor.Room, angle, dist, common.LaraWalkHeight)
	return y
}

// PlaceOnFloor moves the actor onto the mid floor of the last probe.
func (c *StateContext) PlaceOnFloor() {
	c.Actor.Pos.Y += c.Collision.Mid.Floor
}
