package system

import (
	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs/component"
)

// Wolf states, numbered as in prefabs/animations/wolf.yaml.
const (
	WolfStop anim.StateID = iota
	WolfWalk
	WolfRun
	WolfAttack
	WolfDeath
)

// Bat states, numbered as in prefabs/animations/bat.yaml.
const (
	BatFly anim.StateID = iota
	BatAttack
	BatDeath
)

var creatureStates = map[string]*StateRegistry{
	"wolf": NewStateRegistry("wolf",
		creatureIdle{id: WolfStop, death: WolfDeath},
		creatureMove{id: WolfWalk, death: WolfDeath, turn: 1},
		creatureMove{id: WolfRun, death: WolfDeath, turn: 2, lean: true},
		creatureAttack{id: WolfAttack, death: WolfDeath, strikeFrame: 5, reach: wolfProfile.AttackRange},
		creatureDeath{id: WolfDeath},
	),
	"bat": NewStateRegistry("bat",
		creatureMove{id: BatFly, death: BatDeath, turn: 1, lean: true},
		creatureAttack{id: BatAttack, death: BatDeath, strikeFrame: 4, reach: batProfile.AttackRange, steer: true},
		creatureDeath{id: BatDeath, falls: true},
	),
}

// headToward asks for a turn toward the decision target, limited to limit
// per frame.
func headToward(ctx *component.StateContext, limit common.Angle) common.Angle {
	a, cr := ctx.Actor, ctx.Creature
	cr.Turn = 0
	if !cr.Decision.HasTarget {
		return 0
	}
	t := cr.Decision.Target
	want := common.Atan(t.X-a.Pos.X, t.Z-a.Pos.Z)
	cr.Turn = common.ClampAngle((want - a.Yaw).Wrap(), limit)
	return cr.Turn
}

type creatureIdle struct {
	baseState
	id, death anim.StateID
}

func (s creatureIdle) ID() anim.StateID { return s.id }

func (s creatureIdle) HandleInput(ctx *component.StateContext) {
	if ctx.Actor.Dead() {
		ctx.SetGoal(s.death)
		return
	}
	ctx.Creature.Tilt = 0
	ctx.Creature.Moving = false
	headToward(ctx, ctx.Creature.TurnRate)
	ctx.SetGoal(ctx.Creature.Decision.Goal)
}

// creatureMove is any looping locomotion state. turn scales the kind's turn
// rate; lean tilts the body into the turn.
type creatureMove struct {
	baseState
	id, death anim.StateID
	turn      common.Angle
	lean      bool
}

func (s creatureMove) ID() anim.StateID { return s.id }

func (s creatureMove) HandleInput(ctx *component.StateContext) {
	cr := ctx.Creature
	if ctx.Actor.Dead() {
		ctx.SetGoal(s.death)
		return
	}
	turn := headToward(ctx, cr.TurnRate*s.turn)
	cr.Tilt = 0
	if s.lean {
		cr.Tilt = turn
	}
	cr.Moving = true
	ctx.SetGoal(cr.Decision.Goal)
}

type creatureAttack struct {
	baseState
	id, death   anim.StateID
	strikeFrame int
	reach       int
	// steer keeps turning toward the target during the attack.
	steer bool
}

func (s creatureAttack) ID() anim.StateID { return s.id }

func (s creatureAttack) HandleInput(ctx *component.StateContext) {
	cr := ctx.Creature
	if ctx.Actor.Dead() {
		ctx.SetGoal(s.death)
		return
	}
	cr.Tilt = 0
	cr.Turn = 0
	cr.Moving = s.steer
	if s.steer {
		headToward(ctx, cr.TurnRate)
	}
	ctx.SetGoal(cr.Decision.Goal)
}

func (s creatureAttack) PostprocessFrame(ctx *component.StateContext) {
	d := ctx.Creature.Decision
	if ctx.Frame() == s.strikeFrame && d.Ahead && d.PlayerDistance <= s.reach {
		ctx.Creature.Strike = true
	}
}

// creatureDeath holds the corpse still. Flying corpses drop to the floor.
type creatureDeath struct {
	baseState
	id    anim.StateID
	falls bool
}

func (s creatureDeath) ID() anim.StateID { return s.id }

func (s creatureDeath) HandleInput(ctx *component.StateContext) {
	cr := ctx.Creature
	cr.Turn, cr.Tilt = 0, 0
	cr.Moving = false
	cr.Strike = false
	ctx.SetGoal(s.id)
	if s.falls {
		cr.Decision.HasTarget = true
		cr.Decision.Target = ctx.Actor.Pos
		cr.Decision.Target.Y = ctx.Level.FloorAt(ctx.Actor.Pos, ctx.Actor.Room).Y
	}
}
