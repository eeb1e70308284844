package system

import (
	"fmt"

	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
)

// CreatureProfile maps the coarse goals a brain picks onto the states of one
// creature kind.
type CreatureProfile struct {
	Stop, Walk, Run, Attack, Death anim.StateID
	// AttackRange is the distance at which the kind attacks a target in
	// front of it.
	AttackRange int
	// WalkRange is the distance below which the kind walks instead of
	// running.
	WalkRange int
	// AimHeight is how far above the player's feet a flyer aims.
	AimHeight int
}

var (
	wolfProfile = CreatureProfile{
		Stop: WolfStop, Walk: WolfWalk, Run: WolfRun, Attack: WolfAttack, Death: WolfDeath,
		AttackRange: 384,
		WalkRange:   1536,
	}
	batProfile = CreatureProfile{
		Stop: BatFly, Walk: BatFly, Run: BatFly, Attack: BatAttack, Death: BatDeath,
		AttackRange: 256,
		AimHeight:   common.ScalpHeight,
	}
	creatureProfiles = map[string]CreatureProfile{
		"wolf": wolfProfile,
		"bat":  batProfile,
	}
)

// Profile returns the goal mapping of a creature kind.
func Profile(kind string) (CreatureProfile, error) {
	p, ok := creatureProfiles[kind]
	if !ok {
		return CreatureProfile{}, fmt.Errorf("%w: no profile for creature kind %q", ErrUnknownState, kind)
	}
	return p, nil
}

// Goal resolves a goal name used by scripts.
func (p CreatureProfile) Goal(name string) (anim.StateID, bool) {
	switch name {
	case "stop":
		return p.Stop, true
	case "walk":
		return p.Walk, true
	case "run":
		return p.Run, true
	case "attack":
		return p.Attack, true
	case "death":
		return p.Death, true
	}
	return 0, false
}

// BrainInput is what a brain sees when it decides.
type BrainInput struct {
	Entity   ecs.Entity
	Actor    *component.Actor
	Creature *component.Creature
	State    anim.StateID
	// Player is nil when the level has no player.
	Player *component.Actor
	Frame  uint64
}

// Brain picks the decision a creature's state handlers follow this frame.
type Brain interface {
	Decide(in BrainInput) (component.Decision, error)
}

// ChaseBrain heads for the player through the box graph and attacks when
// close.
type ChaseBrain struct{}

func (ChaseBrain) Decide(in BrainInput) (component.Decision, error) {
	p, err := Profile(in.Actor.Kind)
	if err != nil {
		return component.Decision{}, err
	}
	d := sense(in, p)
	switch {
	case in.Actor.Dead():
		d.Goal = p.Death
	case !d.HasTarget:
		d.Mood = component.MoodBored
		d.Goal = p.Stop
	case d.Mood == component.MoodStalk:
		d.Goal = p.Stop
		if d.PlayerDistance > p.WalkRange {
			d.Goal = p.Walk
		}
	case d.Ahead && d.PlayerDistance <= p.AttackRange:
		d.Goal = p.Attack
	case d.PlayerDistance <= p.WalkRange:
		d.Goal = p.Walk
	default:
		d.Goal = p.Run
	}
	return d, nil
}

// sense fills the perception part of a decision: the target, the distance
// to the player and whether the player is in front. The target is the next
// waypoint of the route to the player; when no route exists the creature
// stalks toward the player directly.
func sense(in BrainInput, p CreatureProfile) component.Decision {
	d := component.Decision{Goal: in.State}
	pl := in.Player
	if pl == nil || pl.Dead() {
		return d
	}
	a, cr := in.Actor, in.Creature

	aim := pl.Pos.Moved(0, -p.AimHeight, 0)
	d.HasTarget = true
	d.Target = aim
	d.Mood = component.MoodAttack
	if cr.Finder != nil {
		cr.Finder.SetTarget(pl.Pos, pl.Room)
		if _, ok := cr.Finder.Route(cr.Box); ok {
			d.Target = cr.Finder.Waypoint(cr.Box)
			if p.AimHeight != 0 {
				d.Target.Y = aim.Y
			}
		} else {
			d.Mood = component.MoodStalk
		}
	}

	d.PlayerDistance = int(a.Pos.DistanceXZ(pl.Pos))
	bearing := common.Atan(pl.Pos.X-a.Pos.X, pl.Pos.Z-a.Pos.Z)
	d.Ahead = (bearing - a.Yaw).Wrap().Abs() <= common.Deg45
	return d
}
