package component

import (
	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/nav"
)

// Mood is the coarse intent a brain picks each frame.
type Mood int

const (
	MoodBored Mood = iota
	MoodAttack
	MoodEscape
	MoodStalk
)

func (m Mood) String() string {
	switch m {
	case MoodAttack:
		return "attack"
	case MoodEscape:
		return "escape"
	case MoodStalk:
		return "stalk"
	}
	return "bored"
}

// Decision is what the brain wants this frame. Handlers read it in place of
// input.
type Decision struct {
	Goal      anim.StateID
	Mood      Mood
	Target    common.Vec3
	HasTarget bool
	// PlayerDistance is the horizontal distance to the player.
	PlayerDistance int
	// Ahead is true when the target is within the front 90° cone.
	Ahead bool
}

// Creature holds the AI side of a non-player actor.
type Creature struct {
	Finder *nav.Finder
	// Box is the navigation box the creature is in.
	Box      int
	Decision Decision

	TurnRate common.Angle
	// Turn is the yaw change handlers asked for this frame, applied by the
	// movement constraint together with the tilt.
	Turn common.Angle
	Tilt common.Angle
	// Moving is set while the creature's clip moves it.
	Moving bool
	// Flying creatures ease their pitch toward this angle.
	ClimbAngle common.Angle

	// Damage dealt per successful attack frame.
	Damage int
	// Strike is raised by an attack state on the frame the bite lands. The
	// update loop applies Damage to the player and clears it.
	Strike bool
	// Script names a tengo brain; empty uses the built-in chase brain.
	Script string
}

var CreatureComponent = NewComponent[Creature]()
