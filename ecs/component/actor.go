package component

import (
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/level"
)

// Actor is the physical state of anything that moves under a state machine.
type Actor struct {
	Index level.ObjectID
	Kind  string

	Pos  common.Vec3
	Room int

	Yaw   common.Angle
	Pitch common.Angle
	Roll  common.Angle

	// Speed is horizontal units per frame along MoveAngle.
	Speed     int
	FallSpeed int
	Falling   bool
	MoveAngle common.Angle
	YawRate   common.Angle
	// SlideAngle is the downhill direction of the slide in progress.
	SlideAngle common.Angle

	Hands  common.HandStatus
	Health int
	// FloorY is the floor under the actor, refreshed after postprocessing.
	FloorY int
	Radius int
}

func (a *Actor) Dead() bool { return a.Health <= 0 }

var ActorComponent = NewComponent[Actor]()
