package component

import (
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/trigger"
)

// ItemStatus is the trigger lifecycle of a world object.
type ItemStatus int

const (
	ItemInactive ItemStatus = iota
	ItemActive
	ItemDeactivated
	ItemInvisible
)

func (s ItemStatus) String() string {
	switch s {
	case ItemActive:
		return "active"
	case ItemDeactivated:
		return "deactivated"
	case ItemInvisible:
		return "invisible"
	}
	return "inactive"
}

// Item is a world object addressable by level index.
type Item struct {
	Index      level.ObjectID
	Kind       string
	Pos        common.Vec3
	Room       int
	Yaw        common.Angle
	Activation trigger.Activation
	Status     ItemStatus
	// Active is set while the item is being updated.
	Active bool
}

var ItemComponent = NewComponent[Item]()

// Switch is a lever the player pulls. Pulled is consumed by the Switch
// trigger on the sector in front of it.
type Switch struct {
	On     bool
	Pulled bool
	// Timer counts down to an automatic reset; zero means none.
	Timer int
}

var SwitchComponent = NewComponent[Switch]()

// Door is a generic activatable object: a door, trapdoor or anything else
// that is open while triggered.
type Door struct {
	Open bool
	// Blocks is true for objects that patch the floor below them when
	// closed, like trapdoors.
	Blocks bool
}

var DoorComponent = NewComponent[Door]()

// Block is a pushable block one sector wide.
type Block struct {
	Moving bool
	Pull   bool
	Dir    common.Axis
	// Remaining is the distance left in the current move.
	Remaining int
	Step      int
	// Start is where the current move began.
	Start common.Vec3
	// Settled is raised on the frame a move ends so the heavy trigger
	// under the block runs once.
	Settled bool
}

var BlockComponent = NewComponent[Block]()
