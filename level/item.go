package level

import "github.com/milk9111/raidercore/common"

// Item is a placed world object. Its ObjectID is its index in Items.
type Item struct {
	Kind string
	Pos  common.Vec3
	Room int
	Yaw  common.Angle
	// Mask is the initial activation bits from the item flags.
	Mask      uint8
	Invisible bool
	// Props carries kind-specific settings such as a creature script.
	Props map[string]string
}
