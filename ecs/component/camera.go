package component

import "github.com/milk9111/raidercore/level"

// Camera is the override state set by camera and look-at triggers. The
// viewer reads it; the core only counts the timer down.
type Camera struct {
	Fixed   int
	Timer   int
	Oneshot bool
	LookAt  level.ObjectID
	Looking bool
}

var CameraComponent = NewComponent[Camera]()
