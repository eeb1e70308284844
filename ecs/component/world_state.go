package component

import (
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/trigger"
)

// LevelState is the singleton holding the loaded level and its trigger
// memory.
type LevelState struct {
	Level    *level.Level
	Triggers *trigger.State
	// Ended is set by an end-level trigger.
	Ended bool
	// FlipEffect is the last scripted flip effect requested, or -1.
	FlipEffect int
	// Current is the underwater current sink the player is pushed toward,
	// or -1.
	Current int
	// Err is the first malformed-data error seen. The level stops updating
	// once it is set.
	Err error
}

var LevelStateComponent = NewComponent[LevelState]()
