package component

import "github.com/milk9111/raidercore/common"

// SoundRequest asks the audio sink to play a sound at a position.
type SoundRequest struct {
	ID int
	At common.Vec3
}

// Audio queues sound and track requests for the frame. The audio system
// hands them to its sink and clears both queues.
type Audio struct {
	Sounds []SoundRequest
	Tracks []int
}

var AudioComponent = NewComponent[Audio]()
