package component

// Button is one digital input.
type Button uint16

const (
	ButtonForward Button = 1 << iota
	ButtonBackward
	ButtonLeft
	ButtonRight
	ButtonJump
	ButtonAction
	ButtonRoll
	ButtonWalk
	ButtonStepLeft
	ButtonStepRight
)

// Input is the frozen input snapshot for one frame. Pressed holds buttons
// that went down this frame.
type Input struct {
	Held    Button
	Pressed Button
}

// Latch stores a new snapshot and derives the edges against the previous
// one.
func (in *Input) Latch(held Button) {
	in.Pressed = held &^ in.Held
	in.Held = held
}

func (in *Input) Has(b Button) bool {
	return in != nil && in.Held&b != 0
}

func (in *Input) JustPressed(b Button) bool {
	return in != nil && in.Pressed&b != 0
}

// Forward reports forward held without backward.
func (in *Input) Forward() bool  { return in.Has(ButtonForward) && !in.Has(ButtonBackward) }
func (in *Input) Backward() bool { return in.Has(ButtonBackward) && !in.Has(ButtonForward) }
func (in *Input) Left() bool     { return in.Has(ButtonLeft) && !in.Has(ButtonRight) }
func (in *Input) Right() bool    { return in.Has(ButtonRight) && !in.Has(ButtonLeft) }

var InputComponent = NewComponent[Input]()
