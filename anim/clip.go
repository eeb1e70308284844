package anim

import (
	"errors"
	"fmt"
)

// ErrUnknownAnimation is returned for clip ids missing from a table.
var ErrUnknownAnimation = errors.New("anim: unknown animation")

// StateID is the discrete state an animation clip belongs to.
type StateID int

// ID identifies a clip inside a Table.
type ID int

// CommandKind identifies a clip command.
type CommandKind string

const (
	CommandSetPosition CommandKind = "set_position"
	CommandSetVelocity CommandKind = "set_velocity"
	CommandEmptyHands  CommandKind = "empty_hands"
	CommandKill        CommandKind = "kill"
	CommandPlaySound   CommandKind = "play_sound"
	CommandPlayEffect  CommandKind = "play_effect"
)

// EndOfClip reports whether the command fires once when the clip finishes
// instead of on a frame.
func (k CommandKind) EndOfClip() bool {
	switch k {
	case CommandSetPosition, CommandSetVelocity, CommandEmptyHands, CommandKill:
		return true
	}
	return false
}

// Command is a clip command. Frame is only used by frame commands.
type Command struct {
	Kind  CommandKind `yaml:"kind"`
	Frame int         `yaml:"frame"`
	// SetPosition moves the actor in its local frame.
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
	// SetVelocity.
	Fall  int `yaml:"fall"`
	Speed int `yaml:"speed"`
	// PlaySound and PlayEffect.
	ID int `yaml:"id"`
}

func (c Command) String() string {
	switch c.Kind {
	case CommandPlaySound, CommandPlayEffect:
		return fmt.Sprintf("%s(%d)@%d", c.Kind, c.ID, c.Frame)
	case CommandSetVelocity:
		return fmt.Sprintf("%s(fall=%d speed=%d)", c.Kind, c.Fall, c.Speed)
	case CommandSetPosition:
		return fmt.Sprintf("%s(%d,%d,%d)", c.Kind, c.X, c.Y, c.Z)
	}
	return string(c.Kind)
}

// Change switches to another clip when the goal state is Goal and the
// current frame lies in [From, To].
type Change struct {
	Goal  StateID `yaml:"goal"`
	From  int     `yaml:"from"`
	To    int     `yaml:"to"`
	Anim  ID      `yaml:"anim"`
	Frame int     `yaml:"frame"`
}

// Clip is one animation. Frames are counted from zero.
type Clip struct {
	ID     ID      `yaml:"id"`
	Name   string  `yaml:"name"`
	State  StateID `yaml:"state"`
	Frames int     `yaml:"frames"`
	// Speed and Accel are horizontal units per frame, evaluated per frame
	// as Speed + Accel*frame.
	Speed     float64   `yaml:"speed"`
	Accel     float64   `yaml:"accel"`
	Next      ID        `yaml:"next"`
	NextFrame int       `yaml:"next_frame"`
	Changes   []Change  `yaml:"changes"`
	Commands  []Command `yaml:"commands"`
}

// SpeedAt returns the clip's horizontal speed at frame.
func (c *Clip) SpeedAt(frame int) int {
	return int(c.Speed + c.Accel*float64(frame))
}

// LastFrame is the index of the final frame.
func (c *Clip) LastFrame() int {
	if c.Frames <= 0 {
		return 0
	}
	return c.Frames - 1
}

func (c *Clip) change(goal StateID, frame int) (Change, bool) {
	for _, ch := range c.Changes {
		if ch.Goal == goal && frame >= ch.From && frame <= ch.To {
			return ch, true
		}
	}
	return Change{}, false
}
