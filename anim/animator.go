package anim

import "fmt"

// Animator plays clips from a Table and tracks the goal state.
type Animator struct {
	Table *Table
	Anim  ID
	Frame int
	Goal  StateID
	// Required overrides Goal while RequiredSet is true and clears once the
	// state is reached.
	Required    StateID
	RequiredSet bool

	clip  *Clip
	state StateID
}

// Step reports what happened during one Advance.
type Step struct {
	// Changed is set when the discrete state changed during the step.
	Changed bool
	// Ended is set when the previous clip ran past its last frame.
	Ended bool
	// Speed is the horizontal speed the clip asks for this frame.
	Speed int
	// Accel is the per-frame acceleration of the clip, used while falling.
	Accel int
	// Commands holds end-of-clip commands of a finished clip followed by the
	// frame commands of the current frame.
	Commands []Command
}

// NewAnimator starts playing id at frame 0.
func NewAnimator(t *Table, id ID) (*Animator, error) {
	a := &Animator{Table: t}
	if err := a.SetAnimation(id, 0); err != nil {
		return nil, err
	}
	a.Goal = a.state
	return a, nil
}

// State is the discrete state of the clip currently playing.
func (a *Animator) State() StateID { return a.state }

// Clip returns the clip currently playing.
func (a *Animator) Clip() *Clip { return a.clip }

// SetAnimation switches clip immediately. The discrete state follows the
// clip.
func (a *Animator) SetAnimation(id ID, frame int) error {
	c, err := a.Table.Clip(id)
	if err != nil {
		return err
	}
	if frame < 0 || frame > c.LastFrame() {
		return fmt.Errorf("anim: clip %d (%s): frame %d out of range", id, c.Name, frame)
	}
	a.Anim = id
	a.Frame = frame
	a.clip = c
	a.state = c.State
	return nil
}

// SetState overrides the discrete state without changing the clip. A few
// transitions reuse another state's clip.
func (a *Animator) SetState(s StateID) { a.state = s }

// Require sets a goal that is kept until the state machine reaches it.
func (a *Animator) Require(s StateID) {
	a.Required = s
	a.RequiredSet = true
}

// Advance moves one frame: follows a matching state change, wraps into the
// next clip at the end and collects the commands that fire.
func (a *Animator) Advance() (Step, error) {
	if a.clip == nil {
		if err := a.SetAnimation(a.Anim, a.Frame); err != nil {
			return Step{}, err
		}
	}
	before := a.state
	var step Step

	a.Frame++
	if a.RequiredSet && a.state == a.Required {
		a.RequiredSet = false
	}
	goal := a.Goal
	if a.RequiredSet {
		goal = a.Required
	}
	if goal != a.state {
		if ch, ok := a.clip.change(goal, a.Frame); ok {
			if err := a.SetAnimation(ch.Anim, ch.Frame); err != nil {
				return step, err
			}
		}
	}

	if a.Frame > a.clip.LastFrame() {
		step.Ended = true
		for _, cmd := range a.clip.Commands {
			if cmd.Kind.EndOfClip() {
				step.Commands = append(step.Commands, cmd)
			}
		}
		if err := a.SetAnimation(a.clip.Next, a.clip.NextFrame); err != nil {
			return step, err
		}
	}

	for _, cmd := range a.clip.Commands {
		if !cmd.Kind.EndOfClip() && cmd.Frame == a.Frame {
			step.Commands = append(step.Commands, cmd)
		}
	}

	step.Speed = a.clip.SpeedAt(a.Frame)
	step.Accel = int(a.clip.Accel)
	step.Changed = a.state != before
	return step, nil
}
