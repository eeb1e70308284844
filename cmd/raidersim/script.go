package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/raidercore/ecs/component"
)

// Step holds a set of buttons for a number of frames.
type Step struct {
	Held   component.Button
	Frames int
}

var buttonLetters = map[rune]component.Button{
	'F': component.ButtonForward,
	'B': component.ButtonBackward,
	'L': component.ButtonLeft,
	'R': component.ButtonRight,
	'J': component.ButtonJump,
	'A': component.ButtonAction,
	'O': component.ButtonRoll,
	'W': component.ButtonWalk,
	'Q': component.ButtonStepLeft,
	'E': component.ButtonStepRight,
}

// ParseScript reads a comma separated list of BUTTONS*FRAMES steps, e.g.
// "F*30,FW*10,*5,A*1". An empty button set releases everything.
func ParseScript(s string) ([]Step, error) {
	var out []Step
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		letters, count, ok := strings.Cut(part, "*")
		if !ok {
			return nil, fmt.Errorf("input script: %q: missing *frames", part)
		}
		frames, err := strconv.Atoi(count)
		if err != nil || frames <= 0 {
			return nil, fmt.Errorf("input script: %q: bad frame count", part)
		}
		var held component.Button
		for _, r := range strings.ToUpper(letters) {
			b, ok := buttonLetters[r]
			if !ok {
				return nil, fmt.Errorf("input script: %q: unknown button %q", part, r)
			}
			held |= b
		}
		out = append(out, Step{Held: held, Frames: frames})
	}
	return out, nil
}

// Script replays steps one frame at a time and then holds nothing.
type Script struct {
	steps []Step
	step  int
	frame int
}

func NewScript(steps []Step) *Script {
	return &Script{steps: steps}
}

// Next returns the buttons held for the coming frame.
func (s *Script) Next() component.Button {
	for s.step < len(s.steps) {
		st := s.steps[s.step]
		if s.frame < st.Frames {
			s.frame++
			return st.Held
		}
		s.step++
		s.frame = 0
	}
	return 0
}

// Done reports whether every step has been played.
func (s *Script) Done() bool {
	if s.step >= len(s.steps) {
		return true
	}
	return s.step == len(s.steps)-1 && s.frame >= s.steps[s.step].Frames
}
