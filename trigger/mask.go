package trigger

import (
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/level"
)

// ActivationMask holds the five activation bits an object accumulates from
// triggers. The object activates once every bit is set.
type ActivationMask uint8

const FullMask ActivationMask = 0x1f

// MaskOf converts the raw bits carried by a trigger.
func MaskOf(bits uint8) ActivationMask {
	return ActivationMask(bits) & FullMask
}

func (m ActivationMask) Or(bits ActivationMask) ActivationMask    { return (m | bits) & FullMask }
func (m ActivationMask) Xor(bits ActivationMask) ActivationMask   { return (m ^ bits) & FullMask }
func (m ActivationMask) Clear(bits ActivationMask) ActivationMask { return m &^ bits }

func (m ActivationMask) Full() bool { return m&FullMask == FullMask }

// Apply merges bits using the operation of the trigger kind: switches toggle,
// anti-pads clear and everything else sets.
func (m ActivationMask) Apply(kind level.TriggerKind, bits ActivationMask) ActivationMask {
	switch kind {
	case level.TriggerSwitch:
		return m.Xor(bits)
	case level.TriggerAntiPad:
		return m.Clear(bits)
	}
	return m.Or(bits)
}

// Activation is the trigger-owned state of one object.
type Activation struct {
	Mask    ActivationMask
	Oneshot bool
	// Timeout is in frames; zero means no timeout.
	Timeout int
}

// TimeoutFrames converts a trigger timeout to frames. A value of one means
// a single frame, anything else is seconds.
func TimeoutFrames(t int) int {
	if t == 1 {
		return 1
	}
	return t * common.FrameRate
}
