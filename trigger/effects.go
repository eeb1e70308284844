package trigger

import (
	"fmt"

	"github.com/milk9111/raidercore/level"
)

type EffectKind int

const (
	EffectKill EffectKind = iota
	EffectActivate
	EffectCamera
	EffectLookAt
	EffectTrack
	EffectSecret
	EffectFlip
	EffectFlipEffect
	EffectEndLevel
	EffectCurrent
)

var effectNames = [...]string{
	EffectKill:       "kill",
	EffectActivate:   "activate",
	EffectCamera:     "camera",
	EffectLookAt:     "lookat",
	EffectTrack:      "track",
	EffectSecret:     "secret",
	EffectFlip:       "flip",
	EffectFlipEffect: "flipeffect",
	EffectEndLevel:   "endlevel",
	EffectCurrent:    "current",
}

func (k EffectKind) String() string {
	if k >= 0 && int(k) < len(effectNames) {
		return effectNames[k]
	}
	return fmt.Sprintf("effect(%d)", int(k))
}

// Effect is one queued side effect of a dispatch. Which fields matter
// depends on Kind.
type Effect struct {
	Kind    EffectKind
	Object  level.ObjectID
	Param   int
	Timeout int
	Oneshot bool
	// SwitchOn and Trigger describe the dispatch a camera effect came from.
	SwitchOn bool
	Trigger  level.TriggerKind
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectActivate, EffectLookAt:
		return fmt.Sprintf("%s(object=%d)", e.Kind, e.Object)
	case EffectKill, EffectEndLevel:
		return e.Kind.String()
	}
	return fmt.Sprintf("%s(%d)", e.Kind, e.Param)
}
