package level

import (
	"errors"
	"fmt"
)

// ErrMalformed reports level data that cannot be interpreted. It is never
// recoverable at runtime; the level must be aborted.
var ErrMalformed = errors.New("level: malformed data")

// Floor data words. A sector program is a list of chunks; every chunk starts
// with a header word and the last chunk carries endBit.
const (
	chunkTypeMask  = 0x001f
	chunkSubShift  = 8
	chunkSubMask   = 0x7f
	endBit         = 0x8000
	setupTimerMask = 0x00ff
	setupOneshot   = 0x0100
	setupMaskShift = 9
	setupMaskBits  = 0x1f
	actionParam    = 0x03ff
	actionFuncBits = 10
	actionFuncMask = 0x1f
)

type ChunkType uint16

const (
	ChunkPortal       ChunkType = 1
	ChunkFloorSlant   ChunkType = 2
	ChunkCeilingSlant ChunkType = 3
	ChunkTrigger      ChunkType = 4
	ChunkDeath        ChunkType = 5
)

// TriggerKind gates whether a trigger's action list runs.
type TriggerKind int

const (
	TriggerTrigger TriggerKind = iota
	TriggerPad
	TriggerSwitch
	TriggerKey
	TriggerPickup
	TriggerHeavy
	TriggerAntiPad
	TriggerCombat
	TriggerDummy
)

var triggerKindNames = map[TriggerKind]string{
	TriggerTrigger: "trigger",
	TriggerPad:     "pad",
	TriggerSwitch:  "switch",
	TriggerKey:     "key",
	TriggerPickup:  "pickup",
	TriggerHeavy:   "heavy",
	TriggerAntiPad: "antipad",
	TriggerCombat:  "combat",
	TriggerDummy:   "dummy",
}

func (k TriggerKind) String() string {
	if s, ok := triggerKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("trigger(%d)", int(k))
}

// ParseTriggerKind maps a fixture name to a kind.
func ParseTriggerKind(s string) (TriggerKind, error) {
	for k, name := range triggerKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown trigger kind %q", ErrMalformed, s)
}

// ActionFunc is the operation of one trigger action entry.
type ActionFunc int

const (
	ActionObject ActionFunc = iota
	ActionCameraTarget
	ActionUnderwaterCurrent
	ActionFlipMap
	ActionFlipOn
	ActionFlipOff
	ActionLookAt
	ActionEndLevel
	ActionPlayTrack
	ActionFlipEffect
	ActionSecret
)

var actionFuncNames = map[ActionFunc]string{
	ActionObject:            "object",
	ActionCameraTarget:      "camera",
	ActionUnderwaterCurrent: "current",
	ActionFlipMap:           "flipmap",
	ActionFlipOn:            "flipon",
	ActionFlipOff:           "flipoff",
	ActionLookAt:            "lookat",
	ActionEndLevel:          "endlevel",
	ActionPlayTrack:         "track",
	ActionFlipEffect:        "flipeffect",
	ActionSecret:            "secret",
}

func (f ActionFunc) String() string {
	if s, ok := actionFuncNames[f]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", int(f))
}

func ParseActionFunc(s string) (ActionFunc, error) {
	for f, name := range actionFuncNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown action %q", ErrMalformed, s)
}

// Slant is a floor or ceiling tilt in quarter clicks per sector. X is the
// high byte of the packed word and tilts the surface along z; Z is the low
// byte and tilts it along x.
type Slant struct {
	X int `yaml:"x"`
	Z int `yaml:"z"`
}

// Steep reports whether the slant is too steep to walk on.
func (s Slant) Steep() bool {
	return abs(s.X) > 2 || abs(s.Z) > 2
}

// Setup is the word following a trigger header.
type Setup struct {
	Timeout int
	Oneshot bool
	// Mask holds the five activation bits carried by the trigger.
	Mask uint8
}

type CameraParams struct {
	Timeout int
	Oneshot bool
}

type Action struct {
	Func   ActionFunc
	Param  int
	Camera CameraParams
}

type TriggerChunk struct {
	Kind    TriggerKind
	Setup   Setup
	Actions []Action
}

// Program is the decoded floor data of one sector.
type Program struct {
	Portal       int
	FloorSlant   *Slant
	CeilingSlant *Slant
	Death        bool
	Trigger      *TriggerChunk
}

// HasCommands reports whether the program carries a death or trigger chunk.
func (p Program) HasCommands() bool {
	return p.Death || p.Trigger != nil
}

// Decode reads the program starting at offset. A negative offset yields an
// empty program.
func Decode(data []uint16, offset int) (Program, error) {
	prog := Program{Portal: NoRoom}
	if offset < 0 {
		return prog, nil
	}

	pos := offset
	next := func() (uint16, error) {
		if pos >= len(data) {
			return 0, fmt.Errorf("%w: floor data overrun at %d (program %d)", ErrMalformed, pos, offset)
		}
		w := data[pos]
		pos++
		return w, nil
	}

	for {
		header, err := next()
		if err != nil {
			return prog, err
		}
		switch ChunkType(header & chunkTypeMask) {
		case ChunkPortal:
			w, err := next()
			if err != nil {
				return prog, err
			}
			prog.Portal = int(w & 0xff)
		case ChunkFloorSlant:
			w, err := next()
			if err != nil {
				return prog, err
			}
			prog.FloorSlant = decodeSlant(w)
		case ChunkCeilingSlant:
			w, err := next()
			if err != nil {
				return prog, err
			}
			prog.CeilingSlant = decodeSlant(w)
		case ChunkDeath:
			prog.Death = true
		case ChunkTrigger:
			trig, err := decodeTrigger(TriggerKind((header>>chunkSubShift)&chunkSubMask), next)
			if err != nil {
				return prog, err
			}
			prog.Trigger = trig
		default:
			return prog, fmt.Errorf("%w: unknown chunk type %d at %d", ErrMalformed, header&chunkTypeMask, pos-1)
		}
		if header&endBit != 0 {
			return prog, nil
		}
	}
}

func decodeSlant(w uint16) *Slant {
	return &Slant{X: int(int8(w >> 8)), Z: int(int8(w & 0xff))}
}

func decodeTrigger(kind TriggerKind, next func() (uint16, error)) (*TriggerChunk, error) {
	setup, err := next()
	if err != nil {
		return nil, err
	}
	trig := &TriggerChunk{
		Kind: kind,
		Setup: Setup{
			Timeout: int(setup & setupTimerMask),
			Oneshot: setup&setupOneshot != 0,
			Mask:    uint8((setup >> setupMaskShift) & setupMaskBits),
		},
	}
	for {
		w, err := next()
		if err != nil {
			return nil, err
		}
		act := Action{
			Func:  ActionFunc((w >> actionFuncBits) & actionFuncMask),
			Param: int(w & actionParam),
		}
		last := w&endBit != 0
		if act.Func == ActionCameraTarget {
			cw, err := next()
			if err != nil {
				return nil, err
			}
			act.Camera = CameraParams{Timeout: int(cw & setupTimerMask), Oneshot: cw&setupOneshot != 0}
			last = cw&endBit != 0
		}
		trig.Actions = append(trig.Actions, act)
		if last {
			return trig, nil
		}
	}
}

// Encode appends p to data and returns the updated table and the program
// offset. Chunks are written portal, slants, death, trigger.
func Encode(data []uint16, p Program) ([]uint16, int) {
	offset := len(data)
	type chunk struct{ words []uint16 }
	var chunks []chunk

	if p.Portal != NoRoom {
		chunks = append(chunks, chunk{[]uint16{uint16(ChunkPortal), uint16(p.Portal)}})
	}
	if p.FloorSlant != nil {
		chunks = append(chunks, chunk{[]uint16{uint16(ChunkFloorSlant), encodeSlant(*p.FloorSlant)}})
	}
	if p.CeilingSlant != nil {
		chunks = append(chunks, chunk{[]uint16{uint16(ChunkCeilingSlant), encodeSlant(*p.CeilingSlant)}})
	}
	if p.Death {
		chunks = append(chunks, chunk{[]uint16{uint16(ChunkDeath)}})
	}
	if t := p.Trigger; t != nil && len(t.Actions) > 0 {
		words := []uint16{uint16(ChunkTrigger) | uint16(t.Kind)<<chunkSubShift}
		setup := uint16(t.Setup.Timeout&setupTimerMask) | uint16(t.Setup.Mask&setupMaskBits)<<setupMaskShift
		if t.Setup.Oneshot {
			setup |= setupOneshot
		}
		words = append(words, setup)
		for i, a := range t.Actions {
			last := i == len(t.Actions)-1
			w := uint16(a.Param&actionParam) | uint16(a.Func)<<actionFuncBits
			if a.Func == ActionCameraTarget {
				words = append(words, w)
				cw := uint16(a.Camera.Timeout & setupTimerMask)
				if a.Camera.Oneshot {
					cw |= setupOneshot
				}
				if last {
					cw |= endBit
				}
				words = append(words, cw)
				continue
			}
			if last {
				w |= endBit
			}
			words = append(words, w)
		}
		chunks = append(chunks, chunk{words})
	}

	if len(chunks) == 0 {
		return data, NoFloorData
	}
	chunks[len(chunks)-1].words[0] |= endBit
	for _, c := range chunks {
		data = append(data, c.words...)
	}
	return data, offset
}

func encodeSlant(s Slant) uint16 {
	return uint16(uint8(int8(s.X)))<<8 | uint16(uint8(int8(s.Z)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
