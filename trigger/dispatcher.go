package trigger

import (
	"errors"
	"fmt"

	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/level"
)

var (
	// ErrUnknownObject means a trigger names an object index with no live
	// object. The level data is corrupt.
	ErrUnknownObject = errors.New("trigger: unknown object")
	// ErrBadTarget means a trigger delegates to an object that cannot take
	// part, such as a switch trigger pointing at a door.
	ErrBadTarget = errors.New("trigger: object cannot handle trigger")
	ErrBadParam  = errors.New("trigger: parameter out of range")
)

// SecretTrack is the jingle queued when a secret is found.
const SecretTrack = 13

const (
	maxSecrets  = 16
	maxFlipMaps = 10
)

// Object is a world object that triggers can address.
type Object interface {
	Activation() *Activation
	IsActive() bool
}

// Switch is implemented by objects that gate Switch triggers.
type Switch interface {
	TriggerSwitch(timeout int) bool
	IsOn() bool
}

type Key interface {
	TriggerKey() bool
}

type Pickup interface {
	TriggerPickup() bool
}

// Objects resolves object indices. Lookup must not panic on unknown ids.
type Objects interface {
	Lookup(id level.ObjectID) (Object, bool)
}

// Activator describes who is standing on the sector.
type Activator struct {
	// Doppelganger marks the pass made for non-player actors; only Heavy
	// triggers run on it.
	Doppelganger bool
	FeetY        int
	FloorY       int
	HandStatus   common.HandStatus
}

func (a Activator) onFloor() bool {
	d := a.FeetY - a.FloorY
	return d >= -1 && d <= 1
}

// State is the per-level trigger memory that is not owned by objects.
type State struct {
	Secrets uint16
	Flipped bool
	tracks  map[int]*Activation
	flips   [maxFlipMaps]Activation
	cameras map[int]bool
}

func NewState() *State {
	return &State{tracks: map[int]*Activation{}, cameras: map[int]bool{}}
}

// SecretFound reports whether secret n has been collected.
func (s *State) SecretFound(n int) bool {
	return n >= 0 && n < maxSecrets && s.Secrets&(1<<n) != 0
}

// Dispatcher runs sector trigger programs.
type Dispatcher struct {
	Objects Objects
	State   *State
}

func NewDispatcher(objects Objects, state *State) *Dispatcher {
	if state == nil {
		state = NewState()
	}
	return &Dispatcher{Objects: objects, State: state}
}

// DispatchAt decodes and runs the program at offset.
func (d *Dispatcher) DispatchAt(lvl *level.Level, offset int, a Activator) ([]Effect, error) {
	if offset == level.NoFloorData {
		return nil, nil
	}
	prog, err := lvl.Program(offset)
	if err != nil {
		return nil, fmt.Errorf("trigger: program %d: %w", offset, err)
	}
	return d.Dispatch(prog, a)
}

// Dispatch runs one program. Mask writes happen immediately; everything else
// is returned as effects for the caller to apply after the pass.
func (d *Dispatcher) Dispatch(prog level.Program, a Activator) ([]Effect, error) {
	var fx []Effect
	if prog.Death && !a.Doppelganger && a.onFloor() {
		fx = append(fx, Effect{Kind: EffectKill})
	}

	trig := prog.Trigger
	if trig == nil {
		return fx, nil
	}

	actions := trig.Actions
	switchOn := false
	if a.Doppelganger {
		if trig.Kind != level.TriggerHeavy {
			return fx, nil
		}
	} else {
		switch trig.Kind {
		case level.TriggerTrigger:
		case level.TriggerPad, level.TriggerAntiPad:
			if !a.onFloor() {
				return fx, nil
			}
		case level.TriggerSwitch, level.TriggerKey, level.TriggerPickup:
			if len(actions) == 0 {
				return fx, fmt.Errorf("%w: %s trigger without object", level.ErrMalformed, trig.Kind)
			}
			ok, on, err := d.delegate(trig, actions[0])
			if err != nil || !ok {
				return fx, err
			}
			switchOn = on
			actions = actions[1:]
		case level.TriggerCombat:
			if a.HandStatus != common.HandCombat {
				return fx, nil
			}
		case level.TriggerHeavy, level.TriggerDummy:
			return fx, nil
		}
	}

	bits := MaskOf(trig.Setup.Mask)
	for _, act := range actions {
		var err error
		fx, err = d.run(fx, trig, act, bits, switchOn)
		if err != nil {
			return fx, err
		}
	}
	return fx, nil
}

// delegate asks the object named by the first action whether the trigger may
// proceed.
func (d *Dispatcher) delegate(trig *level.TriggerChunk, act level.Action) (ok, switchOn bool, err error) {
	id := level.ObjectID(act.Param)
	obj, found := d.lookup(id)
	if !found {
		return false, false, fmt.Errorf("%w: %s trigger object %d", ErrUnknownObject, trig.Kind, id)
	}
	switch trig.Kind {
	case level.TriggerSwitch:
		sw, isSwitch := obj.(Switch)
		if !isSwitch {
			return false, false, fmt.Errorf("%w: object %d is not a switch", ErrBadTarget, id)
		}
		if !sw.TriggerSwitch(trig.Setup.Timeout) {
			return false, false, nil
		}
		return true, sw.IsOn(), nil
	case level.TriggerKey:
		k, isKey := obj.(Key)
		if !isKey {
			return false, false, fmt.Errorf("%w: object %d is not a keyhole", ErrBadTarget, id)
		}
		return k.TriggerKey(), false, nil
	default:
		p, isPickup := obj.(Pickup)
		if !isPickup {
			return false, false, fmt.Errorf("%w: object %d is not a pickup", ErrBadTarget, id)
		}
		return p.TriggerPickup(), false, nil
	}
}

func (d *Dispatcher) lookup(id level.ObjectID) (Object, bool) {
	if d.Objects == nil {
		return nil, false
	}
	return d.Objects.Lookup(id)
}

func (d *Dispatcher) run(fx []Effect, trig *level.TriggerChunk, act level.Action, bits ActivationMask, switchOn bool) ([]Effect, error) {
	setup := trig.Setup
	switch act.Func {
	case level.ActionObject:
		id := level.ObjectID(act.Param)
		obj, ok := d.lookup(id)
		if !ok {
			return fx, fmt.Errorf("%w: object %d", ErrUnknownObject, id)
		}
		st := obj.Activation()
		if st.Oneshot {
			return fx, nil
		}
		st.Timeout = TimeoutFrames(setup.Timeout)
		st.Mask = st.Mask.Apply(trig.Kind, bits)
		if !st.Mask.Full() {
			return fx, nil
		}
		if setup.Oneshot {
			st.Oneshot = true
		}
		if obj.IsActive() {
			return fx, nil
		}
		return append(fx, Effect{Kind: EffectActivate, Object: id}), nil

	case level.ActionCameraTarget:
		if d.State.cameras[act.Param] {
			return fx, nil
		}
		if trig.Kind == level.TriggerCombat {
			return fx, nil
		}
		if trig.Kind == level.TriggerSwitch && setup.Timeout != 0 && switchOn {
			return fx, nil
		}
		if act.Camera.Oneshot {
			d.State.cameras[act.Param] = true
		}
		return append(fx, Effect{
			Kind:     EffectCamera,
			Param:    act.Param,
			Timeout:  act.Camera.Timeout * common.FrameRate,
			Oneshot:  act.Camera.Oneshot,
			SwitchOn: switchOn,
			Trigger:  trig.Kind,
		}), nil

	case level.ActionLookAt:
		id := level.ObjectID(act.Param)
		if _, ok := d.lookup(id); !ok {
			return fx, fmt.Errorf("%w: look-at object %d", ErrUnknownObject, id)
		}
		return append(fx, Effect{Kind: EffectLookAt, Object: id}), nil

	case level.ActionUnderwaterCurrent:
		return append(fx, Effect{Kind: EffectCurrent, Param: act.Param}), nil

	case level.ActionFlipMap, level.ActionFlipOn, level.ActionFlipOff:
		return d.flip(fx, trig, act, bits)

	case level.ActionFlipEffect:
		return append(fx, Effect{Kind: EffectFlipEffect, Param: act.Param, Timeout: setup.Timeout}), nil

	case level.ActionEndLevel:
		return append(fx, Effect{Kind: EffectEndLevel}), nil

	case level.ActionPlayTrack:
		return d.track(fx, trig, act.Param, bits), nil

	case level.ActionSecret:
		n := act.Param
		if n < 0 || n >= maxSecrets {
			return fx, fmt.Errorf("%w: secret %d", ErrBadParam, n)
		}
		if d.State.SecretFound(n) {
			return fx, nil
		}
		d.State.Secrets |= 1 << n
		return append(fx,
			Effect{Kind: EffectSecret, Param: n},
			Effect{Kind: EffectTrack, Param: SecretTrack},
		), nil
	}
	return fx, fmt.Errorf("%w: action %s", ErrBadParam, act.Func)
}

func (d *Dispatcher) track(fx []Effect, trig *level.TriggerChunk, id int, bits ActivationMask) []Effect {
	st, ok := d.State.tracks[id]
	if !ok {
		st = &Activation{}
		d.State.tracks[id] = st
	}
	if st.Oneshot {
		return fx
	}
	st.Mask = st.Mask.Apply(trig.Kind, bits)
	if !st.Mask.Full() {
		return fx
	}
	if trig.Setup.Oneshot {
		st.Oneshot = true
	}
	return append(fx, Effect{Kind: EffectTrack, Param: id})
}

func (d *Dispatcher) flip(fx []Effect, trig *level.TriggerChunk, act level.Action, bits ActivationMask) ([]Effect, error) {
	n := act.Param
	if n < 0 || n >= maxFlipMaps {
		return fx, fmt.Errorf("%w: flip map %d", ErrBadParam, n)
	}
	st := &d.State.flips[n]
	flipped := d.State.Flipped

	switch act.Func {
	case level.ActionFlipOn:
		if st.Mask.Full() && !flipped {
			fx = append(fx, Effect{Kind: EffectFlip, Param: n})
		}
		return fx, nil
	case level.ActionFlipOff:
		if st.Mask.Full() && flipped {
			fx = append(fx, Effect{Kind: EffectFlip, Param: n})
		}
		return fx, nil
	}

	if st.Oneshot {
		return fx, nil
	}
	st.Mask = st.Mask.Apply(trig.Kind, bits)
	if st.Mask.Full() {
		if trig.Setup.Oneshot {
			st.Oneshot = true
		}
		if !flipped {
			fx = append(fx, Effect{Kind: EffectFlip, Param: n})
		}
	} else if flipped {
		fx = append(fx, Effect{Kind: EffectFlip, Param: n})
	}
	return fx, nil
}
