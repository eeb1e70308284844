package system

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/ecs/component"
)

// ErrUnknownState means an animation entered a discrete state that has no
// handler. The animation tables and the handler catalog disagree.
var ErrUnknownState = errors.New("system: unknown state")

// StateRegistry maps discrete states to their shared handlers.
type StateRegistry struct {
	name     string
	handlers map[anim.StateID]component.StateHandler
}

func NewStateRegistry(name string, handlers ...component.StateHandler) *StateRegistry {
	r := &StateRegistry{name: name, handlers: make(map[anim.StateID]component.StateHandler, len(handlers))}
	for _, h := range handlers {
		r.handlers[h.ID()] = h
	}
	return r
}

func (r *StateRegistry) Name() string { return r.name }

// Handler returns the handler for id.
func (r *StateRegistry) Handler(id anim.StateID) (component.StateHandler, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no registry for state %d", ErrUnknownState, id)
	}
	h, ok := r.handlers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s state %d", ErrUnknownState, r.name, id)
	}
	return h, nil
}

// States lists the registered ids in ascending order.
func (r *StateRegistry) States() []anim.StateID {
	ids := make([]anim.StateID, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Sync replaces the machine's handler when it no longer matches the
// animator's state. It reports the previous state when a swap happened.
func (r *StateRegistry) Sync(sm *component.StateMachine, a *anim.Animator) (prev anim.StateID, changed bool, err error) {
	cur := a.State()
	if sm.Handler != nil && sm.Handler.ID() == cur {
		return cur, false, nil
	}
	h, err := r.Handler(cur)
	if err != nil {
		return cur, false, err
	}
	prev = cur
	if sm.Handler != nil {
		prev = sm.Handler.ID()
	}
	sm.Handler = h
	return prev, true, nil
}

// PlayerStates is the land catalog of the player.
func PlayerStates() *StateRegistry { return playerStates }

// CreatureStates returns the catalog for a creature kind.
func CreatureStates(kind string) (*StateRegistry, error) {
	r, ok := creatureStates[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no catalog for creature kind %q", ErrUnknownState, kind)
	}
	return r, nil
}

// baseState gives handlers empty hooks to override.
type baseState struct{}

func (baseState) HandleInput(*component.StateContext)      {}
func (baseState) Animate(*component.StateContext)          {}
func (baseState) PostprocessFrame(*component.StateContext) {}
