package system

import (
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/trigger"
)

// Registry maps level object indices to entities, kept in ascending index
// order. The update loop walks it in that order and the trigger dispatcher
// resolves object references through it.
type Registry struct {
	w   *ecs.World
	ids *orderedmap.OrderedMap[level.ObjectID, ecs.Entity]
}

func NewRegistry(w *ecs.World) *Registry {
	return &Registry{w: w, ids: orderedmap.NewOrderedMap[level.ObjectID, ecs.Entity]()}
}

// Register binds id to e. Registering out of order rebuilds the map so
// iteration stays ascending.
func (r *Registry) Register(id level.ObjectID, e ecs.Entity) {
	if back := r.ids.Back(); back == nil || back.Key < id {
		r.ids.Set(id, e)
		return
	}
	r.ids.Set(id, e)
	keys := r.ids.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	sorted := orderedmap.NewOrderedMap[level.ObjectID, ecs.Entity]()
	for _, k := range keys {
		v, _ := r.ids.Get(k)
		sorted.Set(k, v)
	}
	r.ids = sorted
}

func (r *Registry) Unregister(id level.ObjectID) bool {
	return r.ids.Delete(id)
}

// Entity returns the live entity registered for id.
func (r *Registry) Entity(id level.ObjectID) (ecs.Entity, bool) {
	e, ok := r.ids.Get(id)
	if !ok || !ecs.IsAlive(r.w, e) {
		return 0, false
	}
	return e, true
}

func (r *Registry) Exists(id level.ObjectID) bool {
	_, ok := r.Entity(id)
	return ok
}

func (r *Registry) Len() int { return r.ids.Len() }

// Each calls fn for every live entity in ascending index order. Returning
// false stops the walk.
func (r *Registry) Each(fn func(id level.ObjectID, e ecs.Entity) bool) {
	for el := r.ids.Front(); el != nil; el = el.Next() {
		if !ecs.IsAlive(r.w, el.Value) {
			continue
		}
		if !fn(el.Key, el.Value) {
			return
		}
	}
}

// Lookup implements trigger.Objects. The returned object also implements
// trigger.Switch or trigger.Pickup when the entity carries that behaviour.
func (r *Registry) Lookup(id level.ObjectID) (trigger.Object, bool) {
	e, ok := r.Entity(id)
	if !ok {
		return nil, false
	}
	item, ok := ecs.Get(r.w, e, component.ItemComponent.Kind())
	if !ok {
		// Creatures take part in triggers through their item record too;
		// anything else is not addressable.
		return nil, false
	}
	base := itemObject{item: item}
	if sw, ok := ecs.Get(r.w, e, component.SwitchComponent.Kind()); ok {
		return switchObject{itemObject: base, sw: sw}, true
	}
	if p, ok := ecs.Get(r.w, e, component.PickupComponent.Kind()); ok {
		return pickupObject{itemObject: base, pickup: p}, true
	}
	return base, true
}

type itemObject struct {
	item *component.Item
}

func (o itemObject) Activation() *trigger.Activation { return &o.item.Activation }
func (o itemObject) IsActive() bool                  { return o.item.Active }

type switchObject struct {
	itemObject
	sw *component.Switch
}

// TriggerSwitch succeeds once per pull. A switch left on with a timeout
// arms its reset timer.
func (s switchObject) TriggerSwitch(timeout int) bool {
	if !s.sw.Pulled {
		return false
	}
	s.sw.Pulled = false
	s.sw.Timer = 0
	if s.sw.On && timeout > 0 {
		s.sw.Timer = trigger.TimeoutFrames(timeout)
	}
	return true
}

func (s switchObject) IsOn() bool { return s.sw.On }

type pickupObject struct {
	itemObject
	pickup *component.Pickup
}

// TriggerPickup succeeds once, on the first dispatch after the item was
// taken.
func (p pickupObject) TriggerPickup() bool {
	if !p.pickup.Collected || p.pickup.Reported {
		return false
	}
	p.pickup.Reported = true
	p.item.Status = component.ItemDeactivated
	return true
}
