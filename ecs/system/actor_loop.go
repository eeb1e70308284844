package system

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/raidercore/anim"
	"github.com/milk9111/raidercore/collision"
	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/metrics"
	"github.com/milk9111/raidercore/trigger"
)

var (
	rollDamping    = common.Deg(1)
	yawRateDamping = common.Deg(2)
)

// interactRange is how close an item must be before the player is offered
// to it.
const interactRange = 2 * common.SectorSize

// Transition is the payload of an EventTransition.
type Transition struct {
	Entity   ecs.Entity
	Kind     string
	From, To anim.StateID
	Anim     anim.ID
}

// Correction is the payload of an EventCorrection.
type Correction struct {
	Entity ecs.Entity
	Kind   collision.Kind
	Shift  common.Vec3
}

// ActorLoop runs one frame for every actor: creatures and items in index
// order, then the player.
type ActorLoop struct {
	Registry   *Registry
	Dispatcher *trigger.Dispatcher
	Chase      Brain
	Scripts    *ScriptBrain
	Metrics    *metrics.Metrics
	Log        *logrus.Entry

	err error
}

func NewActorLoop(reg *Registry, d *trigger.Dispatcher, m *metrics.Metrics, log *logrus.Entry) *ActorLoop {
	return &ActorLoop{
		Registry:   reg,
		Dispatcher: d,
		Chase:      ChaseBrain{},
		Scripts:    NewScriptBrain(log),
		Metrics:    m,
		Log:        log,
	}
}

// Err returns the malformed-data error that stopped the loop.
func (l *ActorLoop) Err() error { return l.err }

func (l *ActorLoop) Update(w *ecs.World) {
	if l.err != nil || w == nil {
		return
	}
	ls, ok := ecs.Singleton(w, component.LevelStateComponent.Kind())
	if !ok || ls.Level == nil || ls.Err != nil {
		return
	}
	if cam, ok := ecs.Singleton(w, component.CameraComponent.Kind()); ok {
		tickCamera(cam)
	}

	env := &ItemEnv{
		Level: ls.Level,
		Log:   l.Log,
		Dispatch: func(pos common.Vec3, room int) error {
			return l.doppelganger(w, ls, pos, room)
		},
	}

	var occupants []Occupant
	var err error
	l.Registry.Each(func(id level.ObjectID, e ecs.Entity) bool {
		switch {
		case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
			return true
		case ecs.Has(w, e, component.CreatureTagComponent.Kind()):
			if item, ok := ecs.Get(w, e, component.ItemComponent.Kind()); ok && !item.Active {
				return true
			}
			err = l.updateCreature(w, ls, e, &occupants)
		default:
			if u, ok := itemBehaviour(w, e).(Updater); ok {
				err = u.Update(env)
			}
		}
		if err != nil {
			err = fmt.Errorf("object %d: %w", id, err)
		}
		return err == nil
	})
	if err == nil {
		if pe, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			err = l.updatePlayer(w, ls, pe)
		}
	}
	if err != nil {
		l.fail(w, ls, err)
	}
}

func (l *ActorLoop) fail(w *ecs.World, ls *component.LevelState, err error) {
	l.err = err
	ls.Err = err
	l.Metrics.LevelError()
	w.Events().Push(ecs.Event{Type: ecs.EventLevelError, Data: err})
	if l.Log != nil {
		l.Log.WithError(err).Error("level stopped")
	}
}

func (l *ActorLoop) context(w *ecs.World, ls *component.LevelState, e ecs.Entity, a *component.Actor, an *anim.Animator) *component.StateContext {
	log := l.Log
	if log != nil {
		log = log.WithFields(logrus.Fields{"entity": e, "kind": a.Kind})
	}
	ctx := &component.StateContext{
		Actor: a,
		Anim:  an,
		Level: ls.Level,
		Log:   log,
		Old:   a.Pos,
	}
	if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
		ctx.Input = in
	} else {
		ctx.Input = &component.Input{}
	}
	if cr, ok := ecs.Get(w, e, component.CreatureComponent.Kind()); ok {
		ctx.Creature = cr
	}
	ctx.OnCorrection = func(kind collision.Kind, shift common.Vec3) {
		l.Metrics.Correction(kind.String())
		w.Events().Push(ecs.Event{Type: ecs.EventCorrection, Data: Correction{Entity: e, Kind: kind, Shift: shift}})
		if ctx.Log != nil {
			ctx.Log.WithFields(logrus.Fields{"result": kind, "shift": shift}).Debug("position corrected")
		}
	}
	return ctx
}

// sync swaps the handler when the animator moved to another state and
// reports the transition.
func (l *ActorLoop) sync(w *ecs.World, e ecs.Entity, reg *StateRegistry, sm *component.StateMachine, ctx *component.StateContext) error {
	prev, changed, err := reg.Sync(sm, ctx.Anim)
	if err != nil {
		return err
	}
	to := ctx.Anim.State()
	if !changed || prev == to {
		return nil
	}
	kind := ctx.Actor.Kind
	l.Metrics.Transition(kind, strconv.Itoa(int(prev)), strconv.Itoa(int(to)))
	w.Events().Push(ecs.Event{Type: ecs.EventTransition, Data: Transition{
		Entity: e, Kind: kind, From: prev, To: to, Anim: ctx.Anim.Anim,
	}})
	if ctx.Log != nil {
		ctx.Log.WithFields(logrus.Fields{"from": prev, "to": to, "anim": ctx.Anim.Anim}).Debug("state transition")
	}
	return nil
}

// step runs the handler hook and syncs afterwards, stopping at the first
// malformed-data error.
func (l *ActorLoop) step(w *ecs.World, e ecs.Entity, reg *StateRegistry, sm *component.StateMachine, ctx *component.StateContext, hook func(component.StateHandler, *component.StateContext)) error {
	if err := l.sync(w, e, reg, sm, ctx); err != nil {
		return err
	}
	hook(sm.Handler, ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.sync(w, e, reg, sm, ctx)
}

func handleInput(h component.StateHandler, ctx *component.StateContext)      { h.HandleInput(ctx) }
func animate(h component.StateHandler, ctx *component.StateContext)          { h.Animate(ctx) }
func postprocessFrame(h component.StateHandler, ctx *component.StateContext) { h.PostprocessFrame(ctx) }

type actorParts struct {
	a  *component.Actor
	an *anim.Animator
	sm *component.StateMachine
}

func parts(w *ecs.World, e ecs.Entity) (actorParts, error) {
	var p actorParts
	var ok bool
	if p.a, ok = ecs.Get(w, e, component.ActorComponent.Kind()); !ok {
		return p, fmt.Errorf("system: entity %s has no actor", e)
	}
	if p.an, ok = ecs.Get(w, e, component.AnimatorComponent.Kind()); !ok {
		return p, fmt.Errorf("system: entity %s has no animator", e)
	}
	if p.sm, ok = ecs.Get(w, e, component.StateMachineComponent.Kind()); !ok {
		p.sm = &component.StateMachine{}
		if err := ecs.Add(w, e, component.StateMachineComponent.Kind(), p.sm); err != nil {
			return p, err
		}
	}
	return p, nil
}

func (l *ActorLoop) updatePlayer(w *ecs.World, ls *component.LevelState, e ecs.Entity) error {
	p, err := parts(w, e)
	if err != nil {
		return err
	}
	reg := PlayerStates()
	a := p.a
	ctx := l.context(w, ls, e, a, p.an)

	if err := l.step(w, e, reg, p.sm, ctx, handleInput); err != nil {
		return err
	}

	a.Roll = common.DampAngle(a.Roll, rollDamping)
	a.YawRate = common.DampAngle(a.YawRate, yawRateDamping)
	a.Yaw = (a.Yaw + a.YawRate).Wrap()

	if err := l.step(w, e, reg, p.sm, ctx, animate); err != nil {
		return err
	}
	if err := l.advance(w, e, ctx); err != nil {
		return err
	}
	if err := l.sync(w, e, reg, p.sm, ctx); err != nil {
		return err
	}

	l.interact(w, ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.step(w, e, reg, p.sm, ctx, postprocessFrame); err != nil {
		return err
	}
	if ctx.Probed {
		l.Metrics.Probe(ctx.Collision.Kind.String())
	}

	if _, room, ok := ls.Level.Locate(a.Pos, a.Room); ok {
		a.Room = room
	}
	floor := ls.Level.FloorAt(a.Pos, a.Room)
	a.FloorY = floor.Y
	if floor.Commands == level.NoFloorData {
		return nil
	}
	l.Metrics.Dispatch(false)
	fx, err := l.Dispatcher.DispatchAt(ls.Level, floor.Commands, trigger.Activator{
		FeetY:      a.Pos.Y,
		FloorY:     floor.Y,
		HandStatus: a.Hands,
	})
	if err != nil {
		return err
	}
	return ApplyEffects(w, l.Registry, fx, l.Metrics, l.Log)
}

// interact offers the player to nearby items in index order. The first
// item that takes the player ends the search.
func (l *ActorLoop) interact(w *ecs.World, ctx *component.StateContext) {
	l.Registry.Each(func(_ level.ObjectID, e ecs.Entity) bool {
		it, ok := itemBehaviour(w, e).(Interactor)
		if !ok {
			return true
		}
		item, _ := ecs.Get(w, e, component.ItemComponent.Kind())
		if ctx.Actor.Pos.DistanceXZ(item.Pos) > interactRange {
			return true
		}
		return !it.Interact(ctx)
	})
}

// advance plays one animation frame, runs its commands and applies the
// resulting movement.
func (l *ActorLoop) advance(w *ecs.World, e ecs.Entity, ctx *component.StateContext) error {
	a := ctx.Actor
	st, err := ctx.Anim.Advance()
	if err != nil {
		return fmt.Errorf("system: entity %s: %w", e, err)
	}
	l.runCommands(w, a, st.Commands)

	if a.Falling {
		a.Speed += st.Accel
		if a.FallSpeed < common.FastFallSpeed {
			a.FallSpeed += common.Gravity
		} else {
			a.FallSpeed++
		}
		a.Pos.Y += a.FallSpeed
	} else {
		a.Speed = st.Speed
	}
	if a.Speed != 0 {
		a.Pos.X += int(float64(a.Speed) * a.MoveAngle.Sin())
		a.Pos.Z += int(float64(a.Speed) * a.MoveAngle.Cos())
	}
	return nil
}

func (l *ActorLoop) runCommands(w *ecs.World, a *component.Actor, cmds []anim.Command) {
	for _, cmd := range cmds {
		switch cmd.Kind {
		case anim.CommandSetPosition:
			a.Pos = a.Pos.MovedLocal(a.Yaw, cmd.X, cmd.Y, cmd.Z)
		case anim.CommandSetVelocity:
			a.FallSpeed = cmd.Fall
			a.Speed = cmd.Speed
			a.Falling = true
		case anim.CommandEmptyHands:
			a.Hands = common.HandFree
		case anim.CommandKill:
			a.Health = 0
		case anim.CommandPlaySound:
			if au, ok := ecs.Singleton(w, component.AudioComponent.Kind()); ok {
				au.Sounds = append(au.Sounds, component.SoundRequest{ID: cmd.ID, At: a.Pos})
			}
		case anim.CommandPlayEffect:
			switch cmd.ID {
			case 0:
				a.Yaw = (a.Yaw + common.Deg180).Wrap()
			case 12:
				a.Hands = common.HandFree
			}
		}
	}
}

func (l *ActorLoop) updateCreature(w *ecs.World, ls *component.LevelState, e ecs.Entity, occupants *[]Occupant) error {
	p, err := parts(w, e)
	if err != nil {
		return err
	}
	a := p.a
	reg, err := CreatureStates(a.Kind)
	if err != nil {
		return err
	}
	ctx := l.context(w, ls, e, a, p.an)
	cr := ctx.Creature
	if cr == nil {
		return fmt.Errorf("system: creature %s has no creature state", e)
	}

	cr.Strike = false
	in := BrainInput{Entity: e, Actor: a, Creature: cr, State: p.an.State(), Frame: w.Frame()}
	var player *component.Actor
	if pe, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		player, _ = ecs.Get(w, pe, component.ActorComponent.Kind())
		in.Player = player
	}
	var brain Brain = l.Chase
	if cr.Script != "" && l.Scripts != nil {
		brain = l.Scripts
	}
	if brain == nil {
		brain = ChaseBrain{}
	}
	d, err := brain.Decide(in)
	if err != nil {
		return err
	}
	cr.Decision = d

	if err := l.step(w, e, reg, p.sm, ctx, handleInput); err != nil {
		return err
	}
	a.MoveAngle = a.Yaw
	if err := l.advance(w, e, ctx); err != nil {
		return err
	}
	if err := l.sync(w, e, reg, p.sm, ctx); err != nil {
		return err
	}
	ConstrainCreature(ctx, ctx.Old, *occupants)
	if err := l.step(w, e, reg, p.sm, ctx, postprocessFrame); err != nil {
		return err
	}

	floor := ls.Level.FloorAt(a.Pos, a.Room)
	a.FloorY = floor.Y
	if item, ok := ecs.Get(w, e, component.ItemComponent.Kind()); ok {
		item.Pos, item.Room, item.Yaw = a.Pos, a.Room, a.Yaw
	}
	if cr.Strike && player != nil && !player.Dead() {
		player.Health = max(player.Health-cr.Damage, 0)
	}
	*occupants = append(*occupants, Occupant{Index: a.Index, Pos: a.Pos, Moving: cr.Moving})
	return l.doppelganger(w, ls, a.Pos, a.Room)
}

// doppelganger runs the sector program under pos for a non-player actor.
// Only heavy triggers fire on this pass.
func (l *ActorLoop) doppelganger(w *ecs.World, ls *component.LevelState, pos common.Vec3, room int) error {
	floor := ls.Level.FloorAt(pos, room)
	if floor.Commands == level.NoFloorData {
		return nil
	}
	l.Metrics.Dispatch(true)
	fx, err := l.Dispatcher.DispatchAt(ls.Level, floor.Commands, trigger.Activator{
		Doppelganger: true,
		FeetY:        pos.Y,
		FloorY:       floor.Y,
	})
	if err != nil {
		return err
	}
	return ApplyEffects(w, l.Registry, fx, l.Metrics, l.Log)
}
