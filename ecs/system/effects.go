package system

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/metrics"
	"github.com/milk9111/raidercore/trigger"
)

// noCamera marks a Camera without a fixed override.
const noCamera = -1

// ApplyEffects performs the effects of one dispatch in order. Effects that
// name an object that disappeared since the dispatch are an error.
func ApplyEffects(w *ecs.World, reg *Registry, fx []trigger.Effect, m *metrics.Metrics, log *logrus.Entry) error {
	ls, ok := ecs.Singleton(w, component.LevelStateComponent.Kind())
	if !ok {
		return fmt.Errorf("system: apply effects: no level state")
	}
	for _, e := range fx {
		m.Effect(e.Kind.String())
		if log != nil {
			log.WithField("effect", e.String()).Debug("trigger effect")
		}
		w.Events().Push(ecs.Event{Type: ecs.EventEffect, Data: e})

		switch e.Kind {
		case trigger.EffectKill:
			if pe, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
				if a, ok := ecs.Get(w, pe, component.ActorComponent.Kind()); ok {
					a.Health = 0
				}
			}

		case trigger.EffectActivate:
			ent, ok := reg.Entity(e.Object)
			if !ok {
				return fmt.Errorf("%w: activate object %d", trigger.ErrUnknownObject, e.Object)
			}
			item, ok := ecs.Get(w, ent, component.ItemComponent.Kind())
			if !ok {
				return fmt.Errorf("%w: object %d has no item record", trigger.ErrBadTarget, e.Object)
			}
			item.Active = true
			if item.Status != component.ItemInvisible {
				item.Status = component.ItemActive
			}

		case trigger.EffectCamera:
			if cam, ok := ecs.Singleton(w, component.CameraComponent.Kind()); ok {
				cam.Fixed = e.Param
				cam.Timer = e.Timeout
				cam.Oneshot = e.Oneshot
			}

		case trigger.EffectLookAt:
			if cam, ok := ecs.Singleton(w, component.CameraComponent.Kind()); ok {
				cam.LookAt = e.Object
				cam.Looking = true
			}

		case trigger.EffectTrack:
			if au, ok := ecs.Singleton(w, component.AudioComponent.Kind()); ok {
				au.Tracks = append(au.Tracks, e.Param)
			}

		case trigger.EffectSecret:
			if log != nil {
				log.WithField("secret", e.Param).Info("secret found")
			}

		case trigger.EffectFlip:
			ls.Level.FlipRooms()
			if ls.Triggers != nil {
				ls.Triggers.Flipped = ls.Level.Flipped
			}

		case trigger.EffectFlipEffect:
			ls.FlipEffect = e.Param

		case trigger.EffectEndLevel:
			ls.Ended = true

		case trigger.EffectCurrent:
			ls.Current = e.Param
		}
	}
	return nil
}

// tickCamera counts a fixed camera override down and drops it when the
// time is up. A zero timer holds the override until the next trigger.
func tickCamera(cam *component.Camera) {
	cam.Looking = false
	if cam.Fixed == noCamera || cam.Timer <= 0 {
		return
	}
	cam.Timer--
	if cam.Timer == 0 {
		cam.Fixed = noCamera
	}
}
