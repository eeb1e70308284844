package ecs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/raidercore/ecs/component"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			require.Len(t, Entities(w), c.create)
			for _, e := range ents {
				assert.True(t, e.Valid())
			}
			if c.destroyIndex < 0 {
				return
			}
			dead := ents[c.destroyIndex]
			require.True(t, DestroyEntity(w, dead))
			assert.False(t, IsAlive(w, dead))
			assert.Len(t, Entities(w), c.create-1)
		})
	}
}

func TestZeroEntityIsNeverAlive(t *testing.T) {
	w := NewWorld()
	CreateEntity(w)
	assert.False(t, Entity(0).Valid())
	assert.False(t, IsAlive(w, 0))
	assert.False(t, IsAlive(nil, 1))
}

func TestDestroyedSlotIsReusedWithNewGeneration(t *testing.T) {
	w := NewWorld()
	kind := component.ActorComponent.Kind()

	old := CreateEntity(w)
	require.NoError(t, Add(w, old, kind, &component.Actor{Kind: "wolf"}))
	require.True(t, DestroyEntity(w, old))
	assert.False(t, DestroyEntity(w, old), "second destroy")

	fresh := CreateEntity(w)
	assert.Equal(t, old.id(), fresh.id())
	assert.NotEqual(t, old.generation(), fresh.generation())
	assert.False(t, Has(w, fresh, kind), "reused slot must not inherit components")

	err := Add(w, old, kind, &component.Actor{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, component.ErrEntityNotAlive))
	assert.Contains(t, err.Error(), "Actor")
}

func TestAddRejectsBadInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	assert.ErrorIs(t, Add(w, e, component.ComponentKind[component.Actor]{}, &component.Actor{}), component.ErrInvalidComponentKind)
	assert.ErrorIs(t, Add[component.Actor](w, e, component.ActorComponent.Kind(), nil), component.ErrNilComponent)
}

func TestAddReplacesAndRemoveDetaches(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	kind := component.ItemComponent.Kind()

	require.NoError(t, Add(w, e, kind, &component.Item{Kind: "lever"}))
	require.NoError(t, Add(w, e, kind, &component.Item{Kind: "door"}))
	got, ok := Get(w, e, kind)
	require.True(t, ok)
	assert.Equal(t, "door", got.Kind)
	assert.Equal(t, 1, Count(w, kind))

	assert.True(t, Remove(w, e, kind))
	assert.False(t, Remove(w, e, kind))
	assert.False(t, Has(w, e, kind))
	assert.True(t, IsAlive(w, e))
}

func TestForEachVisitsOnlyCarriers(t *testing.T) {
	w := NewWorld()
	actors := component.ActorComponent.Kind()
	items := component.ItemComponent.Kind()

	wolf := CreateEntity(w)
	lever := CreateEntity(w)
	bat := CreateEntity(w)
	require.NoError(t, Add(w, wolf, actors, &component.Actor{Kind: "wolf"}))
	require.NoError(t, Add(w, wolf, items, &component.Item{Kind: "wolf", Active: true}))
	require.NoError(t, Add(w, lever, items, &component.Item{Kind: "lever"}))
	require.NoError(t, Add(w, bat, actors, &component.Actor{Kind: "bat"}))

	var seen []string
	ForEach(w, actors, func(_ Entity, a *component.Actor) { seen = append(seen, a.Kind) })
	assert.ElementsMatch(t, []string{"wolf", "bat"}, seen)

	var both []Entity
	ForEach2(w, actors, items, func(e Entity, a *component.Actor, it *component.Item) {
		assert.Equal(t, a.Kind, it.Kind)
		both = append(both, e)
	})
	assert.Equal(t, []Entity{wolf}, both)

	require.True(t, DestroyEntity(w, wolf))
	both = nil
	ForEach2(w, actors, items, func(e Entity, _ *component.Actor, _ *component.Item) { both = append(both, e) })
	assert.Empty(t, both)
}

func TestForEachToleratesDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	kind := component.PickupComponent.Kind()
	for i := 0; i < 4; i++ {
		require.NoError(t, Add(w, CreateEntity(w), kind, &component.Pickup{}))
	}

	visited := 0
	ForEach(w, kind, func(e Entity, _ *component.Pickup) {
		visited++
		DestroyEntity(w, e)
	})
	assert.Equal(t, 4, visited)
	assert.Zero(t, Count(w, kind))
}

func TestForEach3And4NeedEveryKind(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()
	kd := component.NewComponentKind[int]()
	v := func(i int) *int { return &i }

	all := CreateEntity(w)
	three := CreateEntity(w)
	for _, k := range []component.ComponentKind[int]{ka, kb, kc, kd} {
		require.NoError(t, Add(w, all, k, v(1)))
	}
	for _, k := range []component.ComponentKind[int]{ka, kb, kc} {
		require.NoError(t, Add(w, three, k, v(2)))
	}

	var got3, got4 []Entity
	ForEach3(w, ka, kb, kc, func(e Entity, _, _, _ *int) { got3 = append(got3, e) })
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { got4 = append(got4, e) })
	assert.ElementsMatch(t, []Entity{all, three}, got3)
	assert.Equal(t, []Entity{all}, got4)

	empty := component.NewComponentKind[int]()
	ForEach3(w, ka, kb, empty, func(Entity, *int, *int, *int) { t.Fatal("no store for the third kind") })
}

func TestSingleton(t *testing.T) {
	w := NewWorld()
	kind := component.LevelStateComponent.Kind()

	_, ok := Singleton(w, kind)
	assert.False(t, ok)

	e := CreateEntity(w)
	require.NoError(t, Add(w, e, kind, &component.LevelState{FlipEffect: -1}))
	ls, ok := Singleton(w, kind)
	require.True(t, ok)
	assert.Equal(t, -1, ls.FlipEffect)

	first, ok := First(w, kind)
	require.True(t, ok)
	assert.Equal(t, e, first)

	DestroyEntity(w, e)
	_, ok = Singleton(w, kind)
	assert.False(t, ok)
}

type recordSystem struct {
	name  string
	order *[]string
	err   error
}

func (r *recordSystem) Update(w *World) {
	*r.order = append(*r.order, r.name)
	w.Events().Push(Event{Type: EventEffect, Data: r.name})
}

func (r *recordSystem) Err() error { return r.err }

func TestUpdateRunsSystemsInOrderAndFlushesEvents(t *testing.T) {
	w := NewWorld()
	var order []string
	var drained []Event
	s := NewScheduler(
		&recordSystem{name: "input", order: &order},
		nil,
		&recordSystem{name: "loop", order: &order},
	)
	s.Add(systemFunc(func(w *World) { drained = w.Events().Drain() }))
	s.Add(&recordSystem{name: "late", order: &order})

	w.Update(s)
	assert.Equal(t, []string{"input", "loop", "late"}, order)
	require.Len(t, drained, 2)
	assert.Equal(t, "loop", drained[1].Data)
	assert.Zero(t, w.Events().Len(), "undrained events are dropped at the end of the frame")
	assert.Equal(t, uint64(1), w.Frame())
	assert.NoError(t, s.Err())
}

func TestSchedulerErrReportsFirstFailure(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	s := NewScheduler(
		&recordSystem{name: "ok", order: &order},
		&recordSystem{name: "bad", order: &order, err: boom},
		&recordSystem{name: "worse", order: &order, err: errors.New("later")},
	)
	assert.ErrorIs(t, s.Err(), boom)
}

func TestEntityString(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	DestroyEntity(w, e)
	e = CreateEntity(w)
	assert.Equal(t, "1v1", e.String())
}

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }
