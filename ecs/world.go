package ecs

import (
	"github.com/milk9111/candle/ecs/component"
	"github.com/milk9111/candle/event"
)

// Releaser is implemented by components that hold outside resources, such as
// event subscriptions. Release runs when the component leaves the world.
type Releaser interface {
	Release()
}

// World owns entities, their components, and the gameplay event bus.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
	bus      *event.Bus
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]componentStore),
		bus:    event.NewBus(),
	}
}

// Bus returns the world event bus.
func (w *World) Bus() *event.Bus {
	if w == nil {
		return nil
	}
	return w.bus
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It reports false when e
// was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		releaseValue(store.remove(e))
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.alive()
}

// Clear destroys every entity, releasing components that need it.
func Clear(w *World) {
	for _, e := range Entities(w) {
		DestroyEntity(w, e)
	}
}

func releaseValue(v any, ok bool) {
	if !ok {
		return
	}
	if r, isReleaser := v.(Releaser); isReleaser {
		r.Release()
	}
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	if existing, ok := w.stores[kind.ID()]; ok {
		set, _ := existing.(*sparseSet[T])
		return set
	}
	if !create {
		return nil
	}
	set := &sparseSet[T]{}
	w.stores[kind.ID()] = set
	return set
}
