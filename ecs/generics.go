package ecs

import "github.com/milk9111/candle/ecs/component"

// Add sets the component of kind on e, replacing any previous value.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	store := storeFor(w, kind, true)
	if prev, ok := store.get(e); ok && prev != value {
		releaseValue(any(prev), true)
	}
	store.set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	store := storeFor(w, kind, false)
	if store == nil {
		return false
	}
	v, ok := store.remove(e)
	releaseValue(v, ok)
	return ok
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	store := storeFor(w, kind, false)
	return store != nil && store.has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	store := storeFor(w, kind, false)
	if store == nil {
		return nil, false
	}
	return store.get(e)
}

// First returns any live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	store := storeFor(w, kind, false)
	if store == nil || len(store.dense) == 0 {
		return 0, false
	}
	return store.dense[0], true
}

// ForEach visits every entity with kind in insertion order. The entity list is
// captured up front so fn may add or destroy entities.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	store := storeFor(w, kind, false)
	if store == nil || fn == nil {
		return
	}
	for _, e := range store.entities() {
		if v, ok := store.get(e); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for _, e := range sa.entities() {
		a, ok := sa.get(e)
		if !ok {
			continue
		}
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sc := storeFor(w, kc, false)
	if sc == nil || fn == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := sc.get(e); ok {
			fn(e, a, b, c)
		}
	})
}
