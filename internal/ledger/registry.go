package ledger

import (
	"iter"
	"slices"
)

// registry is an id-keyed map that remembers insertion order. Updating an
// existing id keeps its position; removing and re-adding moves it to the end.
type registry[T any] struct {
	items map[int]*T
	order []int
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{items: make(map[int]*T)}
}

func (r *registry[T]) get(id int) (*T, bool) {
	v, ok := r.items[id]
	return v, ok
}

func (r *registry[T]) has(id int) bool {
	_, ok := r.items[id]
	return ok
}

func (r *registry[T]) put(id int, v *T) {
	if _, ok := r.items[id]; !ok {
		r.order = append(r.order, id)
	}
	r.items[id] = v
}

func (r *registry[T]) remove(id int) (*T, bool) {
	v, ok := r.items[id]
	if !ok {
		return nil, false
	}
	delete(r.items, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return v, true
}

func (r *registry[T]) len() int {
	return len(r.order)
}

// values yields entries in insertion order.
func (r *registry[T]) values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, id := range r.order {
			if !yield(r.items[id]) {
				return
			}
		}
	}
}

// snapshot copies entries in insertion order. Never returns nil.
func (r *registry[T]) snapshot() []T {
	out := make([]T, 0, len(r.order))
	for v := range r.values() {
		out = append(out, *v)
	}
	return out
}
