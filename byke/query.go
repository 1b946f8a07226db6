package byke

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/oliverbestmann/kind/byke/spoke"
)

// Query is a SystemParam that gives access to all entities matching the target type T.
//
// T can be an EntityId, a component C (a copy of the value), a *C (pointer to the value,
// marks the component as changed), a Filter, Option, OptionMut, Has, or a struct
// combining any of those. Filters can be embedded into the struct.
type Query[T any] struct {
	inner *queryInner
}

type queryInner struct {
	world  *World
	parsed parsedQuery
	cached *spoke.CachedQuery

	// context of the system the query runs in
	ctx spoke.QueryContext

	// a query created using NewQuery does not run within a system
	standalone bool
}

// NewQuery creates a query outside of a system.
func NewQuery[T any](w *World) Query[T] {
	q := newQuery[T](w)
	q.inner.standalone = true
	return q
}

func newQuery[T any](w *World) Query[T] {
	parsed, err := parseQuery(reflect.TypeFor[T]())
	if err != nil {
		panic(fmt.Sprintf("failed to parse query of type %s: %s", reflect.TypeFor[T](), err))
	}

	return Query[T]{
		inner: &queryInner{
			world:  w,
			parsed: parsed,
			cached: w.storage.NewQuery(parsed.Predicate),
		},
	}
}

func (*Query[T]) init(world *World) SystemParamState {
	q := newQuery[T](world)

	return &queryParamState{
		ptrToValue: reflect.ValueOf(&q),
		inner:      q.inner,
	}
}

func (q *queryInner) context() spoke.QueryContext {
	if q.standalone {
		return q.world.worldQueryContext()
	}

	return q.ctx
}

func (q *Query[T]) populate(target *T, ref EntityRef) {
	fromEntity(reflect.ValueOf(target), q.inner.parsed.Setters, ref)
}

// Predicate returns the predicate entities must match to be returned by this query.
func (q *Query[T]) Predicate() Predicate {
	return q.inner.parsed.Predicate
}

// Items returns an iterator over all matching entities.
// Entities must not be spawned, despawned or modified using the World while iterating.
// Use Commands instead.
func (q *Query[T]) Items() iter.Seq[T] {
	return func(yield func(T) bool) {
		var target T

		for ref := range q.inner.cached.Iter(q.inner.context()) {
			q.populate(&target, ref)

			if !yield(target) {
				return
			}
		}
	}
}

// Get returns the item for the given entity, if the entity exists and
// matches the query.
func (q *Query[T]) Get(entityId EntityId) (T, bool) {
	var target T

	ref, ok := q.inner.cached.Get(q.inner.context(), entityId)
	if !ok {
		return target, false
	}

	q.populate(&target, ref)

	return target, true
}

// Contains returns true if the entity exists and matches the query.
func (q *Query[T]) Contains(entityId EntityId) bool {
	_, ok := q.inner.cached.Get(q.inner.context(), entityId)
	return ok
}

// Count returns the number of entities matching the query.
func (q *Query[T]) Count() int {
	return q.inner.cached.Count(q.inner.context())
}

// Single returns the only item of the query. Returns false, if the query
// matches no entity or more than one entity.
func (q *Query[T]) Single() (T, bool) {
	var result T
	var count int

	for value := range q.Items() {
		count += 1
		if count > 1 {
			var zeroValue T
			return zeroValue, false
		}

		result = value
	}

	return result, count == 1
}

// MustSingle is like Single but panics if there is not exactly one item.
func (q *Query[T]) MustSingle() T {
	value, ok := q.Single()
	if !ok {
		panic(fmt.Sprintf("expected exactly one item in query for type %s", reflect.TypeFor[T]()))
	}

	return value
}

type queryParamState struct {
	ptrToValue reflect.Value
	inner      *queryInner
}

func (q *queryParamState) getValue(sc systemContext) (reflect.Value, error) {
	q.inner.ctx = spoke.QueryContext{
		LastRun: sc.LastRun,
		Tick:    q.inner.world.currentTick,
	}

	return q.ptrToValue.Elem(), nil
}

func (q *queryParamState) cleanupValue() {}

func (q *queryParamState) valueType() reflect.Type {
	return q.ptrToValue.Elem().Type()
}
