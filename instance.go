package kind

import (
	"log/slog"
	"slices"

	"github.com/oliverbestmann/kind/byke"
)

// Instance is an EntityId of an entity that was of kind K when the Instance
// was created. It has the same size as an EntityId and compares equal to any
// Instance of the same entity.
//
// An Instance is a query item. It adds the predicate of K to the query:
//
//	func system(apples byke.Query[kind.Instance[Apple]]) { ... }
//
// It can also be stored in components, used as a map key or as an event target.
type Instance[K any] struct {
	_  [0]*K
	id EntityId
}

func (Instance[K]) Predicate() byke.Predicate {
	return PredicateOf[K]()
}

func (i *Instance[K]) FromEntityRef(ref byke.EntityRef) {
	i.id = ref.EntityId()
}

// FromEntity returns an Instance for the entity, if the entity exists
// and is currently of kind K.
func FromEntity[K any](w *byke.World, entityId EntityId) (Instance[K], bool) {
	if !w.Matches(entityId, PredicateOf[K]()) {
		return Instance[K]{}, false
	}

	return Instance[K]{id: entityId}, true
}

// FromEntityUnchecked wraps the entity without checking its kind.
func FromEntityUnchecked[K any](entityId EntityId) Instance[K] {
	return Instance[K]{id: entityId}
}

// From wraps any entity id in an Instance[Any].
func From(entityId EntityId) Instance[Any] {
	return Instance[Any]{id: entityId}
}

// Placeholder returns an Instance that never refers to an entity. It can be used
// to initialize fields that are set later.
func Placeholder[K any]() Instance[K] {
	return Instance[K]{id: byke.PlaceholderEntityId}
}

// Retain removes all instances from the slice that do not exist or are not
// of kind K anymore. The slice is modified in place.
func Retain[K any](w *byke.World, instances []Instance[K]) []Instance[K] {
	predicate := PredicateOf[K]()

	return slices.DeleteFunc(instances, func(instance Instance[K]) bool {
		return !w.Matches(instance.id, predicate)
	})
}

// Target returns the target of an observed event as an Instance of kind K,
// if the target is of kind K.
func Target[K, E any](w *byke.World, on byke.On[E]) (Instance[K], bool) {
	return FromEntity[K](w, on.Target)
}

// Entity returns the wrapped EntityId.
func (i Instance[K]) Entity() EntityId {
	return i.id
}

// Any erases the kind of the instance.
func (i Instance[K]) Any() Instance[Any] {
	return Instance[Any]{id: i.id}
}

// IsValid checks if the entity still exists and is of kind K.
func (i Instance[K]) IsValid(w *byke.World) bool {
	return w.Matches(i.id, PredicateOf[K]())
}

func (i Instance[K]) IsPlaceholder() bool {
	return i.id == byke.PlaceholderEntityId
}

func (i Instance[K]) Compare(other Instance[K]) int {
	return i.id.Compare(other.id)
}

func (i Instance[K]) String() string {
	return NameOf[K]() + "(" + i.id.String() + ")"
}

func (i Instance[K]) LogValue() slog.Value {
	return slog.StringValue(i.String())
}

// Same returns true if both instances refer to the same entity,
// regardless of their kinds.
func Same[T, U any](a Instance[T], b Instance[U]) bool {
	return a.id == b.id
}

// Compare orders instances of any kind by their entity ids.
func Compare[T, U any](a Instance[T], b Instance[U]) int {
	return a.id.Compare(b.id)
}
