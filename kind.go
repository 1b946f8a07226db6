package kind

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"regexp"
	"sync/atomic"

	"github.com/oliverbestmann/kind/byke"
)

type EntityId = byke.EntityId

// Definition is implemented by kinds that are not a component themselves.
// Embed Of to implement it.
type Definition interface {
	// KindFilter returns the filter an entity must match to be of this kind.
	// A nil filter matches all entities.
	KindFilter() byke.Filter
}

// Of declares a kind using the filter F.
//
//	type Fruit struct {
//	   kind.Of[byke.Or[byke.With[Apple], byke.With[Orange]]]
//	}
type Of[F byke.Filter] struct{}

func (Of[F]) KindFilter() byke.Filter {
	var filter F
	return filter
}

// Any is the kind of every entity. An Instance[Any] is nothing more than
// an EntityId.
type Any struct{}

func (Any) KindFilter() byke.Filter {
	return nil
}

func (Any) KindName() string {
	return "Any"
}

// Named can be implemented by a kind to replace the name derived from its type.
type Named interface {
	KindName() string
}

// Filter matches all entities of kind K. It can be used as a query filter
// or composed with other filters.
//
//	type hungry struct {
//	   _     kind.Filter[Human]
//	   Stomach *Stomach
//	}
type Filter[K any] struct{}

func (Filter[K]) Predicate() byke.Predicate {
	return PredicateOf[K]()
}

// typeCache maps types to lazily computed values. Reads do not lock.
type typeCache[V any] struct {
	values atomic.Pointer[map[reflect.Type]V]
}

func (c *typeCache[V]) get(ty reflect.Type, compute func() V) V {
	if values := c.values.Load(); values != nil {
		if cached, ok := (*values)[ty]; ok {
			return cached
		}
	}

	// computing may recurse into the cache, e.g. for the kinds used by a filter
	value := compute()

	for {
		previous := c.values.Load()

		var updated map[reflect.Type]V
		if previous != nil {
			if cached, ok := (*previous)[ty]; ok {
				return cached
			}

			updated = maps.Clone(*previous)
		} else {
			updated = map[reflect.Type]V{}
		}

		updated[ty] = value

		if c.values.CompareAndSwap(previous, &updated) {
			return value
		}
	}
}

var (
	predicates typeCache[byke.Predicate]
	names      typeCache[string]
)

// PredicateOf returns the predicate an entity must match to be of kind K.
// K must either implement Definition or be a component. Any other type panics.
func PredicateOf[K any]() byke.Predicate {
	return predicates.get(reflect.TypeFor[K](), func() byke.Predicate {
		predicate := resolvePredicate[K]()

		slog.Debug(
			"New kind registered",
			slog.String("name", NameOf[K]()),
			slog.String("predicate", predicate.String()),
		)

		return predicate
	})
}

// NameOf returns a short name of the type K, used in log messages and errors.
func NameOf[K any]() string {
	return names.get(reflect.TypeFor[K](), nameOf[K])
}

// Validate resolves the kind K and panics if K is not a valid kind.
//
//	var _ = kind.Validate[Fruit]()
func Validate[K any]() struct{} {
	PredicateOf[K]()
	return struct{}{}
}

func resolvePredicate[K any]() byke.Predicate {
	if ty := reflect.TypeFor[K](); ty.Kind() == reflect.Pointer {
		panic(fmt.Sprintf("kind %s must not be a pointer", ty))
	}

	var zeroValue K

	switch value := any(zeroValue).(type) {
	case Definition:
		filter := value.KindFilter()
		if filter == nil {
			return byke.Predicate{}
		}

		return filter.Predicate()

	case byke.ErasedComponent:
		return byke.Predicate{With: value.ComponentType()}

	default:
		panic(fmt.Sprintf("%s is not a kind: implement kind.Definition or embed byke.Component", reflect.TypeFor[K]()))
	}
}

var reQualifier = regexp.MustCompile(`(?:[\w.-]+/)*[\w-]+\.`)

func nameOf[K any]() string {
	var zeroValue K
	if named, ok := any(zeroValue).(Named); ok {
		return named.KindName()
	}

	// main.Human or example.com/fruits.Eat[example.com/fruits.Fruit]
	return reQualifier.ReplaceAllString(reflect.TypeFor[K]().String(), "")
}
