package byke

import (
	"github.com/oliverbestmann/kind/byke/spoke"
)

// Filter restricts the entities a Query returns. Filters are zero sized types
// that can be used directly as a query target, as a field in a struct query target,
// or embedded into a struct query target.
//
//	type movingPlayers struct {
//	   With[Player]
//	   Without[Frozen]
//	   Position *Position
//	}
type Filter interface {
	Predicate() Predicate
}

// PredicateOf returns the Predicate of the Filter type F.
func PredicateOf[F Filter]() Predicate {
	var zeroValue F
	return zeroValue.Predicate()
}

// With matches entities that have the component C.
type With[C IsComponent[C]] struct{}

func (With[C]) Predicate() Predicate {
	return Predicate{With: spoke.ComponentTypeOf[C]()}
}

// Without matches entities that do not have the component C.
type Without[C IsComponent[C]] struct{}

func (Without[C]) Predicate() Predicate {
	return Predicate{Without: spoke.ComponentTypeOf[C]()}
}

// Added matches entities where the component C was added since the
// system last ran.
type Added[C IsComponent[C]] struct{}

func (Added[C]) Predicate() Predicate {
	return Predicate{Added: spoke.ComponentTypeOf[C]()}
}

// Changed matches entities where the component C was added or accessed mutably since the
// system last ran.
type Changed[C IsComponent[C]] struct{}

func (Changed[C]) Predicate() Predicate {
	return Predicate{Changed: spoke.ComponentTypeOf[C]()}
}

// Or matches entities matching at least one of A and B.
type Or[A, B Filter] struct{}

func (Or[A, B]) Predicate() Predicate {
	return spoke.Any(PredicateOf[A](), PredicateOf[B]())
}

// And matches entities matching A and B.
type And[A, B Filter] struct{}

func (And[A, B]) Predicate() Predicate {
	return spoke.All(PredicateOf[A](), PredicateOf[B]())
}

// Not matches entities that do not match F.
type Not[F Filter] struct{}

func (Not[F]) Predicate() Predicate {
	return spoke.Negate(PredicateOf[F]())
}
