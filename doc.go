// Package kind tags byke entity ids with a compile time kind.
//
// A kind is any Go type that resolves to a byke.Predicate. Every component
// is a kind matching the entities that hold it. Other kinds are declared
// by embedding Of with a byke filter:
//
//	type Fruit struct {
//	   kind.Of[byke.Or[byke.With[Apple], byke.With[Orange]]]
//	}
//
// An Instance[K] is an entity id that matched the predicate of K at the
// time it was created, usually by a query:
//
//	func eatFruits(fruits byke.Query[kind.Instance[Fruit]]) {
//	   for fruit := range fruits.Items() { ... }
//	}
//
// Nothing keeps an Instance valid afterward. If the entity loses a component
// its kind depends on, the Instance still wraps the same id. Use FromEntity,
// Instance.IsValid or Retain to check again.
//
// Casts between kinds are declared explicitly using Is. They are never checked
// against the predicates of the kinds involved.
package kind
