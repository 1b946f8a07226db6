package byke

import (
	"github.com/oliverbestmann/kind/byke/spoke"
)

// EntityId uniquely identifies an entity in a World. Ids of despawned entities
// are reused with a new generation, so a stale EntityId never refers to a new entity.
type EntityId = spoke.EntityId

// NoEntityId never identifies an entity.
const NoEntityId = spoke.NoEntityId

// PlaceholderEntityId is a valid looking EntityId that is never assigned to an entity.
var PlaceholderEntityId = spoke.PlaceholderEntityId

// IsComponent can be used in a type parameter to ensure that type T is a Component type.
//
// To implement the IsComponent interface for a type, you must embed the Component type.
type IsComponent[T any] = spoke.IsComponent[T]

// Component is a zero sized type that may be embedded into a struct to turn that
// struct into a component (see IsComponent).
type Component[T IsComponent[T]] = spoke.Component[T]

// ErasedComponent indicates a type erased Component value.
//
// Values given to the consumer of byke of this type are usually pointers,
// even though the interface is actually implemented directly on the component type.
type ErasedComponent = spoke.ErasedComponent

// ComponentType describes a component type at runtime.
type ComponentType = spoke.ComponentType

// RequireComponents can be implemented by a component type to add other components
// to an entity whenever the component is inserted.
type RequireComponents = spoke.RequireComponents

// EntityRef gives access to all components of one entity.
type EntityRef = spoke.EntityRef

// Predicate is the runtime representation of a Filter.
type Predicate = spoke.Predicate

// ComponentTypeOf returns the ComponentType of C.
func ComponentTypeOf[C IsComponent[C]]() *ComponentType {
	return spoke.ComponentTypeOf[C]()
}
