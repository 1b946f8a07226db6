package spoke

type isComponentMarker struct{}

// ErasedComponent is a value or a pointer to a value
// that implements the IsComponent interface.
type ErasedComponent interface {
	ComponentType() *ComponentType
	isComponent(isComponentMarker)
}

type IsComponent[T any] interface {
	ErasedComponent
	IsComponent(T)
}

// Component must be embedded into a struct to make it a component.
//
//	type Position struct {
//	   Component[Position]
//	   X, Y float64
//	}
type Component[C IsComponent[C]] struct{}

func (Component[C]) IsComponent(C) {}

func (Component[C]) isComponent(isComponentMarker) {}

func (Component[C]) ComponentType() *ComponentType {
	return componentTypeOf[C]()
}

// RequireComponents can be implemented by a component to have other components
// inserted alongside it, if they do not already exist on the entity.
type RequireComponents interface {
	RequireComponents() []ErasedComponent
}
