package kind

import (
	"github.com/oliverbestmann/kind/byke"
)

// InstanceWorld gives immediate access to an instance of kind K within a world.
// Use it in systems taking a *byke.World, where Commands would only be applied later.
type InstanceWorld[K any] struct {
	world    *byke.World
	instance Instance[K]
}

// WorldFor returns the InstanceWorld for the given instance.
func WorldFor[K any](w *byke.World, instance Instance[K]) InstanceWorld[K] {
	return InstanceWorld[K]{world: w, instance: instance}
}

// SpawnIn spawns a new entity with the component value and any extra components.
func SpawnIn[C byke.IsComponent[C]](w *byke.World, value C, extra ...byke.ErasedComponent) InstanceWorld[C] {
	components := append([]byke.ErasedComponent{value}, extra...)

	return InstanceWorld[C]{
		world:    w,
		instance: Instance[C]{id: w.Spawn(components...)},
	}
}

// InsertIn inserts the component value into an existing entity and returns
// mutable access to the inserted component.
//
// If C defines a kind that the entity does not match after the insert, the
// insert is undone and an ErrNotOfKind error is returned. A previous value
// of C is restored. Required components inserted along with C are kept.
func InsertIn[C byke.IsComponent[C]](w *byke.World, entityId EntityId, value C) (InstanceMut[C], error) {
	previous, hadPrevious := byke.GetComponent[C](w, entityId)

	var previousValue C
	if hadPrevious {
		previousValue = *previous
	}

	if err := w.InsertComponents(entityId, value); err != nil {
		return InstanceMut[C]{}, err
	}

	mut, ok := MutOf[C](w, entityId)
	if !ok {
		if hadPrevious {
			_ = w.InsertComponents(entityId, previousValue)
		} else {
			w.RemoveComponent(entityId, byke.ComponentTypeOf[C]())
		}

		return InstanceMut[C]{}, errNotOfKind[C](entityId)
	}

	return mut, nil
}

func (w InstanceWorld[K]) Instance() Instance[K] {
	return w.instance
}

func (w InstanceWorld[K]) Entity() EntityId {
	return w.instance.id
}

func (w InstanceWorld[K]) World() *byke.World {
	return w.world
}

// Insert inserts the components into the entity.
func (w InstanceWorld[K]) Insert(components ...byke.ErasedComponent) error {
	return w.world.InsertComponents(w.instance.id, components...)
}

// Remove removes a component from the entity. The entity might not be of kind K afterward.
func (w InstanceWorld[K]) Remove(componentType *byke.ComponentType) bool {
	return w.world.RemoveComponent(w.instance.id, componentType)
}

// Despawn despawns the entity and its children.
func (w InstanceWorld[K]) Despawn() bool {
	return w.world.Despawn(w.instance.id)
}

// Contains returns true if the entity still exists.
func (w InstanceWorld[K]) Contains() bool {
	return w.world.Contains(w.instance.id)
}

// IsValid returns true if the entity exists and is still of kind K.
func (w InstanceWorld[K]) IsValid() bool {
	return w.instance.IsValid(w.world)
}

// Trigger runs the observers of the event for this instance.
func (w InstanceWorld[K]) Trigger(event any) error {
	return Trigger(w.world, w.instance, event, false)
}

// TriggerPropagate runs the observers of the event for this instance
// and its ancestors of kind K.
func (w InstanceWorld[K]) TriggerPropagate(event any) error {
	return Trigger(w.world, w.instance, event, true)
}
