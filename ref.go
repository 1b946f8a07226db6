package kind

import (
	"fmt"

	"github.com/oliverbestmann/kind/byke"
)

// refPredicate requires the component C in addition to the predicate of kind C.
func refPredicate[C byke.IsComponent[C]]() byke.Predicate {
	return byke.PredicateOf[byke.And[byke.With[C], Filter[C]]]()
}

// InstanceRef is a query item combining an Instance[C] with read access
// to the component C of the entity.
type InstanceRef[C byke.IsComponent[C]] struct {
	instance Instance[C]
	value    *C
}

func (InstanceRef[C]) Predicate() byke.Predicate {
	return refPredicate[C]()
}

func (r *InstanceRef[C]) FromEntityRef(ref byke.EntityRef) {
	r.instance = Instance[C]{id: ref.EntityId()}
	r.value = any(ref.Get(byke.ComponentTypeOf[C]())).(*C)
}

// RefOf returns an InstanceRef for the entity, if the entity is of kind C.
func RefOf[C byke.IsComponent[C]](w *byke.World, entityId EntityId) (InstanceRef[C], bool) {
	ref, ok := w.Entity(entityId)
	if !ok || !refPredicate[C]().Matches(ref) {
		return InstanceRef[C]{}, false
	}

	var instanceRef InstanceRef[C]
	instanceRef.FromEntityRef(ref)

	return instanceRef, true
}

func (r InstanceRef[C]) Instance() Instance[C] {
	return r.instance
}

func (r InstanceRef[C]) Entity() EntityId {
	return r.instance.id
}

// Get returns a copy of the component.
func (r InstanceRef[C]) Get() C {
	return *r.value
}

func (r InstanceRef[C]) String() string {
	return fmt.Sprintf("%s %+v", r.instance, *r.value)
}

// InstanceMut is a query item combining an Instance[C] with write access
// to the component C of the entity. The component is marked as changed.
type InstanceMut[C byke.IsComponent[C]] struct {
	instance Instance[C]
	value    *C

	added, changed bool
}

func (InstanceMut[C]) Predicate() byke.Predicate {
	return refPredicate[C]()
}

func (m *InstanceMut[C]) FromEntityRef(ref byke.EntityRef) {
	componentType := byke.ComponentTypeOf[C]()

	// look at the flags before GetMut marks the component as changed
	m.added = ref.IsAdded(componentType)
	m.changed = ref.IsChanged(componentType)

	m.instance = Instance[C]{id: ref.EntityId()}
	m.value = any(ref.GetMut(componentType)).(*C)
}

// MutOf returns an InstanceMut for the entity, if the entity is of kind C.
// Outside of a system there is no last run to compare against, so
// IsAdded and IsChanged always report true. Use a query item for change detection.
func MutOf[C byke.IsComponent[C]](w *byke.World, entityId EntityId) (InstanceMut[C], bool) {
	ref, ok := w.Entity(entityId)
	if !ok || !refPredicate[C]().Matches(ref) {
		return InstanceMut[C]{}, false
	}

	var instanceMut InstanceMut[C]
	instanceMut.FromEntityRef(ref)

	return instanceMut, true
}

func (m InstanceMut[C]) Instance() Instance[C] {
	return m.instance
}

func (m InstanceMut[C]) Entity() EntityId {
	return m.instance.id
}

// Get returns a pointer to the component.
func (m InstanceMut[C]) Get() *C {
	return m.value
}

// IsAdded returns true if the component was added since the system last ran.
func (m InstanceMut[C]) IsAdded() bool {
	return m.added
}

// IsChanged returns true if the component was changed since the system last ran.
func (m InstanceMut[C]) IsChanged() bool {
	return m.changed
}

// AsRef returns a read only view of the same component.
func (m InstanceMut[C]) AsRef() InstanceRef[C] {
	return InstanceRef[C]{instance: m.instance, value: m.value}
}

func (m InstanceMut[C]) String() string {
	return fmt.Sprintf("%s %+v", m.instance, *m.value)
}

// Get returns a copy of the component of the instance.
func Get[C byke.IsComponent[C]](w *byke.World, instance Instance[C]) (C, bool) {
	value, ok := byke.GetComponent[C](w, instance.id)
	if !ok {
		var zeroValue C
		return zeroValue, false
	}

	return *value, true
}

// GetMut returns a pointer to the component of the instance and marks it as changed.
func GetMut[C byke.IsComponent[C]](w *byke.World, instance Instance[C]) (*C, bool) {
	ref, ok := w.Entity(instance.id)
	if !ok {
		return nil, false
	}

	value, ok := any(ref.GetMut(byke.ComponentTypeOf[C]())).(*C)
	return value, ok
}
