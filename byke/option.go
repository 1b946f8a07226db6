package byke

import (
	"fmt"
)

// Option is a query item that fetches a copy of the component C
// if it exists on an entity.
type Option[C IsComponent[C]] struct {
	value *C
}

func (Option[C]) Predicate() Predicate {
	return Predicate{}
}

func (o *Option[C]) FromEntityRef(ref EntityRef) {
	o.value, _ = any(ref.Get(ComponentTypeOf[C]())).(*C)
}

func (o Option[C]) Get() (C, bool) {
	return o.OrZero(), o.value != nil
}

func (o Option[C]) MustGet() C {
	if o.value == nil {
		panic(fmt.Sprintf("%T is empty", o))
	}

	return *o.value
}

func (o Option[C]) OrZero() C {
	if o.value != nil {
		return *o.value
	}

	var zeroValue C
	return zeroValue
}

func (o Option[C]) IsSome() bool {
	return o.value != nil
}

// OptionMut is a query item that fetches a pointer to the component C
// if it exists on an entity. The component is marked as changed.
type OptionMut[C IsComponent[C]] struct {
	value *C
}

func (OptionMut[C]) Predicate() Predicate {
	return Predicate{}
}

func (o *OptionMut[C]) FromEntityRef(ref EntityRef) {
	o.value, _ = any(ref.GetMut(ComponentTypeOf[C]())).(*C)
}

func (o OptionMut[C]) Get() (*C, bool) {
	return o.value, o.value != nil
}

func (o OptionMut[C]) MustGet() *C {
	if o.value == nil {
		panic(fmt.Sprintf("%T is empty", o))
	}

	return o.value
}

// Has is a query item that does not fetch the actual component value,
// but indicates if a component of type C exists on the entity.
type Has[C IsComponent[C]] struct {
	Exists bool
}

func (Has[C]) Predicate() Predicate {
	return Predicate{}
}

func (h *Has[C]) FromEntityRef(ref EntityRef) {
	h.Exists = ref.Has(ComponentTypeOf[C]())
}
