package byke

import (
	"fmt"
	"reflect"
)

// In describes an input parameter of a system.
// A system can only accept exactly one input parameter.
type In[T any] struct {
	Value T
}

func (In[T]) init(*World) SystemParamState {
	return &inSystemParamState[T]{}
}

type inSystemParamState[T any] struct{}

func (i *inSystemParamState[T]) getValue(sc systemContext) (reflect.Value, error) {
	if sc.InValue == nil {
		var zeroValue In[T]
		return reflect.ValueOf(zeroValue), nil
	}

	value, ok := sc.InValue.(T)
	if !ok {
		err := fmt.Errorf("can not use param type %T with In[%s]", sc.InValue, reflect.TypeFor[T]())
		return reflect.Value{}, err
	}

	return reflect.ValueOf(In[T]{Value: value}), nil
}

func (i *inSystemParamState[T]) cleanupValue() {}

func (i *inSystemParamState[T]) valueType() reflect.Type {
	return reflect.TypeFor[In[T]]()
}
