package byke

import (
	"reflect"

	"github.com/oliverbestmann/kind/byke/spoke"
)

// SystemParam is an interface to give a type special behaviour when it is used
// as a parameter to a system.
//
// While a system is being prepared, byke will check each parameter if it fulfills
// the SystemParam interface. If a parameter type does, a new instance will be allocated
// and the init method will be called.
//
// See Local, In, On or Query for some implementations of SystemParam.
type SystemParam interface {
	// init will be called while the system is being prepared.
	// It should set up everything as needed, e.g. allocate memory
	init(world *World) SystemParamState
}

// SystemParamState is the state produced by SystemParam.
type SystemParamState interface {
	// getValue returns the value that should be passed to the system.
	// It must be of the same type as the SystemParam.
	getValue(sc systemContext) (reflect.Value, error)

	// cleanupValue will be called once the system is executed. It is used
	// to e.g. apply a Commands object against the world
	cleanupValue()

	// valueType returns the exact type that getValue will return. This is used
	// while preparing
	valueType() reflect.Type
}

type systemTrigger struct {
	TargetId   EntityId
	EventValue any
}

type systemContext struct {
	// Tick at which the system last ran.
	LastRun spoke.Tick

	// Value passed to a system using an In parameter.
	InValue any

	// Set when running an observer
	Trigger systemTrigger
}

// valueSystemParamState is a simple implementation of SystemParamState
// that just returns a constant value
type valueSystemParamState reflect.Value

func (s valueSystemParamState) getValue(systemContext) (reflect.Value, error) {
	return reflect.Value(s), nil
}

func (s valueSystemParamState) valueType() reflect.Type {
	return reflect.Value(s).Type()
}

func (valueSystemParamState) cleanupValue() {
	// do nothing
}

// resourceSystemParamState looks up the resource every time the system runs,
// so a resource can be replaced or removed between runs.
type resourceSystemParamState struct {
	world   *World
	resType reflect.Type
	pointer bool
}

func (r resourceSystemParamState) getValue(systemContext) (reflect.Value, error) {
	res, ok := r.world.resources[reflect.PointerTo(r.resType)]
	if !ok {
		return reflect.Value{}, errResourceMissing(r.resType)
	}

	if r.pointer {
		return res.Value, nil
	}

	return res.Value.Elem(), nil
}

func (r resourceSystemParamState) cleanupValue() {}

func (r resourceSystemParamState) valueType() reflect.Type {
	if r.pointer {
		return reflect.PointerTo(r.resType)
	}

	return r.resType
}
