package byke

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/oliverbestmann/kind/byke/internal/refl"
	"github.com/oliverbestmann/kind/byke/spoke"
)

type preparedSystem struct {
	SystemConfig

	Name string

	// runs the system function, returns the value returned by the system, if any
	RawSystem func(sc systemContext) any

	// run conditions, each returning a bool
	Predicates []*preparedSystem

	LastRun spoke.Tick
}

func (w *World) prepareSystemUncached(config SystemConfig) *preparedSystem {
	rSystem := config.fn

	if rSystem.Kind() != reflect.Func {
		panic(fmt.Sprintf("not a function: %s", rSystem.Type()))
	}

	preparedSystem := &preparedSystem{
		SystemConfig: config,
		Name:         functionNameOf(rSystem),
	}

	for _, predicate := range config.predicates {
		preparedSystem.Predicates = append(preparedSystem.Predicates, w.prepareSystem(asSystemConfig(predicate)))
	}

	systemType := rSystem.Type()

	if systemType.NumOut() > 1 {
		panic(fmt.Sprintf("system %s must return at most one value", preparedSystem.Name))
	}

	// collect a number of functions that when called will prepare the systems parameters
	var params []SystemParamState

	for idx := range systemType.NumIn() {
		inType := systemType.In(idx)

		switch {
		case refl.ImplementsInterfaceDirectly[SystemParam](inType):
			params = append(params, makeSystemParamState(w, inType))

		case refl.ImplementsInterfaceDirectly[SystemParam](reflect.PointerTo(inType)):
			params = append(params, makeSystemParamState(w, inType))

		case inType == reflect.TypeFor[*World]():
			params = append(params, valueSystemParamState(reflect.ValueOf(w)))

		case inType.Kind() == reflect.Pointer && w.hasResource(inType.Elem()):
			params = append(params, resourceSystemParamState{world: w, resType: inType.Elem(), pointer: true})

		case w.hasResource(inType):
			params = append(params, resourceSystemParamState{world: w, resType: inType})

		default:
			panic(fmt.Sprintf("Can not handle system param of type %s in %s", inType, preparedSystem.Name))
		}
	}

	// verify that all the param types match their actual types
	for idx, param := range params {
		inType := systemType.In(idx)
		if !param.valueType().AssignableTo(inType) {
			panic(fmt.Sprintf("Argument %d of %s is not assignable to param value of type %s", idx, preparedSystem.Name, inType))
		}
	}

	preparedSystem.RawSystem = func(sc systemContext) any {
		// observers may run the same system re-entrant, so the values are not shared
		paramValues := make([]reflect.Value, len(params))

		for idx, param := range params {
			value, err := param.getValue(sc)
			if err != nil {
				panic(errors.Wrapf(err, "param %d of system %s", idx, preparedSystem.Name))
			}

			paramValues[idx] = value
		}

		result := rSystem.Call(paramValues)

		for _, param := range params {
			param.cleanupValue()
		}

		if len(result) == 1 {
			return result[0].Interface()
		}

		return nil
	}

	return preparedSystem
}

func makeSystemParamState(world *World, ty reflect.Type) SystemParamState {
	for ty.Kind() == reflect.Pointer {
		ty = ty.Elem()
	}

	// allocate a new instance on the heap and get the value as an interface
	param := reflect.New(ty).Interface().(SystemParam)

	// initialize using the world
	return param.init(world)
}

func functionNameOf(fn reflect.Value) string {
	name := runtime.FuncForPC(fn.Pointer()).Name()

	// strip the package path
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}

	return name
}
