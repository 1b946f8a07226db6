package byke

import (
	"reflect"
	"unsafe"
)

type SystemId uint64

// AnySystem is a function whose parameters can be provided by the world,
// e.g. a *World, *Commands, a Query or a resource.
type AnySystem any

type AsSystemConfigs interface {
	AsSystemConfigs() []SystemConfig
}

func asSystemConfig(value AnySystem) SystemConfig {
	switch value := value.(type) {
	case SystemConfig:
		return value

	default:
		return SystemConfig{
			Id: systemIdOf(value),
			fn: reflect.ValueOf(value),
		}
	}
}

func asSystemConfigs(values ...AnySystem) []SystemConfig {
	var configs []SystemConfig

	for _, value := range values {
		switch value := value.(type) {
		case []SystemConfig:
			configs = append(configs, value...)

		case AsSystemConfigs:
			configs = append(configs, value.AsSystemConfigs()...)

		default:
			configs = append(configs, asSystemConfig(value))
		}
	}

	return configs
}

func systemIdOf(system any) SystemId {
	fn := reflect.ValueOf(system)
	if fn.Kind() != reflect.Func {
		panic("system is not a function")
	}

	// the interface holds the func value itself, which points to the closure.
	// Different closures and different instantiations of generic functions
	// get different ids, even if they share the same code.
	type eface struct {
		typ, val unsafe.Pointer
	}

	return SystemId(uintptr((*eface)(unsafe.Pointer(&system)).val))
}

type SystemConfig struct {
	Id SystemId

	// the actual fn, must be a function
	fn         reflect.Value
	predicates []AnySystem
}

// System groups one or more systems to configure them together.
func System(systems ...AnySystem) Systems {
	return Systems{
		systems: systems,
	}
}

type Systems struct {
	systems    []AnySystem
	predicates []AnySystem
}

func (s Systems) AsSystemConfigs() []SystemConfig {
	systems := asSystemConfigs(s.systems...)

	for idx := range systems {
		system := &systems[idx]
		system.predicates = append(system.predicates, s.predicates...)
	}

	return systems
}

// RunIf adds a run condition. The predicate is a system returning a bool.
// The systems only run, if all predicates return true.
func (s Systems) RunIf(predicate AnySystem) Systems {
	s.predicates = append(s.predicates, predicate)
	return s
}
