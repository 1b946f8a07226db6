package spoke

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"sync/atomic"
	"unsafe"
)

type ComponentTypeId uint16

type ComponentType struct {
	Name string
	Type reflect.Type

	// The Id of the type, unique within the process
	Id ComponentTypeId

	// HeapCopy copies the value (or the value pointed to) into new memory on the heap
	// and returns a pointer to it.
	HeapCopy func(value ErasedComponent) ErasedComponent

	// SetValue copies the component pointed to by value into target.
	// target must be of type *C.
	SetValue func(target any, value ErasedComponent)

	// SetPointer lets target point to the component value.
	// target must be of type **C.
	SetPointer func(target any, value ErasedComponent)

	required func() []ErasedComponent
}

func ComponentTypeOf[C IsComponent[C]]() *ComponentType {
	var zeroValue C

	//goland:noinspection GoDfaNilDereference
	return zeroValue.ComponentType()
}

// New allocates a new zero value of the component on the heap.
func (c *ComponentType) New() ErasedComponent {
	return reflect.New(c.Type).Interface().(ErasedComponent)
}

// RequiredComponents returns the components that must be inserted together with
// this component type.
func (c *ComponentType) RequiredComponents() []ErasedComponent {
	if c.required == nil {
		return nil
	}

	return c.required()
}

func (c *ComponentType) String() string {
	return c.Name
}

func (c *ComponentType) LogValue() slog.Value {
	return slog.StringValue(c.Name)
}

var componentTypes atomic.Pointer[map[unsafe.Pointer]*ComponentType]

func init() {
	// initialize the lookup table
	componentTypes.Store(&map[unsafe.Pointer]*ComponentType{})
}

func componentTypeOf[C IsComponent[C]]() *ComponentType {
	ptrToType := abiTypePointerTo(reflect.TypeFor[C]())

	if cached, ok := (*componentTypes.Load())[ptrToType]; ok {
		return cached
	}

	return ensureComponentType(ptrToType, makeComponentType[C])
}

func ensureComponentType(ptrToType unsafe.Pointer, makeType func(id ComponentTypeId) *ComponentType) *ComponentType {
	for {
		previousTypes := componentTypes.Load()
		if cached, ok := (*previousTypes)[ptrToType]; ok {
			return cached
		}

		newTypeId := ComponentTypeId(len(*previousTypes) + 1)

		newType := makeType(newTypeId)

		newTypes := maps.Clone(*previousTypes)
		newTypes[ptrToType] = newType

		if componentTypes.CompareAndSwap(previousTypes, &newTypes) {
			slog.Debug(
				"New component type registered",
				slog.String("name", newType.Name),
				slog.Int("id", int(newType.Id)),
			)

			return newType
		}
	}
}

func abiTypePointerTo(t reflect.Type) unsafe.Pointer {
	type eface struct {
		typ, val unsafe.Pointer
	}

	// a reflect.Type is backed by an *rType. The rType contains a abi.Type as
	// its first value. This means, that a *rType can be re-interpreted as *abi.Type
	return (*eface)(unsafe.Pointer(&t)).val
}

func makeComponentType[C IsComponent[C]](id ComponentTypeId) *ComponentType {
	reflectType := reflect.TypeFor[C]()
	if reflectType.Kind() != reflect.Struct {
		panic(fmt.Sprintf("component %s must be a struct", reflectType))
	}

	ty := &ComponentType{
		Id:   id,
		Type: reflectType,
		Name: reflectType.String(),

		HeapCopy:   heapCopy[C],
		SetValue:   setValue[C],
		SetPointer: setPointer[C],
	}

	var zeroValue C
	if _, ok := any(zeroValue).(RequireComponents); ok {
		ty.required = func() []ErasedComponent {
			var zeroValue C
			return any(zeroValue).(RequireComponents).RequireComponents()
		}
	}

	return ty
}

func heapCopy[C IsComponent[C]](value ErasedComponent) ErasedComponent {
	switch value := any(value).(type) {
	case C:
		return any(&value).(ErasedComponent)

	case *C:
		copyOfValue := *value
		return any(&copyOfValue).(ErasedComponent)

	default:
		panic(fmt.Sprintf("value of type %T is not a %s", value, reflect.TypeFor[C]()))
	}
}

func setValue[C IsComponent[C]](target any, value ErasedComponent) {
	*target.(*C) = *any(value).(*C)
}

func setPointer[C IsComponent[C]](target any, value ErasedComponent) {
	*target.(**C) = any(value).(*C)
}
