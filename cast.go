package kind

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
)

// Relation is the proof that every entity of kind T is also of kind U.
// It is returned by Is.
type Relation[T, U any] struct {
	declared bool
}

type castEdge [2]reflect.Type

var casts = struct {
	sync.RWMutex
	edges map[castEdge]struct{}
}{
	edges: map[castEdge]struct{}{},
}

// Is declares that every entity of kind T is also of kind U. This is not verified.
// The caller must make sure it holds, e.g. by requiring components.
// Relations are not transitive.
//
//	var AppleIsFruit = kind.Is[Apple, Fruit]()
func Is[T, U any]() Relation[T, U] {
	edge := castEdge{reflect.TypeFor[T](), reflect.TypeFor[U]()}

	casts.Lock()
	defer casts.Unlock()

	if _, exists := casts.edges[edge]; !exists {
		casts.edges[edge] = struct{}{}

		slog.Debug(
			"Cast declared",
			slog.String("from", NameOf[T]()),
			slog.String("to", NameOf[U]()),
		)
	}

	return Relation[T, U]{declared: true}
}

// Cast changes the kind of the instance from T to U.
func (r Relation[T, U]) Cast(instance Instance[T]) Instance[U] {
	r.mustBeDeclared()
	return Instance[U]{id: instance.id}
}

// CastCommands changes the kind of the commands from T to U.
func (r Relation[T, U]) CastCommands(commands InstanceCommands[T]) InstanceCommands[U] {
	return InstanceCommands[U]{
		commands: commands.commands,
		instance: r.Cast(commands.instance),
	}
}

func (r Relation[T, U]) mustBeDeclared() {
	if !r.declared {
		panic(fmt.Sprintf("relation %s to %s was not created using kind.Is", NameOf[T](), NameOf[U]()))
	}
}

// CanCast returns true if an Instance[T] may be cast to an Instance[U].
func CanCast[T, U any]() bool {
	from, to := reflect.TypeFor[T](), reflect.TypeFor[U]()
	if from == to || to == reflect.TypeFor[Any]() {
		return true
	}

	casts.RLock()
	defer casts.RUnlock()

	_, ok := casts.edges[castEdge{from, to}]
	return ok
}

// Cast changes the kind of an instance to U. Casting to the same kind or to
// Any is always allowed, other casts must have been declared with Is.
// Panics with ErrUndeclaredCast otherwise.
//
//	fruit := kind.Cast[Fruit](apple)
func Cast[U, T any](instance Instance[T]) Instance[U] {
	casted, err := TryCast[U](instance)
	if err != nil {
		panic(err)
	}

	return casted
}

// TryCast is like Cast, but returns an error if the cast was not declared.
func TryCast[U, T any](instance Instance[T]) (Instance[U], error) {
	if !CanCast[T, U]() {
		return Instance[U]{}, errUndeclaredCast[T, U]()
	}

	return Instance[U]{id: instance.id}, nil
}

// CastUnchecked changes the kind of an instance to U without any check.
func CastUnchecked[U, T any](instance Instance[T]) Instance[U] {
	return Instance[U]{id: instance.id}
}
