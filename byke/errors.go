package byke

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNoSuchEntity is returned when operating on an entity that does not exist.
	ErrNoSuchEntity = errors.New("no such entity")

	// ErrResourceMissing is returned when a system requires a resource that
	// is not part of the world.
	ErrResourceMissing = errors.New("resource missing")
)

func errNoSuchEntity(entityId EntityId) error {
	return errors.Wrapf(ErrNoSuchEntity, "entity %s", entityId)
}

func errResourceMissing(ty reflect.Type) error {
	return errors.Wrapf(ErrResourceMissing, "resource of type %s", ty)
}
