package kind

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrNotOfKind is returned when an entity does not match the predicate
	// of the kind it is used as.
	ErrNotOfKind = errors.New("entity is not of kind")

	// ErrUndeclaredCast is returned or raised when casting between two kinds
	// without a relation declared using Is.
	ErrUndeclaredCast = errors.New("cast between kinds not declared")
)

func errNotOfKind[K any](entityId EntityId) error {
	return errors.Wrapf(ErrNotOfKind, "entity %s, kind %s", entityId, NameOf[K]())
}

func errUndeclaredCast[T, U any]() error {
	return errors.Wrapf(ErrUndeclaredCast, "%s to %s", NameOf[T](), NameOf[U]())
}
