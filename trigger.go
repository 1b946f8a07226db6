package kind

import (
	"log/slog"
	"slices"

	"github.com/oliverbestmann/kind/byke"
)

// Trigger runs the observers of the event for the target instance. Returns
// ErrNotOfKind if the target does not exist or is not of kind K anymore.
//
// If propagate is true, the event is triggered again for every ancestor of the target,
// following byke.ChildOf. Ancestors not of kind K are skipped.
func Trigger[K any](w *byke.World, target Instance[K], event any, propagate bool) error {
	predicate := PredicateOf[K]()

	if !w.Matches(target.id, predicate) {
		return errNotOfKind[K](target.id)
	}

	var ancestors []EntityId
	if propagate {
		// observers may change the hierarchy
		ancestors = slices.Collect(byke.Parents(w, target.id))
	}

	w.TriggerEntity(target.id, event)

	for _, ancestor := range ancestors {
		if !w.Matches(ancestor, predicate) {
			slog.Debug(
				"Skip ancestor not of kind",
				slog.Any("entity", ancestor),
				slog.String("kind", NameOf[K]()),
			)

			continue
		}

		w.TriggerEntity(ancestor, event)
	}

	return nil
}
