package spoke

import (
	"iter"
)

// CachedQuery iterates all entities matching a Predicate. It remembers
// the archetypes that can contain matching entities.
type CachedQuery struct {
	Predicate Predicate

	storage         *Storage
	isArchetypeOnly bool

	// archetypes that passed Predicate.MatchesArchetype
	archetypes []*Archetype

	// number of archetypes of the storage we have already looked at
	seen int
}

func (q *CachedQuery) update() {
	all := q.storage.archetypes.All()

	for _, archetype := range all[q.seen:] {
		if q.Predicate.MatchesArchetype(archetype) {
			q.archetypes = append(q.archetypes, archetype)
		}
	}

	q.seen = len(all)
}

// Iter returns an iterator over all matching entities.
//
// Entities must not be moved between archetypes while iterating.
func (q *CachedQuery) Iter(ctx QueryContext) iter.Seq[EntityRef] {
	return func(yield func(EntityRef) bool) {
		q.update()

		for _, archetype := range q.archetypes {
			for row := 0; row < len(archetype.entities); row++ {
				entity := EntityRef{archetype: archetype, row: Row(row), ctx: ctx}

				if !q.isArchetypeOnly && !q.Predicate.Matches(entity) {
					continue
				}

				if !yield(entity) {
					return
				}
			}
		}
	}
}

// Get returns a reference to the given entity, if it matches the query.
func (q *CachedQuery) Get(ctx QueryContext, entityId EntityId) (EntityRef, bool) {
	entity, ok := q.storage.Get(ctx, entityId)
	if !ok {
		return EntityRef{}, false
	}

	if !q.Predicate.MatchesArchetype(entity.archetype) {
		return EntityRef{}, false
	}

	if !q.isArchetypeOnly && !q.Predicate.Matches(entity) {
		return EntityRef{}, false
	}

	return entity, true
}

// Count returns the number of matching entities.
func (q *CachedQuery) Count(ctx QueryContext) int {
	q.update()

	if q.isArchetypeOnly {
		var count int
		for _, archetype := range q.archetypes {
			count += archetype.Len()
		}

		return count
	}

	var count int
	for range q.Iter(ctx) {
		count++
	}

	return count
}
