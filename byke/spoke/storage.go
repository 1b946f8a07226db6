package spoke

import (
	"fmt"
	"iter"

	"github.com/kamstrup/intmap"
)

type entityLocation struct {
	EntityId  EntityId
	Archetype *Archetype
	Row       Row
}

// Storage holds all entities and their components, grouped into archetypes.
type Storage struct {
	// location of each live entity, keyed by the index of its EntityId
	locations  *intmap.Map[uint32, entityLocation]
	archetypes ArchetypeGraph
}

func NewStorage() *Storage {
	return &Storage{
		locations: intmap.New[uint32, entityLocation](1024),
	}
}

func (s *Storage) locationOf(entityId EntityId) (entityLocation, bool) {
	loc, ok := s.locations.Get(entityId.Index())
	if !ok || loc.EntityId != entityId {
		return entityLocation{}, false
	}

	return loc, true
}

// Spawn adds a new entity with the given components. The components are copied to the heap.
func (s *Storage) Spawn(tick Tick, entityId EntityId, components []ErasedComponent) {
	if _, exists := s.locations.Get(entityId.Index()); exists {
		panic(fmt.Sprintf("entity %s already exists", entityId))
	}

	// collect the component types
	componentTypes := make([]*ComponentType, 0, len(components))
	for _, component := range components {
		componentTypes = append(componentTypes, component.ComponentType())
	}

	archetype, _ := s.archetypes.Lookup(componentTypes)

	values := make([]ErasedComponent, len(archetype.columns))
	for _, component := range components {
		idx := archetype.index[component.ComponentType().Id]
		values[idx] = component.ComponentType().HeapCopy(component)
	}

	ticks := make([]Tick, len(values))
	for idx := range ticks {
		ticks[idx] = tick
	}

	row := archetype.push(entityId, values, ticks, ticks)

	s.locations.Put(entityId.Index(), entityLocation{
		EntityId:  entityId,
		Archetype: archetype,
		Row:       row,
	})
}

// Despawn removes the entity and returns pointers to its components.
func (s *Storage) Despawn(entityId EntityId) ([]ErasedComponent, bool) {
	loc, ok := s.locationOf(entityId)
	if !ok {
		return nil, false
	}

	ref := EntityRef{archetype: loc.Archetype, row: loc.Row}
	components := ref.Components()

	s.removeRow(loc)
	s.locations.Del(entityId.Index())

	return components, true
}

func (s *Storage) removeRow(loc entityLocation) {
	moved, ok := loc.Archetype.swapRemove(loc.Row)
	if !ok {
		return
	}

	// the previously last entity now lives in the removed row
	s.locations.Put(moved.Index(), entityLocation{
		EntityId:  moved,
		Archetype: loc.Archetype,
		Row:       loc.Row,
	})
}

// moveTo transfers the entity into the target archetype. Columns missing in the
// source archetype are filled using the values in the inserted map.
func (s *Storage) moveTo(tick Tick, loc entityLocation, target *Archetype, inserted map[ComponentTypeId]ErasedComponent) {
	source := loc.Archetype

	values := make([]ErasedComponent, len(target.columns))
	added := make([]Tick, len(target.columns))
	changed := make([]Tick, len(target.columns))

	for idx := range target.columns {
		ty := target.columns[idx].ComponentType

		if col, ok := source.columnOf(ty); ok {
			values[idx] = col.Values[loc.Row]
			added[idx] = col.Added[loc.Row]
			changed[idx] = col.Changed[loc.Row]
			continue
		}

		value, ok := inserted[ty.Id]
		if !ok {
			panic(fmt.Sprintf("no value for component %s", ty))
		}

		values[idx] = value
		added[idx] = tick
		changed[idx] = tick
	}

	row := target.push(loc.EntityId, values, added, changed)

	s.removeRow(loc)

	s.locations.Put(loc.EntityId.Index(), entityLocation{
		EntityId:  loc.EntityId,
		Archetype: target,
		Row:       row,
	})
}

// InsertComponents adds the components to an existing entity. Components that already
// exist on the entity are replaced and marked as changed.
func (s *Storage) InsertComponents(tick Tick, entityId EntityId, components []ErasedComponent) {
	loc, ok := s.locationOf(entityId)
	if !ok {
		panic(fmt.Sprintf("entity %s does not exist", entityId))
	}

	target := loc.Archetype

	inserted := map[ComponentTypeId]ErasedComponent{}

	for _, component := range components {
		componentType := component.ComponentType()

		if col, ok := loc.Archetype.columnOf(componentType); ok {
			// replace the existing value in place. pointers to the value stay valid.
			componentType.SetValue(col.Values[loc.Row], componentType.HeapCopy(component))
			col.Changed[loc.Row] = tick
			continue
		}

		inserted[componentType.Id] = componentType.HeapCopy(component)
		target = s.archetypes.NextWith(target, componentType)
	}

	if target == loc.Archetype {
		return
	}

	s.moveTo(tick, loc, target, inserted)
}

// RemoveComponent removes the component from the entity and returns
// a pointer to the removed value.
func (s *Storage) RemoveComponent(tick Tick, entityId EntityId, componentType *ComponentType) (ErasedComponent, bool) {
	loc, ok := s.locationOf(entityId)
	if !ok {
		panic(fmt.Sprintf("entity %s does not exist", entityId))
	}

	col, ok := loc.Archetype.columnOf(componentType)
	if !ok {
		// entity does not have the component in question
		return nil, false
	}

	value := col.Values[loc.Row]

	target := s.archetypes.NextWithout(loc.Archetype, componentType)
	s.moveTo(tick, loc, target, nil)

	return value, true
}

// Get returns a reference to the entity. The reference will use the given
// QueryContext to evaluate change detection.
func (s *Storage) Get(ctx QueryContext, entityId EntityId) (EntityRef, bool) {
	loc, ok := s.locationOf(entityId)
	if !ok {
		return EntityRef{}, false
	}

	return EntityRef{archetype: loc.Archetype, row: loc.Row, ctx: ctx}, true
}

func (s *Storage) Contains(entityId EntityId) bool {
	_, ok := s.locationOf(entityId)
	return ok
}

func (s *Storage) HasComponent(entityId EntityId, componentType *ComponentType) bool {
	loc, ok := s.locationOf(entityId)
	if !ok {
		// the entity itself does not exist
		return false
	}

	return loc.Archetype.ContainsType(componentType)
}

// Matches evaluates the predicate for a single entity. Returns false
// if the entity does not exist.
func (s *Storage) Matches(ctx QueryContext, entityId EntityId, p Predicate) bool {
	ref, ok := s.Get(ctx, entityId)
	if !ok {
		return false
	}

	return p.MatchesArchetype(ref.archetype) && p.Matches(ref)
}

func (s *Storage) EntityCount() int {
	return s.locations.Len()
}

// Entities returns all entity ids in archetype order.
func (s *Storage) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, archetype := range s.archetypes.All() {
			for _, entityId := range archetype.entities {
				if !yield(entityId) {
					return
				}
			}
		}
	}
}

func (s *Storage) Archetypes() []*Archetype {
	return s.archetypes.All()
}

// NewQuery creates a query that caches the archetypes matching the predicate.
func (s *Storage) NewQuery(p Predicate) *CachedQuery {
	return &CachedQuery{
		storage:         s,
		Predicate:       p,
		isArchetypeOnly: p.IsArchetypeOnly(),
	}
}
