package spoke

import (
	"slices"
	"strings"
)

type ArchetypeId uint32

type Row uint32

type column struct {
	ComponentType *ComponentType

	// pointers to the heap allocated component values
	Values []ErasedComponent

	Added   []Tick
	Changed []Tick
}

func (c *column) swapRemove(row Row) {
	last := len(c.Values) - 1

	c.Values[row] = c.Values[last]
	c.Added[row] = c.Added[last]
	c.Changed[row] = c.Changed[last]

	c.Values[last] = nil

	c.Values = c.Values[:last]
	c.Added = c.Added[:last]
	c.Changed = c.Changed[:last]
}

// Archetype stores all entities sharing the exact same set of component types.
type Archetype struct {
	Id    ArchetypeId
	Types []*ComponentType

	entities []EntityId
	columns  []column

	// lookup of the column index by component type id
	index map[ComponentTypeId]int

	// cached transitions to other archetypes
	with    map[ComponentTypeId]*Archetype
	without map[ComponentTypeId]*Archetype
}

func newArchetype(id ArchetypeId, types []*ComponentType) *Archetype {
	a := &Archetype{
		Id:      id,
		Types:   types,
		columns: make([]column, len(types)),
		index:   make(map[ComponentTypeId]int, len(types)),
		with:    map[ComponentTypeId]*Archetype{},
		without: map[ComponentTypeId]*Archetype{},
	}

	for idx, ty := range types {
		a.columns[idx].ComponentType = ty
		a.index[ty.Id] = idx
	}

	return a
}

func (a *Archetype) ContainsType(ty *ComponentType) bool {
	_, ok := a.index[ty.Id]
	return ok
}

func (a *Archetype) Len() int {
	return len(a.entities)
}

func (a *Archetype) Entities() []EntityId {
	return a.entities
}

func (a *Archetype) String() string {
	var names []string
	for _, ty := range a.Types {
		names = append(names, ty.Name)
	}

	return "[" + strings.Join(names, ", ") + "]"
}

// push appends a new row. values must contain exactly one pointer per column
// in the order of the columns.
func (a *Archetype) push(entityId EntityId, values []ErasedComponent, added, changed []Tick) Row {
	row := Row(len(a.entities))
	a.entities = append(a.entities, entityId)

	for idx := range a.columns {
		col := &a.columns[idx]
		col.Values = append(col.Values, values[idx])
		col.Added = append(col.Added, added[idx])
		col.Changed = append(col.Changed, changed[idx])
	}

	return row
}

// swapRemove removes the given row by moving the last row into its place.
// Returns the id of the entity that was moved, if any.
func (a *Archetype) swapRemove(row Row) (EntityId, bool) {
	last := Row(len(a.entities) - 1)

	for idx := range a.columns {
		a.columns[idx].swapRemove(row)
	}

	moved := a.entities[last]
	a.entities[row] = moved
	a.entities = a.entities[:last]

	return moved, row != last
}

func (a *Archetype) columnOf(ty *ComponentType) (*column, bool) {
	idx, ok := a.index[ty.Id]
	if !ok {
		return nil, false
	}

	return &a.columns[idx], true
}

func archetypeKey(types []*ComponentType) string {
	var sb strings.Builder
	for _, ty := range types {
		sb.WriteByte(byte(ty.Id))
		sb.WriteByte(byte(ty.Id >> 8))
	}

	return sb.String()
}

func sortTypes(types []*ComponentType) []*ComponentType {
	types = slices.Clone(types)

	slices.SortFunc(types, func(a, b *ComponentType) int {
		return int(a.Id) - int(b.Id)
	})

	return slices.CompactFunc(types, func(a, b *ComponentType) bool {
		return a == b
	})
}

// ArchetypeGraph holds all archetypes. Archetypes are never removed.
type ArchetypeGraph struct {
	byKey      map[string]*Archetype
	archetypes []*Archetype
}

// Lookup returns the archetype for the given set of component types,
// creating it if it does not exist yet.
func (g *ArchetypeGraph) Lookup(types []*ComponentType) (*Archetype, bool) {
	types = sortTypes(types)
	key := archetypeKey(types)

	if archetype, ok := g.byKey[key]; ok {
		return archetype, false
	}

	if g.byKey == nil {
		g.byKey = map[string]*Archetype{}
	}

	archetype := newArchetype(ArchetypeId(len(g.archetypes)), types)
	g.archetypes = append(g.archetypes, archetype)
	g.byKey[key] = archetype

	return archetype, true
}

// NextWith returns the archetype that contains all types of the given
// archetype plus the additional type.
func (g *ArchetypeGraph) NextWith(a *Archetype, ty *ComponentType) *Archetype {
	if next, ok := a.with[ty.Id]; ok {
		return next
	}

	next, _ := g.Lookup(append(slices.Clone(a.Types), ty))
	a.with[ty.Id] = next

	return next
}

// NextWithout returns the archetype that contains all types of the given
// archetype except the type given.
func (g *ArchetypeGraph) NextWithout(a *Archetype, ty *ComponentType) *Archetype {
	if next, ok := a.without[ty.Id]; ok {
		return next
	}

	types := slices.DeleteFunc(slices.Clone(a.Types), func(other *ComponentType) bool {
		return other == ty
	})

	next, _ := g.Lookup(types)
	a.without[ty.Id] = next

	return next
}

func (g *ArchetypeGraph) All() []*Archetype {
	return g.archetypes
}
