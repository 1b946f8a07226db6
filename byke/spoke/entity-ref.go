package spoke

// EntityRef gives access to the components of a single entity.
// An EntityRef is only valid until the entity is moved to another archetype,
// e.g. by inserting or removing a component.
type EntityRef struct {
	archetype *Archetype
	row       Row
	ctx       QueryContext
}

func (e EntityRef) EntityId() EntityId {
	return e.archetype.entities[e.row]
}

func (e EntityRef) Archetype() *Archetype {
	return e.archetype
}

// Context returns the QueryContext this reference was created with.
func (e EntityRef) Context() QueryContext {
	return e.ctx
}

func (e EntityRef) Has(ty *ComponentType) bool {
	return e.archetype.ContainsType(ty)
}

// Get returns a pointer to the component value of the given type, or nil,
// if the entity does not have the component.
func (e EntityRef) Get(ty *ComponentType) ErasedComponent {
	col, ok := e.archetype.columnOf(ty)
	if !ok {
		return nil
	}

	return col.Values[e.row]
}

// GetMut is the same as Get, but marks the component as changed.
func (e EntityRef) GetMut(ty *ComponentType) ErasedComponent {
	col, ok := e.archetype.columnOf(ty)
	if !ok {
		return nil
	}

	if e.ctx.Tick != NoTick {
		col.Changed[e.row] = e.ctx.Tick
	}

	return col.Values[e.row]
}

// Added returns the tick the component was added at.
func (e EntityRef) Added(ty *ComponentType) Tick {
	col, ok := e.archetype.columnOf(ty)
	if !ok {
		return NoTick
	}

	return col.Added[e.row]
}

// Changed returns the tick the component was last changed at.
func (e EntityRef) Changed(ty *ComponentType) Tick {
	col, ok := e.archetype.columnOf(ty)
	if !ok {
		return NoTick
	}

	return col.Changed[e.row]
}

// IsAdded returns true if the component was added after the last run
// of the system observing this reference.
func (e EntityRef) IsAdded(ty *ComponentType) bool {
	return e.Added(ty).IsNewerThan(e.ctx.LastRun)
}

// IsChanged returns true if the component was changed after the last run
// of the system observing this reference.
func (e EntityRef) IsChanged(ty *ComponentType) bool {
	return e.Changed(ty).IsNewerThan(e.ctx.LastRun)
}

// Components returns pointers to all component values of this entity.
func (e EntityRef) Components() []ErasedComponent {
	components := make([]ErasedComponent, 0, len(e.archetype.columns))
	for idx := range e.archetype.columns {
		components = append(components, e.archetype.columns[idx].Values[e.row])
	}

	return components
}
