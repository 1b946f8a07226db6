package byke

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/oliverbestmann/kind/byke/spoke"
)

type resourceValue struct {
	// Value is of kind Pointer and points to the value of the resource.
	Value reflect.Value
}

type AnyPtr = any

// World holds all entities and resources, schedules, systems, etc.
// While an empty World can be created using NewWorld, it is normally created and configured
// by using the App api.
//
// A World is not safe for concurrent use.
type World struct {
	storage     *spoke.Storage
	entities    spoke.EntityAllocator
	resources   map[reflect.Type]resourceValue
	schedules   map[ScheduleId]*schedule
	systems     map[SystemId]*preparedSystem
	currentTick spoke.Tick

	observers *spoke.CachedQuery
}

// NewWorld creates a new empty world.
// You probably want to use the App api instead.
func NewWorld() *World {
	storage := spoke.NewStorage()

	return &World{
		storage:     storage,
		resources:   map[reflect.Type]resourceValue{},
		schedules:   map[ScheduleId]*schedule{},
		systems:     map[SystemId]*preparedSystem{},
		currentTick: 1,
		observers:   storage.NewQuery(PredicateOf[With[Observer]]()),
	}
}

// changeTick advances the tick for a change made outside of a running system query.
func (w *World) changeTick() spoke.Tick {
	w.currentTick += 1
	return w.currentTick
}

func (w *World) worldQueryContext() spoke.QueryContext {
	return spoke.QueryContext{LastRun: spoke.NoTick, Tick: w.changeTick()}
}

// AddSystems adds systems to a schedule within the world.
func (w *World) AddSystems(scheduleId ScheduleId, firstSystem AnySystem, systems ...AnySystem) {
	schedule := w.scheduleOf(scheduleId)

	systems = append([]AnySystem{firstSystem}, systems...)

	for _, system := range asSystemConfigs(systems...) {
		preparedSystem := w.prepareSystem(system)

		if err := schedule.addSystem(preparedSystem); err != nil {
			panic(err)
		}
	}
}

// RunSystem runs a system within the world. The prepared system is kept, so
// Local values and change detection carry over to the next run of the same system.
// Use RunSystemOnce for closures that are only ever run once.
func (w *World) RunSystem(system AnySystem) any {
	return w.RunSystemWithInValue(system, nil)
}

// RunSystemOnce runs a system without keeping its prepared state.
func (w *World) RunSystemOnce(system AnySystem) any {
	preparedSystem := w.prepareSystemUncached(asSystemConfig(system))
	return w.runSystem(preparedSystem, systemContext{})
}

// RunSystemWithInValue runs a system within the world and passes
// the value to the systems In parameter.
func (w *World) RunSystemWithInValue(system AnySystem, inValue any) any {
	systemConfig := asSystemConfig(system)
	preparedSystem := w.prepareSystem(systemConfig)
	return w.runSystem(preparedSystem, systemContext{InValue: inValue})
}

func (w *World) timingStats() *TimingStats {
	stats, _ := ResourceOf[TimingStats](w)
	return stats
}

func (w *World) scheduleOf(scheduleId ScheduleId) *schedule {
	schedule, ok := w.schedules[scheduleId]
	if !ok {
		schedule = newSchedule(scheduleId)
		w.schedules[scheduleId] = schedule
	}

	return schedule
}

func (w *World) runSystem(system *preparedSystem, ctx systemContext) any {
	for _, predicate := range system.Predicates {
		result, _ := w.runSystem(predicate, systemContext{}).(bool)
		if !result {
			// predicate evaluated to "do not run", stop execution here
			return nil
		}
	}

	if timings := w.timingStats(); timings != nil {
		defer timings.MeasureSystem(system).Stop()
	}

	w.currentTick += 1
	thisRun := w.currentTick

	ctx.LastRun = system.LastRun
	result := system.RawSystem(ctx)

	// update last run so we can calculate changed components
	// at the next run
	system.LastRun = thisRun

	return result
}

func (w *World) prepareSystem(systemConfig SystemConfig) *preparedSystem {
	// check cache first
	prepared, ok := w.systems[systemConfig.Id]
	if ok {
		return prepared
	}

	// need to prepare the system
	prepared = w.prepareSystemUncached(systemConfig)
	w.systems[systemConfig.Id] = prepared

	return prepared
}

// RunSchedule runs the schedule identified by the given ScheduleId.
// If no schedule with this id exists, no action is performed.
func (w *World) RunSchedule(scheduleId ScheduleId) {
	schedule, ok := w.schedules[scheduleId]
	if !ok {
		return
	}

	if timings := w.timingStats(); timings != nil {
		defer timings.MeasureSchedule(scheduleId).Stop()
	}

	// systems added while the schedule runs will only run the next time
	for _, system := range slices.Clone(schedule.systems) {
		w.runSystem(system, systemContext{})
	}
}

// Spawn spawns a new entity with the given components.
func (w *World) Spawn(components ...ErasedComponent) EntityId {
	return w.spawnWithEntityId(w.reserveEntityId(), components)
}

func (w *World) reserveEntityId() EntityId {
	return w.entities.Allocate()
}

func (w *World) spawnWithEntityId(entityId EntityId, components []ErasedComponent) EntityId {
	if !w.entities.IsAlive(entityId) {
		panic(fmt.Sprintf("entity id %s was not reserved", entityId))
	}

	components, spawnChildren := w.prepareComponents(entityId, components)

	w.storage.Spawn(w.changeTick(), entityId, components)
	w.onComponentsInserted(entityId, components)

	// now spawn all children as necessary
	w.spawnChildren(entityId, spawnChildren)

	return entityId
}

func (w *World) spawnChildren(parentId EntityId, spawnChildren []*spawnChildComponent) {
	for _, spawnChild := range spawnChildren {
		components := append(slices.Clone(spawnChild.Components), ChildOf{Parent: parentId})
		w.spawnWithEntityId(w.reserveEntityId(), components)
	}
}

// InsertComponents inserts the components into an existing entity.
// Existing components of the same type are replaced.
func (w *World) InsertComponents(entityId EntityId, components ...ErasedComponent) error {
	if !w.storage.Contains(entityId) {
		return errNoSuchEntity(entityId)
	}

	components, spawnChildren := w.prepareComponents(entityId, components)

	// a new parent replaces the previous one
	for _, component := range components {
		if childOf, ok := component.(*ChildOf); ok {
			if previous, ok := GetComponent[ChildOf](w, entityId); ok && previous.Parent != childOf.Parent {
				w.removeFromParent(entityId, previous.Parent)
			}
		}
	}

	w.storage.InsertComponents(w.changeTick(), entityId, components)
	w.onComponentsInserted(entityId, components)

	w.spawnChildren(entityId, spawnChildren)

	return nil
}

// prepareComponents flattens bundles, collects children to spawn, adds required components and
// copies all components to the heap.
func (w *World) prepareComponents(entityId EntityId, components []ErasedComponent) (collectedComponents []ErasedComponent, spawnChildren []*spawnChildComponent) {
	queue := flattenComponents(nil, components...)
	direct := len(queue)

	inserted := map[*ComponentType]int{}

	for idx := 0; idx < len(queue); idx++ {
		// if in question we'll overwrite the components if they
		// where specified directly
		overwrite := idx < direct

		component := queue[idx]
		componentType := component.ComponentType()

		// special handling for spawn child components. do not add them to
		// the entity, but put them into a list that we go through at the
		// end to spawn children
		if spawnChild, ok := component.(*spawnChildComponent); ok {
			spawnChildren = append(spawnChildren, spawnChild)
			continue
		}

		if componentType == ComponentTypeOf[Children]() {
			panic(fmt.Sprintf("you may not insert byke.Children yourself, use byke.ChildOf on %s", entityId))
		}

		if previous, ok := inserted[componentType]; ok {
			// a later value specified directly replaces an earlier one
			if overwrite {
				collectedComponents[previous] = componentType.HeapCopy(component)
			}

			continue
		}

		// required components do not replace existing values
		if !overwrite && w.storage.HasComponent(entityId, componentType) {
			continue
		}

		inserted[componentType] = len(collectedComponents)
		collectedComponents = append(collectedComponents, componentType.HeapCopy(component))

		// enqueue all required components
		queue = append(queue, componentType.RequiredComponents()...)
	}

	return
}

func (w *World) onComponentsInserted(entityId EntityId, components []ErasedComponent) {
	for _, component := range components {
		if childOf, ok := component.(*ChildOf); ok {
			w.addToParent(entityId, childOf.Parent)
		}
	}
}

func (w *World) addToParent(childId, parentId EntityId) {
	parent, ok := w.storage.Get(w.worldQueryContext(), parentId)
	if !ok {
		panic(fmt.Sprintf("parent entity %s of %s does not exist", parentId, childId))
	}

	children, ok := parent.GetMut(ComponentTypeOf[Children]()).(*Children)
	if !ok {
		w.storage.InsertComponents(w.changeTick(), parentId, []ErasedComponent{
			&Children{entities: []EntityId{childId}},
		})

		return
	}

	if !slices.Contains(children.entities, childId) {
		children.entities = append(children.entities, childId)
	}
}

func (w *World) removeFromParent(childId, parentId EntityId) {
	parent, ok := w.storage.Get(w.worldQueryContext(), parentId)
	if !ok {
		// parent is already gone
		return
	}

	children, ok := parent.GetMut(ComponentTypeOf[Children]()).(*Children)
	if !ok {
		return
	}

	children.entities = slices.DeleteFunc(children.entities, func(id EntityId) bool {
		return id == childId
	})

	if len(children.entities) == 0 {
		w.storage.RemoveComponent(w.changeTick(), parentId, ComponentTypeOf[Children]())
	}
}

// RemoveComponent removes the component of the given type from an entity. Returns false,
// if the entity does not exist or does not have such a component.
func (w *World) RemoveComponent(entityId EntityId, componentType *ComponentType) bool {
	if !w.storage.Contains(entityId) {
		return false
	}

	if componentType == ComponentTypeOf[Children]() {
		panic("you may not remove byke.Children yourself")
	}

	component, ok := w.storage.RemoveComponent(w.changeTick(), entityId, componentType)
	if !ok {
		return false
	}

	if childOf, ok := component.(*ChildOf); ok {
		w.removeFromParent(entityId, childOf.Parent)
	}

	return true
}

// Despawn recursively despawns the given entity following Children relations.
// Returns false, if the entity does not exist.
func (w *World) Despawn(entityId EntityId) bool {
	if !w.storage.Contains(entityId) {
		return false
	}

	queue := []EntityId{entityId}

	for idx := 0; idx < len(queue); idx++ {
		entityId := queue[idx]

		entity, ok := w.storage.Get(spoke.QueryContext{}, entityId)
		if !ok {
			slog.Warn("Cannot despawn entity, it does not exist", slog.Any("entity", entityId))
			continue
		}

		// component values live on the heap, the pointers stay valid when the
		// parent moves to another archetype
		childOf, isChild := entity.Get(ComponentTypeOf[ChildOf]()).(*ChildOf)

		if children, ok := entity.Get(ComponentTypeOf[Children]()).(*Children); ok {
			queue = append(queue, children.entities...)
		}

		if isChild {
			w.removeFromParent(entityId, childOf.Parent)
		}

		w.storage.Despawn(entityId)
		w.entities.Free(entityId)

		w.unwatchEntity(entityId)
	}

	return true
}

// Contains returns true, if the entity exists in this world.
func (w *World) Contains(entityId EntityId) bool {
	return w.storage.Contains(entityId)
}

// Entity returns a reference to the entity. Components accessed mutably
// through the reference are marked as changed.
func (w *World) Entity(entityId EntityId) (EntityRef, bool) {
	return w.storage.Get(w.worldQueryContext(), entityId)
}

// Matches returns true if the entity exists and matches the predicate.
func (w *World) Matches(entityId EntityId, predicate Predicate) bool {
	return w.storage.Matches(spoke.QueryContext{Tick: w.currentTick}, entityId, predicate)
}

// EntityCount returns the number of entities in this world.
func (w *World) EntityCount() int {
	return w.storage.EntityCount()
}

// GetComponent returns a pointer to the component of the entity.
// The component is not marked as changed.
func GetComponent[C IsComponent[C]](w *World, entityId EntityId) (*C, bool) {
	entity, ok := w.storage.Get(spoke.QueryContext{}, entityId)
	if !ok {
		return nil, false
	}

	value, ok := any(entity.Get(ComponentTypeOf[C]())).(*C)
	return value, ok
}

// HasComponent returns true, if the entity has a component of type C.
func HasComponent[C IsComponent[C]](w *World, entityId EntityId) bool {
	return w.storage.HasComponent(entityId, ComponentTypeOf[C]())
}

// InsertResource inserts a new resource into the world.
// The resource should be provided as a non-pointer type.
//
// If the resource does not yet exist, a new value of the resources type will
// be allocated on the heap and the value provided will be copied into that memory location.
//
// If the world already contains a resource of the same type, this value will
// just be updated with the newly provided one.
func (w *World) InsertResource(resource any) {
	resType := reflect.PointerTo(reflect.TypeOf(resource))

	if existing, ok := w.resources[resType]; ok {
		// update existing value in place
		existing.Value.Elem().Set(reflect.ValueOf(resource))
		return
	}

	// allocate the resource on the heap and copy the provided value to it
	ptr := reflect.New(resType.Elem())
	ptr.Elem().Set(reflect.ValueOf(resource))

	w.resources[ptr.Type()] = resourceValue{
		Value: ptr,
	}
}

// RemoveResource removes a resource previously added with InsertResource.
func (w *World) RemoveResource(resourceType reflect.Type) {
	resType := reflect.PointerTo(resourceType)
	delete(w.resources, resType)
}

func (w *World) hasResource(ty reflect.Type) bool {
	_, ok := w.resources[reflect.PointerTo(ty)]
	return ok
}

// Resource returns a pointer to the resource of the given reflect type.
// The type must be the non-pointer type of the resource, i.e. the type of the resource
// as it was passed to InsertResource.
func (w *World) Resource(ty reflect.Type) (AnyPtr, bool) {
	resValue, ok := w.resources[reflect.PointerTo(ty)]
	if !ok {
		return nil, false
	}

	return resValue.Value.Interface(), true
}

// ResourceOf is a typed version of World.Resource.
func ResourceOf[T any](w *World) (*T, bool) {
	value, ok := w.Resource(reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}

	return value.(*T), true
}
