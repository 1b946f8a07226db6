package byke

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/oliverbestmann/kind/byke/internal/refl"
	"github.com/oliverbestmann/kind/byke/spoke"
)

var _ = ValidateComponent[Observer]()

// On must be the first parameter of an observer system. It holds the
// event that triggered the observer and the targeted entity, if any.
type On[E any] struct {
	Event E

	// The entity the event was triggered for. NoEntityId for global triggers.
	Target EntityId
}

func (On[E]) init(*World) SystemParamState {
	return onSystemParamState{
		onType:    reflect.TypeFor[On[E]](),
		makeValue: On[E]{}.new,
	}
}

func (On[E]) eventType() reflect.Type {
	return reflect.TypeFor[E]()
}

func (On[E]) isOn(isOn) {}

// new creates a new value of this type and returns it
func (On[E]) new(trigger systemTrigger) isOn {
	event, _ := trigger.EventValue.(E)

	return On[E]{
		Event:  event,
		Target: trigger.TargetId,
	}
}

type onSystemParamState struct {
	onType    reflect.Type
	makeValue func(trigger systemTrigger) isOn
}

func (o onSystemParamState) getValue(sc systemContext) (reflect.Value, error) {
	return reflect.ValueOf(o.makeValue(sc.Trigger)), nil
}

func (o onSystemParamState) cleanupValue() {}

func (o onSystemParamState) valueType() reflect.Type {
	return o.onType
}

type isOn interface {
	isOn(isOn)
	new(trigger systemTrigger) isOn
	eventType() reflect.Type
}

var _ isOn = On[bool]{}

// Observer is a component that holds an observer system. Observers
// run when an event of their type is triggered.
type Observer struct {
	Component[Observer]
	eventType reflect.Type
	callback  AnySystem
	entities  []EntityId
	system    *preparedSystem
}

// NewObserver creates an Observer for the given system. The first parameter of the
// system must be of type On[E].
func NewObserver(fn AnySystem) Observer {
	value := reflect.ValueOf(fn)

	if value.Kind() != reflect.Func {
		panic("Observer must be a function")
	}

	funcType := value.Type()
	if funcType.NumIn() < 1 {
		panic("Observers first parameter must be of type On[Event]")
	}

	triggerType := funcType.In(0)
	if triggerType.Kind() != reflect.Struct || !refl.ImplementsInterfaceDirectly[isOn](triggerType) {
		panic(fmt.Sprintf("Observers first parameter must be of type On[Event], got %s", triggerType))
	}

	triggerValue := reflect.New(triggerType).Elem().Interface().(isOn)

	return Observer{
		eventType: triggerValue.eventType(),
		callback:  fn,
	}
}

// WatchEntity scopes the observer to the given entity. A scoped observer is
// only triggered for events targeting one of its entities.
func (o Observer) WatchEntity(entityId EntityId) Observer {
	o.entities = append(slices.Clone(o.entities), entityId)
	return o
}

func (o Observer) ObservesType(ty reflect.Type) bool {
	return ty != nil && ty.AssignableTo(o.eventType)
}

func (o Observer) IsScoped() bool {
	return len(o.entities) > 0
}

func (o Observer) Observes(id EntityId) bool {
	return slices.Contains(o.entities, id)
}

// AddObserver adds a new observer.
// Observers are entities containing the Observer component.
func (w *World) AddObserver(observer Observer) EntityId {
	// prepare system here. this will also panic if the systems parameters
	// are not well formed. The observer owns its system, it is dropped
	// together with the observer.
	observer.system = w.prepareSystemUncached(asSystemConfig(observer.callback))

	return w.Spawn(observer)
}

// Trigger runs all global observers for the event.
func (w *World) Trigger(eventValue any) {
	w.TriggerEntity(NoEntityId, eventValue)
}

// TriggerEntity runs all observers for the event that watch the target entity,
// and all global observers.
func (w *World) TriggerEntity(targetId EntityId, eventValue any) {
	eventType := reflect.TypeOf(eventValue)

	var matching []*preparedSystem

	for ref := range w.observers.Iter(spoke.QueryContext{}) {
		observer := ref.Get(ComponentTypeOf[Observer]()).(*Observer)

		if !observer.ObservesType(eventType) {
			continue
		}

		if observer.IsScoped() && (targetId == NoEntityId || !observer.Observes(targetId)) {
			continue
		}

		matching = append(matching, observer.system)
	}

	// observers may spawn or despawn entities, so we do not run them
	// while iterating the query
	for _, system := range matching {
		w.runSystem(system, systemContext{
			Trigger: systemTrigger{
				TargetId:   targetId,
				EventValue: eventValue,
			},
		})
	}
}

// unwatchEntity removes a despawned entity from all observers. Observers that
// do not watch any entity anymore are despawned.
func (w *World) unwatchEntity(entityId EntityId) {
	var orphans []EntityId

	for ref := range w.observers.Iter(spoke.QueryContext{}) {
		observer := ref.Get(ComponentTypeOf[Observer]()).(*Observer)
		if !observer.Observes(entityId) {
			continue
		}

		observer.entities = slices.DeleteFunc(observer.entities, func(id EntityId) bool {
			return id == entityId
		})

		if len(observer.entities) == 0 {
			orphans = append(orphans, ref.EntityId())
		}
	}

	for _, observerId := range orphans {
		w.Despawn(observerId)
	}
}
