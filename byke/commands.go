package byke

import (
	"log/slog"
	"reflect"
)

type Command func(world *World)

type EntityCommand func(world *World, entityId EntityId)

// Commands is a SystemParam that allows you to send commands to a world.
// It allows you to spawn and despawn entities and to add and remove components.
// It must be injected as a pointer into a system. Commands are applied
// once the system returns.
type Commands struct {
	world *World
	queue []Command
}

func (c *Commands) applyToWorld() {
	// commands may run observers of the same system, which enqueue into c again
	for len(c.queue) > 0 {
		queue := c.queue
		c.queue = nil

		for _, command := range queue {
			command(c.world)
		}
	}
}

func (*Commands) init(world *World) SystemParamState {
	return (*commandSystemParamState)(
		&Commands{world: world},
	)
}

func (c *Commands) Queue(command Command) *Commands {
	c.queue = append(c.queue, command)
	return c
}

// Spawn reserves a new EntityId and queues the spawn of an entity with the given components.
func (c *Commands) Spawn(components ...ErasedComponent) EntityCommands {
	entityId := c.world.reserveEntityId()

	c.Queue(func(world *World) {
		world.spawnWithEntityId(entityId, components)
	})

	return EntityCommands{
		entityId: entityId,
		commands: c,
	}
}

// Entity returns the EntityCommands for an existing entity.
func (c *Commands) Entity(entityId EntityId) EntityCommands {
	return EntityCommands{
		entityId: entityId,
		commands: c,
	}
}

// Trigger queues a global trigger of the event value.
func (c *Commands) Trigger(eventValue any) *Commands {
	return c.Queue(func(world *World) {
		world.Trigger(eventValue)
	})
}

// RunSystem queues a system run.
func (c *Commands) RunSystem(system AnySystem) *Commands {
	return c.Queue(func(world *World) {
		world.RunSystem(system)
	})
}

type EntityCommands struct {
	entityId EntityId
	commands *Commands
}

func (e EntityCommands) Id() EntityId {
	return e.entityId
}

// Commands returns the Commands these EntityCommands enqueue into.
func (e EntityCommands) Commands() *Commands {
	return e.commands
}

func (e EntityCommands) Update(commands ...EntityCommand) EntityCommands {
	e.commands.Queue(func(world *World) {
		for _, command := range commands {
			command(world, e.entityId)
		}
	})

	return e
}

// Insert queues the insertion of the given components.
func (e EntityCommands) Insert(components ...ErasedComponent) EntityCommands {
	return e.Update(func(world *World, entityId EntityId) {
		if err := world.InsertComponents(entityId, components...); err != nil {
			slog.Warn("Failed to insert components", slog.Any("entity", entityId), slog.Any("err", err))
		}
	})
}

func (e EntityCommands) Despawn() {
	e.commands.Queue(func(world *World) {
		if !world.Despawn(e.entityId) {
			slog.Warn("Cannot despawn entity, it does not exist", slog.Any("entity", e.entityId))
		}
	})
}

// Observe adds an observer that is only triggered for this entity.
func (e EntityCommands) Observe(system AnySystem) EntityCommands {
	return e.Update(func(world *World, entityId EntityId) {
		world.AddObserver(NewObserver(system).WatchEntity(entityId))
	})
}

// Trigger queues a trigger of the event value targeting this entity.
func (e EntityCommands) Trigger(eventValue any) EntityCommands {
	return e.Update(func(world *World, entityId EntityId) {
		world.TriggerEntity(entityId, eventValue)
	})
}

func RemoveComponent[C IsComponent[C]]() EntityCommand {
	componentType := ComponentTypeOf[C]()

	return func(world *World, entityId EntityId) {
		world.RemoveComponent(entityId, componentType)
	}
}

func InsertComponent[C IsComponent[C]](maybeValue ...C) EntityCommand {
	if len(maybeValue) > 1 {
		panic("InsertComponent must be called with at most one argument")
	}

	var component C
	if len(maybeValue) == 1 {
		component = maybeValue[0]
	}

	return func(world *World, entityId EntityId) {
		if err := world.InsertComponents(entityId, component); err != nil {
			slog.Warn("Failed to insert component", slog.Any("entity", entityId), slog.Any("err", err))
		}
	}
}

type commandSystemParamState Commands

func (c *commandSystemParamState) getValue(systemContext) (reflect.Value, error) {
	return reflect.ValueOf((*Commands)(c)), nil
}

func (c *commandSystemParamState) cleanupValue() {
	(*Commands)(c).applyToWorld()
}

func (*commandSystemParamState) valueType() reflect.Type {
	return reflect.TypeFor[*Commands]()
}
