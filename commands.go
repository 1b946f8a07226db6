package kind

import (
	"log/slog"

	"github.com/oliverbestmann/kind/byke"
)

// InstanceCommands issues commands for an entity of kind K. The commands are
// queued like byke.EntityCommands.
//
// Kind specific commands are plain functions accepting InstanceCommands:
//
//	func Eat(fruit kind.InstanceCommands[Fruit], by kind.Instance[Human]) { ... }
type InstanceCommands[K any] struct {
	commands byke.EntityCommands
	instance Instance[K]
}

// CommandsFor returns the commands for the given instance.
func CommandsFor[K any](commands *byke.Commands, instance Instance[K]) InstanceCommands[K] {
	return InstanceCommands[K]{
		commands: commands.Entity(instance.id),
		instance: instance,
	}
}

// Spawn queues the spawn of a new entity with the component value and any extra
// components. The entity is of kind C.
func Spawn[C byke.IsComponent[C]](commands *byke.Commands, value C, extra ...byke.ErasedComponent) InstanceCommands[C] {
	components := append([]byke.ErasedComponent{value}, extra...)

	entityCommands := commands.Spawn(components...)

	return InstanceCommands[C]{
		commands: entityCommands,
		instance: Instance[C]{id: entityCommands.Id()},
	}
}

// Insert queues the insertion of the component value. The entity is of kind C once
// the commands are applied.
func Insert[C byke.IsComponent[C]](entityCommands byke.EntityCommands, value C) InstanceCommands[C] {
	entityCommands.Insert(value)

	return InstanceCommands[C]{
		commands: entityCommands,
		instance: Instance[C]{id: entityCommands.Id()},
	}
}

// CastCommands changes the kind of the commands. See Cast.
func CastCommands[U, T any](commands InstanceCommands[T]) InstanceCommands[U] {
	return InstanceCommands[U]{
		commands: commands.commands,
		instance: Cast[U](commands.instance),
	}
}

func (c InstanceCommands[K]) Instance() Instance[K] {
	return c.instance
}

func (c InstanceCommands[K]) Entity() EntityId {
	return c.instance.id
}

// Commands returns the untyped commands of the entity.
func (c InstanceCommands[K]) Commands() byke.EntityCommands {
	return c.commands
}

func (c InstanceCommands[K]) Insert(components ...byke.ErasedComponent) InstanceCommands[K] {
	c.commands.Insert(components...)
	return c
}

func (c InstanceCommands[K]) Update(commands ...byke.EntityCommand) InstanceCommands[K] {
	c.commands.Update(commands...)
	return c
}

func (c InstanceCommands[K]) Despawn() {
	c.commands.Despawn()
}

// Observe adds an observer for events targeting this instance.
func (c InstanceCommands[K]) Observe(system byke.AnySystem) InstanceCommands[K] {
	c.commands.Observe(system)
	return c
}

// Trigger queues a trigger of the event targeting this instance.
func (c InstanceCommands[K]) Trigger(event any) InstanceCommands[K] {
	c.commands.Trigger(event)
	return c
}

// TriggerPropagate queues a trigger of the event targeting this instance and
// all of its ancestors of kind K. See Trigger.
func (c InstanceCommands[K]) TriggerPropagate(event any) InstanceCommands[K] {
	instance := c.instance

	c.commands.Commands().Queue(func(world *byke.World) {
		if err := Trigger(world, instance, event, true); err != nil {
			slog.Warn("Failed to trigger event", slog.Any("target", instance), slog.Any("err", err))
		}
	})

	return c
}
