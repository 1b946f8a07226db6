package byke

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type Explode struct {
	Radius int
}

type Shout struct{}

func TestObserver_Global(t *testing.T) {
	w := NewWorld()

	var events []On[Explode]
	w.AddObserver(NewObserver(func(on On[Explode]) {
		events = append(events, on)
	}))

	w.Trigger(Explode{Radius: 3})
	w.Trigger(Shout{})

	require.Len(t, events, 1)
	require.Equal(t, 3, events[0].Event.Radius)
	require.Equal(t, NoEntityId, events[0].Target)

	// global observers also see targeted events
	target := w.Spawn(Named("Bomb"))
	w.TriggerEntity(target, Explode{Radius: 5})

	require.Len(t, events, 2)
	require.Equal(t, target, events[1].Target)
}

func TestObserver_Scoped(t *testing.T) {
	w := NewWorld()

	bomb := w.Spawn(Named("Bomb"))
	other := w.Spawn(Named("Other"))

	var targets []EntityId
	observerId := w.AddObserver(NewObserver(func(on On[Explode]) {
		targets = append(targets, on.Target)
	}).WatchEntity(bomb))

	w.Trigger(Explode{})
	w.TriggerEntity(other, Explode{})
	w.TriggerEntity(bomb, Explode{})

	require.Equal(t, []EntityId{bomb}, targets)

	// the observer goes away with the last entity it watches
	w.Despawn(bomb)
	require.False(t, w.Contains(observerId))
}

func TestObserver_InterfaceEvent(t *testing.T) {
	w := NewWorld()

	var count int
	w.AddObserver(NewObserver(func(on On[any]) {
		count++
	}))

	w.Trigger(Explode{})
	w.Trigger(Shout{})

	require.Equal(t, 2, count)
}

func TestObserver_Commands(t *testing.T) {
	w := NewWorld()

	w.AddObserver(NewObserver(func(on On[Explode], commands *Commands) {
		commands.Entity(on.Target).Despawn()
	}))

	bomb := w.Spawn(Named("Bomb"))
	w.TriggerEntity(bomb, Explode{})

	require.False(t, w.Contains(bomb))
}

func TestObserver_InvalidSystem(t *testing.T) {
	require.Panics(t, func() { NewObserver(func(event Explode) {}) })
	require.Panics(t, func() { NewObserver(func() {}) })
	require.Panics(t, func() { NewObserver(42) })
}
