package byke

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

type Position struct {
	Component[Position]
	X, Y int
}

type Velocity struct {
	Component[Velocity]
	X, Y int
}

type Player struct {
	Component[Player]
}

type Enemy struct {
	Component[Enemy]
}

type Health struct {
	Component[Health]
	Value int
}

// Creature requires a Health component
type Creature struct {
	Component[Creature]
}

func (Creature) RequireComponents() []ErasedComponent {
	return []ErasedComponent{Health{Value: 100}}
}

var _ = ValidateComponent[Position]()
var _ = ValidateComponent[Velocity]()
var _ = ValidateComponent[Player]()
var _ = ValidateComponent[Enemy]()
var _ = ValidateComponent[Health]()
var _ = ValidateComponent[Creature]()

type simpleWorld struct {
	*World
	Player, Tree, Enemy EntityId
}

func buildSimpleWorld() simpleWorld {
	w := NewWorld()

	return simpleWorld{
		World:  w,
		Player: w.Spawn(Named("Player"), Player{}, Position{}, Velocity{X: 1}),
		Tree:   w.Spawn(Named("Tree"), Position{}),
		Enemy:  w.Spawn(Named("Enemy"), Enemy{}, Position{}, Velocity{Y: 1}),
	}
}

func requireCallback(t *testing.T, fn func(allGood func())) {
	t.Helper()

	var called bool
	fn(func() { called = true })
	require.True(t, called)
}

func TestWorld_Spawn(t *testing.T) {
	w := buildSimpleWorld()

	require.Equal(t, 3, w.EntityCount())
	require.True(t, w.Contains(w.Player))

	name, ok := GetComponent[Name](w.World, w.Tree)
	require.True(t, ok)
	require.Equal(t, "Tree", name.String())

	require.True(t, HasComponent[Player](w.World, w.Player))
	require.False(t, HasComponent[Player](w.World, w.Enemy))
}

func TestWorld_InsertAndRemove(t *testing.T) {
	w := buildSimpleWorld()

	require.NoError(t, w.InsertComponents(w.Tree, Velocity{X: 5}))

	velocity, ok := GetComponent[Velocity](w.World, w.Tree)
	require.True(t, ok)
	require.Equal(t, 5, velocity.X)

	require.True(t, w.RemoveComponent(w.Tree, ComponentTypeOf[Velocity]()))
	require.False(t, w.RemoveComponent(w.Tree, ComponentTypeOf[Velocity]()))
	require.False(t, HasComponent[Velocity](w.World, w.Tree))

	w.Despawn(w.Tree)
	err := w.InsertComponents(w.Tree, Velocity{})
	require.ErrorIs(t, err, ErrNoSuchEntity)
}

func TestWorld_RequiredComponents(t *testing.T) {
	w := NewWorld()

	creature := w.Spawn(Creature{})
	health, ok := GetComponent[Health](w, creature)
	require.True(t, ok)
	require.Equal(t, 100, health.Value)

	// a directly specified component wins over the required default
	weak := w.Spawn(Creature{}, Health{Value: 5})
	health, _ = GetComponent[Health](w, weak)
	require.Equal(t, 5, health.Value)

	// inserting a creature again does not reset the health
	health.Value = 7
	require.NoError(t, w.InsertComponents(weak, Creature{}))
	health, _ = GetComponent[Health](w, weak)
	require.Equal(t, 7, health.Value)
}

func TestWorld_DespawnReusesIndex(t *testing.T) {
	w := NewWorld()

	first := w.Spawn(Position{})
	require.True(t, w.Despawn(first))
	require.False(t, w.Despawn(first))

	second := w.Spawn(Position{})
	require.Equal(t, first.Index(), second.Index())
	require.NotEqual(t, first, second)

	require.False(t, w.Contains(first))
	require.True(t, w.Contains(second))
	require.False(t, w.Matches(first, Predicate{}))
}

func TestWorld_Hierarchy(t *testing.T) {
	w := NewWorld()

	parent := w.Spawn(
		Named("Parent"),
		SpawnChild(Named("Child A")),
		SpawnChild(Named("Child B"), SpawnChild(Named("Grandchild"))),
	)

	children, ok := GetComponent[Children](w, parent)
	require.True(t, ok)
	require.Equal(t, 2, children.Len())
	require.Equal(t, 4, w.EntityCount())

	childB := children.Entities()[1]
	grandchildren, _ := GetComponent[Children](w, childB)
	grandchild := grandchildren.Entities()[0]

	require.Equal(t, []EntityId{childB, parent}, slices.Collect(Parents(w, grandchild)))

	// removing the relation updates the parent
	childA := children.Entities()[0]
	require.True(t, w.RemoveComponent(childA, ComponentTypeOf[ChildOf]()))

	children, _ = GetComponent[Children](w, parent)
	require.Equal(t, []EntityId{childB}, children.Entities())

	// re-parenting moves the child
	require.NoError(t, w.InsertComponents(grandchild, ChildOf{Parent: parent}))
	require.False(t, HasComponent[Children](w, childB))

	children, _ = GetComponent[Children](w, parent)
	require.Equal(t, []EntityId{childB, grandchild}, children.Entities())

	// despawn is recursive
	w.Despawn(parent)
	require.Equal(t, 1, w.EntityCount())
	require.True(t, w.Contains(childA))
}

func TestWorld_ChildrenIsManaged(t *testing.T) {
	w := NewWorld()

	require.Panics(t, func() {
		w.Spawn(Children{})
	})
}

func TestWorld_Resources(t *testing.T) {
	type Gravity struct{ Value float64 }

	w := NewWorld()
	w.InsertResource(Gravity{Value: 9.81})

	gravity, ok := ResourceOf[Gravity](w)
	require.True(t, ok)
	require.Equal(t, 9.81, gravity.Value)

	requireCallback(t, func(allGood func()) {
		w.RunSystem(func(value Gravity, ptr *Gravity) {
			allGood()
			require.Equal(t, 9.81, value.Value)
			ptr.Value = 1
		})
	})

	require.Equal(t, 1.0, gravity.Value)

	require.True(t, w.RunSystem(ResourceExists[Gravity]).(bool))
}

func TestWorld_RunIf(t *testing.T) {
	type Enabled struct{ Value bool }

	w := NewWorld()
	w.InsertResource(Enabled{})

	var runs int
	system := func() { runs++ }

	isEnabled := func(enabled Enabled) bool { return enabled.Value }

	w.AddSystems(Update, System(system).RunIf(isEnabled))

	w.RunSchedule(Update)
	require.Equal(t, 0, runs)

	w.InsertResource(Enabled{Value: true})
	w.RunSchedule(Update)
	require.Equal(t, 1, runs)
}

func TestWorld_InValue(t *testing.T) {
	w := NewWorld()

	result := w.RunSystemWithInValue(func(in In[int]) int {
		return in.Value * 2
	}, 21)

	require.Equal(t, 42, result)
}

func TestWorld_Local(t *testing.T) {
	w := NewWorld()

	counter := func(count *Local[int]) int {
		count.Value += 1
		return count.Value
	}

	w.RunSystem(counter)
	require.Equal(t, 2, w.RunSystem(counter))
}

func TestWorld_ClosuresAreDistinctSystems(t *testing.T) {
	w := NewWorld()

	makeSystem := func(value int) func(count *Local[int]) int {
		return func(count *Local[int]) int {
			count.Value += value
			return count.Value
		}
	}

	one := makeSystem(1)
	ten := makeSystem(10)

	require.Equal(t, 1, w.RunSystem(one))
	require.Equal(t, 10, w.RunSystem(ten))
	require.Equal(t, 2, w.RunSystem(one))
	require.Equal(t, 20, w.RunSystem(ten))
}

func TestWorld_RunSystemOnce(t *testing.T) {
	w := NewWorld()

	prepared := len(w.systems)

	for value := range 10 {
		result := w.RunSystemOnce(func(count *Local[int]) int {
			count.Value += value
			return count.Value
		})

		// no state is kept between runs
		require.Equal(t, value, result)
	}

	require.Len(t, w.systems, prepared)
}

func TestWorld_ObserverSystemsAreNotKept(t *testing.T) {
	w := NewWorld()
	target := w.Spawn(Player{})

	prepared := len(w.systems)

	var calls int
	for range 3 {
		w.AddObserver(NewObserver(func(on On[Explode]) {
			calls++
		}).WatchEntity(target))
	}

	w.TriggerEntity(target, Explode{})
	require.Equal(t, 3, calls)
	require.Len(t, w.systems, prepared)

	// despawning the target removes the scoped observers
	w.Despawn(target)
	observers := NewQuery[*Observer](w)
	require.Equal(t, 0, observers.Count())
}
