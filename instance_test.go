package kind

import (
	"fmt"
	"slices"
	"testing"
	"unsafe"

	"github.com/oliverbestmann/kind/byke"
	"github.com/stretchr/testify/require"
)

func TestInstance_Size(t *testing.T) {
	require.Equal(t, unsafe.Sizeof(byke.EntityId(0)), unsafe.Sizeof(Instance[Fruit]{}))
	require.Equal(t, unsafe.Sizeof(byke.EntityId(0)), unsafe.Sizeof(Instance[Any]{}))
}

func TestInstance_Query(t *testing.T) {
	w := buildFruitWorld()

	t.Run("component kind", func(t *testing.T) {
		query := byke.NewQuery[Instance[Apple]](w.World)

		apples := slices.Collect(query.Items())
		require.ElementsMatch(t, []Instance[Apple]{
			FromEntityUnchecked[Apple](w.Apple),
			FromEntityUnchecked[Apple](w.RottenApple),
		}, apples)
	})

	t.Run("defined kind", func(t *testing.T) {
		query := byke.NewQuery[Instance[Fruit]](w.World)

		var ids []EntityId
		for fruit := range query.Items() {
			ids = append(ids, fruit.Entity())
		}

		// every fruit exactly once
		require.ElementsMatch(t, []EntityId{w.Apple, w.Orange, w.RottenApple}, ids)
	})

	t.Run("any", func(t *testing.T) {
		query := byke.NewQuery[Instance[Any]](w.World)
		require.Equal(t, w.EntityCount(), query.Count())
	})

	t.Run("struct field", func(t *testing.T) {
		type item struct {
			Fruit  Instance[Fruit]
			Orange Orange
		}

		query := byke.NewQuery[item](w.World)

		orange := query.MustSingle()
		require.Equal(t, w.Orange, orange.Fruit.Entity())
		require.Equal(t, 5, orange.Orange.Juice)
	})

	t.Run("validity check", func(t *testing.T) {
		query := byke.NewQuery[Instance[Fruit]](w.World)

		fruit, ok := query.Get(w.Orange)
		require.True(t, ok)
		require.Equal(t, w.Orange, fruit.Entity())

		_, ok = query.Get(w.Stone)
		require.False(t, ok)
	})
}

func TestInstance_MultipleKinds(t *testing.T) {
	w := byke.NewWorld()
	both := w.Spawn(Apple{}, Orange{})

	apple, ok := FromEntity[Apple](w, both)
	require.True(t, ok)

	orange, ok := FromEntity[Orange](w, both)
	require.True(t, ok)

	require.True(t, Same(apple, orange))
	require.Zero(t, Compare(apple, orange))
}

func TestInstance_Any(t *testing.T) {
	w := buildFruitWorld()

	for _, entityId := range []EntityId{w.Apple, w.Stone, byke.NoEntityId, byke.PlaceholderEntityId} {
		instance := From(entityId)
		require.Equal(t, entityId, instance.Entity())
	}

	apple, _ := FromEntity[Apple](w.World, w.Apple)
	require.Equal(t, apple.Entity(), apple.Any().Entity())

	stone, ok := FromEntity[Any](w.World, w.Stone)
	require.True(t, ok)
	require.Equal(t, From(w.Stone), stone)
}

func TestInstance_Invalidation(t *testing.T) {
	w := buildFruitWorld()

	apple, ok := FromEntity[Apple](w.World, w.Apple)
	require.True(t, ok)

	w.RunSystem(func(commands *byke.Commands) {
		commands.Entity(w.Apple).Update(byke.RemoveComponent[Apple]())
	})

	// the instance still wraps the same entity
	require.Equal(t, w.Apple, apple.Entity())

	// but the entity is not an apple anymore
	require.False(t, apple.IsValid(w.World))

	_, ok = FromEntity[Apple](w.World, w.Apple)
	require.False(t, ok)

	query := byke.NewQuery[Instance[Apple]](w.World)
	require.False(t, query.Contains(w.Apple))
}

func TestInstance_Stale(t *testing.T) {
	w := byke.NewWorld()

	apple := SpawnIn(w, Apple{}).Instance()
	w.Despawn(apple.Entity())

	// the index is reused with a new generation
	replacement := SpawnIn(w, Apple{}).Instance()
	require.Equal(t, apple.Entity().Index(), replacement.Entity().Index())
	require.NotEqual(t, apple, replacement)

	require.False(t, apple.IsValid(w))
	require.True(t, replacement.IsValid(w))
}

func TestInstance_Retain(t *testing.T) {
	w := buildFruitWorld()

	fruits := []Instance[Fruit]{
		FromEntityUnchecked[Fruit](w.Apple),
		FromEntityUnchecked[Fruit](w.Stone),
		FromEntityUnchecked[Fruit](w.Orange),
	}

	w.Despawn(w.Orange)

	fruits = Retain(w.World, fruits)
	require.Equal(t, []Instance[Fruit]{FromEntityUnchecked[Fruit](w.Apple)}, fruits)
}

func TestInstance_MapKey(t *testing.T) {
	w := buildFruitWorld()

	apple, _ := FromEntity[Apple](w.World, w.Apple)

	eaten := map[Instance[Apple]]bool{}
	eaten[apple] = true

	require.True(t, eaten[FromEntityUnchecked[Apple](w.Apple)])
	require.False(t, eaten[FromEntityUnchecked[Apple](w.RottenApple)])
}

func TestInstance_Formatting(t *testing.T) {
	entityId := byke.EntityId(0x0000_0002_0000_0007)

	apple := FromEntityUnchecked[Apple](entityId)
	require.Equal(t, "Apple(7v2)", apple.String())
	require.Equal(t, "Apple(7v2)", fmt.Sprint(apple))
	require.Equal(t, "Apple(7v2)", apple.LogValue().String())

	require.True(t, Placeholder[Apple]().IsPlaceholder())
	require.False(t, apple.IsPlaceholder())
}

func TestInstance_Compare(t *testing.T) {
	a := FromEntityUnchecked[Apple](byke.EntityId(1 << 32))
	b := FromEntityUnchecked[Apple](byke.EntityId(2 << 32))

	require.Negative(t, a.Compare(b))
	require.Positive(t, b.Compare(a))
	require.Zero(t, a.Compare(a))
}

func BenchmarkInstance_Query(b *testing.B) {
	w := byke.NewWorld()

	for idx := range 10_000 {
		if idx%2 == 0 {
			w.Spawn(Apple{Crunch: idx})
		} else {
			w.Spawn(Orange{Juice: idx})
		}
	}

	query := byke.NewQuery[Instance[Fruit]](w)

	for b.Loop() {
		var count int
		for range query.Items() {
			count++
		}

		if count != 10_000 {
			b.Fatalf("expected 10000 fruits, got %d", count)
		}
	}
}
