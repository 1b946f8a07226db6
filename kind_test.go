package kind

import (
	"testing"

	"github.com/oliverbestmann/kind/byke"
	"github.com/stretchr/testify/require"
)

type Apple struct {
	byke.Component[Apple]
	Crunch int
}

type Orange struct {
	byke.Component[Orange]
	Juice int
}

type Rotten struct {
	byke.Component[Rotten]
}

type Fruit struct {
	Of[byke.Or[byke.With[Apple], byke.With[Orange]]]
}

type FreshFruit struct {
	Of[byke.And[Filter[Fruit], byke.Without[Rotten]]]
}

type Basket struct {
	Of[byke.With[byke.Children]]
}

func (Basket) KindName() string {
	return "Basket"
}

var _ = byke.ValidateComponent[Apple]()
var _ = byke.ValidateComponent[Orange]()
var _ = byke.ValidateComponent[Rotten]()

var _ = Validate[Apple]()
var _ = Validate[Fruit]()
var _ = Validate[FreshFruit]()

type fruitWorld struct {
	*byke.World
	Apple, Orange, RottenApple, Stone EntityId
}

func buildFruitWorld() fruitWorld {
	w := byke.NewWorld()

	return fruitWorld{
		World:       w,
		Apple:       w.Spawn(Apple{Crunch: 3}),
		Orange:      w.Spawn(Orange{Juice: 5}),
		RottenApple: w.Spawn(Apple{}, Rotten{}),
		Stone:       w.Spawn(byke.Named("Stone")),
	}
}

func TestPredicateOf(t *testing.T) {
	t.Run("component", func(t *testing.T) {
		predicate := PredicateOf[Apple]()
		require.Same(t, byke.ComponentTypeOf[Apple](), predicate.With)
	})

	t.Run("any", func(t *testing.T) {
		require.True(t, PredicateOf[Any]().IsZero())
	})

	t.Run("definition", func(t *testing.T) {
		w := buildFruitWorld()

		predicate := PredicateOf[Fruit]()
		require.True(t, w.Matches(w.Apple, predicate))
		require.True(t, w.Matches(w.Orange, predicate))
		require.False(t, w.Matches(w.Stone, predicate))
	})

	t.Run("composed", func(t *testing.T) {
		w := buildFruitWorld()

		predicate := PredicateOf[FreshFruit]()
		require.True(t, w.Matches(w.Apple, predicate))
		require.False(t, w.Matches(w.RottenApple, predicate))
	})

	t.Run("invalid", func(t *testing.T) {
		require.Panics(t, func() { PredicateOf[string]() })
		require.Panics(t, func() { PredicateOf[*Apple]() })
		require.Panics(t, func() { PredicateOf[error]() })
	})
}

func TestNameOf(t *testing.T) {
	require.Equal(t, "Apple", NameOf[Apple]())
	require.Equal(t, "Any", NameOf[Any]())
	require.Equal(t, "Basket", NameOf[Basket]())
	require.Equal(t, "Instance[Fruit]", NameOf[Instance[Fruit]]())
}

func TestFilter_Query(t *testing.T) {
	w := buildFruitWorld()

	type freshFruits struct {
		_ Filter[FreshFruit]
		byke.EntityId
	}

	query := byke.NewQuery[freshFruits](w.World)

	var ids []EntityId
	for item := range query.Items() {
		ids = append(ids, item.EntityId)
	}

	require.ElementsMatch(t, []EntityId{w.Apple, w.Orange}, ids)
}
