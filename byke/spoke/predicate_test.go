package spoke

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPredicate(t *testing.T) {
	s := NewStorage()

	moving := MakeEntityId(0, 1)
	frozen := MakeEntityId(1, 1)
	static := MakeEntityId(2, 1)

	s.Spawn(1, moving, []ErasedComponent{Position{}, Velocity{}})
	s.Spawn(1, frozen, []ErasedComponent{Position{}, Velocity{}, Frozen{}})
	s.Spawn(1, static, []ErasedComponent{Position{}})

	withVelocity := Predicate{With: ComponentTypeOf[Velocity]()}
	withFrozen := Predicate{With: ComponentTypeOf[Frozen]()}

	t.Run("zero matches everything", func(t *testing.T) {
		q := s.NewQuery(Predicate{})
		require.Equal(t, []EntityId{moving, frozen, static}, collectIds(q, QueryContext{}))
		require.Equal(t, "*", Predicate{}.String())
	})

	t.Run("not", func(t *testing.T) {
		q := s.NewQuery(All(withVelocity, Negate(withFrozen)))
		require.Equal(t, []EntityId{moving}, collectIds(q, QueryContext{}))
	})

	t.Run("double negation", func(t *testing.T) {
		p := Negate(Negate(withFrozen))
		require.Equal(t, withFrozen, p)
	})

	t.Run("or", func(t *testing.T) {
		q := s.NewQuery(Any(withFrozen, Predicate{Without: ComponentTypeOf[Velocity]()}))
		require.Equal(t, []EntityId{frozen, static}, collectIds(q, QueryContext{}))
	})

	t.Run("all of nothing", func(t *testing.T) {
		require.True(t, All().IsZero())
		require.True(t, All(Predicate{}, Predicate{}).IsZero())
		require.Equal(t, withFrozen, All(Predicate{}, withFrozen))
	})

	t.Run("not of a change filter is evaluated per entity", func(t *testing.T) {
		p := Negate(Predicate{Changed: ComponentTypeOf[Position]()})
		require.False(t, p.IsArchetypeOnly())

		ref, _ := s.Get(QueryContext{LastRun: 1, Tick: 2}, static)
		require.True(t, p.MatchesArchetype(ref.Archetype()))
		require.True(t, p.Matches(ref))

		ref.GetMut(ComponentTypeOf[Position]())
		require.False(t, p.Matches(ref))
	})

	t.Run("matches single entity", func(t *testing.T) {
		require.True(t, s.Matches(QueryContext{}, frozen, withFrozen))
		require.False(t, s.Matches(QueryContext{}, moving, withFrozen))
		require.False(t, s.Matches(QueryContext{}, MakeEntityId(7, 1), Predicate{}))
	})
}
