package kind

import (
	"testing"

	"github.com/oliverbestmann/kind/byke"
	"github.com/stretchr/testify/require"
)

func TestInstanceRef_Query(t *testing.T) {
	w := buildFruitWorld()

	query := byke.NewQuery[InstanceRef[Orange]](w.World)

	orange := query.MustSingle()
	require.Equal(t, w.Orange, orange.Entity())
	require.Equal(t, 5, orange.Get().Juice)

	// the instance matches the same entities as a plain Instance query
	instances := byke.NewQuery[Instance[Orange]](w.World)
	require.True(t, instances.Contains(orange.Instance().Entity()))
}

func TestInstanceMut_Query(t *testing.T) {
	w := buildFruitWorld()

	w.RunSystem(func(apples byke.Query[InstanceMut[Apple]]) {
		for apple := range apples.Items() {
			require.True(t, apple.IsAdded())
			apple.Get().Crunch += 10
		}
	})

	apple, ok := Get(w.World, FromEntityUnchecked[Apple](w.Apple))
	require.True(t, ok)
	require.Equal(t, 13, apple.Crunch)
}

func TestInstanceMut_ChangeFlags(t *testing.T) {
	w := buildFruitWorld()

	var added, changed []EntityId

	system := func(apples byke.Query[InstanceMut[Apple]]) {
		added, changed = nil, nil

		for apple := range apples.Items() {
			if apple.IsAdded() {
				added = append(added, apple.Entity())
			}

			if apple.IsChanged() {
				changed = append(changed, apple.Entity())
			}
		}
	}

	w.RunSystem(system)
	require.ElementsMatch(t, []EntityId{w.Apple, w.RottenApple}, added)

	// mutable access within the previous run is not a change for this run
	w.RunSystem(system)
	require.Empty(t, added)
	require.Empty(t, changed)

	newApple := w.Spawn(Apple{})

	w.RunSystem(system)
	require.Equal(t, []EntityId{newApple}, added)
	require.Equal(t, []EntityId{newApple}, changed)
}

func TestMutOf_FlagsOutsideSystem(t *testing.T) {
	w := buildFruitWorld()

	for range 2 {
		apple, ok := MutOf[Apple](w.World, w.Apple)
		require.True(t, ok)
		require.True(t, apple.IsAdded())
		require.True(t, apple.IsChanged())
	}
}

func TestRefOf(t *testing.T) {
	w := buildFruitWorld()

	ref, ok := RefOf[Apple](w.World, w.Apple)
	require.True(t, ok)
	require.Equal(t, 3, ref.Get().Crunch)

	_, ok = RefOf[Apple](w.World, w.Orange)
	require.False(t, ok)

	mut, ok := MutOf[Orange](w.World, w.Orange)
	require.True(t, ok)
	mut.Get().Juice = 1

	require.Equal(t, 1, mut.AsRef().Get().Juice)

	orange, _ := Get(w.World, mut.Instance())
	require.Equal(t, 1, orange.Juice)

	w.Despawn(w.Orange)
	_, ok = MutOf[Orange](w.World, w.Orange)
	require.False(t, ok)
}

func TestGetMut(t *testing.T) {
	w := buildFruitWorld()

	apple, _ := FromEntity[Apple](w.World, w.Apple)

	value, ok := GetMut(w.World, apple)
	require.True(t, ok)
	value.Crunch = 0

	crunch, _ := Get(w.World, apple)
	require.Zero(t, crunch.Crunch)

	// a stale apple is never found
	w.Despawn(w.Apple)

	_, ok = GetMut(w.World, apple)
	require.False(t, ok)

	_, ok = Get(w.World, apple)
	require.False(t, ok)
}
