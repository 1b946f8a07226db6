package byke

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type Greeting string

func TestApp_Schedules(t *testing.T) {
	var app App

	var order []string
	app.AddSystems(Startup, func() { order = append(order, "startup") })
	app.AddSystems(Update, func() { order = append(order, "update") })
	app.AddSystems(Render, func() { order = append(order, "render") })

	app.Update()
	app.Update()

	require.Equal(t, []string{"startup", "update", "render", "update", "render"}, order)
}

func TestApp_SteppedTime(t *testing.T) {
	var app App
	app.InsertResource(SteppedTime(100 * time.Millisecond))

	app.Update()
	app.Update()

	vt, ok := ResourceOf[VirtualTime](app.World())
	require.True(t, ok)
	require.Equal(t, 200*time.Millisecond, vt.Elapsed)
	require.Equal(t, 100*time.Millisecond, vt.Delta)
}

func TestApp_DespawnAfter(t *testing.T) {
	var app App
	app.InsertResource(SteppedTime(time.Second))

	entityId := app.World().Spawn(DespawnAfter(2500 * time.Millisecond))

	app.Update()
	app.Update()
	require.True(t, app.World().Contains(entityId))

	app.Update()
	require.False(t, app.World().Contains(entityId))
}

func TestMessages(t *testing.T) {
	var app App
	AddMessage[Greeting](&app)

	var written int
	writer := func(w *MessageWriter[Greeting]) {
		written++
		w.Write(Greeting(rune('a' + written - 1)))
	}

	var read []Greeting
	reader := func(r *MessageReader[Greeting]) {
		read = append(read[:0], r.Read()...)
	}

	w := app.World()

	w.RunSystem(writer)
	w.RunSystem(writer)
	w.RunSystem(reader)
	require.Equal(t, []Greeting{"a", "b"}, read)

	// nothing new
	w.RunSystem(reader)
	require.Empty(t, read)

	// still readable in the next frame
	w.RunSystem(writer)
	w.RunSchedule(Last)
	w.RunSystem(reader)
	require.Equal(t, []Greeting{"c"}, read)

	// messages not read within two frames are dropped
	w.RunSystem(writer)
	w.RunSchedule(Last)
	w.RunSchedule(Last)
	w.RunSystem(reader)
	require.Empty(t, read)
}

func TestTimer(t *testing.T) {
	t.Run("once", func(t *testing.T) {
		timer := NewTimer(time.Second, TimerModeOnce)

		require.False(t, timer.Tick(600*time.Millisecond).JustFinished())
		require.True(t, timer.Tick(600*time.Millisecond).JustFinished())
		require.True(t, timer.Finished())
		require.Equal(t, 1.0, timer.Fraction())

		require.False(t, timer.Tick(time.Second).JustFinished())
	})

	t.Run("repeating", func(t *testing.T) {
		timer := NewTimer(time.Second, TimerModeRepeating)

		timer.Tick(3500 * time.Millisecond)
		require.Equal(t, 3, timer.TimesFinishedThisTick())
		require.Equal(t, 500*time.Millisecond, timer.Elapsed())
		require.False(t, timer.Finished())
	})
}
