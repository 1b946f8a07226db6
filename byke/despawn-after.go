package byke

import "time"

var _ = ValidateComponent[DespawnWithDelay]()

// DespawnWithDelay despawns its entity once the timer runs out.
type DespawnWithDelay struct {
	Component[DespawnWithDelay]
	Timer Timer
}

func DespawnAfter(duration time.Duration) DespawnWithDelay {
	return DespawnWithDelay{
		Timer: NewTimer(duration, TimerModeOnce),
	}
}

type despawnWithDelayItem struct {
	EntityId
	DespawnWithDelay *DespawnWithDelay
}

func despawnWithDelaySystem(commands *Commands, vt VirtualTime, query Query[despawnWithDelayItem]) {
	for item := range query.Items() {
		if item.DespawnWithDelay.Timer.Tick(vt.Delta).Finished() {
			commands.Entity(item.EntityId).Despawn()
		}
	}
}
