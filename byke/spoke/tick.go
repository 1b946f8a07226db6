package spoke

// Tick counts system executions in a world
type Tick uint32

const NoTick Tick = 0

// IsNewerThan returns true if the tick happened after the other tick.
func (t Tick) IsNewerThan(other Tick) bool {
	return t != NoTick && t > other
}

// QueryContext holds the ticks a query is evaluated with.
type QueryContext struct {
	// Last time that the system running this query was executed
	LastRun Tick

	// The current tick of the world. Mutable access marks components
	// as changed at this tick.
	Tick Tick
}
