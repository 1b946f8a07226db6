package byke

import (
	"fmt"
)

// ScheduleId identifies a schedule. All implementing types must be comparable.
type ScheduleId interface {
	fmt.Stringer
	isSchedule()
}

type scheduleId struct {
	name string
}

func (*scheduleId) isSchedule() {}

func (s *scheduleId) String() string {
	return s.name
}

// MakeScheduleId creates a new unique ScheduleId.
// The name passed to the schedule is used for debugging
func MakeScheduleId(name string) ScheduleId {
	return &scheduleId{name: name}
}

var (
	// Main is the main schedule that executes all other schedules in the correct order.
	Main = MakeScheduleId("Main")

	PreStartup  = MakeScheduleId("PreStartup")
	Startup     = MakeScheduleId("Startup")
	PostStartup = MakeScheduleId("PostStartup")
	First       = MakeScheduleId("First")
	PreUpdate   = MakeScheduleId("PreUpdate")
	Update      = MakeScheduleId("Update")
	PostUpdate  = MakeScheduleId("PostUpdate")
	PreRender   = MakeScheduleId("PreRender")
	Render      = MakeScheduleId("Render")
	PostRender  = MakeScheduleId("PostRender")
	Last        = MakeScheduleId("Last")
)

func configureSchedules(app *App) {
	app.InsertResource(VirtualTime{Scale: 1})

	app.AddSystems(Main, runMainSchedule)
	app.AddSystems(First, updateVirtualTime)
	app.AddSystems(PostUpdate, despawnWithDelaySystem)
}

func runMainSchedule(world *World, initialized *Local[bool]) {
	if !initialized.Value {
		initialized.Value = true

		// initialize once
		world.RunSchedule(PreStartup)
		world.RunSchedule(Startup)
		world.RunSchedule(PostStartup)
	}

	// start the new frame
	world.RunSchedule(First)

	// the update schedule
	world.RunSchedule(PreUpdate)
	world.RunSchedule(Update)
	world.RunSchedule(PostUpdate)

	world.RunSchedule(PreRender)
	world.RunSchedule(Render)
	world.RunSchedule(PostRender)

	// end the frame
	world.RunSchedule(Last)
}
