package byke

import (
	"fmt"
)

type schedule struct {
	id      ScheduleId
	lookup  map[SystemId]*preparedSystem
	systems []*preparedSystem
}

func newSchedule(id ScheduleId) *schedule {
	return &schedule{
		id:     id,
		lookup: map[SystemId]*preparedSystem{},
	}
}

// addSystem appends the system. Systems run in the order they were added.
func (s *schedule) addSystem(system *preparedSystem) error {
	if _, exists := s.lookup[system.Id]; exists {
		return fmt.Errorf("system %s already exists in schedule %s", system.Name, s.id)
	}

	s.lookup[system.Id] = system
	s.systems = append(s.systems, system)

	return nil
}
