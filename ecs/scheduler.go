package ecs

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// Failer is a system that can stop for good, like the actor loop after
// malformed level data.
type Failer interface {
	Err() error
}

// Scheduler runs systems in registration order: input adapters, then the
// actor loop, then sinks that consume what the frame produced.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

// Err returns the first error reported by a Failer system.
func (s *Scheduler) Err() error {
	for _, system := range s.systems {
		if f, ok := system.(Failer); ok {
			if err := f.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}
