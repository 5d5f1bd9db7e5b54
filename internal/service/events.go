package service

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	EventCreated   EventKind = "created"
	EventUpdated   EventKind = "updated"
	EventCompleted EventKind = "completed"
	EventToggled   EventKind = "toggled"
	EventRemoved   EventKind = "removed"
	EventReset     EventKind = "reset"
)

// Event is delivered to subscribers after a mutation has been saved.
// TaskID is empty for EventReset.
type Event struct {
	Kind   EventKind `json:"kind"`
	TaskID string    `json:"taskId,omitempty"`
}

// Subscribe registers fn to be called after every successful mutation and
// returns a function that removes it. Callbacks run on the mutating
// goroutine after the list lock is released, so they may call back into the
// service.
func (s *TaskService) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

func (s *TaskService) notify(e Event) {
	s.obsMu.Lock()
	fns := make([]func(Event), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
