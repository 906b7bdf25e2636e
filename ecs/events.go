package ecs

// EventType identifies world events.
type EventType string

const (
	// EventGoalReached is pushed when the ball touches the goal.
	EventGoalReached EventType = "goal_reached"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Take removes and returns the events of one type, leaving the rest queued.
func (q *EventQueue) Take(t EventType) []Event {
	if q == nil {
		return nil
	}
	var taken []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == t {
			taken = append(taken, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return taken
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
