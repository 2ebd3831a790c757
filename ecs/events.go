package ecs

// EventKind identifies what an Event reports.
type EventKind string

const (
	EventChannelDown  EventKind = "down"
	EventChannelUp    EventKind = "up"
	EventDoubleTap    EventKind = "double_tap"
	EventTierChanged  EventKind = "tier"
	EventConfigReload EventKind = "reload"
	EventWallContact  EventKind = "wall"
)

// Event is a tick-scoped notification. Data carries kind-specific detail
// such as the channel or tier name.
type Event struct {
	Kind   EventKind
	Entity Entity
	Tick   int
	Time   float64
	Data   string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

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

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
