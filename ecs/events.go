package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// EventThreatTelegraph is pushed when an agent starts pursuing a target.
const EventThreatTelegraph = "threat_telegraph"

// ThreatTelegraph marks where an agent acquired a target, for alert UI and
// combat systems outside navigation.
type ThreatTelegraph struct {
	Source Entity
	Target Entity
	X      float64
	Y      float64
}

// EventTeleported is pushed when a queued teleport lands.
const EventTeleported = "teleported"

// Teleported records a landing in world coordinates.
type Teleported struct {
	Entity Entity
	FromX  float64
	FromY  float64
	X      float64
	Y      float64
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

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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

// Peek returns queued events of one type without consuming them.
func (q *EventQueue) Peek(eventType string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == eventType {
			out = append(out, evt)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
