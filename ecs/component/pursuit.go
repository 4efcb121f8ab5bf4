package component

// PursuitState is the perception state of a steering agent.
type PursuitState uint8

const (
	PursuitIdle PursuitState = iota
	PursuitPursue
)

func (s PursuitState) String() string {
	switch s {
	case PursuitPursue:
		return "pursue"
	default:
		return "idle"
	}
}

// PursuitEvent drives the perception state machine.
type PursuitEvent uint8

const (
	// EventAcquire fires when the nearest target is seen within range.
	EventAcquire PursuitEvent = iota
	// EventLose fires when the target leaves range or the give-up timer
	// runs out.
	EventLose
)

type pursuitTransition struct {
	from PursuitState
	on   PursuitEvent
}

var pursuitTransitions = map[pursuitTransition]PursuitState{
	{from: PursuitIdle, on: EventAcquire}: PursuitPursue,
	{from: PursuitPursue, on: EventLose}:  PursuitIdle,
}

// Pursuit is the perception state of a steering agent.
type Pursuit struct {
	State PursuitState
}

// Fire applies ev and reports whether the state changed. Events with no
// transition from the current state are ignored.
func (p *Pursuit) Fire(ev PursuitEvent) bool {
	next, ok := pursuitTransitions[pursuitTransition{from: p.State, on: ev}]
	if !ok {
		return false
	}
	p.State = next
	return true
}

var PursuitComponent = NewComponent[Pursuit]()
