package battle

import "fmt"

// EventKind classifies a journal entry.
type EventKind int

const (
	EventNarration  EventKind = iota // something happened
	EventRejection                   // player input was refused
	EventConclusion                  // the battle ended
)

// String returns a short name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventNarration:
		return "narration"
	case EventRejection:
		return "rejection"
	case EventConclusion:
		return "conclusion"
	default:
		return "unknown"
	}
}

// Event is one line of the battle journal.
type Event struct {
	Kind EventKind
	Turn int
	Text string

	// Conclusion is set on EventConclusion only.
	Conclusion *Conclusion
}

// Conclusion describes how a battle ended.
type Conclusion struct {
	Winner string
	Loser  string
	Turns  int
}

// Title is the headline for a result screen.
func (c Conclusion) Title() string {
	return c.Winner + " Wins"
}

// Summary is the body text for a result screen.
func (c Conclusion) Summary() string {
	return fmt.Sprintf("%s overpowered %s after %d turns.", c.Winner, c.Loser, c.Turns)
}

// journal is the ordered event log of the current battle plus its listeners.
type journal struct {
	events    []Event
	listeners []func(Event)
}

func (j *journal) publish(ev Event) {
	j.events = append(j.events, ev)
	for _, fn := range j.listeners {
		fn(ev)
	}
}

func (j *journal) reset() {
	clear(j.events)
	j.events = j.events[:0]
}
