package checker

// EventType identifies a checker event
type EventType string

const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventAllSelected      EventType = "AllSelected"
	EventSelectionCleared EventType = "SelectionCleared"
	EventOptionsReplaced  EventType = "OptionsReplaced"
	EventCheckRejected    EventType = "CheckRejected"
)

// Event is implemented by everything a Checker publishes
type Event interface {
	Type() EventType
}

// Publisher receives events from a Checker.
//
// Publish is called after the state lock is released, one event at a time and
// in the order the state changed, including across concurrent callers. It must
// not call back into the Checker before returning; hand events off to another
// goroutine (as the event bus does) when a subscriber needs to read state.
type Publisher interface {
	Publish(event Event)
}

// NullPublisher drops every event
type NullPublisher struct{}

func (NullPublisher) Publish(Event) {}

// RejectReason explains why Check or CheckAll left the selection untouched
type RejectReason string

const (
	ReasonDisabled    RejectReason = "disabled"
	ReasonMinReached  RejectReason = "min_reached"
	ReasonMaxReached  RejectReason = "max_reached"
	ReasonUnsupported RejectReason = "unsupported"
)

// SelectionChangedEvent is emitted when Check or option pruning changes the selection
type SelectionChangedEvent[V comparable] struct {
	Added     []V
	Removed   []V
	Selection []V
}

func (e SelectionChangedEvent[V]) Type() EventType { return EventSelectionChanged }

// AllSelectedEvent is emitted when CheckAll selects every enabled option
type AllSelectedEvent[V comparable] struct {
	Selection []V
}

func (e AllSelectedEvent[V]) Type() EventType { return EventAllSelected }

// SelectionClearedEvent is emitted when CheckAll toggles the selection off
type SelectionClearedEvent[V comparable] struct {
	Removed []V
}

func (e SelectionClearedEvent[V]) Type() EventType { return EventSelectionCleared }

// OptionsReplacedEvent is emitted by SetOptions
type OptionsReplacedEvent struct {
	Total   int
	Enabled int
}

func (e OptionsReplacedEvent) Type() EventType { return EventOptionsReplaced }

// CheckRejectedEvent is emitted when an operation degrades to a no-op
type CheckRejectedEvent[V comparable] struct {
	Value  V
	Reason RejectReason
}

func (e CheckRejectedEvent[V]) Type() EventType { return EventCheckRejected }
