package interact

import (
	"encoding/json"

	"github.com/matzehuels/riskflow/pkg/errors"
)

// EventType names an input event.
type EventType string

const (
	EventEnterNode EventType = "enter_node"
	EventLeaveNode EventType = "leave_node"
	EventClick     EventType = "click"
	EventSelect    EventType = "select"
	EventEnterLink EventType = "enter_link"
	EventLeaveLink EventType = "leave_link"
	EventReset     EventType = "reset"
)

// Event is a serialized input event, e.g. {"type":"enter_node","id":3}.
// ID is a node id for node events and a ribbon index for link events.
type Event struct {
	Type EventType `json:"type"`
	ID   *int      `json:"id,omitempty"`
}

// Convenience constructors.
func EnterNode(id int) Event    { return Event{Type: EventEnterNode, ID: &id} }
func LeaveNode() Event          { return Event{Type: EventLeaveNode} }
func Click(id int) Event        { return Event{Type: EventClick, ID: &id} }
func Select(id int) Event       { return Event{Type: EventSelect, ID: &id} }
func EnterLink(index int) Event { return Event{Type: EventEnterLink, ID: &index} }
func LeaveLink(index int) Event { return Event{Type: EventLeaveLink, ID: &index} }
func Reset() Event              { return Event{Type: EventReset} }

func (e Event) needsID() bool {
	switch e.Type {
	case EventEnterNode, EventClick, EventSelect, EventEnterLink, EventLeaveLink:
		return true
	}
	return false
}

// Validate checks the event type and that an id is present when required.
func (e Event) Validate() error {
	switch e.Type {
	case EventEnterNode, EventLeaveNode, EventClick, EventSelect, EventEnterLink, EventLeaveLink, EventReset:
	default:
		return errors.New(errors.ErrCodeInvalidEvent, "unknown event type %q", e.Type)
	}
	if e.needsID() && e.ID == nil {
		return errors.New(errors.ErrCodeInvalidEvent, "event %q requires an id", e.Type)
	}
	return nil
}

// ParseEvent decodes a JSON event and validates it.
func ParseEvent(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, errors.Wrap(errors.ErrCodeInvalidEvent, err, "decode event")
	}
	return e, e.Validate()
}

// Apply performs the transition described by e.
func (m *Machine) Apply(e Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	switch e.Type {
	case EventEnterNode:
		m.EnterNode(*e.ID)
	case EventLeaveNode:
		m.LeaveNode()
	case EventClick:
		m.Click(*e.ID)
	case EventSelect:
		m.Select(*e.ID)
	case EventEnterLink:
		m.EnterLink(*e.ID)
	case EventLeaveLink:
		m.LeaveLink(*e.ID)
	case EventReset:
		m.Reset()
	}
	return nil
}
