package pipeline

import "github.com/umputun/hnscope/pkg/domain"

// EventType is the kind of a stream event
type EventType string

// event types
const (
	EventLog      EventType = "log"
	EventData     EventType = "data"
	EventError    EventType = "error"
	EventComplete EventType = "complete"
)

// Event is a single progress, result or terminal notification
type Event struct {
	Type    EventType
	Message string        // log text or error message
	Title   string        // title of the failed story, empty for stream errors
	Story   *domain.Story // data events only
	HasMore bool          // complete events only
}

// LogEvent makes a progress event
func LogEvent(msg string) Event { return Event{Type: EventLog, Message: msg} }

// DataEvent makes a result event for a complete story
func DataEvent(s *domain.Story) Event { return Event{Type: EventData, Story: s} }

// ErrorEvent makes an error event, title is empty for stream-scoped errors
func ErrorEvent(msg, title string) Event { return Event{Type: EventError, Message: msg, Title: title} }

// CompleteEvent makes the terminal event
func CompleteEvent(hasMore bool) Event { return Event{Type: EventComplete, HasMore: hasMore} }
