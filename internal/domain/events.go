package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventMovieSelected EventType = "MovieSelected"
	EventDetailsLoaded EventType = "DetailsLoaded"
	EventError         EventType = "Error"
	EventConfigLoaded  EventType = "ConfigLoaded"
	EventConfigSaved   EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// MovieSelectedEvent is emitted when the user picks a search result.
// Seq increases with every selection on a side; only the latest counts.
type MovieSelectedEvent struct {
	Side  Side
	Seq   int
	Movie Movie
}

func (e MovieSelectedEvent) Type() EventType { return EventMovieSelected }

// DetailsLoadedEvent is emitted when the full record of a selection arrived
type DetailsLoadedEvent struct {
	Side   Side
	Seq    int
	Detail MovieDetail
}

func (e DetailsLoadedEvent) Type() EventType { return EventDetailsLoaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Side    Side
	Seq     int
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
