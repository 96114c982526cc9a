package domain

// EventKind discriminates inbound chat events
type EventKind int

const (
	EventCommand EventKind = iota
	EventText
	EventChoice
)

// Event is a single inbound chat event. Exactly one payload field is
// meaningful depending on Kind.
type Event struct {
	Kind    EventKind
	Command string // EventCommand: "/register", "/cancel", ...
	Text    string // EventText: free-form message text
	Choice  string // EventChoice: selected inline-button key
}

// NewCommand creates a command event
func NewCommand(command string) Event {
	return Event{Kind: EventCommand, Command: command}
}

// NewText creates a text-input event
func NewText(text string) Event {
	return Event{Kind: EventText, Text: text}
}

// NewChoice creates a structured-choice event
func NewChoice(key string) Event {
	return Event{Kind: EventChoice, Choice: key}
}
