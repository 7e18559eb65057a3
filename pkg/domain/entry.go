package domain

// Entry represents a single feed item prepared for delivery.
// Built fresh on every fetch, never persisted.
type Entry struct {
	ID       string // stable identifier, trimmed GUID with the link as fallback
	Title    string
	Link     string
	BodyHTML string // rich content when the feed provides it, plain description otherwise
}
