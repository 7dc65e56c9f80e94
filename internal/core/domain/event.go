package domain

import "time"

const (
	EventSearch  = "search"
	EventCartAdd = "cart_add"
	EventChat    = "chat"
)

// ClientEvent is an analytics fact produced to the client events topic.
// Subject holds the search query, product id or chat user id depending on
// the event type.
type ClientEvent struct {
	EventType string
	UserID    string
	Subject   string
	Timestamp time.Time
}
