package domain

import "time"

// ChatRecord is one assistant conversation turn. Message holds the original
// user text, not the context-augmented prompt. Append-only.
type ChatRecord struct {
	RecordID  string
	UserID    string
	Message   string
	Response  string
	Timestamp time.Time
}
