package domain

import "time"

type (
	// CartEntry is a single (user, product) position. At most one entry
	// exists per pair, repeated adds increment Quantity.
	CartEntry struct {
		EntryID   string
		ProductID string
		UserID    string
		Quantity  int
		AddedAt   time.Time
	}

	// EnrichedCartEntry joins an entry with its product resolved at read
	// time. The product reference is weak, entries whose product is gone
	// are dropped from listings.
	EnrichedCartEntry struct {
		Entry   CartEntry
		Product Product
	}
)
