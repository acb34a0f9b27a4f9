package events

import "time"

// Event types published to the ledger stream.
const (
	UserCreated  = "user.created"
	UserDeleted  = "user.deleted"
	UserCredited = "user.credited"
)

// LedgerEventsStream is the Redis stream carrying all ledger mutations.
const LedgerEventsStream = "ledger.events"

// Event is the envelope written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserCreatedEvent struct {
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	AccountID string `json:"accountId"`
}

type UserDeletedEvent struct {
	Email string `json:"email"`
}

type UserCreditedEvent struct {
	Email      string  `json:"email"`
	AccountID  string  `json:"accountId"`
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"newBalance"`
}
