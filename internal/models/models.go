package models

import "time"

// User is a ledger account holder. The email is the primary key and is
// stored normalized (trimmed, lowercased). Password is kept for the demo's
// plaintext login and never serialised into API responses; the bson tag keeps
// it in secondary-database documents so logins can fall through to that store.
type User struct {
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	FullName  string    `json:"fullName" bson:"fullName"`
	AccountID string    `json:"accountId" bson:"accountId"`
	Balance   float64   `json:"balance" bson:"balance"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Transaction is an immutable ledger entry. The system only ever produces
// credits; Amount is signed anyway so statements stay honest if that changes.
type Transaction struct {
	ID          string    `json:"id" bson:"_id"`
	UserEmail   string    `json:"userEmail" bson:"userEmail"`
	Amount      float64   `json:"amount" bson:"amount"`
	Type        string    `json:"type" bson:"type"`
	Description string    `json:"description" bson:"description"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

// TransactionTypeCredit is the only transaction type the ledger produces.
const TransactionTypeCredit = "credit"
