// Package service implements the account, auth, and admin operations on top
// of the in-memory ledger, with the document database as a best-effort side
// path that never blocks or fails a primary response.
package service

import (
	"context"

	"github.com/letsbank/api/internal/models"
)

// SecondaryStore is the contract of the optional document database. Every
// method is internally bounded by the store's fixed timeout; lookups return
// docdb.ErrNotFound when no document matches. Implementations may be slow or
// unreachable; callers always treat failure as "data unavailable there".
type SecondaryStore interface {
	EnsureCollections(ctx context.Context) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertUser(ctx context.Context, u *models.User) error
	UserTransactions(ctx context.Context, email string) ([]models.Transaction, error)
}
