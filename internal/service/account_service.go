package service

import (
	"context"
	"errors"
	"log"

	"github.com/letsbank/api/internal/docdb"
	"github.com/letsbank/api/internal/ledger"
	"github.com/letsbank/api/internal/models"
)

// AccountService serves read-only projections of a user's account, balance,
// and transaction history. Reads try the secondary store first and fall back
// to the ledger on absence or any database-layer error.
type AccountService struct {
	ledger    *ledger.Store
	secondary SecondaryStore
}

func NewAccountService(ledger *ledger.Store, secondary SecondaryStore) *AccountService {
	return &AccountService{ledger: ledger, secondary: secondary}
}

// GetAccount returns the user for the given identity, secondary store first.
func (s *AccountService) GetAccount(ctx context.Context, email string) (*models.User, error) {
	if s.secondary != nil {
		user, err := s.secondary.FindUserByEmail(ctx, email)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, docdb.ErrNotFound) {
			log.Printf("Secondary account fetch failed: %v", err)
		}
	}
	return s.ledger.FindUserByEmail(email)
}

// GetBalance returns the user's current balance.
func (s *AccountService) GetBalance(ctx context.Context, email string) (float64, error) {
	user, err := s.GetAccount(ctx, email)
	if err != nil {
		return 0, err
	}
	return user.Balance, nil
}

// GetTransactions returns the user's transactions newest-first. An empty
// secondary result counts as absence: the ledger always has at least the
// opening transaction for a known user, so an empty list there means the
// secondary store simply never saw this user's activity.
func (s *AccountService) GetTransactions(ctx context.Context, email string) ([]models.Transaction, error) {
	if s.secondary != nil {
		txs, err := s.secondary.UserTransactions(ctx, email)
		if err != nil {
			log.Printf("Secondary transactions fetch failed: %v", err)
		} else if len(txs) > 0 {
			return txs, nil
		}
	}
	return s.ledger.UserTransactions(email), nil
}
