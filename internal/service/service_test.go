package service

import (
	"context"

	"github.com/letsbank/api/internal/docdb"
	"github.com/letsbank/api/internal/models"
)

// fakeSecondary is a function-field stand-in for the document database.
// Unset fields behave like an empty, healthy store.
type fakeSecondary struct {
	ensureFn func(ctx context.Context) error
	findFn   func(ctx context.Context, email string) (*models.User, error)
	insertFn func(ctx context.Context, u *models.User) error
	txsFn    func(ctx context.Context, email string) ([]models.Transaction, error)
}

func (f *fakeSecondary) EnsureCollections(ctx context.Context) error {
	if f.ensureFn != nil {
		return f.ensureFn(ctx)
	}
	return nil
}

func (f *fakeSecondary) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findFn != nil {
		return f.findFn(ctx, email)
	}
	return nil, docdb.ErrNotFound
}

func (f *fakeSecondary) InsertUser(ctx context.Context, u *models.User) error {
	if f.insertFn != nil {
		return f.insertFn(ctx, u)
	}
	return nil
}

func (f *fakeSecondary) UserTransactions(ctx context.Context, email string) ([]models.Transaction, error) {
	if f.txsFn != nil {
		return f.txsFn(ctx, email)
	}
	return nil, nil
}
