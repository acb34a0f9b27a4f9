package docdb

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/letsbank/api/internal/models"
)

// FindUserByEmail fetches a user document by exact email match.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var u models.User
	err := c.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("docdb: find user: %w", err)
	}
	return &u, nil
}

// InsertUser writes a user document. No uniqueness check is performed here;
// the signup replication path pre-checks with FindUserByEmail.
func (c *Client) InsertUser(ctx context.Context, u *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := c.db.Collection(usersCollection).InsertOne(ctx, u); err != nil {
		return fmt.Errorf("docdb: insert user: %w", err)
	}
	return nil
}

// UserTransactions fetches a user's transaction documents sorted
// newest-first. Documents written by older clients may lack timestamps; the
// in-process sort tolerates that where a server-side sort would not.
func (c *Client) UserTransactions(ctx context.Context, email string) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := c.db.Collection(transactionsCollection).Find(ctx, bson.M{"userEmail": email})
	if err != nil {
		return nil, fmt.Errorf("docdb: find transactions: %w", err)
	}
	var txs []models.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("docdb: decode transactions: %w", err)
	}
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})
	return txs, nil
}
