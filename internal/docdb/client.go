// Package docdb wraps the hosted document database used for best-effort
// cross-session persistence. It is always a side path: every call is bounded
// by a fixed timeout and callers treat any error as "data unavailable there"
// and fall back to the in-memory ledger.
package docdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// opTimeout bounds every document-database operation so a slow or
// unreachable backend fails the attempt instead of hanging the request.
const opTimeout = 8 * time.Second

const (
	usersCollection        = "users"
	transactionsCollection = "transactions"
)

// ErrNotFound reports that no document matched. Callers use it to
// distinguish "absent there" from a transport failure; both trigger the
// same fallback.
var ErrNotFound = errors.New("docdb: document not found")

// Client is a thin handle on the document database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the document database and verifies the connection.
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("docdb: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("docdb: ping: %w", err)
	}
	return &Client{client: client, db: client.Database(dbName)}, nil
}

// Close releases the underlying connections.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// EnsureCollections lazily creates the users and transactions collections.
// Safe to call repeatedly.
func (c *Client) EnsureCollections(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	names, err := c.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("docdb: list collections: %w", err)
	}
	existing := make(map[string]bool, len(names))
	for _, n := range names {
		existing[n] = true
	}
	for _, name := range []string{usersCollection, transactionsCollection} {
		if existing[name] {
			continue
		}
		if err := c.db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("docdb: create collection %s: %w", name, err)
		}
	}
	return nil
}
