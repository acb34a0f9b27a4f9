// Package ledger holds the in-memory record of users and their transactions.
// It is the primary datastore: every other component reads and writes through
// it, and the optional secondary document database only ever receives
// best-effort copies.
//
// A single mutex serialises all operations, so each read-modify-write (credit,
// cascading delete, create-with-opening-transaction) is atomic. Two concurrent
// credits to the same user can never lose an update.
package ledger

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/letsbank/api/internal/models"
	"github.com/letsbank/api/internal/utils"
)

// OpeningBalance is the fixed credit granted to every new account.
const OpeningBalance = 50000

// OpeningDescription labels the transaction created alongside a new user.
const OpeningDescription = "Opening balance"

// Store owns the user and transaction maps. Users are keyed by normalized
// email; transactions by generated id. All returned records are copies, so
// callers never hold references into the store.
type Store struct {
	mu    sync.Mutex
	users map[string]*models.User
	txs   map[string]*models.Transaction

	// order preserves user insertion order so full-name lookups with
	// duplicate names resolve deterministically ("first wins").
	order []string

	// lastTxTime forces transaction timestamps to be strictly increasing,
	// so newest-first ordering is total even for back-to-back credits.
	lastTxTime time.Time
}

// NewStore creates an empty ledger.
func NewStore() *Store {
	return &Store{
		users: make(map[string]*models.User),
		txs:   make(map[string]*models.Transaction),
	}
}

// NormalizeEmail lowercases and trims an email for use as a ledger key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeName lowercases a full name and collapses runs of whitespace.
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func normalizeAccountID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// FindUserByEmail looks a user up by normalized email.
func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	key := NormalizeEmail(email)
	if key == "" {
		return nil, ErrUserNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[key]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// FindUserByFullName scans users in insertion order and returns the first
// whose normalized full name matches. Duplicate names beyond "first wins"
// are not handled.
func (s *Store) FindUserByFullName(fullName string) (*models.User, error) {
	needle := normalizeName(fullName)
	if needle == "" {
		return nil, ErrUserNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range s.order {
		u := s.users[key]
		if normalizeName(u.FullName) == needle {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

// FindUserByAccountID scans users for a case-insensitive account id match.
func (s *Store) FindUserByAccountID(accountID string) (*models.User, error) {
	id := normalizeAccountID(accountID)
	if id == "" {
		return nil, ErrUserNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range s.order {
		u := s.users[key]
		if strings.ToUpper(u.AccountID) == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

// CreateUser adds a user with a fresh account id and the fixed opening
// balance, and atomically appends the opening-balance transaction. Duplicate
// emails are rejected here as well as by callers' pre-checks.
func (s *Store) CreateUser(email, password, fullName string) (*models.User, error) {
	key := NormalizeEmail(email)
	if key == "" {
		return nil, ErrInvalidEmail
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[key]; exists {
		return nil, ErrEmailExists
	}
	u := &models.User{
		Email:     key,
		Password:  password,
		FullName:  fullName,
		AccountID: utils.NewLedgerID(),
		Balance:   OpeningBalance,
		CreatedAt: time.Now().UTC(),
	}
	s.users[key] = u
	s.order = append(s.order, key)
	s.appendTransaction(key, OpeningBalance, OpeningDescription)
	cp := *u
	return &cp, nil
}

// CreditUser resolves a user by full name and credits amount to their
// balance, appending a transaction with the given description.
func (s *Store) CreditUser(fullName string, amount float64, description string) (*models.User, error) {
	needle := normalizeName(fullName)
	if needle == "" {
		return nil, ErrUserNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range s.order {
		if normalizeName(s.users[key].FullName) == needle {
			return s.credit(key, amount, description), nil
		}
	}
	return nil, ErrUserNotFound
}

// CreditUserByAccountID is CreditUser keyed by account id.
func (s *Store) CreditUserByAccountID(accountID string, amount float64, description string) (*models.User, error) {
	id := normalizeAccountID(accountID)
	if id == "" {
		return nil, ErrUserNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range s.order {
		if strings.ToUpper(s.users[key].AccountID) == id {
			return s.credit(key, amount, description), nil
		}
	}
	return nil, ErrUserNotFound
}

// credit applies the shared credit routine. Caller must hold s.mu. The store
// does not validate amount; boundaries reject non-positive amounts before it
// gets here.
func (s *Store) credit(key string, amount float64, description string) *models.User {
	u := s.users[key]
	u.Balance += amount
	s.appendTransaction(key, amount, description)
	cp := *u
	return &cp
}

// appendTransaction records an immutable transaction. Caller must hold s.mu.
func (s *Store) appendTransaction(userEmail string, amount float64, description string) {
	tx := &models.Transaction{
		ID:          utils.NewLedgerID(),
		UserEmail:   userEmail,
		Amount:      amount,
		Type:        models.TransactionTypeCredit,
		Description: description,
		Timestamp:   s.nextTxTime(),
	}
	s.txs[tx.ID] = tx
}

// nextTxTime returns a strictly increasing timestamp. Caller must hold s.mu.
func (s *Store) nextTxTime() time.Time {
	now := time.Now().UTC()
	if !now.After(s.lastTxTime) {
		now = s.lastTxTime.Add(time.Nanosecond)
	}
	s.lastTxTime = now
	return now
}

// UserTransactions returns the user's transactions sorted newest-first.
func (s *Store) UserTransactions(email string) []models.Transaction {
	key := NormalizeEmail(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transaction
	for _, tx := range s.txs {
		if NormalizeEmail(tx.UserEmail) == key {
			out = append(out, *tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// DeleteUserByEmail removes a user and cascades deletion of every
// transaction whose email matches, for any casing of the email.
func (s *Store) DeleteUserByEmail(email string) error {
	key := NormalizeEmail(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[key]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, key)
	for i, e := range s.order {
		if e == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	for id, tx := range s.txs {
		if NormalizeEmail(tx.UserEmail) == key {
			delete(s.txs, id)
		}
	}
	return nil
}
