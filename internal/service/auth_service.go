package service

import (
	"context"
	"errors"
	"log"

	"github.com/letsbank/api/internal/docdb"
	"github.com/letsbank/api/internal/events"
	"github.com/letsbank/api/internal/ledger"
	"github.com/letsbank/api/internal/models"
)

// ErrInvalidCredentials is returned when neither backend accepts the
// email/password pair. Maps to 401 Unauthorized.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles signup and login. The ledger is authoritative; the
// secondary store only receives fire-and-forget signup replication and acts
// as a bounded-wait fallback for login.
type AuthService struct {
	ledger    *ledger.Store
	secondary SecondaryStore
	publisher *events.Publisher
}

func NewAuthService(ledger *ledger.Store, secondary SecondaryStore, publisher *events.Publisher) *AuthService {
	return &AuthService{ledger: ledger, secondary: secondary, publisher: publisher}
}

// Signup creates the user in the ledger and returns immediately. Replication
// to the secondary store runs detached; its outcome is logged, never
// surfaced, never retried.
func (s *AuthService) Signup(ctx context.Context, email, password, fullName string) (*models.User, error) {
	if _, err := s.ledger.FindUserByEmail(email); err == nil {
		return nil, ledger.ErrEmailExists
	}
	user, err := s.ledger.CreateUser(email, password, fullName)
	if err != nil {
		return nil, err
	}

	if s.secondary != nil {
		go s.replicateSignup(*user)
	}
	if err := s.publisher.Publish(ctx, events.UserCreated, events.UserCreatedEvent{
		Email:     user.Email,
		FullName:  user.FullName,
		AccountID: user.AccountID,
	}); err != nil {
		log.Printf("Failed to publish user.created event: %v", err)
	}
	return user, nil
}

// replicateSignup copies a freshly created user into the secondary store.
// Runs on its own goroutine with a fresh context: the signup response has
// already been sent and nothing is waiting on this.
func (s *AuthService) replicateSignup(user models.User) {
	ctx := context.Background()
	if err := s.secondary.EnsureCollections(ctx); err != nil {
		log.Printf("Signup sync skipped (user was created in memory): %v", err)
		return
	}
	if _, err := s.secondary.FindUserByEmail(ctx, user.Email); err == nil {
		return
	}
	if err := s.secondary.InsertUser(ctx, &user); err != nil {
		log.Printf("Signup sync failed (user was created in memory): %v", err)
	}
}

// Login checks the ledger first with a literal password comparison, then the
// secondary store with its bounded wait. Any secondary failure (timeout,
// absence, mismatch) degrades to ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if user, err := s.ledger.FindUserByEmail(email); err == nil && user.Password == password {
		return user, nil
	}

	if s.secondary != nil {
		user, err := s.secondary.FindUserByEmail(ctx, email)
		if err != nil {
			if !errors.Is(err, docdb.ErrNotFound) {
				log.Printf("Secondary login attempt failed: %v", err)
			}
		} else if user.Password == password {
			return user, nil
		}
	}

	return nil, ErrInvalidCredentials
}
