package service

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"

	"github.com/letsbank/api/internal/events"
	"github.com/letsbank/api/internal/ledger"
	"github.com/letsbank/api/internal/models"
)

// ErrInvalidAmount rejects credits that are not a positive finite number.
// Maps to 400 Bad Request.
var ErrInvalidAmount = errors.New("a positive amount is required")

// placeholderPassword is assigned to auto-provisioned accounts.
const placeholderPassword = "change-me"

// placeholderDomain is the email domain for auto-provisioned accounts.
const placeholderDomain = "letsbank.local"

// AdminService exposes operator-only mutations. It works directly on the
// ledger: admin writes are never replicated to the secondary store.
type AdminService struct {
	ledger    *ledger.Store
	publisher *events.Publisher
}

func NewAdminService(ledger *ledger.Store, publisher *events.Publisher) *AdminService {
	return &AdminService{ledger: ledger, publisher: publisher}
}

// DeleteUser removes a user and all their transactions.
func (s *AdminService) DeleteUser(ctx context.Context, email string) error {
	if err := s.ledger.DeleteUserByEmail(email); err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, events.UserDeleted, events.UserDeletedEvent{
		Email: ledger.NormalizeEmail(email),
	}); err != nil {
		log.Printf("Failed to publish user.deleted event: %v", err)
	}
	return nil
}

// CreateUser provisions an account. FullName defaults to the email's local
// part when omitted.
func (s *AdminService) CreateUser(ctx context.Context, email, password, fullName string) (*models.User, error) {
	if fullName == "" {
		fullName = strings.SplitN(strings.TrimSpace(email), "@", 2)[0]
		if fullName == "" {
			fullName = "User"
		}
	}
	user, err := s.ledger.CreateUser(strings.TrimSpace(email), password, fullName)
	if err != nil {
		return nil, err
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

// CreditByAccountID credits amount to the account with the given id.
func (s *AdminService) CreditByAccountID(ctx context.Context, accountID string, amount float64) (*models.User, error) {
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}
	user, err := s.ledger.CreditUserByAccountID(accountID, amount, "Credit")
	if err != nil {
		return nil, err
	}
	s.publishCredit(ctx, user, amount)
	return user, nil
}

// CreditByName credits amount to the first user matching fullName. With
// createIfMissing, an unknown name is first provisioned as a placeholder
// account with a derived email and a fixed placeholder password.
func (s *AdminService) CreditByName(ctx context.Context, fullName string, amount float64, createIfMissing bool) (*models.User, error) {
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}
	if _, err := s.ledger.FindUserByFullName(fullName); err != nil && createIfMissing {
		if _, err := s.ledger.CreateUser(derivedEmail(fullName), placeholderPassword, titleCase(fullName)); err != nil {
			return nil, err
		}
	}
	user, err := s.ledger.CreditUser(fullName, amount, "Credit")
	if err != nil {
		return nil, err
	}
	s.publishCredit(ctx, user, amount)
	return user, nil
}

func (s *AdminService) publishCredit(ctx context.Context, user *models.User, amount float64) {
	if err := s.publisher.Publish(ctx, events.UserCredited, events.UserCreditedEvent{
		Email:      user.Email,
		AccountID:  user.AccountID,
		Amount:     amount,
		NewBalance: user.Balance,
	}); err != nil {
		log.Printf("Failed to publish user.credited event: %v", err)
	}
}

func validAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 0) && !math.IsNaN(amount)
}

// derivedEmail builds "<full.name>@letsbank.local" from a full name.
func derivedEmail(fullName string) string {
	local := strings.Join(strings.Fields(strings.ToLower(fullName)), ".")
	return local + "@" + placeholderDomain
}

// titleCase uppercases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
