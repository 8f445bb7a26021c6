package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"social-media-api/internal/storage"

	"go.uber.org/zap"
)

const minPasswordLength = 4

// AccountPayload carries the decoded body of a register or login request.
// Nil fields stand for JSON fields that were absent or null.
type AccountPayload struct {
	Username *string
	Password *string
}

type AccountService struct {
	logger   *zap.SugaredLogger
	accounts AccountStore
}

func NewAccountService(logger *zap.SugaredLogger, accounts AccountStore) *AccountService {
	return &AccountService{logger: logger, accounts: accounts}
}

// Register validates the payload, rejects taken usernames and persists a new account.
// It returns ErrInvalidInput on a missing payload, blank username or short password,
// and ErrConflict when the username is already held by another account. The
// pre-insert lookup gives the common duplicate a fast answer; the store's unique
// constraint settles concurrent registrations, so a rejected insert is ErrConflict too.
func (s *AccountService) Register(ctx context.Context, p *AccountPayload) (*storage.Account, error) {
	if p == nil || p.Username == nil || strings.TrimSpace(*p.Username) == "" {
		return nil, ErrInvalidInput
	}
	if p.Password == nil || utf8.RuneCountInString(*p.Password) < minPasswordLength {
		return nil, ErrInvalidInput
	}

	username := *p.Username

	_, err := s.accounts.AccountByUsername(ctx, username)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, storage.ErrAccountNotExist) {
		return nil, err
	}

	account, err := s.accounts.CreateAccount(ctx, username, *p.Password)
	if err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.logger.Debugf("Registered account (%s) with id %d", username, account.ID)

	return account, nil
}

// Login returns the account matching both credentials exactly.
// Any miss, including an absent payload or null field, is ErrUnauthorized.
func (s *AccountService) Login(ctx context.Context, p *AccountPayload) (*storage.Account, error) {
	if p == nil || p.Username == nil || p.Password == nil {
		return nil, ErrUnauthorized
	}

	account, err := s.accounts.AccountByCredentials(ctx, *p.Username, *p.Password)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotExist) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return account, nil
}
