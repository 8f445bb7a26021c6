// Package service holds the business rules of the social-media backend:
// account registration and login, and the message lifecycle. Handlers map
// the three error kinds below to HTTP statuses; absence of a record is a
// normal outcome, not an error.
package service

import (
	"context"
	"errors"

	"social-media-api/internal/storage"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("resource conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// AccountStore is the persistence contract consumed by AccountService
// and, for author-existence checks, by MessageService.
type AccountStore interface {
	CreateAccount(ctx context.Context, username, password string) (*storage.Account, error)
	AccountByUsername(ctx context.Context, username string) (*storage.Account, error)
	AccountByCredentials(ctx context.Context, username, password string) (*storage.Account, error)
	AccountExists(ctx context.Context, id int64) (bool, error)
}

// MessageStore is the persistence contract consumed by MessageService
type MessageStore interface {
	CreateMessage(ctx context.Context, postedBy int64, text string) (*storage.Message, error)
	MessageByID(ctx context.Context, id int64) (*storage.Message, error)
	Messages(ctx context.Context) ([]storage.Message, error)
	MessagesByAuthor(ctx context.Context, author int64) ([]storage.Message, error)
	UpdateMessageText(ctx context.Context, id int64, text string) error
	DeleteMessage(ctx context.Context, id int64) (bool, error)
}
