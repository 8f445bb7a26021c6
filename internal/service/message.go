package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"social-media-api/internal/storage"

	"go.uber.org/zap"
)

const maxMessageLength = 255

// MessagePayload carries the decoded body of a message create or patch request.
// Nil fields stand for JSON fields that were absent or null.
type MessagePayload struct {
	PostedBy    *int64
	MessageText *string
}

type MessageService struct {
	logger   *zap.SugaredLogger
	messages MessageStore
	accounts AccountStore
}

func NewMessageService(logger *zap.SugaredLogger, messages MessageStore, accounts AccountStore) *MessageService {
	return &MessageService{logger: logger, messages: messages, accounts: accounts}
}

func validText(text string) bool {
	return strings.TrimSpace(text) != "" && utf8.RuneCountInString(text) <= maxMessageLength
}

// Create validates the payload, checks that the author exists and persists the message.
// The author check happens only here; later reads, patches and deletes never re-validate it.
func (s *MessageService) Create(ctx context.Context, p *MessagePayload) (*storage.Message, error) {
	if p == nil || p.MessageText == nil || !validText(*p.MessageText) {
		return nil, ErrInvalidInput
	}
	if p.PostedBy == nil {
		return nil, ErrInvalidInput
	}

	exists, err := s.accounts.AccountExists(ctx, *p.PostedBy)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrInvalidInput
	}

	message, err := s.messages.CreateMessage(ctx, *p.PostedBy, *p.MessageText)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotExist) {
			return nil, ErrInvalidInput
		}
		return nil, err
	}

	s.logger.Debugf("Created message %d for account %d", message.ID, message.PostedBy)

	return message, nil
}

// All returns every stored message in storage-default order
func (s *MessageService) All(ctx context.Context) ([]storage.Message, error) {
	return s.messages.Messages(ctx)
}

// ByID returns the message with the given id, or (nil, nil) when no such message exists
func (s *MessageService) ByID(ctx context.Context, id int64) (*storage.Message, error) {
	message, err := s.messages.MessageByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrMessageNotExist) {
			return nil, nil
		}
		return nil, err
	}

	return message, nil
}

// Delete removes the message with the given id and returns the number of rows deleted.
// Deleting a missing message returns 0 and no error, so the operation is idempotent.
func (s *MessageService) Delete(ctx context.Context, id int64) (int64, error) {
	deleted, err := s.messages.DeleteMessage(ctx, id)
	if err != nil {
		return 0, err
	}
	if !deleted {
		return 0, nil
	}

	return 1, nil
}

// UpdateText replaces the text of an existing message and returns 1.
// A missing message and a failing validation are both ErrInvalidInput;
// callers cannot tell them apart.
func (s *MessageService) UpdateText(ctx context.Context, id int64, p *MessagePayload) (int64, error) {
	if p == nil || p.MessageText == nil || !validText(*p.MessageText) {
		return 0, ErrInvalidInput
	}

	err := s.messages.UpdateMessageText(ctx, id, *p.MessageText)
	if err != nil {
		if errors.Is(err, storage.ErrMessageNotExist) {
			return 0, ErrInvalidInput
		}
		return 0, err
	}

	return 1, nil
}

// ByAccount returns all messages posted by the given account; an unknown
// account simply yields an empty collection
func (s *MessageService) ByAccount(ctx context.Context, accountID int64) ([]storage.Message, error) {
	return s.messages.MessagesByAuthor(ctx, accountID)
}
