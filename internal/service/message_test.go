package service

import (
	"context"
	"strings"
	"testing"

	"social-media-api/internal/storage"
	"social-media-api/internal/storage/memstore"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func bootstrapMessageService(t *testing.T) (*MessageService, *storage.Account) {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	sugar := logger.Sugar()

	store := memstore.New()
	account, err := NewAccountService(sugar, store).Register(context.Background(), &AccountPayload{
		Username: strp("alice"),
		Password: strp("pass1"),
	})
	require.NoError(t, err)

	return NewMessageService(sugar, store, store), account
}

func TestCreateMessage(t *testing.T) {
	t.Parallel()

	s, account := bootstrapMessageService(t)

	message, err := s.Create(context.Background(), &MessagePayload{
		PostedBy:    intp(account.ID),
		MessageText: strp("hello"),
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, message.ID, int64(1))
	require.Equal(t, account.ID, message.PostedBy)
	require.Equal(t, "hello", message.Text)
	require.False(t, message.CreatedAt.IsZero())
}

func TestCreateMessageValidation(t *testing.T) {
	t.Parallel()

	s, account := bootstrapMessageService(t)

	cases := []struct {
		name    string
		payload *MessagePayload
	}{
		{"nil payload", nil},
		{"missing text", &MessagePayload{PostedBy: intp(account.ID)}},
		{"empty text", &MessagePayload{PostedBy: intp(account.ID), MessageText: strp("")}},
		{"whitespace text", &MessagePayload{PostedBy: intp(account.ID), MessageText: strp("   \t ")}},
		{"oversize text", &MessagePayload{PostedBy: intp(account.ID), MessageText: strp(strings.Repeat("a", 256))}},
		{"missing author", &MessagePayload{MessageText: strp("hello")}},
		{"unknown author", &MessagePayload{PostedBy: intp(account.ID + 1000), MessageText: strp("hello")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), tc.payload)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateMessageMaxLengthText(t *testing.T) {
	t.Parallel()

	s, account := bootstrapMessageService(t)

	text := strings.Repeat("a", 255)
	message, err := s.Create(context.Background(), &MessagePayload{PostedBy: intp(account.ID), MessageText: strp(text)})
	require.NoError(t, err)
	require.Equal(t, text, message.Text)
}

func TestAllMessagesInsertionOrder(t *testing.T) {
	t.Parallel()

	s, account := bootstrapMessageService(t)

	first, err := s.Create(context.Background(), &MessagePayload{PostedBy: intp(account.ID), MessageText: strp("first")})
	require.NoError(t, err)
	second, err := s.Create(context.Background(), &MessagePayload{PostedBy: intp(account.ID), MessageText: strp("second")})
	require.NoError(t, err)

	messages, err := s.All(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, first.ID, messages[0].ID)
	require.Equal(t, second.ID, messages[1].ID)
}

func TestAllMessagesEmpty(t *testing.T) {
	t.Parallel()

	s, _ := bootstrapMessageService(t)

	messages, err := s.All(context.Background())
	require.NoError(t, err)
	require.NotNil(t, messages)
	require.Empty(t, messages)
}

func TestMessageByID(t *testing.T) {
	t.Parallel()

	s, account := bootstrapMessageService(t)

	created, err := s.Create(context.Background(), &MessagePayload{PostedBy: intp(account.ID), MessageText: strp("hello")})
	require.NoError(t, err)

	message, err := s.ByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, message.ID)

	// absence is not an error
	message, err = s.ByID(context.Background(), created.ID+1000)
	require.NoError(t, err)
	require.Nil(t, message)
}

func TestDeleteMessageTwice(t *testing.T) {
	t.Parallel()

	s, account := bootstrapMessageService(t)

	created, err := s.Create(context.Background(), &MessagePayload{PostedBy: intp(account.ID), MessageText: strp("hello")})
	require.NoError(t, err)

	count, err := s.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	count, err = s.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func TestUpdateMessageText(t *testing.T) {
	t.Parallel()

	s, account := bootstrapMessageService(t)

	created, err := s.Create(context.Background(), &MessagePayload{PostedBy: intp(account.ID), MessageText: strp("hello")})
	require.NoError(t, err)

	count, err := s.UpdateText(context.Background(), created.ID, &MessagePayload{MessageText: strp("updated")})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	message, err := s.ByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "updated", message.Text)
	require.Equal(t, account.ID, message.PostedBy)
}

func TestUpdateMessageTextBoundary(t *testing.T) {
	t.Parallel()

	s, account := bootstrapMessageService(t)

	created, err := s.Create(context.Background(), &MessagePayload{PostedBy: intp(account.ID), MessageText: strp("hello")})
	require.NoError(t, err)

	count, err := s.UpdateText(context.Background(), created.ID, &MessagePayload{MessageText: strp(strings.Repeat("b", 255))})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	_, err = s.UpdateText(context.Background(), created.ID, &MessagePayload{MessageText: strp(strings.Repeat("b", 256))})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateMessageTextInvalid(t *testing.T) {
	t.Parallel()

	s, account := bootstrapMessageService(t)

	created, err := s.Create(context.Background(), &MessagePayload{PostedBy: intp(account.ID), MessageText: strp("hello")})
	require.NoError(t, err)

	cases := []struct {
		name    string
		id      int64
		payload *MessagePayload
	}{
		{"nil patch", created.ID, nil},
		{"missing text", created.ID, &MessagePayload{}},
		{"blank text", created.ID, &MessagePayload{MessageText: strp("  ")}},
		// a missing message is indistinguishable from a failing validation
		{"unknown message", created.ID + 1000, &MessagePayload{MessageText: strp("updated")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.UpdateText(context.Background(), tc.id, tc.payload)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestMessagesByAccount(t *testing.T) {
	t.Parallel()

	s, account := bootstrapMessageService(t)

	created, err := s.Create(context.Background(), &MessagePayload{PostedBy: intp(account.ID), MessageText: strp("hello")})
	require.NoError(t, err)

	messages, err := s.ByAccount(context.Background(), account.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, created.ID, messages[0].ID)

	// unknown account yields an empty collection, never an error
	messages, err = s.ByAccount(context.Background(), account.ID+1000)
	require.NoError(t, err)
	require.NotNil(t, messages)
	require.Empty(t, messages)
}
