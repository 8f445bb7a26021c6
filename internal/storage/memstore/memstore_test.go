package memstore

import (
	"context"
	"testing"

	"social-media-api/internal/storage"

	"github.com/stretchr/testify/require"
)

func TestCreateAccountUnique(t *testing.T) {
	t.Parallel()

	s := New()

	first, err := s.CreateAccount(context.Background(), "alice", "pass1")
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ID)

	_, err = s.CreateAccount(context.Background(), "alice", "other")
	require.ErrorIs(t, err, storage.ErrUsernameTaken)
}

func TestAccountByCredentialsExactMatch(t *testing.T) {
	t.Parallel()

	s := New()

	_, err := s.CreateAccount(context.Background(), "alice", "pass1")
	require.NoError(t, err)

	account, err := s.AccountByCredentials(context.Background(), "alice", "pass1")
	require.NoError(t, err)
	require.Equal(t, "alice", account.Username)

	_, err = s.AccountByCredentials(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, storage.ErrAccountNotExist)
}

func TestMessagesKeepInsertionOrderAcrossDelete(t *testing.T) {
	t.Parallel()

	s := New()

	account, err := s.CreateAccount(context.Background(), "alice", "pass1")
	require.NoError(t, err)

	first, err := s.CreateMessage(context.Background(), account.ID, "first")
	require.NoError(t, err)
	second, err := s.CreateMessage(context.Background(), account.ID, "second")
	require.NoError(t, err)
	third, err := s.CreateMessage(context.Background(), account.ID, "third")
	require.NoError(t, err)

	deleted, err := s.DeleteMessage(context.Background(), second.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	messages, err := s.Messages(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, first.ID, messages[0].ID)
	require.Equal(t, third.ID, messages[1].ID)
}

func TestMessageCloneIsolation(t *testing.T) {
	t.Parallel()

	s := New()

	account, err := s.CreateAccount(context.Background(), "alice", "pass1")
	require.NoError(t, err)

	created, err := s.CreateMessage(context.Background(), account.ID, "hello")
	require.NoError(t, err)

	// mutating the returned record must not leak into the store
	created.Text = "mutated"

	stored, err := s.MessageByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", stored.Text)
}

func TestUpdateMessageTextMissing(t *testing.T) {
	t.Parallel()

	s := New()

	err := s.UpdateMessageText(context.Background(), 42, "text")
	require.ErrorIs(t, err, storage.ErrMessageNotExist)
}
