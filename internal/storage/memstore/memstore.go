// Package memstore keeps accounts and messages in process memory.
// It backs unit tests and the "memory" storage driver; semantics mirror
// the PostgreSQL store, including its sentinel errors.
package memstore

import (
	"context"
	"sync"
	"time"

	"social-media-api/internal/storage"
)

type Store struct {
	mu            sync.RWMutex
	accounts      map[int64]storage.Account
	byUsername    map[string]int64
	messages      map[int64]storage.Message
	messageOrder  []int64
	nextAccountID int64
	nextMessageID int64
}

// New returns an initialized in-memory store
func New() *Store {
	return &Store{
		accounts:   make(map[int64]storage.Account),
		byUsername: make(map[string]int64),
		messages:   make(map[int64]storage.Message),
	}
}

func (s *Store) CreateAccount(_ context.Context, username, password string) (*storage.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[username]; taken {
		return nil, storage.ErrUsernameTaken
	}

	s.nextAccountID++
	a := storage.Account{ID: s.nextAccountID, Username: username, Password: password}
	s.accounts[a.ID] = a
	s.byUsername[username] = a.ID

	out := a
	return &out, nil
}

func (s *Store) AccountByUsername(_ context.Context, username string) (*storage.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, storage.ErrAccountNotExist
	}

	a := s.accounts[id]
	return &a, nil
}

func (s *Store) AccountByCredentials(_ context.Context, username, password string) (*storage.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, storage.ErrAccountNotExist
	}

	a := s.accounts[id]
	if a.Password != password {
		return nil, storage.ErrAccountNotExist
	}

	return &a, nil
}

func (s *Store) AccountExists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[id]
	return ok, nil
}

func (s *Store) CreateMessage(_ context.Context, postedBy int64, text string) (*storage.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[postedBy]; !ok {
		return nil, storage.ErrAccountNotExist
	}

	s.nextMessageID++
	m := storage.Message{ID: s.nextMessageID, PostedBy: postedBy, Text: text, CreatedAt: time.Now()}
	s.messages[m.ID] = m
	s.messageOrder = append(s.messageOrder, m.ID)

	out := m
	return &out, nil
}

func (s *Store) MessageByID(_ context.Context, id int64) (*storage.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.messages[id]
	if !ok {
		return nil, storage.ErrMessageNotExist
	}

	return &m, nil
}

func (s *Store) Messages(_ context.Context) ([]storage.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]storage.Message, 0, len(s.messageOrder))
	for _, id := range s.messageOrder {
		messages = append(messages, s.messages[id])
	}

	return messages, nil
}

func (s *Store) MessagesByAuthor(_ context.Context, author int64) ([]storage.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]storage.Message, 0)
	for _, id := range s.messageOrder {
		if m := s.messages[id]; m.PostedBy == author {
			messages = append(messages, m)
		}
	}

	return messages, nil
}

func (s *Store) UpdateMessageText(_ context.Context, id int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return storage.ErrMessageNotExist
	}

	m.Text = text
	s.messages[id] = m

	return nil
}

func (s *Store) DeleteMessage(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[id]; !ok {
		return false, nil
	}

	delete(s.messages, id)
	for i, mid := range s.messageOrder {
		if mid == id {
			s.messageOrder = append(s.messageOrder[:i], s.messageOrder[i+1:]...)
			break
		}
	}

	return true, nil
}
