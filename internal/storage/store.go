package storage

import (
	"context"
	"errors"
	"time"

	"social-media-api/internal/storage/zapadapter"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

var (
	ErrUsernameTaken   = errors.New("username already taken")
	ErrAccountNotExist = errors.New("account does not exist")
	ErrMessageNotExist = errors.New("message does not exist")
)

// Store defines fields used in db interaction processes
type Store struct {
	logger *zap.SugaredLogger
	db     *pgxpool.Pool
}

// New sets provided zap.Logger via zapadapter to pgxpool.Pool and returns instance of Store struct
func New(logger *zap.SugaredLogger, cfg Config, opts ...Option) (*Store, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}
	config.ConnConfig.Logger = zapadapter.NewLogger(logger.Desugar())

	for _, opt := range opts {
		opt.apply(config)
	}

	pool, err := pgxpool.ConnectConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	return &Store{
		logger: logger,
		db:     pool,
	}, nil
}

// CreateAccount inserts a new account row and returns the stored record with its generated id.
// A unique constraint violation on username maps to ErrUsernameTaken.
func (s *Store) CreateAccount(ctx context.Context, username, password string) (*Account, error) {
	s.logger.Debugf("Creating account (%s)", username)

	var id int64
	sql := "insert into accounts (username, password, created_at) values ($1, $2, $3) returning id"
	err := s.db.QueryRow(ctx, sql, username, password, time.Now()).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.UniqueViolation {
				return nil, ErrUsernameTaken
			}
		}
		return nil, err
	}

	s.logger.Debugf("Created account (%s) with id %d", username, id)

	return &Account{ID: id, Username: username, Password: password}, nil
}

// AccountByUsername returns the account holding username
func (s *Store) AccountByUsername(ctx context.Context, username string) (*Account, error) {
	var a Account
	sql := "select id, username, password from accounts where username = $1"
	err := s.db.QueryRow(ctx, sql, username).Scan(&a.ID, &a.Username, &a.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotExist
		}
		return nil, err
	}

	return &a, nil
}

// AccountByCredentials returns the account matching both username and password exactly
func (s *Store) AccountByCredentials(ctx context.Context, username, password string) (*Account, error) {
	var a Account
	sql := "select id, username, password from accounts where username = $1 and password = $2"
	err := s.db.QueryRow(ctx, sql, username, password).Scan(&a.ID, &a.Username, &a.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotExist
		}
		return nil, err
	}

	return &a, nil
}

// AccountExists reports whether an account row with the given id exists
func (s *Store) AccountExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	sql := "select exists(select 1 from accounts where id = $1)"
	err := s.db.QueryRow(ctx, sql, id).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// CreateMessage inserts a new message row and returns the stored record with its generated id.
// A foreign key violation on posted_by maps to ErrAccountNotExist.
func (s *Store) CreateMessage(ctx context.Context, postedBy int64, text string) (*Message, error) {
	s.logger.Debugf("Creating message from account (id: %d)", postedBy)

	now := time.Now()

	var id int64
	sql := "insert into messages (posted_by, text, created_at) values ($1, $2, $3) returning id"
	err := s.db.QueryRow(ctx, sql, postedBy, text, now).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.ForeignKeyViolation {
				return nil, ErrAccountNotExist
			}
		}
		return nil, err
	}

	return &Message{ID: id, PostedBy: postedBy, Text: text, CreatedAt: now}, nil
}

// MessageByID returns the message with the given id
func (s *Store) MessageByID(ctx context.Context, id int64) (*Message, error) {
	var (
		m  Message
		ts pgtype.Timestamptz
	)
	sql := "select id, posted_by, text, created_at from messages where id = $1"
	err := s.db.QueryRow(ctx, sql, id).Scan(&m.ID, &m.PostedBy, &m.Text, &ts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMessageNotExist
		}
		return nil, err
	}
	m.CreatedAt = ts.Time

	return &m, nil
}

// Messages returns every stored message in insertion order
func (s *Store) Messages(ctx context.Context) ([]Message, error) {
	sql := "select id, posted_by, text, created_at from messages order by id asc"
	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}

	return collectMessages(rows)
}

// MessagesByAuthor returns all messages posted by the given account in insertion order
func (s *Store) MessagesByAuthor(ctx context.Context, author int64) ([]Message, error) {
	s.logger.Debugf("Retrieving messages for account (id: %d)", author)

	sql := "select id, posted_by, text, created_at from messages where posted_by = $1 order by id asc"
	rows, err := s.db.Query(ctx, sql, author)
	if err != nil {
		return nil, err
	}

	return collectMessages(rows)
}

func collectMessages(rows pgx.Rows) ([]Message, error) {
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var (
			m  Message
			ts pgtype.Timestamptz
		)
		err := rows.Scan(&m.ID, &m.PostedBy, &m.Text, &ts)
		if err != nil {
			return nil, err
		}
		m.CreatedAt = ts.Time
		messages = append(messages, m)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return messages, nil
}

// UpdateMessageText replaces the text of the message with the given id.
// Touching no rows maps to ErrMessageNotExist.
func (s *Store) UpdateMessageText(ctx context.Context, id int64, text string) error {
	ct, err := s.db.Exec(ctx, "update messages set text = $1 where id = $2", text, id)
	if err != nil {
		return err
	}

	if ct.RowsAffected() == 0 {
		return ErrMessageNotExist
	}

	return nil
}

// DeleteMessage removes the message with the given id and reports whether a row was deleted
func (s *Store) DeleteMessage(ctx context.Context, id int64) (bool, error) {
	ct, err := s.db.Exec(ctx, "delete from messages where id = $1", id)
	if err != nil {
		return false, err
	}

	return ct.RowsAffected() > 0, nil
}

// Close releases the underlying connection pool
func (s *Store) Close() {
	s.db.Close()
}
