// Package postgres implements the quote store on PostgreSQL using a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

const (
	storeName = "postgres"

	uniqueViolation = "23505"

	pingTimeout     = 5 * time.Second
	connMaxIdleTime = 2 * time.Minute
	connMaxLifetime = 30 * time.Minute
	defaultMaxConns = 5

	quoteColumns = "id::text, text, author, category, tags, is_active, created_at, updated_at"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Config holds the connection settings for the PostgreSQL store.
type Config struct {
	DSN      string
	MaxConns int32
	Timeout  time.Duration
}

// Store is a PostgreSQL-backed quote store.
type Store struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	logger  *slog.Logger
}

// Open creates the pool, pings the server and creates the schema if needed.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}

	poolCfg.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	poolCfg.MaxConnIdleTime = connMaxIdleTime
	poolCfg.MaxConnLifetime = connMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("opening postgres pool: %w", err)
	}

	s := &Store{pool: pool, timeout: cfg.Timeout, logger: logger}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if err := s.createSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.InfoContext(ctx, "postgres store ready", slog.Int("max_conns", int(poolCfg.MaxConns)))

	return s, nil
}

func (s *Store) createSchema(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS quotes (
			id UUID PRIMARY KEY,
			text TEXT NOT NULL,
			author TEXT NOT NULL,
			category TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS quotes_category_active_idx ON quotes (category, is_active);
		CREATE INDEX IF NOT EXISTS quotes_author_idx ON quotes (author);
		CREATE INDEX IF NOT EXISTS quotes_created_at_idx ON quotes (created_at DESC, id DESC);
	`)
	if err != nil {
		return fmt.Errorf("creating table 'quotes': %w", err)
	}

	return nil
}

// Find returns matching quotes newest first, ties broken by descending id.
func (s *Store) Find(ctx context.Context, filter domain.QuoteFilter, skip, limit int) ([]*domain.Quote, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	where, args := buildWhere(filter)

	query := "SELECT " + quoteColumns + " FROM quotes" + where + " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	args = append(args, max(skip, 0))
	query += " OFFSET $" + strconv.Itoa(len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, s.translate("find", err)
	}

	quotes, err := pgx.CollectRows(rows, scanQuote)
	if err != nil {
		return nil, s.translate("find", err)
	}

	return quotes, nil
}

// Count returns the number of matching quotes.
func (s *Store) Count(ctx context.Context, filter domain.QuoteFilter) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	where, args := buildWhere(filter)

	var n int64
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM quotes"+where, args...).Scan(&n); err != nil {
		return 0, s.translate("count", err)
	}

	return n, nil
}

// GetByID returns the quote with the given UUID.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.NewInvalidIDError("quote", id)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, "SELECT "+quoteColumns+" FROM quotes WHERE id = $1", pgUUID(key))
	if err != nil {
		return nil, s.translate("get", err)
	}

	q, err := pgx.CollectExactlyOneRow(rows, scanQuote)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("quote", id)
		}

		return nil, s.translate("get", err)
	}

	return q, nil
}

// Insert stores q under a fresh UUID and assigns q.ID.
func (s *Store) Insert(ctx context.Context, q *domain.Quote) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	key := uuid.New()

	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}

	createdAt := q.CreatedAt.UTC().Truncate(time.Microsecond)
	updatedAt := q.UpdatedAt.UTC().Truncate(time.Microsecond)

	_, err := s.pool.Exec(ctx, `
		INSERT INTO quotes (id, text, author, category, tags, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		pgUUID(key), q.Text, q.Author, string(q.Category), tags, q.IsActive, createdAt, updatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.NewConflictErrorWithDetails("quote", "duplicate id", key.String())
		}

		return s.translate("insert", err)
	}

	q.ID = key.String()
	q.CreatedAt = createdAt
	q.UpdatedAt = updatedAt

	return nil
}

// CountByCategory groups active quotes by category, largest first, ties by name.
func (s *Store) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT category, COUNT(*) FROM quotes
		WHERE is_active
		GROUP BY category
		ORDER BY COUNT(*) DESC, category ASC`)
	if err != nil {
		return nil, s.translate("aggregate", err)
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategoryCount, error) {
		var (
			c        domain.CategoryCount
			category string
		)

		err := row.Scan(&category, &c.Count)
		c.Category = domain.Category(category)

		return c, err
	})
	if err != nil {
		return nil, s.translate("aggregate", err)
	}

	return counts, nil
}

// ValidID reports whether id parses as a UUID.
func (s *Store) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// DeleteAll removes every row.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tag, err := s.pool.Exec(ctx, "DELETE FROM quotes")
	if err != nil {
		return 0, s.translate("delete", err)
	}

	return tag.RowsAffected(), nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return storeName
}

// Check pings the database.
func (s *Store) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Close closes the pool.
func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.timeout)
}

// translate maps driver failures onto domain errors.
func (s *Store) translate(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var connectErr *pgconn.ConnectError
	if pgconn.Timeout(err) || errors.As(err, &connectErr) || errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("postgres unavailable", slog.String("operation", op), slog.Any("error", err))
		return fmt.Errorf("%w: %w", domain.NewUnavailableError(storeName, op), err)
	}

	return fmt.Errorf("postgres %s: %w", op, err)
}

// buildWhere renders filter as a WHERE clause with positional arguments.
// Author matching is a case-insensitive literal substring.
func buildWhere(filter domain.QuoteFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.ActiveOnly {
		conds = append(conds, "is_active")
	}

	if filter.Category != "" {
		args = append(args, string(filter.Category))
		conds = append(conds, "category = $"+strconv.Itoa(len(args)))
	}

	if filter.Author != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Author)+"%")
		conds = append(conds, "author ILIKE $"+strconv.Itoa(len(args))+` ESCAPE '\'`)
	}

	if len(conds) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanQuote(row pgx.CollectableRow) (*domain.Quote, error) {
	var (
		q        domain.Quote
		category string
	)

	if err := row.Scan(&q.ID, &q.Text, &q.Author, &category, &q.Tags, &q.IsActive, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}

	q.Category = domain.Category(category)
	q.CreatedAt = q.CreatedAt.UTC()
	q.UpdatedAt = q.UpdatedAt.UTC()

	if q.Tags == nil {
		q.Tags = []string{}
	}

	return &q, nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
