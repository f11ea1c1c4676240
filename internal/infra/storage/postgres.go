package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/infra/config"
)

const portalStateTable = "portal_state"

// PgxQuerier is the subset of pgxpool.Pool the store needs; satisfied by
// pgxmock in tests.
type PgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists the key-value state in a single two-column table,
// one row per state key. Writes upsert the whole payload, keeping the
// last-write-wins semantics of the other backends.
type PostgresStore struct {
	db      PgxQuerier
	builder sq.StatementBuilderType
	logger  *zap.Logger
}

// NewPostgresPool initializes a pgx pool from configuration and verifies
// connectivity.
func NewPostgresPool(ctx context.Context, cfg config.PostgresSettings, logger *zap.Logger) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	logger.Info("Postgres store connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
	)

	return pool, nil
}

// NewPostgresStore wraps the provided querier.
func NewPostgresStore(db PgxQuerier, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  logger,
	}
}

// ReadCollection fetches and decodes the JSON array stored for key. A missing
// row or malformed payload yields an empty collection with a logged
// diagnostic.
func (s *PostgresStore) ReadCollection(ctx context.Context, key string, out any) error {
	raw, ok, err := s.ReadScalar(ctx, key)
	if err != nil || !ok {
		return err
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("discarding malformed stored collection",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return nil
}

// WriteCollection serializes value and upserts the payload for key.
func (s *PostgresStore) WriteCollection(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", key, err)
	}
	return s.WriteScalar(ctx, key, string(encoded))
}

// ReadScalar returns the stored payload for key, reporting absence via ok.
func (s *PostgresStore) ReadScalar(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.builder.
		Select("value").
		From(portalStateTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build select %q: %w", key, err)
	}

	var raw string
	if err := s.db.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select state %q: %w", key, err)
	}
	return raw, true, nil
}

// WriteScalar upserts the payload for key.
func (s *PostgresStore) WriteScalar(ctx context.Context, key, value string) error {
	query, args, err := s.builder.
		Insert(portalStateTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert %q: %w", key, err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert state %q: %w", key, err)
	}
	return nil
}

// DeleteScalar removes the row for key. Deleting an absent key is a no-op.
func (s *PostgresStore) DeleteScalar(ctx context.Context, key string) error {
	query, args, err := s.builder.
		Delete(portalStateTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %q: %w", key, err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}
