package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	applogger "MacroPulse/pkg/logger"
	pkgpg "MacroPulse/pkg/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const readingsTable = "macro_data"

// PostgresReadingStore implements ReadingStore backed by Supabase Postgres.
type PostgresReadingStore struct {
	client *pkgpg.Client
	pool   *pgxpool.Pool
	l      *applogger.Logger
}

// NewPostgresReadingStore creates Postgres reading storage.
func NewPostgresReadingStore(client *pkgpg.Client) domrepo.ReadingStore {
	return &PostgresReadingStore{client: client, pool: client.Pool()}
}

// SetLogger injects a structured logger.
func (s *PostgresReadingStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *PostgresReadingStore) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, []string{
		`CREATE TABLE IF NOT EXISTS ` + readingsTable + ` (
			id BIGSERIAL PRIMARY KEY,
			gdp_growth DECIMAL(10, 2),
			inflation DECIMAL(10, 2),
			real_rate DECIMAL(10, 2),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_macro_data_created_at ON ` + readingsTable + ` (created_at DESC)`,
	})
}

func (s *PostgresReadingStore) Insert(ctx context.Context, r *models.MacroReading) error {
	start := time.Now()
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	const q = `
        INSERT INTO ` + readingsTable + ` (gdp_growth, inflation, real_rate, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	if err := s.pool.QueryRow(ctx, q, r.GDPGrowth, r.Inflation, r.RealRate, createdAt).Scan(&r.ID); err != nil {
		if s.l != nil {
			s.l.Error("postgres insert reading error", applogger.Error(err))
		}
		return fmt.Errorf("insert reading: %w", err)
	}
	r.CreatedAt = createdAt

	if s.l != nil {
		s.l.Info("postgres reading stored",
			applogger.Int64("id", r.ID),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *PostgresReadingStore) GetLatest(ctx context.Context) (*models.MacroReading, error) {
	const q = `
        SELECT id, gdp_growth, inflation, real_rate, created_at
        FROM ` + readingsTable + `
        ORDER BY created_at DESC
        LIMIT 1
    `
	var r models.MacroReading
	err := s.pool.QueryRow(ctx, q).Scan(&r.ID, &r.GDPGrowth, &r.Inflation, &r.RealRate, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domrepo.ErrNoData
		}
		if s.l != nil {
			s.l.Error("postgres get_latest error", applogger.Error(err))
		}
		return nil, fmt.Errorf("get latest reading: %w", err)
	}
	return &r, nil
}

func (s *PostgresReadingStore) GetHistory(ctx context.Context, limit int) ([]*models.MacroReading, error) {
	start := time.Now()
	if limit <= 0 {
		limit = 30
	}

	const q = `
        SELECT id, gdp_growth, inflation, real_rate, created_at
        FROM ` + readingsTable + `
        ORDER BY created_at DESC
        LIMIT $1
    `
	rows, err := s.pool.Query(ctx, q, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("postgres history query error",
				applogger.Int("limit", limit),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get history: %w", err)
	}
	defer rows.Close()

	out := make([]*models.MacroReading, 0, limit)
	for rows.Next() {
		var r models.MacroReading
		if err := rows.Scan(&r.ID, &r.GDPGrowth, &r.Inflation, &r.RealRate, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if s.l != nil {
		s.l.Info("postgres history ok",
			applogger.Int("limit", limit),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *PostgresReadingStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *PostgresReadingStore) Close() error {
	// Pool lifecycle is owned by pkg/postgres.Client.
	return nil
}
