package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	drepo "github.com/Shivam007kumar/customer-churn/internal/domain/repository"
)

// PgExecer is satisfied by *pgxpool.Pool.
type PgExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresOutcomeSink stores outcome events in Postgres.
type PostgresOutcomeSink struct {
	db    PgExecer
	table string
	close func()
}

// NewPostgresOutcomeSink creates a Postgres sink; closeFn releases the pool and may be nil.
func NewPostgresOutcomeSink(db PgExecer, table string, closeFn func()) drepo.OutcomeSink {
	return &PostgresOutcomeSink{db: db, table: table, close: closeFn}
}

// PostgresOutcomeSchema returns the DDL for the outcome table.
func PostgresOutcomeSchema(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id UUID PRIMARY KEY,
	request_id TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	upstream_status INTEGER NOT NULL DEFAULT 0,
	duration_ms BIGINT NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL
)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_occurred_at_idx ON %s (occurred_at)`, table, table),
	}
}

// InitPostgresOutcomeSchema runs the outcome DDL.
func InitPostgresOutcomeSchema(ctx context.Context, db PgExecer, table string) error {
	for _, stmt := range PostgresOutcomeSchema(table) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresOutcomeSink) Record(ctx context.Context, o models.RelayOutcome) error {
	q := fmt.Sprintf("INSERT INTO %s (id, request_id, outcome, upstream_status, duration_ms, occurred_at) VALUES ($1, $2, $3, $4, $5, $6)", s.table)
	if _, err := s.db.Exec(ctx, q,
		o.ID,
		o.RequestID,
		o.Outcome,
		o.UpstreamStatus,
		o.DurationMs,
		o.OccurredAt,
	); err != nil {
		return fmt.Errorf("postgres insert outcome: %w", err)
	}
	return nil
}

func (s *PostgresOutcomeSink) Name() string { return "postgres" }

func (s *PostgresOutcomeSink) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}
