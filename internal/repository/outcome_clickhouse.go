package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	drepo "github.com/Shivam007kumar/customer-churn/internal/domain/repository"
)

// ClickHouseOutcomeSink stores outcome events in a MergeTree table.
type ClickHouseOutcomeSink struct {
	db    *sql.DB
	table string
}

// NewClickHouseOutcomeSink creates ClickHouse storage for outcome events.
// The connection pool is owned by pkg/clickhouse.
func NewClickHouseOutcomeSink(db *sql.DB, table string) drepo.OutcomeSink {
	return &ClickHouseOutcomeSink{db: db, table: table}
}

// ClickHouseOutcomeSchema returns the DDL for the outcome table.
func ClickHouseOutcomeSchema(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id String,
	request_id String,
	outcome LowCardinality(String),
	upstream_status UInt16,
	duration_ms Int64,
	occurred_at DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (outcome, occurred_at)
TTL toDateTime(occurred_at) + INTERVAL 90 DAY`, table),
	}
}

func (s *ClickHouseOutcomeSink) Record(ctx context.Context, o models.RelayOutcome) error {
	q := fmt.Sprintf("INSERT INTO %s (id, request_id, outcome, upstream_status, duration_ms, occurred_at) VALUES (?, ?, ?, ?, ?, ?)", s.table)
	if _, err := s.db.ExecContext(ctx, q,
		o.ID,
		o.RequestID,
		o.Outcome,
		uint16(o.UpstreamStatus),
		o.DurationMs,
		o.OccurredAt,
	); err != nil {
		return fmt.Errorf("clickhouse insert outcome: %w", err)
	}
	return nil
}

func (s *ClickHouseOutcomeSink) Name() string { return "clickhouse" }

func (s *ClickHouseOutcomeSink) Close() error {
	return nil // Managed by pkg
}
