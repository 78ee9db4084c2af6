// Package store provides PostgreSQL persistence for raw registry records.
// The pipeline itself never touches the store; it only sees the loaded
// collections.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/buyer-intel/internal/types"
)

// schema creates the raw-record table. Records keep their ingest position so
// loads reproduce the export's original order, which aggregation depends on
// for deterministic tie-breaking.
const schema = `
CREATE TABLE IF NOT EXISTS raw_records (
    id BIGSERIAL PRIMARY KEY,
    batch_id UUID NOT NULL,
    registry TEXT NOT NULL,
    position INT NOT NULL,
    payload JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS raw_records_registry_idx ON raw_records (registry, id);
`

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the raw-record table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveRecords inserts one ingest batch of raw records for a registry and
// returns the number of rows written.
func (s *Store) SaveRecords(ctx context.Context, registry types.Registry, batchID uuid.UUID, records []types.RawRecord) (int, error) {
	batch := &pgx.Batch{}
	for i, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal record %d: %w", i, err)
		}
		batch.Queue(
			`INSERT INTO raw_records (batch_id, registry, position, payload) VALUES ($1, $2, $3, $4)`,
			batchID, string(registry), i, payload,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	for i := range records {
		if _, err := results.Exec(); err != nil {
			return i, fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}
	return len(records), nil
}

// LoadRecords returns a registry's records in insertion order.
func (s *Store) LoadRecords(ctx context.Context, registry types.Registry) ([]types.RawRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT payload FROM raw_records WHERE registry = $1 ORDER BY id`,
		string(registry),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	defer rows.Close()

	var records []types.RawRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		var record types.RawRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

// CountRecords returns the number of stored records for a registry.
func (s *Store) CountRecords(ctx context.Context, registry types.Registry) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM raw_records WHERE registry = $1`,
		string(registry),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// DeleteRegistry removes every stored record for a registry, for re-ingests.
func (s *Store) DeleteRegistry(ctx context.Context, registry types.Registry) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM raw_records WHERE registry = $1`,
		string(registry),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	return tag.RowsAffected(), nil
}
