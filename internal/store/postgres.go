package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads the dataset from the team_stats table:
//
//	CREATE TABLE team_stats (
//		name    TEXT PRIMARY KEY,
//		seed    INTEGER,
//		metrics JSONB NOT NULL DEFAULT '{}'
//	);
type PostgresSource struct {
	pool *pgxpool.Pool
}

func NewPostgresSource(ctx context.Context, databaseURL string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresSource) LoadTeams(ctx context.Context) ([]TeamRecord, error) {
	rows, err := s.pool.Query(ctx, `SELECT name, seed, metrics FROM team_stats ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query team_stats: %w", err)
	}
	defer rows.Close()

	var records []TeamRecord
	for rows.Next() {
		var (
			name        string
			seed        *int32
			metricsJSON []byte
		)
		if err := rows.Scan(&name, &seed, &metricsJSON); err != nil {
			return nil, fmt.Errorf("scan team_stats: %w", err)
		}
		rec, err := recordFromColumns(name, seed, metricsJSON)
		if err != nil {
			return nil, fmt.Errorf("team %q: %w", name, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team_stats: %w", err)
	}
	return records, nil
}

// ReplaceTeams swaps the full table contents for records in one transaction.
func (s *PostgresSource) ReplaceTeams(ctx context.Context, records []TeamRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM team_stats`); err != nil {
		return fmt.Errorf("clear team_stats: %w", err)
	}
	for _, rec := range records {
		metricsJSON, err := json.Marshal(rec.Metrics)
		if err != nil {
			return fmt.Errorf("marshal metrics for %q: %w", rec.Name, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO team_stats (name, seed, metrics) VALUES ($1, $2, $3)`,
			rec.Name, rec.Seed, metricsJSON,
		); err != nil {
			return fmt.Errorf("insert %q: %w", rec.Name, err)
		}
	}
	return tx.Commit(ctx)
}

func recordFromColumns(name string, seed *int32, metricsJSON []byte) (TeamRecord, error) {
	rec := TeamRecord{Name: name, Metrics: map[string]*float64{}}
	if seed != nil && ValidSeed(int(*seed)) {
		s := int(*seed)
		rec.Seed = &s
	}
	if len(metricsJSON) == 0 {
		return rec, nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(metricsJSON, &raw); err != nil {
		return rec, fmt.Errorf("decode metrics: %w", err)
	}
	for k, v := range raw {
		key := normalizeKey(k)
		if f, ok := toFloat(v); ok {
			val := f
			rec.Metrics[key] = &val
		} else {
			rec.Metrics[key] = nil
		}
	}
	return rec, nil
}
