// Package db provides PostgreSQL persistence for evaluation sessions
// and their results.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateSession records a new evaluation session.
func (db *DB) CreateSession(ctx context.Context, record SessionRecord) error {
	requirements, err := json.Marshal(record.Requirements)
	if err != nil {
		return fmt.Errorf("failed to marshal requirements: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO evaluation_sessions (id, jd_name, requirements, threshold, required_language, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET jd_name = $2, requirements = $3, threshold = $4, required_language = $5`,
		record.ID, record.JDName, requirements, record.Threshold, record.RequiredLanguage, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session record by ID. Returns nil when the
// session does not exist.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*SessionRecord, error) {
	var record SessionRecord
	var requirements []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, jd_name, requirements, threshold, required_language, created_at
		 FROM evaluation_sessions WHERE id = $1`,
		id,
	).Scan(&record.ID, &record.JDName, &requirements, &record.Threshold, &record.RequiredLanguage, &record.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := json.Unmarshal(requirements, &record.Requirements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
	}
	return &record, nil
}

// ListSessions retrieves session records, newest first.
func (db *DB) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, jd_name, requirements, threshold, required_language, created_at
		 FROM evaluation_sessions
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var record SessionRecord
		var requirements []byte
		if err := rows.Scan(&record.ID, &record.JDName, &requirements, &record.Threshold, &record.RequiredLanguage, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		if err := json.Unmarshal(requirements, &record.Requirements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return records, nil
}

// SaveResult stores one candidate's evaluation outcome for a session.
func (db *DB) SaveResult(ctx context.Context, result ResultRecord) error {
	scores, err := json.Marshal(result.Scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidate_results (session_id, candidate_name, scores, action, composite_score, rank, tier, explanation, xai_report)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (session_id, candidate_name) DO UPDATE
		 SET scores = $3, action = $4, composite_score = $5, rank = $6, tier = $7, explanation = $8, xai_report = $9`,
		result.SessionID, result.CandidateName, scores, result.Action,
		result.CompositeScore, result.Rank, result.Tier, result.Explanation, result.XAIReport,
	)
	if err != nil {
		return fmt.Errorf("failed to save result for %s: %w", result.CandidateName, err)
	}
	return nil
}

// GetResults retrieves all candidate results for a session ordered by
// composite score.
func (db *DB) GetResults(ctx context.Context, sessionID uuid.UUID) ([]ResultRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT session_id, candidate_name, scores, action, composite_score, rank, tier, explanation, xai_report
		 FROM candidate_results WHERE session_id = $1
		 ORDER BY composite_score DESC, candidate_name ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []ResultRecord
	for rows.Next() {
		var record ResultRecord
		var scores []byte
		if err := rows.Scan(&record.SessionID, &record.CandidateName, &scores, &record.Action,
			&record.CompositeScore, &record.Rank, &record.Tier, &record.Explanation, &record.XAIReport); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		if err := json.Unmarshal(scores, &record.Scores); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}
	return results, nil
}
