package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/types"
)

// DefaultListLimit caps ListMatchesForJob when no limit is given
const DefaultListLimit = 100

const matchColumns = `id, candidate_id, job_id, final_score, tier, result, explanation, created_at`

// SaveMatch stores a match result and its optional explanation.
// Saving the same result ID again replaces the stored row.
func (db *DB) SaveMatch(ctx context.Context, result *types.MatchResult, explanation *types.Explanation) (*MatchRecord, error) {
	row, err := newMatchRow(result, explanation)
	if err != nil {
		return nil, err
	}

	var createdAt time.Time
	err = db.pool.QueryRow(ctx,
		`INSERT INTO match_results (id, candidate_id, job_id, final_score, tier, result, explanation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		     final_score = $4, tier = $5, result = $6, explanation = $7, created_at = NOW()
		 RETURNING created_at`,
		row.id, row.candidateID, row.jobID, row.finalScore, row.tier, row.result, row.explanation,
	).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save match %s: %w", row.id, err)
	}
	return row.decode(createdAt)
}

// GetMatch retrieves a match by ID, returning nil when it does not exist
func (db *DB) GetMatch(ctx context.Context, id uuid.UUID) (*MatchRecord, error) {
	rec, err := scanMatch(db.pool.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM match_results WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	return rec, nil
}

// ListMatchesForJob returns a job's matches, best first, ties by candidate ID
func (db *DB) ListMatchesForJob(ctx context.Context, jobID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+matchColumns+` FROM match_results
		 WHERE job_id = $1
		 ORDER BY final_score DESC, candidate_id ASC
		 LIMIT $2`,
		jobID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for job %s: %w", jobID, err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return out, nil
}

// DeleteMatchesForJob removes every match stored for a job and reports how many went
func (db *DB) DeleteMatchesForJob(ctx context.Context, jobID string) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM match_results WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete matches for job %s: %w", jobID, err)
	}
	return tag.RowsAffected(), nil
}

// SaveCandidate stores a candidate profile snapshot under its ID
func (db *DB) SaveCandidate(ctx context.Context, profile *types.CandidateProfile) error {
	if profile == nil || profile.ID == "" {
		return fmt.Errorf("candidate profile needs an ID")
	}
	return db.saveProfile(ctx, KindCandidate, profile.ID, profile)
}

// SaveJob stores a job profile snapshot under its ID
func (db *DB) SaveJob(ctx context.Context, job *types.JobProfile) error {
	if job == nil || job.ID == "" {
		return fmt.Errorf("job profile needs an ID")
	}
	return db.saveProfile(ctx, KindJob, job.ID, job)
}

// GetJob retrieves a job profile snapshot, returning nil when it does not exist
func (db *DB) GetJob(ctx context.Context, id string) (*types.JobProfile, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM profiles WHERE kind = $1 AND id = $2`, KindJob, id,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	var job types.JobProfile
	if err := json.Unmarshal(content, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", id, err)
	}
	return &job, nil
}

func (db *DB) saveProfile(ctx context.Context, kind, id string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal %s profile: %w", kind, err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (kind, id, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (kind, id) DO UPDATE SET content = $3, updated_at = NOW()`,
		kind, id, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s profile %s: %w", kind, id, err)
	}
	return nil
}

func scanMatch(row pgx.Row) (*MatchRecord, error) {
	var r matchRow
	var createdAt time.Time
	if err := row.Scan(&r.id, &r.candidateID, &r.jobID, &r.finalScore, &r.tier, &r.result, &r.explanation, &createdAt); err != nil {
		return nil, err
	}
	return r.decode(createdAt)
}
