package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/types"
)

// Profile kinds stored in the profiles table
const (
	KindCandidate = "candidate"
	KindJob       = "job"
)

// MatchRecord is one persisted match result
type MatchRecord struct {
	ID          uuid.UUID          `json:"id"`
	CandidateID string             `json:"candidate_id"`
	JobID       string             `json:"job_id"`
	FinalScore  float64            `json:"final_score"`
	Tier        string             `json:"tier,omitempty"`
	Result      types.MatchResult  `json:"result"`
	Explanation *types.Explanation `json:"explanation,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// matchRow is the column form of a MatchRecord
type matchRow struct {
	id          uuid.UUID
	candidateID string
	jobID       string
	finalScore  float64
	tier        string
	result      []byte
	explanation []byte
}

// newMatchRow converts a result to columns. A result without an ID gets a fresh one.
func newMatchRow(result *types.MatchResult, explanation *types.Explanation) (matchRow, error) {
	if result == nil {
		return matchRow{}, fmt.Errorf("match result is nil")
	}
	if result.JobID == "" || result.CandidateID == "" {
		return matchRow{}, fmt.Errorf("match result needs candidate and job IDs")
	}

	id := uuid.New()
	if result.ID != "" {
		parsed, err := uuid.Parse(result.ID)
		if err != nil {
			return matchRow{}, fmt.Errorf("invalid match ID %q: %w", result.ID, err)
		}
		id = parsed
	}

	stored := *result
	stored.ID = id.String()
	resultJSON, err := json.Marshal(stored)
	if err != nil {
		return matchRow{}, fmt.Errorf("failed to marshal match result: %w", err)
	}

	row := matchRow{
		id:          id,
		candidateID: result.CandidateID,
		jobID:       result.JobID,
		finalScore:  result.FinalScore,
		result:      resultJSON,
	}
	if explanation != nil {
		row.tier = explanation.Tier
		if row.explanation, err = json.Marshal(explanation); err != nil {
			return matchRow{}, fmt.Errorf("failed to marshal explanation: %w", err)
		}
	}
	return row, nil
}

// decode builds a MatchRecord from scanned columns
func (r matchRow) decode(createdAt time.Time) (*MatchRecord, error) {
	rec := &MatchRecord{
		ID:          r.id,
		CandidateID: r.candidateID,
		JobID:       r.jobID,
		FinalScore:  r.finalScore,
		Tier:        r.tier,
		CreatedAt:   createdAt,
	}
	if err := json.Unmarshal(r.result, &rec.Result); err != nil {
		return nil, fmt.Errorf("failed to decode match result %s: %w", r.id, err)
	}
	if len(r.explanation) > 0 {
		rec.Explanation = &types.Explanation{}
		if err := json.Unmarshal(r.explanation, rec.Explanation); err != nil {
			return nil, fmt.Errorf("failed to decode explanation %s: %w", r.id, err)
		}
	}
	return rec, nil
}
