package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/hiring-agent/internal/types"
)

// SessionRecord is the persisted form of an evaluation session.
type SessionRecord struct {
	ID               uuid.UUID `json:"id"`
	JDName           string    `json:"jd_name"`
	Requirements     []string  `json:"requirements"`
	Threshold        float64   `json:"threshold"`
	RequiredLanguage string    `json:"required_language"`
	CreatedAt        time.Time `json:"created_at"`
}

// ResultRecord is the persisted form of one candidate's outcome.
type ResultRecord struct {
	SessionID      uuid.UUID             `json:"session_id"`
	CandidateName  string                `json:"candidate_name"`
	Scores         types.CandidateScores `json:"scores"`
	Action         string                `json:"action"`
	CompositeScore float64               `json:"composite_score"`
	Rank           string                `json:"rank"`
	Tier           string                `json:"tier"`
	Explanation    string                `json:"explanation"`
	XAIReport      string                `json:"xai_report"`
}
