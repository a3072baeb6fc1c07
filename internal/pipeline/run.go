package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hiring-agent/internal/explainability"
	"github.com/jonathan/hiring-agent/internal/policy"
	"github.com/jonathan/hiring-agent/internal/preprocess"
	"github.com/jonathan/hiring-agent/internal/ranking"
	"github.com/jonathan/hiring-agent/internal/semantic"
	"github.com/jonathan/hiring-agent/internal/types"
)

// DefaultWorkers bounds concurrent resume evaluations.
const DefaultWorkers = 4

// Options configures a session evaluation run.
type Options struct {
	Embedder semantic.Embedder
	Workers  int
	Logger   *zap.Logger
}

// ResumeInput is one candidate document to evaluate.
type ResumeInput struct {
	Name string
	Text string
}

// SkippedResume records a candidate that could not be evaluated.
type SkippedResume struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Summary aggregates decision counts for a run.
type Summary struct {
	Total     int `json:"total"`
	FastTrack int `json:"fast_track"`
	Interview int `json:"interview"`
	Pool      int `json:"pool"`
	Reject    int `json:"reject"`
	Skipped   int `json:"skipped"`
}

// SessionResult is the complete outcome of evaluating a set of resumes
// against one session.
type SessionResult struct {
	SessionID     string                  `json:"session_id"`
	JDName        string                  `json:"jd_name"`
	Results       []types.CandidateResult `json:"results"`
	Skipped       []SkippedResume         `json:"skipped,omitempty"`
	Summary       Summary                 `json:"summary"`
	RankingReport string                  `json:"ranking_report"`
}

// EvaluateSession scores every resume against the session's job
// description and ranks the outcomes. Resumes that fail individually
// are skipped and reported; an unavailable embedding model aborts the
// whole run. When no resume survives to evaluation the run fails with
// an InputError carrying the skip reasons.
func EvaluateSession(ctx context.Context, session *Session, resumes []ResumeInput, opts Options) (*SessionResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var mu sync.Mutex
	var candidates []ranking.Candidate
	var skipped []SkippedResume

	skip := func(name, reason string) {
		mu.Lock()
		skipped = append(skipped, SkippedResume{Name: name, Reason: reason})
		mu.Unlock()
		logger.Warn("skipping resume", zap.String("candidate", name), zap.String("reason", reason))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, resume := range resumes {
		g.Go(func() error {
			fragments := preprocess.Normalize(resume.Text)
			if len(fragments) == 0 {
				skip(resume.Name, "resume is empty after normalization")
				return nil
			}

			vectors, err := opts.Embedder.Embed(gctx, fragments)
			if err != nil {
				return err
			}

			matches, err := semantic.Matches(session.Requirements, session.RequirementVectors, fragments, vectors, session.Threshold)
			if err != nil {
				skip(resume.Name, err.Error())
				return nil
			}

			scores := policy.Evaluate(matches, fragments, session.Requirements, session.RequiredLanguage)
			action := policy.Decide(scores)
			composite := ranking.Composite(scores)

			logger.Info("evaluated candidate",
				zap.String("candidate", resume.Name),
				zap.String("decision", action.Tag()),
				zap.Float64("composite", composite),
				zap.Int("matches", len(matches)))

			candidate := ranking.Candidate{
				Name:        resume.Name,
				Scores:      scores,
				Action:      action,
				Explanation: policy.Explain(action, scores),
				XAIReport:   explainability.Report(resume.Name, scores, action, composite, matches, session.Requirements),
			}

			mu.Lock()
			candidates = append(candidates, candidate)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		if len(skipped) == 0 {
			return nil, &InputError{Message: "no resumes provided"}
		}
		reasons := make([]string, len(skipped))
		for i, s := range skipped {
			reasons[i] = fmt.Sprintf("%s: %s", s.Name, s.Reason)
		}
		return nil, &InputError{Message: "no evaluable resumes: " + strings.Join(reasons, "; ")}
	}

	results := ranking.Rank(candidates)

	result := &SessionResult{
		SessionID:     session.ID.String(),
		JDName:        session.JDName,
		Results:       results,
		Skipped:       skipped,
		Summary:       summarize(results, len(skipped)),
		RankingReport: ranking.GenerateReport(results),
	}
	return result, nil
}

func summarize(results []types.CandidateResult, skippedCount int) Summary {
	summary := Summary{
		Total:   len(results) + skippedCount,
		Skipped: skippedCount,
	}
	for _, result := range results {
		switch result.Action {
		case types.ActionFastTrack:
			summary.FastTrack++
		case types.ActionInterview:
			summary.Interview++
		case types.ActionPool:
			summary.Pool++
		case types.ActionReject:
			summary.Reject++
		}
	}
	return summary
}
