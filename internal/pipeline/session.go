// Package pipeline orchestrates the full candidate evaluation flow:
// session construction from a job description, per-resume scoring and
// final ranking.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/hiring-agent/internal/ontology"
	"github.com/jonathan/hiring-agent/internal/preprocess"
	"github.com/jonathan/hiring-agent/internal/semantic"
)

// Session holds the prepared job description state shared by every
// resume evaluation in a run.
type Session struct {
	ID                 uuid.UUID           `json:"id"`
	CreatedAt          time.Time           `json:"created_at"`
	JDName             string              `json:"jd_name"`
	Fragments          []string            `json:"fragments"`
	Requirements       []string            `json:"requirements"`
	RequirementVectors [][]float32         `json:"requirement_vectors"`
	RoleBuckets        map[string][]string `json:"role_buckets,omitempty"`
	Threshold          float64             `json:"threshold"`
	RequiredLanguage   string              `json:"required_language"`
}

// BuildSession normalizes the job description, extracts its
// requirements and embeds them once for reuse across resumes.
func BuildSession(ctx context.Context, embedder semantic.Embedder, jdName, jdText string, threshold float64, requiredLanguage string) (*Session, error) {
	fragments := preprocess.Normalize(jdText)
	if len(fragments) == 0 {
		return nil, &InputError{Message: fmt.Sprintf("job description %q is empty after normalization", jdName)}
	}

	requirements := ontology.ExtractRequirements(fragments)
	if len(requirements) == 0 {
		return nil, &EmptyRequirementsError{JDName: jdName}
	}

	vectors, err := embedder.Embed(ctx, requirements)
	if err != nil {
		return nil, fmt.Errorf("embedding job requirements: %w", err)
	}

	return &Session{
		ID:                 uuid.New(),
		CreatedAt:          time.Now().UTC(),
		JDName:             jdName,
		Fragments:          fragments,
		Requirements:       requirements,
		RequirementVectors: vectors,
		RoleBuckets:        ontology.SplitByRole(requirements),
		Threshold:          threshold,
		RequiredLanguage:   requiredLanguage,
	}, nil
}

// Store resolves sessions through an in-memory cache first, then a
// JSON snapshot on disk. The third resolution layer, recomputing from
// the job description source, belongs to the caller: on a miss it
// rebuilds with BuildSession and registers the result via Put.
type Store struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]*Session
	snapshotDir string
}

// NewStore creates a session store. snapshotDir may be empty to
// disable on-disk snapshots.
func NewStore(snapshotDir string) *Store {
	return &Store{
		sessions:    make(map[uuid.UUID]*Session),
		snapshotDir: snapshotDir,
	}
}

// Put caches a session in memory and, when a snapshot directory is
// configured, persists it to disk.
func (s *Store) Put(session *Session) error {
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	if s.snapshotDir == "" {
		return nil
	}
	return s.snapshot(session)
}

// Get resolves a session by ID, falling back to the on-disk snapshot
// when it is not cached. A false return means the caller should
// rebuild the session from its source.
func (s *Store) Get(id uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return session, true
	}

	if s.snapshotDir == "" {
		return nil, false
	}
	session, err := s.loadSnapshot(id)
	if err != nil {
		return nil, false
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()
	return session, true
}

func (s *Store) snapshot(session *Session) error {
	if err := os.MkdirAll(s.snapshotDir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session snapshot: %w", err)
	}

	path := s.snapshotPath(session.ID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing session snapshot: %w", err)
	}
	return nil
}

func (s *Store) loadSnapshot(id uuid.UUID) (*Session, error) {
	data, err := os.ReadFile(s.snapshotPath(id))
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decoding session snapshot: %w", err)
	}
	return &session, nil
}

func (s *Store) snapshotPath(id uuid.UUID) string {
	return filepath.Join(s.snapshotDir, fmt.Sprintf("session_%s.json", id))
}
