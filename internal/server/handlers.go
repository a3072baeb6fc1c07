package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/hiring-agent/internal/ingestion"
	"github.com/jonathan/hiring-agent/internal/pipeline"
	"github.com/jonathan/hiring-agent/internal/semantic"
)

// AnalyzeRequest is the request body for /analyze. The job description
// is supplied either inline or as a URL to fetch.
type AnalyzeRequest struct {
	JDName    string          `json:"jd_name" validate:"required"`
	JDText    string          `json:"jd_text,omitempty" validate:"required_without=JDURL"`
	JDURL     string          `json:"jd_url,omitempty" validate:"required_without=JDText,omitempty,url"`
	Resumes   []ResumePayload `json:"resumes" validate:"required,min=1,dive"`
	Threshold float64         `json:"threshold,omitempty" validate:"gte=0,lte=1"`
}

// ResumePayload is one candidate document in an analyze request.
type ResumePayload struct {
	Name string `json:"name" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// SessionResponse is the session metadata returned by GET /sessions/{id}.
type SessionResponse struct {
	SessionID        string              `json:"session_id"`
	JDName           string              `json:"jd_name"`
	Requirements     []string            `json:"requirements"`
	RoleBuckets      map[string][]string `json:"role_buckets,omitempty"`
	Threshold        float64             `json:"threshold"`
	RequiredLanguage string              `json:"required_language"`
}

var validate = validator.New()

// pinger is implemented by embedders that can report reachability.
type pinger interface {
	Ping(ctx context.Context) error
}

// handleHealth returns server health status, including embedder
// reachability when the embedder supports a ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok"}

	if p, ok := s.embedder.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			body["embedder"] = "unreachable"
		} else {
			body["embedder"] = "ok"
		}
	}

	s.jsonResponse(w, http.StatusOK, body)
}

// handleAnalyze builds a session from the posted job description and
// evaluates the posted resumes against it synchronously.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	threshold := req.Threshold
	if threshold == 0 {
		threshold = s.cfg.Threshold
	}

	jdText := req.JDText
	if jdText == "" {
		fetched, err := ingestion.LoadFromURL(r.Context(), req.JDURL)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "fetching job description: "+err.Error())
			return
		}
		jdText = fetched
	}

	session, err := pipeline.BuildSession(r.Context(), s.embedder, req.JDName, jdText, threshold, s.cfg.RequiredLanguage)
	if err != nil {
		s.errorResponse(w, statusForBuildError(err), err.Error())
		return
	}
	if err := s.store.Put(session); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	resumes := make([]pipeline.ResumeInput, len(req.Resumes))
	for i, resume := range req.Resumes {
		resumes[i] = pipeline.ResumeInput{Name: resume.Name, Text: resume.Text}
	}

	result, err := pipeline.EvaluateSession(r.Context(), session, resumes, pipeline.Options{
		Embedder: s.embedder,
		Workers:  s.cfg.Workers,
		Logger:   s.logger,
	})
	if err != nil {
		var unavailable *semantic.ModelUnavailableError
		if errors.As(err, &unavailable) {
			s.errorResponse(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		var inputErr *pipeline.InputError
		if errors.As(err, &inputErr) {
			s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	s.results[session.ID] = result
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, result)
}

// handleGetSession returns session metadata.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.sessionFromPath(w, r)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, SessionResponse{
		SessionID:        session.ID.String(),
		JDName:           session.JDName,
		Requirements:     session.Requirements,
		RoleBuckets:      session.RoleBuckets,
		Threshold:        session.Threshold,
		RequiredLanguage: session.RequiredLanguage,
	})
}

// handleRankingReport returns the plain-text ranking report.
func (s *Server) handleRankingReport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.resultFromPath(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(result.RankingReport))
}

// handleXAIReport returns the concatenated per-candidate explanations.
func (s *Server) handleXAIReport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.resultFromPath(w, r)
	if !ok {
		return
	}

	var sb strings.Builder
	for _, candidate := range result.Results {
		sb.WriteString(candidate.XAIReport)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(sb.String()))
}

func (s *Server) sessionFromPath(w http.ResponseWriter, r *http.Request) (*pipeline.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session ID")
		return nil, false
	}

	session, ok := s.store.Get(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return session, true
}

func (s *Server) resultFromPath(w http.ResponseWriter, r *http.Request) (*pipeline.SessionResult, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session ID")
		return nil, false
	}

	s.mu.RLock()
	result, ok := s.results[id]
	s.mu.RUnlock()
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "no results for session")
		return nil, false
	}
	return result, true
}

func statusForBuildError(err error) int {
	var inputErr *pipeline.InputError
	var emptyErr *pipeline.EmptyRequirementsError
	if errors.As(err, &inputErr) || errors.As(err, &emptyErr) {
		return http.StatusUnprocessableEntity
	}
	var unavailable *semantic.ModelUnavailableError
	if errors.As(err, &unavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
