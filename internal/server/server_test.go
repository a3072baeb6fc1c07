package server

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiring-agent/internal/pipeline"
)

const testJD = `
Develop and maintain Python web applications using Flask and Django frameworks.
Design and implement REST APIs with proper database integration using SQL.
Build and train machine learning models using pandas and numpy for data analysis.
`

const testResume = `
Developed Python web applications with Flask serving REST APIs backed by SQL databases.
Built and trained machine learning models using pandas and numpy for data analysis in production.
`

// wordBagEmbedder hashes words into a fixed-size count vector so texts
// sharing words get high cosine similarity.
type wordBagEmbedder struct{}

func (wordBagEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector := make([]float32, 64)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New32a()
			_, _ = h.Write([]byte(word))
			vector[h.Sum32()%64]++
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	s, err := New(Config{
		Port:     0,
		APIKey:   apiKey,
		Embedder: wordBagEmbedder{},
	})
	require.NoError(t, err)
	return s
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func analyzeBody() string {
	req := AnalyzeRequest{
		JDName: "backend_jd",
		JDText: testJD,
		Resumes: []ResumePayload{
			{Name: "Jane Doe", Text: testResume},
		},
	}
	data, _ := json.Marshal(req)
	return string(data)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")

	rec := doJSON(t, s.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAnalyze_Success(t *testing.T) {
	s := newTestServer(t, "")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/analyze", analyzeBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result pipeline.SessionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Results, 1)
	assert.Equal(t, "Jane Doe", result.Results[0].Name)
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, 1, result.Summary.Total)
}

func TestAnalyze_AllResumesBlank(t *testing.T) {
	s := newTestServer(t, "")

	req := AnalyzeRequest{
		JDName:  "backend_jd",
		JDText:  testJD,
		Resumes: []ResumePayload{{Name: "Blank", Text: "   "}},
	}
	data, _ := json.Marshal(req)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/analyze", string(data))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Blank")
}

func TestAnalyze_JDFromURL(t *testing.T) {
	jdServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><main>" + testJD + "</main></body></html>"))
	}))
	defer jdServer.Close()

	s := newTestServer(t, "")
	req := AnalyzeRequest{
		JDName:  "remote_jd",
		JDURL:   jdServer.URL,
		Resumes: []ResumePayload{{Name: "Jane Doe", Text: testResume}},
	}
	data, _ := json.Marshal(req)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/analyze", string(data))
	require.Equal(t, http.StatusOK, rec.Code)

	var result pipeline.SessionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Results, 1)
}

func TestAnalyze_InvalidBody(t *testing.T) {
	s := newTestServer(t, "")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/analyze", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_MissingFields(t *testing.T) {
	s := newTestServer(t, "")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/analyze", `{"jd_name": "x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request")
}

func TestAnalyze_JDWithoutRequirements(t *testing.T) {
	s := newTestServer(t, "")

	req := AnalyzeRequest{
		JDName:  "fluff",
		JDText:  "We are a fast growing company with a great office culture and perks for everyone.",
		Resumes: []ResumePayload{{Name: "Jane Doe", Text: testResume}},
	}
	data, _ := json.Marshal(req)

	rec := doJSON(t, s.Handler(), http.MethodPost, "/analyze", string(data))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetSession_AfterAnalyze(t *testing.T) {
	s := newTestServer(t, "")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/analyze", analyzeBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var result pipeline.SessionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	rec = doJSON(t, s.Handler(), http.MethodGet, "/sessions/"+result.SessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var session SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "backend_jd", session.JDName)
	assert.NotEmpty(t, session.Requirements)
}

func TestReports_AfterAnalyze(t *testing.T) {
	s := newTestServer(t, "")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/analyze", analyzeBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var result pipeline.SessionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	rec = doJSON(t, s.Handler(), http.MethodGet, "/sessions/"+result.SessionID+"/ranking-report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CANDIDATE RANKING REPORT")

	rec = doJSON(t, s.Handler(), http.MethodGet, "/sessions/"+result.SessionID+"/xai-report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "EXPLAINABLE AI ANALYSIS: Jane Doe")
}

func TestGetSession_InvalidID(t *testing.T) {
	s := newTestServer(t, "")

	rec := doJSON(t, s.Handler(), http.MethodGet, "/sessions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSession_NotFound(t *testing.T) {
	s := newTestServer(t, "")

	rec := doJSON(t, s.Handler(), http.MethodGet, "/sessions/5f2c9f9e-0c5a-4b8e-9f1a-2d3c4b5a6978", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuth_RejectsMissingKey(t *testing.T) {
	s := newTestServer(t, "secret-key")

	rec := doJSON(t, s.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_AcceptsBearerAndHeader(t *testing.T) {
	s := newTestServer(t, "secret-key")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-API-Key", "secret-key")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_RejectsWrongKey(t *testing.T) {
	s := newTestServer(t, "secret-key")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
