package apihandlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"semcat/internal/models"
	"semcat/internal/services"
	"semcat/internal/taxonomy"
)

type mockJobs struct {
	mock.Mock
}

func (m *mockJobs) EnqueueCategorize(ctx context.Context, content models.ContentInput) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
	Error     *APIError       `json:"error"`
}

func setupRouter(jobs JobEnqueuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewAnalysisService(services.AnalysisServiceDeps{Tables: taxonomy.Default()})
	return NewRouter(NewAPIHandler(svc, jobs))
}

func perform(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestAnalyzeHandler_Single(t *testing.T) {
	w, env := perform(t, setupRouter(nil), http.MethodPost, "/api/v1/analyze",
		`{"text":"DeFi yield lending pump moon good"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Timestamp)

	var a models.SemanticAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &a))
	assert.Equal(t, "defi", a.Categories[0].ID)
	assert.Equal(t, models.SentimentPositive, a.Sentiment.Label)
}

func TestAnalyzeHandler_Batch(t *testing.T) {
	w, env := perform(t, setupRouter(nil), http.MethodPost, "/api/v1/analyze",
		`{"type":"batch","texts":["gaming nft","machine learning","nothing here"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	var out []models.SemanticAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out, 3)
	assert.Equal(t, "gaming nft", out[0].Text)
	assert.Equal(t, "machine learning", out[1].Text)
	assert.Equal(t, "general", out[2].Categories[0].ID)
}

func TestAnalyzeHandler_BadRequests(t *testing.T) {
	testCases := []struct {
		name string
		body string
		msg  string
	}{
		{"Empty object", `{}`, "Text or texts array is required"},
		{"Texts without batch type", `{"texts":["a"]}`, "Invalid request parameters"},
		{"Malformed JSON", `{"text":`, "Invalid request body"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := perform(t, setupRouter(nil), http.MethodPost, "/api/v1/analyze", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, "bad_request", env.Error.Code)
			assert.Contains(t, env.Error.Message, tc.msg)
		})
	}
}

func TestAnalyzeQueryHandler(t *testing.T) {
	r := setupRouter(nil)

	w, env := perform(t, r, http.MethodGet, "/api/v1/analyze?action=categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cats []models.Category
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.Len(t, cats, 6)

	w, env = perform(t, r, http.MethodGet, "/api/v1/analyze?action=realtime&sources=twitter,discord", "")
	require.Equal(t, http.StatusOK, w.Code)
	var snap models.RealtimeSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Len(t, snap.Narratives, 3)

	w, env = perform(t, r, http.MethodGet, "/api/v1/analyze?action=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid action parameter", env.Error.Message)
}

func TestCategorizeHandler_Single(t *testing.T) {
	w, env := perform(t, setupRouter(nil), http.MethodPost, "/api/v1/categorize",
		`{"content":{"title":"DeFi yield","description":"lending pump moon good"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		models.CategorizationResult
		OriginalContent models.ContentInput `json:"originalContent"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Defi", got.PrimaryCategory)
	assert.Contains(t, got.Narratives, "DeFi")
	assert.Equal(t, "DeFi yield", got.OriginalContent.Title)
}

func TestCategorizeHandler_Batch(t *testing.T) {
	w, env := perform(t, setupRouter(nil), http.MethodPost, "/api/v1/categorize",
		`{"type":"batch","contents":[{"title":"gaming nft"},{"description":"rollup on arbitrum"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Gaming", got[0]["primaryCategory"])
	assert.Equal(t, "Layer2", got[1]["primaryCategory"])
	assert.Equal(t, "rollup on arbitrum", got[1]["originalContent"].(map[string]interface{})["description"])
}

func TestCategorizeHandler_Validation(t *testing.T) {
	r := setupRouter(nil)

	w, env := perform(t, r, http.MethodPost, "/api/v1/categorize", `{"content":{"tags":["x"]}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error.Message, "title or description")

	w, _ = perform(t, r, http.MethodPost, "/api/v1/categorize",
		`{"type":"batch","contents":[{"title":"ok"},{"tags":["x"]}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = perform(t, r, http.MethodPost, "/api/v1/categorize", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Content object or contents array is required", env.Error.Message)
}

func TestTrendingHandler(t *testing.T) {
	w, env := perform(t, setupRouter(nil), http.MethodGet, "/api/v1/categorize?timeframe=7d", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Narratives        []models.NarrativeMindshare `json:"narratives"`
		CategoryHierarchy []models.Category           `json:"categoryHierarchy"`
		Timeframe         string                      `json:"timeframe"`
		Sources           []string                    `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "7d", got.Timeframe)
	assert.Equal(t, []string{"twitter", "news", "research"}, got.Sources)
	assert.Len(t, got.Narratives, 3)
	assert.Len(t, got.CategoryHierarchy, 6)
}

func TestEnqueueCategorizeHandler(t *testing.T) {
	jobs := new(mockJobs)
	jobs.On("EnqueueCategorize", mock.Anything, models.ContentInput{Title: "T", Tags: []string{}}).Return("abc-123", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/categorize", strings.NewReader(`{"content":{"title":"T"}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRouter(jobs).ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"task_id":"abc-123"}`, w.Body.String())
	jobs.AssertExpectations(t)
}

func TestEnqueueCategorizeHandler_Errors(t *testing.T) {
	w, env := perform(t, setupRouter(nil), http.MethodPost, "/api/v1/jobs/categorize", `{"content":{"title":"T"}}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "service_unavailable", env.Error.Code)

	jobs := new(mockJobs)
	jobs.On("EnqueueCategorize", mock.Anything, mock.Anything).Return("", errors.New("redis down"))
	w, env = perform(t, setupRouter(jobs), http.MethodPost, "/api/v1/jobs/categorize", `{"content":{"title":"T"}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", env.Error.Code)
}

func TestRequestIDAndHealth(t *testing.T) {
	r := setupRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "given-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "given-id", w.Header().Get(RequestIDHeader))

	w, env := perform(t, r, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestParseSources(t *testing.T) {
	assert.Equal(t, []string{"twitter", "news", "research"}, parseSources(""))
	assert.Equal(t, []string{"discord", "medium"}, parseSources(" discord, ,medium "))
}
