package apihandlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"semcat/internal/models"
	"semcat/internal/services"
)

// timestampLayout matches JavaScript's Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

const batchType = "batch"

// Analyzer is the set of public operations served over HTTP.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) models.SemanticAnalysis
	AnalyzeBatch(ctx context.Context, texts []string) []models.SemanticAnalysis
	CategorizeNarrative(ctx context.Context, content models.ContentInput) models.CategorizationResult
	CategorizeBatch(ctx context.Context, contents []models.ContentInput) []models.CategorizationResult
	CategoryHierarchy(ctx context.Context) []models.Category
	TrackRealtimeData(ctx context.Context, sources []string) models.RealtimeSnapshot
}

// JobEnqueuer schedules background categorization.
type JobEnqueuer interface {
	EnqueueCategorize(ctx context.Context, content models.ContentInput) (string, error)
}

type APIHandler struct {
	Analysis Analyzer
	Jobs     JobEnqueuer // nil disables the jobs route
}

func NewAPIHandler(analysis Analyzer, jobs JobEnqueuer) *APIHandler {
	return &APIHandler{Analysis: analysis, Jobs: jobs}
}

type analyzeRequest struct {
	Text  string   `json:"text"`
	Texts []string `json:"texts"`
	Type  string   `json:"type"`
}

type categorizeRequest struct {
	Content  *models.ContentInput  `json:"content"`
	Contents []models.ContentInput `json:"contents"`
	Type     string                `json:"type"`
}

// categorizedContent is a categorization echoed with the validated input.
type categorizedContent struct {
	models.CategorizationResult
	OriginalContent models.ContentInput `json:"originalContent"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(timestampLayout),
	})
}

func (h *APIHandler) AnalyzeHandler(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" && req.Texts == nil {
		BadRequest(c, "Text or texts array is required")
		return
	}

	ctx := c.Request.Context()
	switch {
	case req.Type == batchType && req.Texts != nil:
		respond(c, http.StatusOK, h.Analysis.AnalyzeBatch(ctx, req.Texts))
	case req.Text != "":
		respond(c, http.StatusOK, h.Analysis.AnalyzeText(ctx, req.Text))
	default:
		BadRequest(c, "Invalid request parameters")
	}
}

// AnalyzeQueryHandler serves GET /analyze?action=categories|realtime.
func (h *APIHandler) AnalyzeQueryHandler(c *gin.Context) {
	ctx := c.Request.Context()
	switch c.Query("action") {
	case "categories":
		respond(c, http.StatusOK, h.Analysis.CategoryHierarchy(ctx))
	case "realtime":
		respond(c, http.StatusOK, h.Analysis.TrackRealtimeData(ctx, parseSources(c.Query("sources"))))
	default:
		BadRequest(c, "Invalid action parameter")
	}
}

func (h *APIHandler) CategorizeHandler(c *gin.Context) {
	var req categorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Content == nil && req.Contents == nil {
		BadRequest(c, "Content object or contents array is required")
		return
	}

	ctx := c.Request.Context()
	switch {
	case req.Type == batchType && req.Contents != nil:
		validated := make([]models.ContentInput, len(req.Contents))
		for i, item := range req.Contents {
			v, err := services.ValidateContent(item)
			if err != nil {
				h.respondError(c, err)
				return
			}
			validated[i] = v
		}
		results := h.Analysis.CategorizeBatch(ctx, validated)
		out := make([]categorizedContent, len(results))
		for i, r := range results {
			out[i] = categorizedContent{CategorizationResult: r, OriginalContent: validated[i]}
		}
		respond(c, http.StatusOK, out)
	case req.Content != nil:
		v, err := services.ValidateContent(*req.Content)
		if err != nil {
			h.respondError(c, err)
			return
		}
		respond(c, http.StatusOK, categorizedContent{
			CategorizationResult: h.Analysis.CategorizeNarrative(ctx, v),
			OriginalContent:      v,
		})
	default:
		BadRequest(c, "Invalid request parameters")
	}
}

// TrendingHandler serves GET /categorize: trending narratives with the
// category hierarchy for context.
func (h *APIHandler) TrendingHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sources := parseSources(c.Query("sources"))
	snapshot := h.Analysis.TrackRealtimeData(ctx, sources)

	respond(c, http.StatusOK, gin.H{
		"narratives":        snapshot.Narratives,
		"categories":        snapshot.Categories,
		"sentiment":         snapshot.Sentiment,
		"categoryHierarchy": h.Analysis.CategoryHierarchy(ctx),
		"timeframe":         c.DefaultQuery("timeframe", "24h"),
		"sources":           sources,
	})
}

func (h *APIHandler) EnqueueCategorizeHandler(c *gin.Context) {
	if h.Jobs == nil {
		Unavailable(c, "Background jobs are not configured")
		return
	}
	var req categorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Content == nil {
		BadRequest(c, "Content object is required")
		return
	}
	v, err := services.ValidateContent(*req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	taskID, err := h.Jobs.EnqueueCategorize(c.Request.Context(), v)
	if err != nil {
		log.WithError(err).Error("Failed to enqueue categorization")
		Internal(c, "Failed to enqueue categorization")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"task_id": taskID})
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *APIHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrValidation) {
		BadRequest(c, err.Error())
		return
	}
	Internal(c, err.Error())
}

// parseSources splits a comma-separated source list, defaulting when empty.
func parseSources(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), services.DefaultSources...)
	}
	return out
}
