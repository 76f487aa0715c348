// Package hypernym is the HTTP client for the external semantic analysis
// provider. It only speaks the wire contract; interpretation of the payload
// lives in pkg/categorizer.
package hypernym

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"semcat/internal/models"
	"semcat/pkg/categorizer"
)

const (
	analyzePath    = "/analyze_sync"
	categoriesPath = "/categories"
	maxErrorBody   = 1024
)

// Client calls the provider. A zero Timeout means requests have no deadline
// beyond the caller's context.
type Client struct {
	BaseURL               string
	APIKey                string
	MinCompressionRatio   float64
	MinSemanticSimilarity float64
	Timeout               time.Duration

	HTTPClient *http.Client
}

type analyzeRequest struct {
	EssayText string         `json:"essay_text"`
	Params    analyzeParams  `json:"params"`
	Filters   analyzeFilters `json:"filters"`
}

type analyzeParams struct {
	MinCompressionRatio   float64 `json:"min_compression_ratio"`
	MinSemanticSimilarity float64 `json:"min_semantic_similarity"`
}

type analyzeFilters struct {
	Purpose purposeFilter `json:"purpose"`
}

type purposeFilter struct {
	Exclude []string `json:"exclude"`
}

// Analyze submits text for analysis and returns the validated response body.
// Transport failures and non-2xx statuses wrap models.ErrUpstreamUnavailable;
// undecodable or incomplete payloads wrap models.ErrContractViolation.
func (c *Client) Analyze(ctx context.Context, text string) (categorizer.ResponseBody, error) {
	reqBody, err := json.Marshal(analyzeRequest{
		EssayText: text,
		Params: analyzeParams{
			MinCompressionRatio:   c.MinCompressionRatio,
			MinSemanticSimilarity: c.MinSemanticSimilarity,
		},
		Filters: analyzeFilters{Purpose: purposeFilter{Exclude: []string{}}},
	})
	if err != nil {
		return categorizer.ResponseBody{}, fmt.Errorf("hypernym: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(analyzePath), bytes.NewReader(reqBody))
	if err != nil {
		return categorizer.ResponseBody{}, fmt.Errorf("%w: build request: %v", models.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.APIKey)

	var payload categorizer.AnalyzeResponse
	if err := c.do(req, &payload); err != nil {
		return categorizer.ResponseBody{}, err
	}
	return payload.Validate()
}

// Categories fetches the provider's category hierarchy.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(categoriesPath), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", models.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	var cats []models.Category
	if err := c.do(req, &cats); err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: empty category hierarchy", models.ErrContractViolation)
	}
	for i := range cats {
		cats[i].Confidence = categorizer.ClampUnit(cats[i].Confidence)
	}
	return cats, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		hint, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: status %d %s: %s", models.ErrUpstreamUnavailable,
			resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(hint)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", models.ErrContractViolation, err)
	}
	return nil
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: c.Timeout}
}
