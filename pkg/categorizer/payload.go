package categorizer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"semcat/internal/models"
)

// StatusSuccess is the only top-level status accepted from the provider.
const StatusSuccess = "success"

// AnalyzeResponse is the provider's analyze_sync response. Every field is
// optional on the wire; Validate decides whether the payload is usable.
type AnalyzeResponse struct {
	Status  string          `json:"status"`
	Results *AnalyzeResults `json:"results"`
}

type AnalyzeResults struct {
	Response *ResponseBody `json:"response"`
}

type ResponseBody struct {
	Segments []Segment     `json:"segments"`
	Texts    *ResponseText `json:"texts"`
}

type ResponseText struct {
	Compressed string `json:"compressed"`
}

// Segment describes a portion of the analyzed text.
type Segment struct {
	CategorySimilarities Similarities      `json:"category_similarities"`
	CompressionRatio     *float64          `json:"compression_ratio"`
	CovariantDetails     []CovariantDetail `json:"covariant_details"`
}

type CovariantDetail struct {
	Text string `json:"text"`
}

// Similarity is one category → similarity pair of a segment.
type Similarity struct {
	Category string
	Score    float64
}

// Similarities keeps the provider's key order, which decides the category
// tag of extracted keywords.
type Similarities []Similarity

// nonNumericSimilarity is assigned to similarity values that are not numbers.
const nonNumericSimilarity = 0.5

func (s *Similarities) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("category_similarities: expected object, got %v", tok)
	}

	var out Similarities
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("category_similarities: unexpected key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		out = append(out, Similarity{Category: key, Score: similarityValue(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

func similarityValue(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !(raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
		return nonNumericSimilarity
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nonNumericSimilarity
	}
	return ClampUnit(f)
}

// ClampUnit bounds a provider score to [0, 1].
func ClampUnit(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}

// Compressed returns the compressed text, or "" when absent.
func (b ResponseBody) Compressed() string {
	if b.Texts == nil {
		return ""
	}
	return b.Texts.Compressed
}

// DetailText returns the first covariant detail text of the segment.
func (s Segment) DetailText() string {
	if len(s.CovariantDetails) == 0 {
		return ""
	}
	return s.CovariantDetails[0].Text
}

// Validate checks the top-level contract and returns the usable body.
// Failures wrap models.ErrContractViolation.
func (r *AnalyzeResponse) Validate() (ResponseBody, error) {
	if r == nil {
		return ResponseBody{}, fmt.Errorf("%w: empty payload", models.ErrContractViolation)
	}
	if r.Status != StatusSuccess {
		return ResponseBody{}, fmt.Errorf("%w: status %q", models.ErrContractViolation, r.Status)
	}
	if r.Results == nil {
		return ResponseBody{}, fmt.Errorf("%w: missing results", models.ErrContractViolation)
	}
	if r.Results.Response == nil {
		return ResponseBody{}, fmt.Errorf("%w: missing results.response", models.ErrContractViolation)
	}
	return *r.Results.Response, nil
}
