package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"semcat/internal/config"
	"semcat/internal/costtracker"
	"semcat/internal/models"
)

// DefaultEntityPrompt is used when no prompt template is configured.
const DefaultEntityPrompt = `Extract the named entities (projects, tokens, companies, people, protocols) from the text below.
Respond with JSON only: {"entities": [{"name": "...", "type": "...", "confidence": 0.0}]}
Confidence must be between 0 and 1.

Text:
{{TEXT}}`

// ChatCompleter is the slice of the OpenAI client the extractor needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LLMEntityExtractor implements EntityExtractor on an OpenAI-compatible
// chat completion API.
type LLMEntityExtractor struct {
	client         ChatCompleter
	model          string
	promptTemplate string

	costTracker costtracker.CostTracker
	pricing     map[string]config.PricingInfo
}

// NewLLMEntityExtractor creates an extractor. costTracker and pricing may be nil.
func NewLLMEntityExtractor(client ChatCompleter, model, prompt string, costTracker costtracker.CostTracker, pricing map[string]config.PricingInfo) *LLMEntityExtractor {
	if prompt == "" {
		prompt = DefaultEntityPrompt
	}
	return &LLMEntityExtractor{
		client:         client,
		model:          model,
		promptTemplate: prompt,
		costTracker:    costTracker,
		pricing:        pricing,
	}
}

func (e *LLMEntityExtractor) ExtractEntities(ctx context.Context, text string) ([]models.EntityMention, error) {
	if e.client == nil {
		return nil, fmt.Errorf("LLM entity extractor is not initialized with a client")
	}

	prompt := strings.ReplaceAll(e.promptTemplate, "{{TEXT}}", text)
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	var parsed struct {
		Entities []models.EntityMention `json:"entities"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w\nResponse content: %s", err, content)
	}

	e.recordCost(ctx, resp.Usage)

	out := make([]models.EntityMention, 0, len(parsed.Entities))
	for _, ent := range parsed.Entities {
		ent.Name = strings.TrimSpace(ent.Name)
		if ent.Name == "" {
			continue
		}
		ent.Confidence = ClampUnit(ent.Confidence)
		out = append(out, ent)
	}
	return out, nil
}

func (e *LLMEntityExtractor) recordCost(ctx context.Context, usage openai.Usage) {
	if e.costTracker == nil || usage.TotalTokens == 0 {
		return
	}
	price, ok := e.pricing[e.model]
	if !ok {
		log.Warnf("Pricing info not found for model '%s'. Cannot record cost for entity extraction.", e.model)
		return
	}
	event := costtracker.CostEvent{
		Operation: "entity_extraction",
		AmountUSD: float64(usage.PromptTokens)*price.InputPerToken + float64(usage.CompletionTokens)*price.OutputPerToken,
		Details: map[string]interface{}{
			"provider_name": "openai",
			"model_name":    e.model,
			"input_tokens":  usage.PromptTokens,
			"output_tokens": usage.CompletionTokens,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := e.costTracker.RecordCost(ctx, event); err != nil {
		log.Errorf("Failed to record AI usage for entity extraction: %v", err)
	}
}

// NoopEntityExtractor returns no entities. The app installs it when entity
// extraction is disabled.
type NoopEntityExtractor struct{}

func (NoopEntityExtractor) ExtractEntities(context.Context, string) ([]models.EntityMention, error) {
	return []models.EntityMention{}, nil
}
