package categorizer

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"semcat/internal/config"
	"semcat/internal/costtracker"
	"semcat/internal/models"
)

// --- Mock OpenAI Client ---
type mockOpenAIClient struct {
	mockResponse openai.ChatCompletionResponse
	mockError    error
	lastRequest  openai.ChatCompletionRequest
}

func (m *mockOpenAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.lastRequest = req
	if m.mockError != nil {
		return openai.ChatCompletionResponse{}, m.mockError
	}
	return m.mockResponse, nil
}

type mockCostTracker struct {
	mock.Mock
}

func (m *mockCostTracker) RecordCost(ctx context.Context, event costtracker.CostEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockCostTracker) TotalCost(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func responseWith(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestLLMEntityExtractor_Parsing(t *testing.T) {
	mockClient := &mockOpenAIClient{mockResponse: responseWith(
		`{"entities": [{"name": "Ethereum", "type": "protocol", "confidence": 0.92}, {"name": "  ", "type": "x", "confidence": 1}, {"name": "Vitalik", "type": "person", "confidence": 1.7}]}`,
	)}
	extractor := NewLLMEntityExtractor(mockClient, "gpt-test", "find entities in {{TEXT}}", nil, nil)

	entities, err := extractor.ExtractEntities(context.Background(), "Ethereum news")

	require.NoError(t, err)
	assert.Equal(t, []models.EntityMention{
		{Name: "Ethereum", Type: "protocol", Confidence: 0.92},
		{Name: "Vitalik", Type: "person", Confidence: 1},
	}, entities)
	assert.Equal(t, "find entities in Ethereum news", mockClient.lastRequest.Messages[0].Content)
	assert.Equal(t, "gpt-test", mockClient.lastRequest.Model)
}

func TestLLMEntityExtractor_DefaultPrompt(t *testing.T) {
	mockClient := &mockOpenAIClient{mockResponse: responseWith(`{"entities": []}`)}
	extractor := NewLLMEntityExtractor(mockClient, "gpt-test", "", nil, nil)

	entities, err := extractor.ExtractEntities(context.Background(), "some text")

	require.NoError(t, err)
	assert.Empty(t, entities)
	assert.Contains(t, mockClient.lastRequest.Messages[0].Content, "some text")
}

func TestLLMEntityExtractor_InvalidJSON(t *testing.T) {
	invalidJSON := `This is just plain text, not JSON.`
	extractor := NewLLMEntityExtractor(&mockOpenAIClient{mockResponse: responseWith(invalidJSON)}, "gpt-test", "", nil, nil)

	_, err := extractor.ExtractEntities(context.Background(), "text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse LLM response as JSON")
	assert.Contains(t, err.Error(), invalidJSON)
}

func TestLLMEntityExtractor_APIError(t *testing.T) {
	mockErr := errors.New("simulated API error 429 Too Many Requests")
	extractor := NewLLMEntityExtractor(&mockOpenAIClient{mockError: mockErr}, "gpt-test", "", nil, nil)

	_, err := extractor.ExtractEntities(context.Background(), "text")

	require.Error(t, err)
	assert.ErrorIs(t, err, mockErr)
	assert.Contains(t, err.Error(), "openai chat completion failed")
}

func TestLLMEntityExtractor_EmptyResponse(t *testing.T) {
	extractor := NewLLMEntityExtractor(&mockOpenAIClient{mockResponse: openai.ChatCompletionResponse{}}, "gpt-test", "", nil, nil)

	_, err := extractor.ExtractEntities(context.Background(), "text")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices returned from OpenAI")
}

func TestLLMEntityExtractor_NilClient(t *testing.T) {
	extractor := NewLLMEntityExtractor(nil, "gpt-test", "", nil, nil)
	_, err := extractor.ExtractEntities(context.Background(), "text")
	assert.Error(t, err)
}

func TestLLMEntityExtractor_RecordsCost(t *testing.T) {
	resp := responseWith(`{"entities": []}`)
	resp.Usage = openai.Usage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120}

	tracker := new(mockCostTracker)
	tracker.On("RecordCost", mock.Anything, mock.MatchedBy(func(e costtracker.CostEvent) bool {
		return e.Operation == "entity_extraction" && e.AmountUSD > 0.0001199 && e.AmountUSD < 0.0001201
	})).Return(nil).Once()

	pricing := map[string]config.PricingInfo{"gpt-test": {InputPerToken: 0.000001, OutputPerToken: 0.000001}}
	extractor := NewLLMEntityExtractor(&mockOpenAIClient{mockResponse: resp}, "gpt-test", "", tracker, pricing)

	_, err := extractor.ExtractEntities(context.Background(), "text")

	require.NoError(t, err)
	tracker.AssertExpectations(t)
}

func TestNoopEntityExtractor(t *testing.T) {
	entities, err := NoopEntityExtractor{}.ExtractEntities(context.Background(), "anything")
	require.NoError(t, err)
	assert.NotNil(t, entities)
	assert.Empty(t, entities)
}
