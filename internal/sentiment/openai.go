package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const systemPrompt = "You are an expert at analyzing movie review sentiment. " +
	"Analyze the sentiment of the following movie review and classify it as " +
	"'positive', 'negative', or 'neutral'. " +
	"Return a JSON object with the following fields: " +
	"- sentiment: 'positive', 'negative', or 'neutral' " +
	"- confidence: a number between 0 and 100 indicating your confidence " +
	"- analysis: a brief explanation of your reasoning"

// OpenAIClassifier delegates classification to the OpenAI
// chat-completions API with a JSON-object response format and
// near-zero temperature. Any failure at the boundary (transport,
// non-200, malformed payload, missing fields, out-of-set label) is
// recovered by delegating to the fallback classifier; callers never
// see an error from Classify.
type OpenAIClassifier struct {
	apiKey   string
	model    string
	host     string
	client   *http.Client
	fallback Classifier
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// classification is the shape the model is instructed to emit. Pointer
// fields let us tell "absent" apart from zero values when validating.
type classification struct {
	Sentiment  string   `json:"sentiment"`
	Confidence *float64 `json:"confidence"`
	Analysis   *string  `json:"analysis"`
}

// NewOpenAIClassifier builds the remote classifier. The fallback is
// consulted whenever the remote call cannot produce a valid result.
func NewOpenAIClassifier(apiKey, model string, timeout time.Duration, fallback Classifier) *OpenAIClassifier {
	return &OpenAIClassifier{
		apiKey:   apiKey,
		model:    model,
		host:     "https://api.openai.com/v1",
		client:   &http.Client{Timeout: timeout},
		fallback: fallback,
	}
}

// WithBaseURL sets a custom API base URL (useful for proxies or tests).
func (c *OpenAIClassifier) WithBaseURL(baseURL string) *OpenAIClassifier {
	c.host = strings.TrimSuffix(baseURL, "/")
	return c
}

// Classify sends the review to the model and validates the structured
// reply. The sentiment label is re-checked against the closed set even
// though the prompt constrains it; an unrecognized label is treated the
// same as a parse failure.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) Result {
	result, err := c.classifyRemote(ctx, text)
	if err != nil {
		log.Printf("openai classification failed, using keyword fallback: %v", err)
		return c.fallback.Classify(ctx, text)
	}
	return result
}

func (c *OpenAIClassifier) classifyRemote(ctx context.Context, text string) (Result, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    0,
		MaxTokens:      150,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(payload))
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Result{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if response.Error != nil {
		return Result{}, fmt.Errorf("OpenAI API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return Result{}, fmt.Errorf("no response choices returned")
	}

	content := response.Choices[0].Message.Content
	if content == "" {
		return Result{}, fmt.Errorf("empty completion content")
	}

	var parsed classification
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return Result{}, fmt.Errorf("completion is not valid JSON: %w", err)
	}
	if parsed.Sentiment == "" || parsed.Confidence == nil || parsed.Analysis == nil {
		return Result{}, fmt.Errorf("completion missing required fields")
	}
	if !ValidLabel(parsed.Sentiment) {
		return Result{}, fmt.Errorf("unrecognized sentiment value %q", parsed.Sentiment)
	}

	confidence := *parsed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	return Result{
		Sentiment:  parsed.Sentiment,
		Confidence: confidence,
		Analysis:   *parsed.Analysis,
		Method:     "openai",
	}, nil
}
