package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient implements both text completion and video analysis on top of
// the Gemini API. Video bytes are sent inline; the SDK base64-encodes them.
type GeminiClient struct {
	models contentGenerator
	model  string
}

// NewGeminiClient creates a genai client for the Gemini Developer API.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

// NewGemini wraps client for use as a prompt provider with the given model.
func NewGemini(client *genai.Client, model string) *GeminiClient {
	return newGemini(client.Models, model)
}

func newGemini(models contentGenerator, model string) *GeminiClient {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{models: models, model: model}
}

// Model returns the Gemini model id in use.
func (c *GeminiClient) Model() string {
	return c.model
}

// Complete sends systemText as the system instruction and userText as the
// single user turn, returning the model's text.
func (c *GeminiClient) Complete(ctx context.Context, systemText, userText string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemText}},
		},
		Temperature:     genai.Ptr[float32](temperature),
		MaxOutputTokens: maxOutputTokens,
	}
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: userText}},
	}}
	return c.generate(ctx, "completion", contents, config)
}

// AnalyzeMedia sends the media inline followed by the instruction text.
func (c *GeminiClient) AnalyzeMedia(ctx context.Context, data []byte, mimeType, instructionText string) (string, error) {
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			{Text: instructionText},
		},
	}}
	return c.generate(ctx, "media_analysis", contents, nil)
}

func (c *GeminiClient) generate(ctx context.Context, operation string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	log.Debug().
		Str("model", c.model).
		Str("operation", operation).
		Msg("Starting Gemini API call")

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, contents, config)
	duration := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("operation", operation).Dur("duration", duration).Msg("Gemini API call failed")
		return "", classifyGeminiError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		log.Warn().Str("operation", operation).Msg("Received empty response from Gemini")
		return "", &APIError{
			Provider: ProviderGemini,
			Message:  "received empty response from Gemini API",
			Err:      errors.New("no candidates"),
		}
	}

	text := resp.Text()
	if text == "" {
		reason := ""
		if resp.Candidates[0] != nil {
			reason = string(resp.Candidates[0].FinishReason)
		}
		return "", &APIError{
			Provider: ProviderGemini,
			Status:   reason,
			Message:  "Gemini returned no text",
		}
	}

	log.Debug().
		Str("operation", operation).
		Int("response_length", len(text)).
		Dur("duration", duration).
		Msg("Gemini API response received")
	return text, nil
}
