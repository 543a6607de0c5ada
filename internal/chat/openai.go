package chat

import (
	"context"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog/log"
)

// OpenAIClient implements text completion with the Chat Completions API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI completion provider. Extra request options
// (base URL, retries) are appended after the API key.
func NewOpenAI(apiKey, model string, opts ...option.RequestOption) *OpenAIClient {
	if model == "" {
		model = DefaultOpenAIModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Model returns the OpenAI model id in use.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete sends a system + user message pair and returns the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, systemText, userText string) (string, error) {
	log.Debug().
		Str("model", c.model).
		Int("user_length", len(userText)).
		Msg("Starting OpenAI chat completion")

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemText),
			openai.UserMessage(userText),
		},
		MaxCompletionTokens: openai.Int(maxOutputTokens),
		Temperature:         openai.Float(temperature),
	})
	duration := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("duration", duration).Msg("OpenAI chat completion failed")
		return "", classifyOpenAIError(err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		log.Warn().Msg("Received empty response from OpenAI")
		return "", &APIError{
			Provider: ProviderOpenAI,
			Message:  "received empty response from OpenAI API",
		}
	}

	text := resp.Choices[0].Message.Content
	log.Debug().
		Int("response_length", len(text)).
		Str("finish_reason", resp.Choices[0].FinishReason).
		Dur("duration", duration).
		Msg("OpenAI chat completion received")
	return text, nil
}
