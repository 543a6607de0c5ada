package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// APIError is a provider failure normalized across Gemini and OpenAI.
type APIError struct {
	Provider string
	Code     int    // HTTP status code, 0 if the request never got a response
	Status   string // provider status string (e.g. RESOURCE_EXHAUSTED, rate_limit_exceeded)
	Message  string
	Err      error
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s API error %d: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the provider throttled the request.
func (e *APIError) RateLimited() bool {
	if e.Code == http.StatusTooManyRequests {
		return true
	}
	switch strings.ToLower(e.Status) {
	case "resource_exhausted", "rate_limit_exceeded", "rate_limit_error":
		return true
	}
	return false
}

// ClientMessage is the provider's own message, without wrapping.
func (e *APIError) ClientMessage() string {
	return e.Message
}

// classifyGeminiError normalizes an error returned by the genai SDK.
func classifyGeminiError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr != nil {
		return geminiAPIError(*apiErr, err)
	}

	return classifyByMessage(ProviderGemini, err)
}

func geminiAPIError(apiErr genai.APIError, cause error) *APIError {
	log.Debug().
		Int("code", apiErr.Code).
		Str("status", apiErr.Status).
		Msg("Gemini API error")
	msg := apiErr.Message
	if msg == "" {
		msg = cause.Error()
	}
	return &APIError{
		Provider: ProviderGemini,
		Code:     apiErr.Code,
		Status:   apiErr.Status,
		Message:  msg,
		Err:      cause,
	}
}

// classifyOpenAIError normalizes an error returned by the openai-go SDK.
func classifyOpenAIError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		log.Debug().
			Int("code", apiErr.StatusCode).
			Str("type", apiErr.Type).
			Msg("OpenAI API error")
		msg := apiErr.Message
		if msg == "" {
			msg = err.Error()
		}
		status := apiErr.Code
		if status == "" {
			status = apiErr.Type
		}
		return &APIError{
			Provider: ProviderOpenAI,
			Code:     apiErr.StatusCode,
			Status:   status,
			Message:  msg,
			Err:      err,
		}
	}

	return classifyByMessage(ProviderOpenAI, err)
}

// classifyByMessage handles errors that did not come back as a typed API
// error, e.g. transport failures or SDK wrapping.
func classifyByMessage(provider string, err error) *APIError {
	lower := strings.ToLower(err.Error())
	e := &APIError{Provider: provider, Message: err.Error(), Err: err}
	if strings.Contains(lower, "resource exhausted") ||
		strings.Contains(lower, "resource_exhausted") ||
		strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "too many requests") ||
		strings.Contains(lower, "error 429") {
		e.Code = http.StatusTooManyRequests
	}
	return e
}
