// Package prompt turns a scene description or an uploaded video into a
// platform-specific video-generation prompt.
//
// Service validates input, picks the platform template from the registry,
// and forwards a single request to an injected provider. It holds no
// mutable state, so one Service is shared by every request.
package prompt

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/nickytooth/promptcrafting-ai/internal/assets"
	"github.com/nickytooth/promptcrafting-ai/internal/platform"
	"github.com/nickytooth/promptcrafting-ai/internal/upload"
	"github.com/rs/zerolog/log"
)

// Completer is a text-completion provider.
type Completer interface {
	Complete(ctx context.Context, systemText, userText string) (string, error)
}

// MediaAnalyzer is a multimodal provider that can read a video.
type MediaAnalyzer interface {
	AnalyzeMedia(ctx context.Context, data []byte, mimeType, instructionText string) (string, error)
}

// Observer receives one call per provider request. result is "success",
// "rate_limited" or "error".
type Observer interface {
	ObserveProviderCall(operation, result string, duration time.Duration)
}

// Operation names reported to the Observer.
const (
	OperationGenerate = "generate"
	OperationAnalyze  = "analyze"
)

// Client-visible messages.
const (
	msgRequiredFields  = "Description and platform are required"
	msgUnknownPlatform = "Invalid platform selected"
	msgPlatformMissing = "Platform is required"
	msgMissingFile     = "Video file is required"
	msgRateLimited     = "Rate limit exceeded. Please wait and try again."
	msgGenerateFailed  = "Failed to generate prompt. Please try again."
	msgAnalysisFailed  = "Failed to analyze video. Please try again."
)

// Result is a generated prompt.
type Result struct {
	Prompt   string `json:"prompt"`
	Platform string `json:"platform"`
}

// Service dispatches generation requests to the configured providers.
type Service struct {
	registry  *platform.Registry
	completer Completer
	analyzer  MediaAnalyzer
	uploadDir string
	observer  Observer
}

// Option configures a Service.
type Option func(*Service)

// WithUploadDir sets the directory scoped temp files are written to.
// Defaults to os.TempDir().
func WithUploadDir(dir string) Option {
	return func(s *Service) { s.uploadDir = dir }
}

// WithObserver attaches a provider-call observer (metrics).
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// NewService creates a Service. registry, completer and analyzer are required.
func NewService(registry *platform.Registry, completer Completer, analyzer MediaAnalyzer, opts ...Option) *Service {
	s := &Service{
		registry:  registry,
		completer: completer,
		analyzer:  analyzer,
		uploadDir: os.TempDir(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPlatforms returns the registered platforms in order.
func (s *Service) ListPlatforms() []platform.Summary {
	return s.registry.List()
}

// GenerateFromDescription builds a prompt for platformID from a prose scene
// description using the text completion provider.
func (s *Service) GenerateFromDescription(ctx context.Context, description, platformID string) (*Result, error) {
	description = strings.TrimSpace(description)
	if description == "" || platformID == "" {
		return nil, newError(KindEmptyInput, msgRequiredFields, nil)
	}
	tmpl, ok := s.registry.Lookup(platformID)
	if !ok {
		return nil, newError(KindUnknownPlatform, msgUnknownPlatform, nil)
	}

	userText := assets.RenderDescriptionUserPrompt(tmpl.DisplayName, description)

	log.Debug().
		Str("platform", tmpl.ID).
		Int("description_length", len(description)).
		Msg("Requesting prompt from completion provider")

	start := time.Now()
	text, err := s.completer.Complete(ctx, tmpl.SystemPrompt, userText)
	elapsed := time.Since(start)

	if err != nil {
		if isRateLimited(err) {
			s.observe(OperationGenerate, "rate_limited", elapsed)
			log.Warn().Err(err).Str("platform", tmpl.ID).Dur("duration", elapsed).Msg("Completion provider rate limited")
			return nil, newError(KindRateLimited, msgRateLimited, err)
		}
		s.observe(OperationGenerate, "error", elapsed)
		log.Error().Err(err).Str("platform", tmpl.ID).Dur("duration", elapsed).Msg("Completion provider failed")
		msg := providerMessage(err)
		if msg == "" {
			msg = msgGenerateFailed
		}
		return nil, newError(KindGenerationFailed, msg, err)
	}
	s.observe(OperationGenerate, "success", elapsed)

	log.Info().
		Str("platform", tmpl.ID).
		Int("response_length", len(text)).
		Dur("duration", elapsed).
		Msg("Prompt generated from description")

	return &Result{Prompt: text, Platform: tmpl.DisplayName}, nil
}

// GenerateFromVideo builds a prompt for platformID by sending the uploaded
// video to the multimodal provider. The video is staged in a scoped temp file
// that is removed before this method returns, on every path.
func (s *Service) GenerateFromVideo(ctx context.Context, video []byte, mimeType, platformID string) (*Result, error) {
	if len(video) == 0 {
		return nil, newError(KindMissingFile, msgMissingFile, nil)
	}
	if platformID == "" {
		return nil, newError(KindUnknownPlatform, msgPlatformMissing, nil)
	}
	tmpl, ok := s.registry.Lookup(platformID)
	if !ok {
		return nil, newError(KindUnknownPlatform, msgUnknownPlatform, nil)
	}
	if err := upload.Validate(mimeType, int64(len(video))); err != nil {
		return nil, newError(KindInvalidUpload, err.Error(), err)
	}

	instruction := assets.RenderVideoAnalysisPrompt(tmpl.DisplayName, tmpl.SystemPrompt)

	var text string
	var elapsed time.Duration
	var providerCalled bool
	err := upload.Scoped(s.uploadDir, video, upload.ExtensionFor(mimeType), func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		log.Debug().
			Str("platform", tmpl.ID).
			Str("mime_type", mimeType).
			Int("size_bytes", len(data)).
			Msg("Sending video to analysis provider")

		providerCalled = true
		start := time.Now()
		text, err = s.analyzer.AnalyzeMedia(ctx, data, mimeType, instruction)
		elapsed = time.Since(start)
		return err
	})
	if err != nil {
		if providerCalled {
			result := "error"
			if isRateLimited(err) {
				result = "rate_limited"
			}
			s.observe(OperationAnalyze, result, elapsed)
		}
		log.Error().Err(err).Str("platform", tmpl.ID).Dur("duration", elapsed).Msg("Video analysis failed")
		return nil, newError(KindAnalysisFailed, msgAnalysisFailed, err)
	}
	s.observe(OperationAnalyze, "success", elapsed)

	log.Info().
		Str("platform", tmpl.ID).
		Int("video_bytes", len(video)).
		Int("response_length", len(text)).
		Dur("duration", elapsed).
		Msg("Prompt generated from video")

	return &Result{Prompt: text, Platform: tmpl.DisplayName}, nil
}

func (s *Service) observe(operation, result string, d time.Duration) {
	if s.observer != nil {
		s.observer.ObserveProviderCall(operation, result, d)
	}
}
