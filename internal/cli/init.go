// Package cli wires configuration, credentials and providers into a
// prompt.Service for the command-line entrypoints.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nickytooth/promptcrafting-ai/internal/auth"
	"github.com/nickytooth/promptcrafting-ai/internal/chat"
	"github.com/nickytooth/promptcrafting-ai/internal/config"
	"github.com/nickytooth/promptcrafting-ai/internal/platform"
	"github.com/nickytooth/promptcrafting-ai/internal/prompt"
)

// Setup is a ready-to-use service along with the providers behind it.
type Setup struct {
	Service  *prompt.Service
	Registry *platform.Registry

	TextProvider string
	TextModel    string
	VideoModel   string

	text   prompt.Completer
	gemini *chat.GeminiClient
}

// BuildService loads the platform registry, resolves API keys and creates
// the provider clients selected by cfg.
func BuildService(ctx context.Context, cfg config.Config, opts ...prompt.Option) (*Setup, error) {
	registry, err := platform.Load(cfg.PlatformsFile)
	if err != nil {
		return nil, fmt.Errorf("load platforms: %w", err)
	}

	geminiKey, err := auth.GetAPIKey(auth.GeminiKey)
	if err != nil {
		return nil, err
	}
	genaiClient, err := chat.NewGeminiClient(ctx, geminiKey)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	gemini := chat.NewGemini(genaiClient, cfg.GeminiModel)

	s := &Setup{
		Registry:     registry,
		TextProvider: cfg.TextProvider,
		VideoModel:   gemini.Model(),
		gemini:       gemini,
	}

	switch cfg.TextProvider {
	case chat.ProviderGemini:
		s.text = gemini
		s.TextModel = gemini.Model()
	case chat.ProviderOpenAI:
		openaiKey, err := auth.GetAPIKey(auth.OpenAIKey)
		if err != nil {
			return nil, err
		}
		oa := chat.NewOpenAI(openaiKey, cfg.OpenAIModel)
		s.text = oa
		s.TextModel = oa.Model()
	default:
		return nil, fmt.Errorf("unknown text provider %q", cfg.TextProvider)
	}

	opts = append([]prompt.Option{prompt.WithUploadDir(cfg.UploadDir)}, opts...)
	s.Service = prompt.NewService(registry, s.text, gemini, opts...)

	log.Debug().
		Str("text_provider", s.TextProvider).
		Str("text_model", s.TextModel).
		Str("video_model", s.VideoModel).
		Int("platforms", len(registry.IDs())).
		Msg("Prompt service initialized")
	return s, nil
}

// ValidateKeys probes each distinct provider with a minimal request.
func (s *Setup) ValidateKeys(ctx context.Context) error {
	if err := auth.ValidateAPIKey(ctx, chat.ProviderGemini, s.gemini); err != nil {
		return err
	}
	if s.TextProvider == chat.ProviderOpenAI {
		if err := auth.ValidateAPIKey(ctx, chat.ProviderOpenAI, s.text); err != nil {
			return err
		}
	}
	return nil
}

// InitService builds the service and validates the keys, exiting fatally
// on any failure.
func InitService(ctx context.Context, cfg config.Config, validate bool, opts ...prompt.Option) *Setup {
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	s, err := BuildService(ctx, cfg, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize prompt service")
	}
	if validate {
		if err := s.ValidateKeys(ctx); err != nil {
			HandleValidationError(err)
		}
		log.Info().Msg("API key validation complete - ready for operations")
	}
	return s
}
