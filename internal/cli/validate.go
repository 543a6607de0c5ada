package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nickytooth/promptcrafting-ai/internal/auth"
	"github.com/nickytooth/promptcrafting-ai/internal/upload"
)

// ReadVideoFile checks that path is a regular file with a supported video
// extension and at most upload.MaxVideoSize bytes, then reads it. The MIME
// type is derived from the extension.
func ReadVideoFile(path string) (data []byte, mimeType string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("file not found: %s", path)
		}
		return nil, "", fmt.Errorf("failed to access %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("%s is a directory", path)
	}

	mimeType = upload.SupportedVideoExtensions[strings.ToLower(filepath.Ext(path))]
	if err := upload.Validate(mimeType, info.Size()); err != nil {
		return nil, "", err
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, mimeType, nil
}

// HandleValidationError processes auth.ValidationError and exits with appropriate messaging.
func HandleValidationError(err error) {
	var validationErr *auth.ValidationError
	if errors.As(err, &validationErr) {
		switch validationErr.Type {
		case auth.ErrTypeNoKey:
			log.Fatal().Msg("No API key configured. Set GEMINI_API_KEY and OPENAI_API_KEY")
		case auth.ErrTypeInvalidKey:
			log.Fatal().Err(err).Msg("Invalid API key. Please check your API key and try again")
		case auth.ErrTypeNetworkError:
			log.Fatal().Err(err).Msg("Network error. Please check your internet connection")
		case auth.ErrTypeQuotaExceeded:
			log.Fatal().Err(err).Msg("API quota exceeded. Please try again later or check your usage limits")
		default:
			log.Fatal().Err(err).Msg("API key validation failed")
		}
	} else {
		log.Fatal().Err(err).Msg("unexpected error during API key validation")
	}
	os.Exit(1)
}
