// Package config resolves runtime settings from environment variables.
// Command-line flags, where a binary defines them, are applied on top of the
// values returned by FromEnv.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nickytooth/promptcrafting-ai/internal/chat"
)

// Config holds the settings shared by every entrypoint.
type Config struct {
	Port           int
	TextProvider   string // "openai" or "gemini"
	GeminiModel    string
	OpenAIModel    string
	UploadDir      string
	StaticDir      string
	PlatformsFile  string
	AllowedOrigins []string
}

// Environment variable names.
const (
	EnvPort           = "PORT"
	EnvTextProvider   = "TEXT_PROVIDER"
	EnvGeminiModel    = "GEMINI_MODEL"
	EnvOpenAIModel    = "OPENAI_MODEL"
	EnvUploadDir      = "UPLOAD_DIR"
	EnvStaticDir      = "STATIC_DIR"
	EnvPlatformsFile  = "PLATFORMS_FILE"
	EnvAllowedOrigins = "ALLOWED_ORIGINS"
)

// DefaultPort matches the port the frontend dev server proxies /api to.
const DefaultPort = 3001

// FromEnv returns the configuration resolved from the environment, with
// defaults for anything unset. It does not validate; call Validate.
func FromEnv() Config {
	cfg := Config{
		Port:          DefaultPort,
		TextProvider:  EnvOrDefault(EnvTextProvider, chat.ProviderOpenAI),
		GeminiModel:   EnvOrDefault(EnvGeminiModel, chat.DefaultGeminiModel),
		OpenAIModel:   EnvOrDefault(EnvOpenAIModel, chat.DefaultOpenAIModel),
		UploadDir:     EnvOrDefault(EnvUploadDir, filepath.Join(os.TempDir(), "promptcrafting-uploads")),
		StaticDir:     os.Getenv(EnvStaticDir),
		PlatformsFile: os.Getenv(EnvPlatformsFile),
	}
	if p, err := strconv.Atoi(os.Getenv(EnvPort)); err == nil {
		cfg.Port = p
	}
	cfg.AllowedOrigins = SplitList(os.Getenv(EnvAllowedOrigins))
	return cfg
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.TextProvider {
	case chat.ProviderOpenAI, chat.ProviderGemini:
	default:
		return fmt.Errorf("invalid text provider %q: must be %q or %q", c.TextProvider, chat.ProviderOpenAI, chat.ProviderGemini)
	}
	if c.UploadDir == "" {
		return fmt.Errorf("upload directory is required")
	}
	if c.StaticDir != "" {
		info, err := os.Stat(c.StaticDir)
		if err != nil {
			return fmt.Errorf("static directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("static directory %s is not a directory", c.StaticDir)
		}
	}
	return nil
}

// EnvOrDefault returns the value of the named environment variable, or
// defaultVal if the variable is empty or unset.
func EnvOrDefault(envVar, defaultVal string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return defaultVal
}

// SplitList splits a comma-separated list, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
