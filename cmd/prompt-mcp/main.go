// Package main exposes the prompt generation service as Model Context
// Protocol tools over stdio, so agents can list platforms, generate a
// prompt from a description, or analyze a local clip.
package main

import (
	"context"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nickytooth/promptcrafting-ai/internal/cli"
	"github.com/nickytooth/promptcrafting-ai/internal/config"
	"github.com/nickytooth/promptcrafting-ai/internal/logging"
)

var cfg = config.FromEnv()

var rootCmd = &cobra.Command{
	Use:   "prompt-mcp",
	Short: "MCP stdio server for video-model prompt generation",
	Long: `Prompt MCP serves three tools over stdio: list_platforms,
generate_prompt and analyze_video. Logs go to stderr.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logging.Init()
		setup := cli.InitService(cmd.Context(), cfg, false)

		server := newServer(setup.Service)
		log.Info().
			Str("text_model", setup.TextModel).
			Str("video_model", setup.VideoModel).
			Str("commit", commitHash).
			Msg("MCP server starting on stdio")
		return server.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&cfg.PlatformsFile, "platforms", cfg.PlatformsFile, "Platform manifest YAML (default: built-in)")
	f.StringVar(&cfg.TextProvider, "text-provider", cfg.TextProvider, "Provider for description prompts: openai or gemini")
	f.StringVar(&cfg.GeminiModel, "gemini-model", cfg.GeminiModel, "Gemini model for video analysis")
	f.StringVar(&cfg.OpenAIModel, "openai-model", cfg.OpenAIModel, "OpenAI model for description prompts")
	f.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "Directory for short-lived upload files")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
