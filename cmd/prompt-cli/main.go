package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nickytooth/promptcrafting-ai/internal/cli"
	"github.com/nickytooth/promptcrafting-ai/internal/config"
	"github.com/nickytooth/promptcrafting-ai/internal/logging"
	"github.com/nickytooth/promptcrafting-ai/internal/platform"
	"github.com/nickytooth/promptcrafting-ai/internal/prompt"
)

var (
	cfg = config.FromEnv()

	platformFlag     string
	jsonFlag         bool
	validateKeysFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "prompt-cli",
	Short: "Generate video-model prompts from a description or a clip",
	Long: `Prompt CLI turns a scene description or a short video clip into a
prompt tailored to a generative video model.

Examples:
  prompt-cli platforms
  prompt-cli describe --platform veo-3.1 "A cat skateboarding at sunset"
  prompt-cli describe
  prompt-cli analyze --platform sora-2 clip.mp4
  prompt-cli analyze`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		logging.Init()
	},
}

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List the supported target platforms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := platform.Load(cfg.PlatformsFile)
		if err != nil {
			return err
		}
		return cli.WritePlatforms(cmd.OutOrStdout(), reg.List(), jsonFlag)
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe [description...]",
	Short: "Generate a prompt from a scene description",
	Long: `Generate a prompt from a prose scene description. With no arguments the
description is read interactively from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		setup := cli.InitService(ctx, cfg, validateKeysFlag)

		// One buffered reader so both prompts see the same stdin stream.
		in := bufio.NewReader(cmd.InOrStdin())
		platformID, err := resolvePlatform(cmd, in, setup)
		if err != nil {
			return err
		}

		description := strings.Join(args, " ")
		if description == "" {
			description, err = cli.PromptForDescription(in, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
		}

		return run(ctx, cmd, func(ctx context.Context) (*prompt.Result, error) {
			return setup.Service.GenerateFromDescription(ctx, description, platformID)
		})
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [video-file]",
	Short: "Generate a prompt by analyzing a video clip",
	Long: `Generate a prompt by sending a short clip (MP4, WebM, MOV or AVI, at most
10MB) to the video analysis model. With no argument a file picker opens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			picked, err := cli.SelectVideoFile()
			if errors.Is(err, cli.ErrCanceled) {
				log.Info().Msg("No file selected")
				return nil
			}
			if err != nil {
				return err
			}
			path = picked
		}

		data, mimeType, err := cli.ReadVideoFile(path)
		if err != nil {
			return err
		}

		setup := cli.InitService(ctx, cfg, validateKeysFlag)
		platformID, err := resolvePlatform(cmd, cmd.InOrStdin(), setup)
		if err != nil {
			return err
		}

		log.Info().Str("file", path).Str("mime_type", mimeType).Int("size_bytes", len(data)).Msg("Analyzing video")
		return run(ctx, cmd, func(ctx context.Context) (*prompt.Result, error) {
			return setup.Service.GenerateFromVideo(ctx, data, mimeType, platformID)
		})
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&jsonFlag, "json", false, "Print results as JSON")
	pf.StringVar(&cfg.PlatformsFile, "platforms", cfg.PlatformsFile, "Platform manifest YAML (default: built-in)")
	pf.StringVar(&cfg.TextProvider, "text-provider", cfg.TextProvider, "Provider for description prompts: openai or gemini")
	pf.StringVar(&cfg.GeminiModel, "gemini-model", cfg.GeminiModel, "Gemini model for video analysis")
	pf.StringVar(&cfg.OpenAIModel, "openai-model", cfg.OpenAIModel, "OpenAI model for description prompts")
	pf.BoolVar(&validateKeysFlag, "validate-keys", false, "Probe provider API keys before the request")

	for _, c := range []*cobra.Command{describeCmd, analyzeCmd} {
		c.Flags().StringVarP(&platformFlag, "platform", "p", "", "Target platform id (prompted if omitted)")
	}

	rootCmd.AddCommand(platformsCmd, describeCmd, analyzeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolvePlatform(cmd *cobra.Command, in io.Reader, setup *cli.Setup) (string, error) {
	if platformFlag != "" {
		return platformFlag, nil
	}
	return cli.PromptForPlatform(in, cmd.ErrOrStderr(), setup.Service.ListPlatforms())
}

func run(ctx context.Context, cmd *cobra.Command, generate func(context.Context) (*prompt.Result, error)) error {
	start := time.Now()
	result, err := generate(ctx)
	if err != nil {
		if kind, ok := prompt.KindOf(err); ok && kind.Retryable() {
			log.Warn().Msg("The provider is rate limiting requests; wait a moment and retry")
		}
		return err
	}
	return cli.WriteResult(cmd.OutOrStdout(), result, time.Since(start), jsonFlag)
}
