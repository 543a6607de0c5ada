package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nickytooth/promptcrafting-ai/internal/api"
	"github.com/nickytooth/promptcrafting-ai/internal/cli"
	"github.com/nickytooth/promptcrafting-ai/internal/config"
	"github.com/nickytooth/promptcrafting-ai/internal/logging"
	"github.com/nickytooth/promptcrafting-ai/internal/metrics"
	"github.com/nickytooth/promptcrafting-ai/internal/prompt"
)

var (
	cfg = config.FromEnv()

	validateKeysFlag bool
	metricsFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "prompt-web",
	Short: "HTTP API for generating video-model prompts",
	Long: `Prompt Web serves the prompt generation API and, optionally, the built
frontend. Describe a scene or upload a short clip and get back a prompt
tailored to the selected video model.

Examples:
  prompt-web
  prompt-web --port 8080 --static-dir ./web/dist
  prompt-web --text-provider gemini --gemini-model gemini-2.5-pro`,
	SilenceUsage: true,
	RunE:         runMain,
}

func init() {
	f := rootCmd.Flags()
	f.IntVar(&cfg.Port, "port", cfg.Port, "Port to listen on")
	f.StringVar(&cfg.TextProvider, "text-provider", cfg.TextProvider, "Provider for description prompts: openai or gemini")
	f.StringVar(&cfg.GeminiModel, "gemini-model", cfg.GeminiModel, "Gemini model for video analysis")
	f.StringVar(&cfg.OpenAIModel, "openai-model", cfg.OpenAIModel, "OpenAI model for description prompts")
	f.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "Directory for short-lived upload files")
	f.StringVar(&cfg.StaticDir, "static-dir", cfg.StaticDir, "Serve the built frontend from this directory")
	f.StringVar(&cfg.PlatformsFile, "platforms", cfg.PlatformsFile, "Platform manifest YAML (default: built-in)")
	f.StringSliceVar(&cfg.AllowedOrigins, "allowed-origins", cfg.AllowedOrigins, "CORS origins (default: localhost)")
	f.BoolVar(&validateKeysFlag, "validate-keys", true, "Probe provider API keys at startup")
	f.BoolVar(&metricsFlag, "metrics", true, "Expose Prometheus metrics on /metrics")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, _ []string) error {
	initStart := time.Now()
	logging.Init()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prom := metrics.NewPrometheus("promptcrafting")
	setup := cli.InitService(ctx, cfg, validateKeysFlag, prompt.WithObserver(prom))

	mux := http.NewServeMux()
	api.NewHandler(setup.Service).Register(mux)
	if metricsFlag {
		mux.Handle("GET /metrics", prom.Handler())
	}
	if cfg.StaticDir != "" {
		mux.Handle("/", api.Static(cfg.StaticDir))
	}

	var handler http.Handler = mux
	if metricsFlag {
		handler = api.WithMetrics(prom, handler)
	}
	handler = api.WithLogging(api.WithCORS(cfg.AllowedOrigins, handler))

	srv := newServer(cfg.Port, handler)

	logging.NewStartupLogger("prompt-web").
		CommitHash(commitHash).
		BuildTime(buildTime).
		Provider("text", setup.TextProvider+"/"+setup.TextModel).
		Provider("video", setup.VideoModel).
		Feature("static", cfg.StaticDir != "").
		Feature("metrics", metricsFlag).
		Feature("validateKeys", validateKeysFlag).
		Config("port", strconv.Itoa(cfg.Port)).
		Config("uploadDir", cfg.UploadDir).
		Config("allowedOrigins", strings.Join(cfg.AllowedOrigins, ",")).
		Config("platforms", strings.Join(setup.Registry.IDs(), ",")).
		InitDuration(time.Since(initStart)).
		Log()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Int("port", cfg.Port).Msg("Starting web server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}

// newServer leaves body reads and response writes unbounded: uploads and
// video analysis run as long as the provider client allows.
func newServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           gzhttp.GzipHandler(handler),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
