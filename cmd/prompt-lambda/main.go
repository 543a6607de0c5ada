// Package main is the Lambda entrypoint for the prompt generation API.
// API Gateway HTTP API (payload v2) events are adapted onto the same
// net/http handlers the web server uses.
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/rs/zerolog/log"

	"github.com/nickytooth/promptcrafting-ai/internal/api"
	"github.com/nickytooth/promptcrafting-ai/internal/chat"
	"github.com/nickytooth/promptcrafting-ai/internal/cli"
	"github.com/nickytooth/promptcrafting-ai/internal/config"
	"github.com/nickytooth/promptcrafting-ai/internal/lambdaboot"
	"github.com/nickytooth/promptcrafting-ai/internal/logging"
	"github.com/nickytooth/promptcrafting-ai/internal/metrics"
	"github.com/nickytooth/promptcrafting-ai/internal/prompt"
)

var handler http.Handler

func init() {
	initStart := time.Now()
	logging.Init()

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	aws := lambdaboot.InitAWS()
	params := []lambdaboot.SecretParam{lambdaboot.GeminiParam}
	if cfg.TextProvider == chat.ProviderOpenAI {
		params = append(params, lambdaboot.OpenAIParam)
	}
	lambdaboot.MustLoadKeys(aws.SSM, params...)

	emf := metrics.NewEMF()
	setup, err := cli.BuildService(context.Background(), cfg, prompt.WithObserver(emf))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize prompt service")
	}

	mux := http.NewServeMux()
	api.NewHandler(setup.Service).Register(mux)
	handler = api.WithLogging(api.WithCORS(cfg.AllowedOrigins, api.WithMetrics(emf, mux)))

	startup := lambdaboot.StartupLog("prompt-lambda", initStart).
		CommitHash(commitHash).
		BuildTime(buildTime).
		Provider("text", setup.TextProvider+"/"+setup.TextModel).
		Provider("video", setup.VideoModel).
		Config("uploadDir", cfg.UploadDir)
	for _, p := range params {
		startup.SSMParam(p.Key.Provider, p.Path())
	}
	startup.Log()
}

func main() {
	adapter := httpadapter.NewV2(handler)
	lambda.Start(adapter.ProxyWithContext)
}
