// Package lambdaboot holds the Lambda cold-start bootstrap: AWS config,
// provider API keys from SSM Parameter Store, and startup logging.
package lambdaboot

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"

	"github.com/nickytooth/promptcrafting-ai/internal/auth"
	"github.com/nickytooth/promptcrafting-ai/internal/config"
	"github.com/nickytooth/promptcrafting-ai/internal/logging"
)

// AWSClients holds the AWS SDK clients used at cold start.
type AWSClients struct {
	Config aws.Config
	SSM    *ssm.Client
}

// InitAWS loads the default AWS config and returns it along with an SSM client.
func InitAWS() AWSClients {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS config")
	}
	log.Debug().Str("region", cfg.Region).Msg("AWS config loaded")
	return AWSClients{
		Config: cfg,
		SSM:    ssm.NewFromConfig(cfg),
	}
}

// ParameterGetter is the subset of the SSM client used to read secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SecretParam names the SSM parameter holding a provider key.
type SecretParam struct {
	Key          auth.Key
	ParamEnvVar  string // env var overriding the parameter path
	DefaultParam string
}

// Provider key parameters.
var (
	GeminiParam = SecretParam{
		Key:          auth.GeminiKey,
		ParamEnvVar:  "SSM_GEMINI_KEY_PARAM",
		DefaultParam: "/promptcrafting/prod/gemini-api-key",
	}
	OpenAIParam = SecretParam{
		Key:          auth.OpenAIKey,
		ParamEnvVar:  "SSM_OPENAI_KEY_PARAM",
		DefaultParam: "/promptcrafting/prod/openai-api-key",
	}
)

// Path returns the parameter path, honouring the override env var.
func (p SecretParam) Path() string {
	return config.EnvOrDefault(p.ParamEnvVar, p.DefaultParam)
}

// LoadKey fetches a provider key from SSM unless its env var is already
// set, and exports it so auth.GetAPIKey finds it.
func LoadKey(ctx context.Context, getter ParameterGetter, p SecretParam) error {
	if os.Getenv(p.Key.EnvVar) != "" {
		return nil
	}
	paramName := p.Path()
	start := time.Now()
	result, err := getter.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("read %s from SSM: %w", paramName, err)
	}
	if result.Parameter == nil || aws.ToString(result.Parameter.Value) == "" {
		return fmt.Errorf("SSM parameter %s is empty", paramName)
	}
	if err := os.Setenv(p.Key.EnvVar, aws.ToString(result.Parameter.Value)); err != nil {
		return fmt.Errorf("export %s: %w", p.Key.EnvVar, err)
	}
	log.Debug().
		Str("param", paramName).
		Str("provider", p.Key.Provider).
		Dur("elapsed", time.Since(start)).
		Msg("API key loaded from SSM")
	return nil
}

// MustLoadKeys loads every given key, terminating the process on failure.
func MustLoadKeys(getter ParameterGetter, params ...SecretParam) {
	for _, p := range params {
		if err := LoadKey(context.Background(), getter, p); err != nil {
			log.Fatal().Err(err).Str("provider", p.Key.Provider).Msg("Failed to load API key")
		}
	}
}

// StartupLog returns a startup logger with the init duration already set.
func StartupLog(name string, initStart time.Time) *logging.StartupLogger {
	return logging.NewStartupLogger(name).InitDuration(time.Since(initStart))
}
