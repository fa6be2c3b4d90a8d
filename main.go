package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AkashAS-coder/Clarity-Care/config"
	"github.com/AkashAS-coder/Clarity-Care/generator"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	configPath string
	verbose    bool

	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "clarity",
	Short: "Rewrite clinical shorthand notes into plain language",
	Long: `clarity turns clinical shorthand ("Pt w/ HTN and DM2 reports dyspnea") into a
plain-language summary with a next-steps checklist and a readability score.

Translation runs locally with a fixed rule table, or through an
OpenAI-compatible model (OpenRouter by default) with local fallback.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = buildLogger(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml or config.json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")
	rootCmd.Version = Version

	rootCmd.AddCommand(serveCmd, translateCmd, statsCmd, samplesCmd, watchCmd, mcpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if strings.EqualFold(lc.Format, "console") {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	if lc.Level != "" {
		level, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func buildLLM(c config.Config) (generator.LLMClient, error) {
	timeout, err := c.LLMTimeout()
	if err != nil {
		return nil, err
	}
	settings := &generator.LLMSettings{
		Provider:    c.LLM.Provider,
		Model:       c.LLM.Model,
		APIKey:      c.LLM.APIKey,
		BaseURL:     c.LLM.BaseURL,
		Site:        c.LLM.Site,
		App:         c.LLM.App,
		Temperature: c.LLM.Temperature,
		MaxRetries:  c.LLM.MaxRetries,
		Timeout:     timeout,
	}

	switch c.LLM.Provider {
	case "mock":
		return generator.MockLLM{}, nil
	case "openai", "openrouter", "":
		if c.LLM.APIKey == "" {
			logger.Warn("missing OPENROUTER_API_KEY; AI requests will be rejected upstream")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek speaks the OpenAI protocol but has no default endpoint here.
		if c.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
	}
}

func durationOrZero(d time.Duration, err error) time.Duration {
	if err != nil {
		return 0
	}
	return d
}
