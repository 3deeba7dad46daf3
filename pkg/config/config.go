package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the CLI and the agent chain need.
type Config struct {
	Model     ModelConfig     `mapstructure:"model"`
	Search    SearchConfig    `mapstructure:"search"`
	SkipTrace SkipTraceConfig `mapstructure:"skip_trace"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ModelConfig selects the language model backing the agent.
type ModelConfig struct {
	Provider string `mapstructure:"provider"` // openai, anthropic, gemini, ollama, dummy
	Name     string `mapstructure:"name"`
	MaxTurns int    `mapstructure:"max_turns"`
}

// SearchConfig carries the default lead-search parameters.
type SearchConfig struct {
	LeadCount     int `mapstructure:"lead_count"`
	YearThreshold int `mapstructure:"year_threshold"`
	RadiusMiles   int `mapstructure:"radius_miles"`
}

// SkipTraceConfig selects the optional skip-trace provider. An empty
// provider with no keys means the feature is disabled, which is a valid
// configuration, not an error.
type SkipTraceConfig struct {
	Provider     string `mapstructure:"provider"` // batchskiptracing, reiskip
	BatchAPIKey  string `mapstructure:"batch_api_key"`
	REISkipKey   string `mapstructure:"reiskip_api_key"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional config.yaml plus the
// environment, with a .env file loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideFromEnv(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Model.Provider == "" {
		cfg.Model.Provider = "openai"
	}
	if cfg.Model.Name == "" {
		cfg.Model.Name = "gpt-4o-mini"
	}
	if cfg.Model.MaxTurns <= 0 {
		cfg.Model.MaxTurns = 20
	}
	if cfg.Search.LeadCount <= 0 {
		cfg.Search.LeadCount = 10
	}
	if cfg.Search.YearThreshold <= 0 {
		cfg.Search.YearThreshold = 2005
	}
	if cfg.Search.RadiusMiles <= 0 {
		cfg.Search.RadiusMiles = 25
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// overrideFromEnv keeps the flat environment variable names the tool has
// always documented working even when no config file is present.
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("MODEL_PROVIDER"); v != "" {
		cfg.Model.Provider = v
	}
	if v := os.Getenv("MODEL_NAME"); v != "" {
		cfg.Model.Name = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SKIP_TRACE_PROVIDER"); v != "" {
		cfg.SkipTrace.Provider = v
	}
	if v := os.Getenv("BATCH_SKIP_TRACING_API_KEY"); v != "" {
		cfg.SkipTrace.BatchAPIKey = v
	}
	if v := os.Getenv("REISKIP_API_KEY"); v != "" {
		cfg.SkipTrace.REISkipKey = v
	}
}

// Validate checks that the selected model provider has a credential. The
// dummy provider and ollama run without one; skip-trace keys are optional
// by contract.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Model.Provider) {
	case "openai":
		if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("OPENAI_KEY") == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider openai")
		}
	case "anthropic", "claude":
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for provider anthropic")
		}
	case "gemini", "google":
		if os.Getenv("GOOGLE_API_KEY") == "" && os.Getenv("GEMINI_API_KEY") == "" {
			return fmt.Errorf("GOOGLE_API_KEY or GEMINI_API_KEY is required for provider gemini")
		}
	case "ollama", "dummy":
		// no credential needed
	default:
		return fmt.Errorf("unknown model provider: %s", c.Model.Provider)
	}
	return nil
}
