package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// PricingInfo holds cost details per token for a specific model.
type PricingInfo struct {
	InputPerToken  float64 `mapstructure:"input_per_token"`
	OutputPerToken float64 `mapstructure:"output_per_token"`
}

type Config struct {
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// Provider is the external semantic analysis service.
	Provider struct {
		BaseURL               string        `mapstructure:"base_url"`
		APIKey                string        `mapstructure:"api_key"`
		MinWordCount          int           `mapstructure:"min_word_count"`
		MinCompressionRatio   float64       `mapstructure:"min_compression_ratio"`
		MinSemanticSimilarity float64       `mapstructure:"min_semantic_similarity"`
		Timeout               time.Duration `mapstructure:"timeout"` // 0 means no deadline
	} `mapstructure:"provider"`

	Taxonomy struct {
		Path string `mapstructure:"path"` // empty uses the built-in tables
	} `mapstructure:"taxonomy"`

	Entities struct {
		Enabled        bool   `mapstructure:"enabled"`
		Provider       string `mapstructure:"provider"` // "openai"
		Model          string `mapstructure:"model"`
		OpenaiApiKey   string `mapstructure:"openai_api_key"`
		PromptTemplate string `mapstructure:"prompt_template"`
	} `mapstructure:"entities"`

	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`

	// Pricing: map[provider][model] = struct{input_per_token, output_per_token}
	Pricing map[string]map[string]PricingInfo `mapstructure:"pricing"`
}

// SetDefaults registers a default for every key so the service runs without
// a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("provider.base_url", "https://fc-api-development-b.hypernym.ai")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.min_word_count", 100)
	v.SetDefault("provider.min_compression_ratio", 0.5)
	v.SetDefault("provider.min_semantic_similarity", 0.8)
	v.SetDefault("provider.timeout", time.Duration(0))
	v.SetDefault("taxonomy.path", "")
	v.SetDefault("entities.enabled", false)
	v.SetDefault("entities.provider", "openai")
	v.SetDefault("entities.model", "gpt-4o-mini")
	v.SetDefault("entities.openai_api_key", "")
	v.SetDefault("entities.prompt_template", "")
	v.SetDefault("server.addr", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("worker.concurrency", 10)
	v.SetDefault("worker.queues", map[string]int{"categorize": 1})
}

func LoadConfig() (*Config, error) {
	return Load(viper.GetViper(), ".")
}

// Load reads config.yaml from dir (if present) into v, applies environment
// overrides and defaults, and validates the result.
func Load(v *viper.Viper, dir string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	SetDefaults(v)

	v.SetEnvPrefix("SEMCAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Well-known variables of the upstream services, usable without the prefix.
	v.BindEnv("provider.api_key", "SEMCAT_PROVIDER_API_KEY", "HYPERNYM_API_KEY")
	v.BindEnv("provider.base_url", "SEMCAT_PROVIDER_BASE_URL", "HYPERNYM_API_ENDPOINT")
	v.BindEnv("entities.openai_api_key", "SEMCAT_ENTITIES_OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("redis.address", "SEMCAT_REDIS_ADDRESS", "REDIS_ADDRESS")

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the config file doesn't exist; defaults and env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
