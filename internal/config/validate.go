package config

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

/*
Validate checks every section that has constraints:
- log level
- provider endpoint and tunables
- entity enrichment (when enabled)
- server, redis and worker settings
- pricing (if present)
*/
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if c.Provider.BaseURL == "" {
		return errors.New("provider.base_url is required")
	}
	if c.Provider.MinWordCount <= 0 {
		return errors.New("provider.min_word_count must be a positive integer")
	}
	if c.Provider.MinCompressionRatio < 0 || c.Provider.MinCompressionRatio > 1 {
		return fmt.Errorf("provider.min_compression_ratio (%v) must be within [0,1]", c.Provider.MinCompressionRatio)
	}
	if c.Provider.MinSemanticSimilarity < 0 || c.Provider.MinSemanticSimilarity > 1 {
		return fmt.Errorf("provider.min_semantic_similarity (%v) must be within [0,1]", c.Provider.MinSemanticSimilarity)
	}
	if c.Provider.Timeout < 0 {
		return errors.New("provider.timeout must not be negative")
	}

	if c.Entities.Enabled {
		if c.Entities.Provider != "openai" {
			return fmt.Errorf("entities.provider %q is not supported", c.Entities.Provider)
		}
		if c.Entities.Model == "" {
			return errors.New("entities.model is required when entities are enabled")
		}
		if c.Entities.OpenaiApiKey == "" {
			return errors.New("entities.openai_api_key is required when entities are enabled")
		}
	}

	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}

	if c.Redis.Address == "" {
		return errors.New("redis.address is required")
	}
	if c.Worker.Concurrency <= 0 {
		return errors.New("worker.concurrency must be a positive integer")
	}
	if len(c.Worker.Queues) == 0 {
		return errors.New("worker.queues must define at least one queue")
	}
	for name, priority := range c.Worker.Queues {
		if name == "" {
			return errors.New("worker.queues contains an empty queue name")
		}
		if priority <= 0 {
			return fmt.Errorf("worker.queues priority for queue '%s' must be positive", name)
		}
	}

	for provider, models := range c.Pricing {
		for model, price := range models {
			if price.InputPerToken < 0 || price.OutputPerToken < 0 {
				return fmt.Errorf("pricing for provider '%s', model '%s' has negative token cost", provider, model)
			}
		}
	}
	return nil
}
