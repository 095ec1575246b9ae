package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed database.max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Generation.validate(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}

	if err := c.Translation.validate(); err != nil {
		return fmt.Errorf("translation: %w", err)
	}

	if c.Redis.URL != "" && c.Redis.CacheTTL <= 0 {
		return fmt.Errorf("redis.cache_ttl must be > 0 when redis.url is set (got %v)", c.Redis.CacheTTL)
	}

	if c.RateLimit.RoadmapPerMinute <= 0 {
		return fmt.Errorf("ratelimit.roadmap_per_minute must be > 0 (got %d)", c.RateLimit.RoadmapPerMinute)
	}
	if c.RateLimit.TranslatePerMinute <= 0 {
		return fmt.Errorf("ratelimit.translate_per_minute must be > 0 (got %d)", c.RateLimit.TranslatePerMinute)
	}

	return nil
}

func (g *GenerationConfig) validate() error {
	switch g.Provider {
	case ProviderGemini:
		if _, err := url.ParseRequestURI(g.GeminiBaseURL); err != nil {
			return fmt.Errorf("gemini_base_url: %w", err)
		}
	case ProviderAnthropic:
	default:
		return fmt.Errorf("provider must be %q or %q (got %q)", ProviderGemini, ProviderAnthropic, g.Provider)
	}
	if g.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", g.Timeout)
	}
	return nil
}

func (t *TranslationConfig) validate() error {
	if t.Disabled {
		return nil
	}
	if _, err := url.ParseRequestURI(t.URL); err != nil {
		return fmt.Errorf("url: %w", err)
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", t.Timeout)
	}
	return nil
}
