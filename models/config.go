// Package models defines data structures shared across the pipeline:
// configuration, article records and crawl results.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LLMConfig holds connection parameters for an OpenAI-compatible backend.
type LLMConfig struct {
	BaseURL         string `yaml:"base_url"`
	APIKey          string `yaml:"api_key"`
	Model           string `yaml:"model"`
	ContextWindow   int    `yaml:"context_window"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	MaxRetries      int    `yaml:"max_retries"`
	PoolSize        int    `yaml:"pool_size"`
}

// Timeout returns the configured request timeout as a duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CrawlerConfig holds HTTP fetch limits.
type CrawlerConfig struct {
	Concurrency    int    `yaml:"concurrency"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxBodyBytes   int64  `yaml:"max_body_bytes"`
	UserAgent      string `yaml:"user_agent"`
}

// Source is one configured news source.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Config is the top-level application configuration.
type Config struct {
	LLM      LLMConfig     `yaml:"llm"`
	Crawler  CrawlerConfig `yaml:"crawler"`
	Database string        `yaml:"database"`
	Sources  []Source      `yaml:"sources"`
}

// SourceByName returns the configured source with the given name.
func (c *Config) SourceByName(name string) (Source, bool) {
	for _, s := range c.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

// LoadConfig reads and validates a YAML config file. The SMARTINFO_API_KEY
// environment variable overrides llm.api_key when set.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if key := os.Getenv("SMARTINFO_API_KEY"); key != "" {
		config.LLM.APIKey = key
	}
	config.applyDefaults()

	if config.LLM.BaseURL == "" {
		return nil, fmt.Errorf("config: llm.base_url is required")
	}
	if config.LLM.Model == "" {
		return nil, fmt.Errorf("config: llm.model is required")
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.LLM.ContextWindow <= 0 {
		c.LLM.ContextWindow = 16384
	}
	if c.LLM.MaxOutputTokens <= 0 {
		c.LLM.MaxOutputTokens = 4096
	}
	if c.LLM.MaxRetries < 0 {
		c.LLM.MaxRetries = 0
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = 120
	}
	if c.LLM.PoolSize <= 0 {
		c.LLM.PoolSize = 3
	}
	if c.Crawler.Concurrency <= 0 {
		c.Crawler.Concurrency = 5
	}
	if c.Crawler.TimeoutSeconds <= 0 {
		c.Crawler.TimeoutSeconds = 30
	}
	if c.Crawler.MaxBodyBytes <= 0 {
		c.Crawler.MaxBodyBytes = 10 << 20
	}
	if c.Crawler.UserAgent == "" {
		c.Crawler.UserAgent = "smartinfo/1.0 (+news aggregation)"
	}
	if c.Database == "" {
		c.Database = "smartinfo.db"
	}
}
