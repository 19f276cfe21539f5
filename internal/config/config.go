package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// HTTP settings
	Port string

	// Store settings
	DatabaseURL string

	// News settings
	FeedsConfigPath string
	NewsTTL         time.Duration
	NewsLimit       int

	// Comment/sentiment settings
	CommentDelay      time.Duration
	CommentTimeout    time.Duration
	CommentDailyLimit int

	// Image enrichment settings
	OgFetchTimeout time.Duration

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		FeedsConfigPath:   getEnvOrDefault("FEEDS_CONFIG_PATH", "configs/feeds.yaml"),
		NewsTTL:           time.Duration(getEnvIntOrDefault("NEWS_TTL_MINUTES", 15)) * time.Minute,
		NewsLimit:         getEnvIntOrDefault("NEWS_LIMIT", 50),
		CommentDelay:      time.Duration(getEnvIntOrDefault("COMMENT_DELAY_MS", 150)) * time.Millisecond,
		CommentTimeout:    time.Duration(getEnvIntOrDefault("COMMENT_TIMEOUT_SECONDS", 10)) * time.Second,
		CommentDailyLimit: getEnvIntOrDefault("COMMENT_DAILY_LIMIT", 500),
		OgFetchTimeout:    time.Duration(getEnvIntOrDefault("OG_TIMEOUT_SECONDS", 5)) * time.Second,
		Debug:             os.Getenv("DEBUG") == "true",
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.NewsTTL <= 0 {
		return fmt.Errorf("NEWS_TTL_MINUTES must be positive")
	}
	if c.NewsLimit <= 0 {
		return fmt.Errorf("NEWS_LIMIT must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Source is one feed entry in the YAML feeds file. Slug is the short stable
// tag used for scoring and styling; Name is the display name.
type Source struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
	URL  string `yaml:"url"`
}

type feedsFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadFeeds reads the feed source list from the YAML config.
func LoadFeeds(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var file feedsFile
	if err := yaml.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing feeds config: %w", err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("feeds config %s lists no sources", path)
	}
	return file.Sources, nil
}
