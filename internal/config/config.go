package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds the configuration for the textlens server and its dependencies.
type Config struct {
	// Listen is the address the textlens server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// ServerURL is the base URL of the textlens server.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// SessionKey is the key used to encrypt session data.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Models holds the paths to the pre-trained classifier artifacts.
	Models *ModelsConfig `yaml:"models" mapstructure:"models"`
	// Reddit holds the configuration for the Reddit search client.
	Reddit *RedditConfig `yaml:"reddit" mapstructure:"reddit"`
	// Cache holds the cache engine configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// ModelsConfig holds the filesystem paths of the four pre-trained artifacts.
// The artifacts are produced by the modeling pipeline and are opaque to textlens.
type ModelsConfig struct {
	// MisinformationModel is the path to the misinformation linear model.
	MisinformationModel string `yaml:"misinformation_model" mapstructure:"misinformation_model"`
	// MisinformationVectorizer is the path to the misinformation vectorizer.
	MisinformationVectorizer string `yaml:"misinformation_vectorizer" mapstructure:"misinformation_vectorizer"`
	// SarcasmModel is the path to the sarcasm linear model.
	SarcasmModel string `yaml:"sarcasm_model" mapstructure:"sarcasm_model"`
	// SarcasmVectorizer is the path to the sarcasm vectorizer.
	SarcasmVectorizer string `yaml:"sarcasm_vectorizer" mapstructure:"sarcasm_vectorizer"`
}

// RedditConfig holds the configuration for the Reddit search client.
type RedditConfig struct {
	// URL is the base URL of the Reddit API.
	URL string `yaml:"url" mapstructure:"url"`
	// UserAgent identifies textlens against the Reddit API.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
	// SearchLimit is the maximum number of posts fetched per search.
	SearchLimit int `yaml:"search_limit" mapstructure:"search_limit"`
}

// CacheConfig holds the configuration for the cache engine.
type CacheConfig struct {
	// Type is the type of cache engine to use (e.g., "memory", "redis").
	Type CacheType `yaml:"type" mapstructure:"type"`
	// RedisURL is the URL for the Redis cache if using Redis.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	// bind some weirdly unsupported nested env vars
	bindNestedEnv(v)

	// Set default values
	setDefaults(v)

	// Configure Viper
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TEXTLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		// Use specific config file
		v.SetConfigFile(path)
	} else {
		// Search for config in common locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.textlens")
		v.AddConfigPath("/etc/textlens")
	}

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Some environment variables can be set with the TEXTLENS_ prefix to override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Sanitize config values
	sanitizeConfig(&c)

	// Validate required configs
	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("listen", "0.0.0.0:3004")
	v.SetDefault("server_url", "http://localhost:3004")
	v.SetDefault("session_key", "")
	v.SetDefault("session_max_age", 172800) // 48 hours

	// Database defaults
	v.SetDefault("database.path", "./data/textlens.db")

	// Model artifact defaults
	v.SetDefault("models.misinformation_model", "./models/misinformation_model.gob")
	v.SetDefault("models.misinformation_vectorizer", "./models/misinformation_vectorizer.gob")
	v.SetDefault("models.sarcasm_model", "./models/sarcasm_model.gob")
	v.SetDefault("models.sarcasm_vectorizer", "./models/sarcasm_vectorizer.gob")

	// Reddit defaults
	v.SetDefault("reddit.url", "https://www.reddit.com")
	v.SetDefault("reddit.user_agent", "textlens")
	v.SetDefault("reddit.search_limit", 5)

	// Cache defaults
	v.SetDefault("cache.type", CacheTypeMemory) // Default to in-memory
	v.SetDefault("cache.redis_url", "")
}

// the auto env function from viper only works for nested structs, if the struct to which a value binds isn't nil.
// If we explicitly don't want a default value (e.g. because a struct value should be nil on purpose)
// we have to bind the env var manually.
func bindNestedEnv(v *viper.Viper) {
	// Reddit
	v.MustBindEnv("reddit.url", "TEXTLENS_REDDIT_URL")
	v.MustBindEnv("reddit.user_agent", "TEXTLENS_REDDIT_USER_AGENT")
	v.MustBindEnv("reddit.search_limit", "TEXTLENS_REDDIT_SEARCH_LIMIT")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing textlens config")
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	if c.SessionKey == "" {
		return fmt.Errorf("session key is required")
	}

	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("session max age must be greater than 0")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Models == nil {
		return fmt.Errorf("missing models config")
	}
	if c.Models.MisinformationModel == "" || c.Models.MisinformationVectorizer == "" {
		return fmt.Errorf("misinformation model and vectorizer paths are required")
	}
	if c.Models.SarcasmModel == "" || c.Models.SarcasmVectorizer == "" {
		return fmt.Errorf("sarcasm model and vectorizer paths are required")
	}

	if c.Reddit != nil {
		if c.Reddit.URL == "" {
			return fmt.Errorf("reddit URL is required when reddit is configured")
		}
		if c.Reddit.UserAgent == "" {
			return fmt.Errorf("reddit user agent is required when reddit is configured")
		}
		if c.Reddit.SearchLimit <= 0 {
			return fmt.Errorf("reddit search limit must be greater than 0")
		}
	}

	if c.Cache != nil {
		if c.Cache.Type == "" {
			return fmt.Errorf("cache type is required when cache is enabled")
		}
		if c.Cache.Type == CacheTypeRedis && c.Cache.RedisURL == "" {
			return fmt.Errorf("Redis URL is required when Redis cache is enabled") //nolint:staticcheck
		}
	} else {
		c.Cache = &CacheConfig{
			Type: CacheTypeMemory, // Default to in-memory cache if not enabled
		}
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.Listen = urlSanitize(c.Listen)

	if c.Reddit != nil {
		c.Reddit.URL = urlSanitize(c.Reddit.URL)
	}

	if c.ServerURL != "" {
		c.ServerURL = urlSanitize(c.ServerURL)
	}
}

func urlSanitize(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}
