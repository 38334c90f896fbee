package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	API      APIConfig      `mapstructure:"api"`
	Rating   RatingConfig   `mapstructure:"rating"`
	NavTags  NavTagsConfig  `mapstructure:"navtags"`
	Workers  WorkersConfig  `mapstructure:"workers"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Host           string   `mapstructure:"host"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// Forum URL prefix for "ask other users" questions, query string included
	QuestionAction string `mapstructure:"question_action"`
	// Placeholder text of the question field, submitted as-is when untouched
	QuestionPlaceholder string `mapstructure:"question_placeholder"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig holds the article API configuration
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout in seconds for the article fetch, 0 means none
	Timeout int `mapstructure:"timeout"`
	// Article link prefix used in the mobile download mail
	KBLinkBase string `mapstructure:"kb_link_base"`
}

// RatingConfig holds feedback endpoint configuration
type RatingConfig struct {
	BaseURL              string `mapstructure:"base_url"` // Joined with "kb/index?...", keep the trailing slash
	Timeout              int    `mapstructure:"timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	// Channels that get the follow-up comment box on a "not helpful" vote
	CommentBoxChannels []string `mapstructure:"comment_box_channels"`
}

// NavTagsConfig controls nav tag extraction
type NavTagsConfig struct {
	Marker          string `mapstructure:"marker"`
	MinArticleCount int    `mapstructure:"min_article_count"`
	LookupPolicy    string `mapstructure:"lookup_policy"` // skip or fatal
	CacheTTL        int    `mapstructure:"cache_ttl"`     // seconds
}

// WorkersConfig holds background task worker configuration
type WorkersConfig struct {
	Count int `mapstructure:"count"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	ConsumerGroup string `mapstructure:"consumer_group"`
	MinIdleTime   int    `mapstructure:"min_idle_time"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load loads configuration from YAML file with environment variable overrides.
// An empty path looks for config.yaml in the current directory; a missing
// file there is not an error and leaves defaults in place.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects values the services cannot work with
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Rating.Timeout <= 0 {
		return fmt.Errorf("rating.timeout must be positive, got %d", c.Rating.Timeout)
	}
	switch strings.ToLower(c.NavTags.LookupPolicy) {
	case "", "skip", "fatal":
	default:
		return fmt.Errorf("navtags.lookup_policy must be skip or fatal, got %q", c.NavTags.LookupPolicy)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.question_action", "https://discussions.example.com/community/ask?")
	v.SetDefault("server.question_placeholder", "Ask other users about this article")

	v.SetDefault("api.base_url", "https://support.example.com")
	v.SetDefault("api.timeout", 0)
	v.SetDefault("api.kb_link_base", "https://support.example.com/kb/")

	v.SetDefault("rating.base_url", "https://support.example.com/")
	v.SetDefault("rating.timeout", 5)
	v.SetDefault("rating.max_requests_per_second", 50)
	v.SetDefault("rating.comment_box_channels", []string{"HOWTO", "TROUBLESHOOTING"})

	v.SetDefault("navtags.marker", "TAX_NavigationTax")
	v.SetDefault("navtags.min_article_count", 2)
	v.SetDefault("navtags.lookup_policy", "skip")
	v.SetDefault("navtags.cache_ttl", 86400)

	v.SetDefault("workers.count", 4)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "kbarticle")
	v.SetDefault("database.user", "kbarticle_user")
	v.SetDefault("database.password", "kbarticle_pass")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.consumer_group", "kbarticle_consumer")
	v.SetDefault("redis.min_idle_time", 120)
}
