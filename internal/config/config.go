package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/comment-pr/internal/models"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// GitHub API configuration
	GitHub GitHubConfig

	// Comment publishing configuration
	Comment CommentConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"15s"`
	MaxFormSize     int64         `env:"MAX_FORM_SIZE" env-default:"1048576"` // in bytes
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

// GitHubConfig holds GitHub API settings
type GitHubConfig struct {
	Token   string        `env:"GITHUB_TOKEN"`
	APIURL  string        `env:"GITHUB_API_URL"`
	Timeout time.Duration `env:"GITHUB_TIMEOUT" env-default:"30s"`
}

// CommentConfig holds settings for where and how comments are proposed
type CommentConfig struct {
	Repository          string `env:"PULL_REQUEST_REPOSITORY"` // owner/name
	FallbackCommitEmail string `env:"COMMENT_FALLBACK_COMMIT_EMAIL"`
	WebsiteURL          string `env:"COMMENT_WEBSITE_URL"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"` // "json" or "pretty"
}

// Load reads configuration from an optional dotenv file and the environment.
// A missing dotenv file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.GitHub.Token == "" {
		return fmt.Errorf("GITHUB_TOKEN is required")
	}
	if _, err := ParseRepository(c.Comment.Repository); err != nil {
		return err
	}
	if c.Comment.FallbackCommitEmail == "" {
		return fmt.Errorf("COMMENT_FALLBACK_COMMIT_EMAIL is required")
	}
	if c.Comment.WebsiteURL != "" {
		if _, ok := models.ParseAbsoluteURL(c.Comment.WebsiteURL); !ok {
			return fmt.Errorf("COMMENT_WEBSITE_URL must be an absolute URL, got %q", c.Comment.WebsiteURL)
		}
	}
	if c.Server.MaxFormSize <= 0 {
		return fmt.Errorf("MAX_FORM_SIZE must be positive")
	}
	for _, origin := range c.Server.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" || origin == "*" {
			continue
		}
		if _, ok := models.ParseAbsoluteURL(origin); !ok {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS entries must be absolute URLs, got %q", origin)
		}
	}
	return nil
}

// CommentInfo returns the comment publishing settings. Validate must have succeeded.
func (c *Config) CommentInfo() models.CommentInfo {
	repo, _ := ParseRepository(c.Comment.Repository)
	return models.CommentInfo{
		Repo:                   repo,
		CommitterFallbackEmail: c.Comment.FallbackCommitEmail,
	}
}

// WebsiteHost returns the host comments must be posted from, or "" when unchecked
func (c *Config) WebsiteHost() string {
	u, ok := models.ParseAbsoluteURL(c.Comment.WebsiteURL)
	if !ok {
		return ""
	}
	return u.Hostname()
}

// ParseRepository splits an owner/name repository reference
func ParseRepository(s string) (models.CommentRepo, error) {
	if s == "" {
		return models.CommentRepo{}, fmt.Errorf("PULL_REQUEST_REPOSITORY is required")
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return models.CommentRepo{}, fmt.Errorf("PULL_REQUEST_REPOSITORY must be in owner/name form, got %q", s)
	}

	return models.CommentRepo{OwnerName: parts[0], Name: parts[1]}, nil
}

// Addr returns the listen address for the HTTP server
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

// HasWildcardOrigin reports whether any origin may post comments
func (c *ServerConfig) HasWildcardOrigin() bool {
	for _, origin := range c.AllowedOrigins {
		if strings.TrimSpace(origin) == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}
