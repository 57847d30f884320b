package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("PULL_REQUEST_REPOSITORY", "agileobjects/blog")
	t.Setenv("COMMENT_FALLBACK_COMMIT_EMAIL", "comments@blog.example.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(1048576), cfg.Server.MaxFormSize)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Server.HasWildcardOrigin())
	assert.Equal(t, 30*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "", cfg.WebsiteHost())

	info := cfg.CommentInfo()
	assert.Equal(t, "agileobjects", info.Repo.OwnerName)
	assert.Equal(t, "blog", info.Repo.Name)
	assert.Equal(t, "comments@blog.example.com", info.CommitterFallbackEmail)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://blog.example.com,https://www.blog.example.com")
	t.Setenv("COMMENT_WEBSITE_URL", "https://Blog.Example.com:443/posts/")
	t.Setenv("GITHUB_API_URL", "https://ghe.example.com/api/v3/")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://blog.example.com", "https://www.blog.example.com"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Server.HasWildcardOrigin())
	assert.Equal(t, "Blog.Example.com", cfg.WebsiteHost())
	assert.Equal(t, "https://ghe.example.com/api/v3/", cfg.GitHub.APIURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DotEnvFile(t *testing.T) {
	// Variables set by the test are restored afterwards; godotenv does not override them.
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("PULL_REQUEST_REPOSITORY", "")
	t.Setenv("COMMENT_FALLBACK_COMMIT_EMAIL", "")
	os.Unsetenv("GITHUB_TOKEN")
	os.Unsetenv("PULL_REQUEST_REPOSITORY")
	os.Unsetenv("COMMENT_FALLBACK_COMMIT_EMAIL")

	path := filepath.Join(t.TempDir(), ".env")
	content := "GITHUB_TOKEN=ghp_from_file\nPULL_REQUEST_REPOSITORY=owner/site\nCOMMENT_FALLBACK_COMMIT_EMAIL=bot@example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ghp_from_file", cfg.GitHub.Token)
	assert.Equal(t, "owner/site", cfg.Comment.Repository)
	assert.Equal(t, "bot@example.com", cfg.Comment.FallbackCommitEmail)
}

func TestLoad_MissingDotEnvFileIsIgnored(t *testing.T) {
	setRequiredEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{MaxFormSize: 1024},
			GitHub:  GitHubConfig{Token: "ghp_test"},
			Comment: CommentConfig{Repository: "owner/blog", FallbackCommitEmail: "bot@example.com"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "valid with website", mutate: func(c *Config) { c.Comment.WebsiteURL = "https://blog.example.com" }},
		{name: "missing token", mutate: func(c *Config) { c.GitHub.Token = "" }, wantErr: "GITHUB_TOKEN is required"},
		{name: "missing repository", mutate: func(c *Config) { c.Comment.Repository = "" }, wantErr: "PULL_REQUEST_REPOSITORY is required"},
		{name: "repository without owner", mutate: func(c *Config) { c.Comment.Repository = "/blog" }, wantErr: "owner/name form"},
		{name: "repository with extra segment", mutate: func(c *Config) { c.Comment.Repository = "a/b/c" }, wantErr: "owner/name form"},
		{name: "repository without slash", mutate: func(c *Config) { c.Comment.Repository = "blog" }, wantErr: "owner/name form"},
		{name: "missing fallback email", mutate: func(c *Config) { c.Comment.FallbackCommitEmail = "" }, wantErr: "COMMENT_FALLBACK_COMMIT_EMAIL is required"},
		{name: "relative website", mutate: func(c *Config) { c.Comment.WebsiteURL = "blog.example.com" }, wantErr: "COMMENT_WEBSITE_URL must be an absolute URL"},
		{name: "non-positive form size", mutate: func(c *Config) { c.Server.MaxFormSize = 0 }, wantErr: "MAX_FORM_SIZE must be positive"},
		{name: "wildcard origin", mutate: func(c *Config) { c.Server.AllowedOrigins = []string{"*"} }},
		{name: "origin without scheme", mutate: func(c *Config) { c.Server.AllowedOrigins = []string{"https://blog.example.com", "blog.example.com"} }, wantErr: "CORS_ALLOWED_ORIGINS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
