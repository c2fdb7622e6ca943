// Package config handles aide configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./aide.yaml, ~/.config/aide/config.yaml, /etc/aide/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"aide.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "aide", "config.yaml"))
	}

	paths = append(paths, "/etc/aide/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns an empty path (no error) if nothing was found; every aide
// subcommand can run from flags and environment alone.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}

// Config holds all aide configuration.
type Config struct {
	OpenAI    OpenAIConfig `yaml:"openai"`
	MCP       MCPConfig    `yaml:"mcp"`
	Feeds     FeedsConfig  `yaml:"feeds"`
	Watch     WatchConfig  `yaml:"watch"`
	DataDir   string       `yaml:"data_dir"`
	LogLevel  string       `yaml:"log_level"`
	LogFormat string       `yaml:"log_format"` // "text" or "json"
}

// OpenAIConfig defines Responses API settings. Any field left empty in
// the file can be supplied via the OPENAI_* environment variables or
// command-line flags.
type OpenAIConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

// Configured reports whether enough settings are present to issue a
// Responses API call.
func (c OpenAIConfig) Configured() bool {
	return c.BaseURL != "" && c.APIKey != "" && c.Model != ""
}

// MCPConfig defines the MCP server the agent exposes as a remote tool.
type MCPConfig struct {
	URL         string `yaml:"url"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Token       string `yaml:"token"`
	AutoApprove *bool  `yaml:"auto_approve"`
}

// FeedsConfig defines defaults for the RSS fetch rounds.
type FeedsConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
	WaitSec       int `yaml:"wait_sec"`
}

// WatchConfig defines defaults for the file-change command runner.
type WatchConfig struct {
	DebounceMS     int `yaml:"debounce_ms"`
	CmdTimeoutSec  int `yaml:"cmd_timeout_sec"`
	MaxOutputBytes int `yaml:"max_output_bytes"`
}

// Load reads configuration from a YAML file and applies environment
// overrides and defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Feeds: FeedsConfig{
			MaxConcurrent: 5,
			WaitSec:       3,
		},
		Watch: WatchConfig{
			DebounceMS:     500,
			CmdTimeoutSec:  30,
			MaxOutputBytes: 100 * 1024,
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// ApplyEnv fills empty OpenAI and MCP settings from the environment.
// Environment variables never override values already set in the file.
func (c *Config) ApplyEnv() {
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = os.Getenv("OPENAI_BASE_URL")
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = os.Getenv("OPENAI_MODEL")
	}
	if c.MCP.Token == "" {
		c.MCP.Token = os.Getenv("MCP_TOKEN")
	}
	if c.MCP.URL == "" {
		c.MCP.URL = os.Getenv("MCP_URL")
	}
}

// HistoryDBPath returns the SQLite path for the conversation transcript
// store: <data_dir>/history.db, defaulting data_dir to
// ~/.local/share/aide when unset.
func (c *Config) HistoryDBPath() string {
	dir := c.DataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".local", "share", "aide")
	}
	return filepath.Join(dir, "history.db")
}

// FeedWait returns the configured base wait as a duration.
func (c *Config) FeedWait() time.Duration {
	return time.Duration(c.Feeds.WaitSec) * time.Second
}

// Debounce returns the configured watch debounce window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// Validate checks for values that would misbehave at runtime.
func (c *Config) Validate() error {
	var problems []string

	if c.Feeds.MaxConcurrent < 1 {
		problems = append(problems, "feeds.max_concurrent must be >= 1")
	}
	if c.Feeds.WaitSec < 0 {
		problems = append(problems, "feeds.wait_sec must be >= 0")
	}
	if c.Watch.DebounceMS < 0 {
		problems = append(problems, "watch.debounce_ms must be >= 0")
	}
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		problems = append(problems, fmt.Sprintf("log_format %q is not text or json", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
