package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver         string `yaml:"driver"`
	URL            string `yaml:"url"`
	DocumentsTable string `yaml:"documents_table"`
	QueryLogsTable string `yaml:"query_logs_table"`
	Seed           *bool  `yaml:"seed"`
}

type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature *float64      `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

type ImporterConfig struct {
	RateLimit       float64       `yaml:"rate_limit"`
	Timeout         time.Duration `yaml:"timeout"`
	MaxContentBytes int           `yaml:"max_content_bytes"`
	Category        string        `yaml:"category"`
	IgnorePatterns  []string      `yaml:"ignore_patterns"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Importer ImporterConfig `yaml:"importer"`
	Log      LogConfig      `yaml:"log"`
}

// SeedEnabled reports whether sample documents go into an empty store. Defaults to true.
func (c *Config) SeedEnabled() bool {
	return c.Database.Seed == nil || *c.Database.Seed
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func LoadConfig(path string) (*Config, error) {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/legaldoc/config.yaml"),
			"/etc/legaldoc/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge with environment variables
	if err := mergeWithEnv(&config); err != nil {
		return nil, err
	}

	// Apply defaults for unset values
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	if err := mergeWithEnv(config); err != nil {
		return nil, err
	}
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Server.Port == 0 {
		config.Server.Port = 8000
	}
	if len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if config.Database.Driver == "" {
		if config.Database.URL != "" && isPostgresURL(config.Database.URL) {
			config.Database.Driver = "postgres"
		} else {
			config.Database.Driver = "sqlite"
		}
	}
	if config.Database.URL == "" && config.Database.Driver == "sqlite" {
		config.Database.URL = "legaldoc.db"
	}
	if config.Database.DocumentsTable == "" {
		config.Database.DocumentsTable = "legal_documents"
	}
	if config.Database.QueryLogsTable == "" {
		config.Database.QueryLogsTable = "query_logs"
	}

	if config.LLM.Provider == "" && config.LLM.APIKey != "" {
		config.LLM.Provider = "openai"
	}
	if config.LLM.MaxTokens == 0 {
		config.LLM.MaxTokens = 500
	}
	if config.LLM.Temperature == nil {
		temperature := 0.7
		config.LLM.Temperature = &temperature
	}
	if config.LLM.Timeout == 0 {
		config.LLM.Timeout = 30 * time.Second
	}
	if config.LLM.Provider == "ollama" && config.LLM.BaseURL == "" {
		config.LLM.BaseURL = "http://localhost:11434"
	}

	if config.Importer.RateLimit == 0 {
		config.Importer.RateLimit = 2.0
	}
	if config.Importer.Timeout == 0 {
		config.Importer.Timeout = 30 * time.Second
	}
	if config.Importer.MaxContentBytes == 0 {
		config.Importer.MaxContentBytes = 1 << 20
	}
	if config.Importer.Category == "" {
		config.Importer.Category = "Imported"
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
}

func mergeWithEnv(config *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		config.Server.Port = p
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		config.Server.AllowedOrigins = splitList(origins)
	}

	if driver := os.Getenv("DATABASE_DRIVER"); driver != "" {
		config.Database.Driver = driver
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = strings.ToLower(provider)
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
		if config.LLM.Provider == "" {
			config.LLM.Provider = "ollama"
		}
	}

	// The key matching the chosen provider wins; with no provider the first key found selects one.
	keys := []struct {
		provider string
		env      string
	}{
		{"openai", "OPENAI_API_KEY"},
		{"gemini", "GEMINI_API_KEY"},
		{"anthropic", "ANTHROPIC_API_KEY"},
	}
	for _, k := range keys {
		key := os.Getenv(k.env)
		if key == "" {
			continue
		}
		if config.LLM.Provider == "" {
			config.LLM.Provider = k.provider
		}
		if config.LLM.Provider == k.provider && config.LLM.APIKey == "" {
			config.LLM.APIKey = key
		}
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isPostgresURL(u string) bool {
	return strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://")
}
