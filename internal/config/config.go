package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for pipegen
type Config struct {
	Model  ModelConfig  `json:"model"`
	Server ServerConfig `json:"server"`
	Output OutputConfig `json:"output"`
}

// ModelConfig holds the Ollama model service configuration
type ModelConfig struct {
	BaseURL     string  `json:"base_url"`
	Name        string  `json:"name"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// ServerConfig holds API server configuration
type ServerConfig struct {
	Host        string   `json:"host"`
	Port        int      `json:"port"`
	CORSOrigins []string `json:"cors_origins"`
	SessionTTL  int      `json:"session_ttl_minutes"`
	MaxSessions int      `json:"max_sessions"`
}

// OutputConfig holds artifact output configuration
type OutputConfig struct {
	// Dir is where generated artifacts (pipeline code, task config,
	// synthetic-data prompt, optimized pipeline) are written.
	Dir string `json:"dir"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			BaseURL:     "http://localhost:11434",
			Name:        "llama3.2",
			MaxTokens:   2000,
			Temperature: 0.7,
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        5000,
			CORSOrigins: []string{"http://localhost:3000"},
			SessionTTL:  60,
			MaxSessions: 256,
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}

// envString loads a string environment variable into the target pointer if set
func envString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// envInt loads an integer environment variable into the target pointer if set and valid
func envInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*target = i
		}
	}
}

// envFloat loads a float64 environment variable into the target pointer if set and valid
func envFloat(key string, target *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*target = f
		}
	}
}

// envStringSlice loads a comma-separated environment variable into a string slice
func envStringSlice(key string, target *[]string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			*target = result
		}
	}
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := getConfigPath()
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to parse config file %s: %v\n", configPath, err)
		}
	}

	// Legacy variable names, kept for compatibility with the original tool
	envString("OLLAMA_BASE_URL", &cfg.Model.BaseURL)
	envString("OLLAMA_MODEL", &cfg.Model.Name)

	// Load model configuration from environment
	envString("PIPEGEN_MODEL_URL", &cfg.Model.BaseURL)
	envString("PIPEGEN_MODEL_NAME", &cfg.Model.Name)
	envInt("PIPEGEN_MODEL_MAX_TOKENS", &cfg.Model.MaxTokens)
	envFloat("PIPEGEN_MODEL_TEMPERATURE", &cfg.Model.Temperature)

	// Load server configuration from environment
	envString("PIPEGEN_SERVER_HOST", &cfg.Server.Host)
	envInt("PIPEGEN_SERVER_PORT", &cfg.Server.Port)
	envStringSlice("PIPEGEN_CORS_ORIGINS", &cfg.Server.CORSOrigins)
	envInt("PIPEGEN_SESSION_TTL_MINUTES", &cfg.Server.SessionTTL)
	envInt("PIPEGEN_MAX_SESSIONS", &cfg.Server.MaxSessions)

	// Load output configuration from environment
	envString("PIPEGEN_OUTPUT_DIR", &cfg.Output.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isValidURL validates that a URL has proper format
func isValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server port must be between 1 and 65535")
	}
	if c.Server.SessionTTL < 1 {
		errs = append(errs, "session TTL must be at least 1 minute")
	}
	if c.Server.MaxSessions < 1 {
		errs = append(errs, "max sessions must be at least 1")
	}

	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		errs = append(errs, "model temperature must be between 0 and 2")
	}
	if c.Model.MaxTokens < 1 {
		errs = append(errs, "model max_tokens must be positive")
	}
	if c.Model.Name == "" {
		errs = append(errs, "model name is required")
	}
	if c.Model.BaseURL == "" {
		errs = append(errs, "model base URL is required")
	} else if !isValidURL(c.Model.BaseURL) {
		errs = append(errs, "model base URL must be a valid URL")
	}

	if c.Output.Dir == "" {
		errs = append(errs, "output directory is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() string {
	if path := os.Getenv("PIPEGEN_CONFIG"); path != "" {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}

	configDir := filepath.Join(homeDir, ".config", "pipegen")
	return filepath.Join(configDir, "config.json")
}
