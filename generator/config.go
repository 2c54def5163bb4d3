package generator

import (
	"encoding/json"
	"os"
)

// Config is the service configuration read from config.json.
type Config struct {
	LLM        *LLMConfig `json:"llm,omitempty"`
	ServerAddr string     `json:"server_addr,omitempty"`
	// QuotaLimit is the number of final (annotated) generations each user
	// may request. Zero falls back to DefaultQuotaLimit.
	QuotaLimit int `json:"quota_limit,omitempty"`
}

// DefaultQuotaLimit applies when the config file does not set one.
const DefaultQuotaLimit = 3

// LLMConfig selects and configures the completion backend.
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// LoadConfig reads JSON config from disk.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.QuotaLimit <= 0 {
		cfg.QuotaLimit = DefaultQuotaLimit
	}
	return cfg, nil
}
