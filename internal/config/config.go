package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// Config represents the mdproof configuration.
type Config struct {
	DocsDir             string   `json:"docsDir"`
	WorkDir             string   `json:"workDir,omitempty"`
	Provider            string   `json:"provider"`
	Model               string   `json:"model"`
	SystemPrompt        string   `json:"systemPrompt"`
	RequestDelaySeconds float64  `json:"requestDelaySeconds"`
	MaxRetries          int      `json:"maxRetries"`
	MaxTokens           int      `json:"maxTokens"`
	Temperature         float64  `json:"temperature"`
	TopP                float64  `json:"topP"`
	Include             []string `json:"include"`
	Exclude             []string `json:"exclude"`
}

// RequestDelay returns the configured inter-request delay.
func (c Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelaySeconds * float64(time.Second))
}

const defaultSystemPrompt = "你是一位严谨的中文校对助手。检查给定句子中的错别字、语法错误和用词不当，" +
	"以 JSON 格式返回 original_text、error_type、description、checked_text 四个字段。" +
	"句中的 Markdown 标记（反引号、链接、强调符号）必须原样保留。"

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		DocsDir:             "posts",
		Provider:            "ollama",
		Model:               "qwen2.5",
		SystemPrompt:        defaultSystemPrompt,
		RequestDelaySeconds: 1.0,
		MaxRetries:          3,
		MaxTokens:           1024,
		Temperature:         0.1,
		TopP:                0.9,
		Include:             []string{"**/*.md"},
		Exclude:             []string{"**/drafts/**"},
	}
}

// Validate rejects structurally invalid configuration. Unlike per-sentence
// failures, these are fatal for the whole run.
func (c Config) Validate() error {
	if c.DocsDir == "" {
		return fmt.Errorf("docsDir must not be empty")
	}
	if c.Provider == "" {
		return fmt.Errorf("provider must not be empty")
	}
	if c.RequestDelaySeconds < 0 {
		return fmt.Errorf("requestDelaySeconds must not be negative")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("maxRetries must not be negative")
	}
	return nil
}

// ConfigDir returns the platform-appropriate config directory for mdproof.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdproof"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "mdproof"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "mdproof"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "mdproof"), nil
	default:
		return filepath.Join(home, ".config", "mdproof"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only non-zero values
// should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.DocsDir != "" {
		dst.DocsDir = src.DocsDir
	}
	if src.WorkDir != "" {
		dst.WorkDir = src.WorkDir
	}
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.SystemPrompt != "" {
		dst.SystemPrompt = src.SystemPrompt
	}
	if src.RequestDelaySeconds > 0 {
		dst.RequestDelaySeconds = src.RequestDelaySeconds
	}
	if src.MaxRetries > 0 {
		dst.MaxRetries = src.MaxRetries
	}
	if src.MaxTokens > 0 {
		dst.MaxTokens = src.MaxTokens
	}
	if src.Temperature > 0 {
		dst.Temperature = src.Temperature
	}
	if src.TopP > 0 {
		dst.TopP = src.TopP
	}
	if len(src.Include) > 0 {
		dst.Include = src.Include
	}
	if len(src.Exclude) > 0 {
		dst.Exclude = src.Exclude
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("MDPROOF_DOCS_DIR"); v != "" {
		cfg.DocsDir = v
	}
	if v := os.Getenv("MDPROOF_WORK_DIR"); v != "" {
		cfg.WorkDir = v
	}
	if v := os.Getenv("MDPROOF_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("MDPROOF_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("MDPROOF_SYSTEM_PROMPT"); v != "" {
		cfg.SystemPrompt = v
	}
	if v := os.Getenv("MDPROOF_REQUEST_DELAY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RequestDelaySeconds = f
		}
	}
	if v := os.Getenv("MDPROOF_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRetries = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	for key, v := range overrides {
		if v == "" {
			continue
		}
		// Override keys mirror SetField keys; unknown keys were rejected at
		// flag-parse time.
		_ = SetField(cfg, key, v)
	}
}

// SetField sets a single config field by key name. Returns error if key is
// unknown or the value does not parse.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "docsDir":
		cfg.DocsDir = value
	case "workDir":
		cfg.WorkDir = value
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "systemPrompt":
		cfg.SystemPrompt = value
	case "requestDelaySeconds":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("requestDelaySeconds must be a number: %w", err)
		}
		cfg.RequestDelaySeconds = f
	case "maxRetries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxRetries must be an integer: %w", err)
		}
		cfg.MaxRetries = n
	case "maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTokens must be an integer: %w", err)
		}
		cfg.MaxTokens = n
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number: %w", err)
		}
		cfg.Temperature = f
	case "topP":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("topP must be a number: %w", err)
		}
		cfg.TopP = f
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
