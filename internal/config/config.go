// Package config manages Augi's user-wide configuration stored at
// ~/.config/augi/config.toml and the default data directory layout under
// ~/.local/share/augi.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// GlobalConfig holds user-wide settings.
type GlobalConfig struct {
	DefaultModel string            `toml:"default_model"`
	Personality  string            `toml:"personality"`
	WakeWord     string            `toml:"wake_word"`
	Keys         KeysConfig        `toml:"keys"`
	Ollama       OllamaConfig      `toml:"ollama"`
	Memory       MemoryConfig      `toml:"memory"`
	Context      ContextConfig     `toml:"context"`
	Output       OutputConfig      `toml:"output"`
	WebSearch    WebSearchConfig   `toml:"web_search"`
	Apps         AppsConfig        `toml:"apps"`
	Voice        VoiceConfig       `toml:"voice"`
	Permissions  PermissionsConfig `toml:"permissions"`
}

type KeysConfig struct {
	Anthropic string `toml:"anthropic"`
	OpenAI    string `toml:"openai"`
}

type OllamaConfig struct {
	Host            string `toml:"host"`
	CompletionModel string `toml:"completion_model"`
}

// MemoryConfig locates the memory directory. An empty Dir means the default
// under the user data directory.
type MemoryConfig struct {
	Dir string `toml:"dir"`
}

// ContextConfig bounds how much past conversation is folded into prompts.
type ContextConfig struct {
	MaxTokens            int `toml:"max_tokens"`
	MaxRelevantSessions  int `toml:"max_relevant_sessions"`
	MaxMessagesPerRecall int `toml:"max_messages_per_recall"`
}

type OutputConfig struct {
	Stream  bool `toml:"stream"`
	Color   bool `toml:"color"`
	Verbose bool `toml:"verbose"`
}

// WebSearchConfig controls the DuckDuckGo client and its result cache.
type WebSearchConfig struct {
	Enabled       bool   `toml:"enabled"`
	BaseURL       string `toml:"base_url"`
	MaxResults    int    `toml:"max_results"`
	CacheTTLHours int    `toml:"cache_ttl_hours"`
}

// AppsConfig controls application and game discovery.
type AppsConfig struct {
	ExtraRoots []string `toml:"extra_roots"`
	IgnoreFile string   `toml:"ignore_file"`
}

// VoiceConfig controls text-to-speech output.
type VoiceConfig struct {
	Enabled bool     `toml:"enabled"`
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

type PermissionsConfig struct {
	Path string `toml:"path"`
}

// DefaultGlobal returns sensible defaults.
func DefaultGlobal() GlobalConfig {
	return GlobalConfig{
		DefaultModel: "claude",
		Personality:  "friendly",
		WakeWord:     "augi",
		Ollama: OllamaConfig{
			Host:            "http://localhost:11434",
			CompletionModel: "llama3.2",
		},
		Context: ContextConfig{
			MaxTokens:            8000,
			MaxRelevantSessions:  3,
			MaxMessagesPerRecall: 5,
		},
		Output: OutputConfig{
			Stream: true,
			Color:  true,
		},
		WebSearch: WebSearchConfig{
			Enabled:       true,
			BaseURL:       "https://html.duckduckgo.com/html/",
			MaxResults:    5,
			CacheTTLHours: 24,
		},
		Voice: VoiceConfig{
			Enabled: false,
			Command: "espeak",
		},
	}
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "augi", "config.toml"), nil
}

// DataDir returns the user data directory for Augi.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "augi"), nil
}

// MemoryDir resolves the memory directory: AUGI_MEMORY_DIR wins, then the
// configured dir, then the default under the data directory.
func (c GlobalConfig) MemoryDir() (string, error) {
	if v := os.Getenv("AUGI_MEMORY_DIR"); v != "" {
		return v, nil
	}
	if c.Memory.Dir != "" {
		return c.Memory.Dir, nil
	}
	data, err := DataDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve memory dir: %w", err)
	}
	return filepath.Join(data, "memory"), nil
}

// PermissionsPath resolves the permissions file location.
func (c GlobalConfig) PermissionsPath() (string, error) {
	if c.Permissions.Path != "" {
		return c.Permissions.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "augi", "permissions.json"), nil
}

// SearchCachePath returns the SQLite file backing the web search cache.
func SearchCachePath() (string, error) {
	data, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "search_cache.db"), nil
}

// ScanIgnorePath resolves the gitignore-style exclude file consulted by
// application and game scans.
func (c GlobalConfig) ScanIgnorePath() (string, error) {
	if c.Apps.IgnoreFile != "" {
		return c.Apps.IgnoreFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "augi", "scanignore"), nil
}

// LoadGlobal loads the global config, applying defaults for any missing values.
func LoadGlobal() (GlobalConfig, error) {
	cfg := DefaultGlobal()

	path, err := GlobalConfigPath()
	if err != nil {
		// Can't determine home dir; env overrides still apply.
		applyEnvOverrides(&cfg)
		return cfg, nil
	}

	if _, statErr := os.Stat(path); statErr == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: load global: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides lets env vars override config file API keys.
func applyEnvOverrides(cfg *GlobalConfig) {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Keys.Anthropic = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Keys.OpenAI = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.Ollama.Host = v
	}
}

// SaveGlobal writes the global config to disk.
func SaveGlobal(cfg GlobalConfig) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create global config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
