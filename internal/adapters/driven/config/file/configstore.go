// Package file persists tool configuration as a TOML file in the
// user's config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunable settings. Zero values mean "use the default".
type Config struct {
	// EmbeddingModel is the embedding model name.
	EmbeddingModel string `toml:"embedding_model"`

	// ChatModel is the chat-completion model name.
	ChatModel string `toml:"chat_model"`

	// ChunkSize is the target chunk size in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the overlap between consecutive chunks in characters.
	ChunkOverlap int `toml:"chunk_overlap"`

	// Profile selects the retrieval profile ("simple" or "diverse").
	Profile string `toml:"profile"`

	// OpenAIAPIKey is the stored API key. The OPENAI_API_KEY
	// environment variable takes precedence when set.
	OpenAIAPIKey string `toml:"openai_api_key,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		EmbeddingModel: "text-embedding-3-large",
		ChatModel:      "gpt-4o-mini",
		ChunkSize:      3000,
		ChunkOverlap:   500,
		Profile:        "simple",
	}
}

// ConfigStore is a TOML-backed store for Config. Reads and writes are
// safe for concurrent use.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewConfigStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.repoqa/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".repoqa")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		config:   DefaultConfig(),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns a copy of the current configuration.
func (s *ConfigStore) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Set updates one setting by its TOML key and persists immediately.
func (s *ConfigStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case "embedding_model":
		s.config.EmbeddingModel = value
	case "openai_api_key":
		s.config.OpenAIAPIKey = value
	case "chat_model":
		s.config.ChatModel = value
	case "profile":
		if value != "simple" && value != "diverse" {
			return fmt.Errorf("profile must be %q or %q", "simple", "diverse")
		}
		s.config.Profile = value
	case "chunk_size", "chunk_overlap":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		if key == "chunk_size" {
			s.config.ChunkSize = n
		} else {
			s.config.ChunkOverlap = n
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.config)
	if err != nil {
		return err
	}

	// Restricted permissions: the file may name private endpoints.
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file. Settings absent from
// the file keep their defaults. A missing file is not an error.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	loaded := DefaultConfig()
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	s.config = loaded
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
