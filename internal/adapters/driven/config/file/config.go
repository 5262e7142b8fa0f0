// Package file loads and persists the application configuration as a
// TOML file under the data directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration. Zero values are
// filled in from Defaults on load, so a partial config file works.
type Config struct {
	// DataDir holds the vector database, clones and the config file
	// itself. Not serialised; set from the flag or default.
	DataDir string `toml:"-"`

	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	GitHub    GitHubConfig    `toml:"github"`
}

// EmbeddingConfig selects and tunes the embedding provider.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai".
	Provider   string `toml:"provider"`
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`
	BaseURL    string `toml:"base_url"`

	// APIKey is only read from the environment, never the file.
	APIKey string `toml:"-"`
}

// LLMConfig selects and tunes the answer generator.
type LLMConfig struct {
	// Provider is "ollama" or "gemini".
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
	APIKey   string `toml:"-"`
}

// ChunkingConfig tunes the token-window chunker.
type ChunkingConfig struct {
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`
}

// RetrievalConfig tunes retrieval.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`
}

// GitHubConfig tunes repository acquisition.
type GitHubConfig struct {
	// Token is only read from the environment, never the file.
	Token string `toml:"-"`
}

// Environment variables consulted on load. Secrets always come from
// the environment so the config file stays safe to commit or share.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvGitHubToken  = "GITHUB_TOKEN"
)

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		Embedding: EmbeddingConfig{
			Provider:   "ollama",
			Model:      "nomic-embed-text",
			Dimensions: 768,
			BaseURL:    "http://localhost:11434",
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.2",
			BaseURL:  "http://localhost:11434",
		},
		Chunking: ChunkingConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Retrieval: RetrievalConfig{
			TopK: 5,
		},
	}
}

// DefaultDataDir returns ~/.gitassist.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".gitassist"), nil
}

// Load reads <dataDir>/config.toml, fills gaps with defaults and
// applies environment overrides. A missing file yields the defaults.
func Load(dataDir string) (Config, error) {
	cfg := Defaults()
	cfg.DataDir = dataDir

	path := filepath.Join(dataDir, "config.toml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	fillDefaults(&cfg)
	applyEnv(&cfg)
	return cfg, nil
}

// Save writes the configuration to <dataDir>/config.toml. Secrets are
// excluded by their toml:"-" tags.
func Save(cfg Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", cfg.DataDir, err)
	}

	raw, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	path := filepath.Join(cfg.DataDir, "config.toml")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// RepositoriesDir is where clones live.
func (c Config) RepositoriesDir() string {
	return filepath.Join(c.DataDir, "repositories")
}

func fillDefaults(cfg *Config) {
	def := Defaults()
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = def.Embedding.Provider
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = def.Embedding.Model
	}
	if cfg.Embedding.Dimensions <= 0 {
		cfg.Embedding.Dimensions = def.Embedding.Dimensions
	}
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = def.Embedding.BaseURL
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = def.LLM.Provider
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = def.LLM.Model
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = def.LLM.BaseURL
	}
	if cfg.Chunking.ChunkSize <= 0 {
		cfg.Chunking.ChunkSize = def.Chunking.ChunkSize
	}
	// Zero overlap is a valid setting; Load unmarshals into the
	// defaults, so an omitted key never reaches here as zero.
	if cfg.Chunking.ChunkOverlap < 0 {
		cfg.Chunking.ChunkOverlap = def.Chunking.ChunkOverlap
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
}

func applyEnv(cfg *Config) {
	cfg.GitHub.Token = os.Getenv(EnvGitHubToken)

	switch cfg.Embedding.Provider {
	case "openai":
		cfg.Embedding.APIKey = os.Getenv(EnvOpenAIAPIKey)
	}

	switch cfg.LLM.Provider {
	case "gemini":
		cfg.LLM.APIKey = os.Getenv(EnvGeminiAPIKey)
	}
}
