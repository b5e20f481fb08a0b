// Package config loads qbformat settings from an optional YAML file,
// an optional .env file and the environment, in that order of precedence
// (environment wins). Command-line flags override the result.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/gaurav-prasanna/qbformat/core"
)

// Config holds every setting of the CLI and the HTTP server.
type Config struct {
	Mode       string           `yaml:"mode"       env:"QB_MODE"       env-default:"physics"`
	OutputDir  string           `yaml:"output_dir" env:"QB_OUTPUT_DIR"`
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
	Embeddings EmbeddingsConfig `yaml:"embeddings"`
	PDF        PDFConfig        `yaml:"pdf"`
}

// LogConfig selects the zap encoder and level.
type LogConfig struct {
	Level  string `yaml:"level"  env:"QB_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"QB_LOG_FORMAT" env-default:"console"`
}

// ServerConfig configures `qbformat serve`.
type ServerConfig struct {
	Addr         string   `yaml:"addr"          env:"QB_SERVER_ADDR"   env-default:":8080"`
	AllowOrigins []string `yaml:"allow_origins" env:"QB_ALLOW_ORIGINS" env-separator:","`
	HistoryLimit int      `yaml:"history_limit" env:"QB_HISTORY_LIMIT" env-default:"50"`
}

// EmbeddingsConfig configures the Ollama-compatible embeddings renderer.
type EmbeddingsConfig struct {
	URL       string `yaml:"url"        env:"QB_OLLAMA_URL"  env-default:"http://localhost:11434/api/embeddings"`
	Model     string `yaml:"model"      env:"QB_EMBED_MODEL"`
	ChunkSize int    `yaml:"chunk_size" env:"QB_CHUNK_SIZE"  env-default:"512"`
}

// PDFConfig configures the PDF renderer.
type PDFConfig struct {
	FontPath string `yaml:"font_path" env:"QB_PDF_FONT"`
}

// Load reads the configuration. path may be empty, in which case only the
// environment (and a .env file in the working directory, if any) is used.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that tags cannot express.
func (c *Config) Validate() error {
	if _, err := core.ParseTaxonomy(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Embeddings.ChunkSize <= 0 {
		return fmt.Errorf("config: embeddings.chunk_size must be positive, got %d", c.Embeddings.ChunkSize)
	}
	if c.Server.HistoryLimit < 0 {
		return fmt.Errorf("config: server.history_limit must not be negative, got %d", c.Server.HistoryLimit)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// Taxonomy returns the configured default mode.
func (c *Config) Taxonomy() core.Taxonomy {
	t, err := core.ParseTaxonomy(c.Mode)
	if err != nil {
		return core.TaxonomyPhysics
	}
	return t
}
