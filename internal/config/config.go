// Package config loads the application configuration from a YAML file
// overlaid with MENTALMATH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/coach"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/hints"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/llm"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/problemgen"
)

// Config is the full application configuration.
type Config struct {
	// DB is the SQLite path. Empty uses store.DefaultDBPath.
	DB string `yaml:"db"`

	Engine   method.Config `yaml:"engine"`
	Hints    hints.Config  `yaml:"hints"`
	Practice Practice      `yaml:"practice"`
	Coach    coach.Config  `yaml:"coach"`
	LLM      llm.Config    `yaml:"llm"`
	Server   Server        `yaml:"server"`
}

// Practice configures the practice session.
type Practice struct {
	Generator problemgen.Config `yaml:",inline"`

	// Problems per session; zero means until quit.
	Problems int `yaml:"problems"`
}

// Server configures the HTTP API.
type Server struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine:   method.DefaultConfig(),
		Hints:    hints.DefaultConfig(),
		Practice: Practice{Generator: problemgen.DefaultConfig(), Problems: 10},
		Coach:    coach.DefaultConfig(),
		LLM:      llm.DefaultConfig(),
		Server: Server{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// DefaultPath resolves the config file path:
// 1. MENTALMATH_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/mentalmath/config.yaml
// 3. ~/.config/mentalmath/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("MENTALMATH_CONFIG"); p != "" {
		return p, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mentalmath", "config.yaml"), nil
}

// Load reads path over the defaults, then applies the environment.
// An empty path means DefaultPath, which may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with MENTALMATH_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("MENTALMATH_DB"); v != "" {
		c.DB = v
	}
	if v := os.Getenv("MENTALMATH_DIFFICULTY"); v != "" {
		c.Practice.Generator.Difficulty = problemgen.Difficulty(v)
	}
	if v := os.Getenv("MENTALMATH_ADDR"); v != "" {
		c.Server.Addr = v
	}
	c.LLM.ApplyEnv()
}

// Validate checks values that would otherwise fail later and less clearly.
func (c Config) Validate() error {
	if _, err := problemgen.ParseDifficulty(string(c.Practice.Generator.Difficulty)); err != nil {
		return fmt.Errorf("practice: %w", err)
	}
	if c.Practice.Generator.Focus != "" {
		if _, err := method.ParseStrategy(c.Practice.Generator.Focus); err != nil {
			return fmt.Errorf("practice.focus: %w", err)
		}
	}
	if c.Practice.Problems < 0 {
		return fmt.Errorf("practice.problems must not be negative")
	}
	if c.Hints.MaxHints < 0 {
		return fmt.Errorf("hints.max_hints must not be negative")
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}
