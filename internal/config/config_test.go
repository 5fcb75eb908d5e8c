package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/method"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/problemgen"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MENTALMATH_CONFIG", "MENTALMATH_DB", "MENTALMATH_DIFFICULTY", "MENTALMATH_ADDR",
		"MENTALMATH_LLM_PROVIDER", "MENTALMATH_ANTHROPIC_API_KEY",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadMissingDefaultFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, `
db: /tmp/mm.db
engine:
  power_of_ten_max_deviation: 5
  max_alternatives: 1
hints:
  max_hints: 2
practice:
  difficulty: hard
  focus: squaring
  problems: 5
llm:
  provider: mock
  retry:
    max_attempts: 2
    initial_wait: 250ms
server:
  addr: ":9090"
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/mm.db", cfg.DB)
	assert.Equal(t, int64(5), cfg.Engine.PowerOfTenMaxDeviation)
	assert.Equal(t, method.DefaultConfig().NearHundredMaxDeviation, cfg.Engine.NearHundredMaxDeviation)
	assert.Equal(t, 1, cfg.Engine.MaxAlternatives)
	assert.Equal(t, 2, cfg.Hints.MaxHints)
	assert.Equal(t, problemgen.DifficultyHard, cfg.Practice.Generator.Difficulty)
	assert.Equal(t, "squaring", cfg.Practice.Generator.Focus)
	assert.Equal(t, 5, cfg.Practice.Problems)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, 250*time.Millisecond, cfg.LLM.Retry.InitialWait)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeFile(t, "practice:\n  dificulty: hard\n"))
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, "practice:\n  difficulty: hard\n")
	t.Setenv("MENTALMATH_DIFFICULTY", "easy")
	t.Setenv("MENTALMATH_DB", "/data/env.db")
	t.Setenv("MENTALMATH_ADDR", ":7070")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, problemgen.DifficultyEasy, cfg.Practice.Generator.Difficulty)
	assert.Equal(t, "/data/env.db", cfg.DB)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestConfigFromDefaultPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mentalmath"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mentalmath", "config.yaml"), []byte("practice:\n  problems: 3\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Practice.Problems)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"difficulty", func(c *Config) { c.Practice.Generator.Difficulty = "legendary" }},
		{"focus", func(c *Config) { c.Practice.Generator.Focus = "abacus" }},
		{"problems", func(c *Config) { c.Practice.Problems = -1 }},
		{"hints", func(c *Config) { c.Hints.MaxHints = -2 }},
		{"llm", func(c *Config) { c.LLM.Provider = "anthropic" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}
