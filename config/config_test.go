package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kozlovskia/Draft-Simulator/searcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaulting without a file", func(t *testing.T) {
		got, err := Load(filepath.Join(t.TempDir(), "missing.toml"))

		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), got)
		require.NoError(t, got.Validate())
	})

	t.Run("keeping defaults for absent keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "draft.toml")
		body := "[search]\nepisodes = 250\n\n[log]\nlevel = \"debug\"\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		got, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 250, got.Search.Episodes)
		require.Equal(t, searcher.DefaultExploration, got.Search.Exploration)
		level, err := got.LogLevel()
		require.NoError(t, err)
		require.Equal(t, zerolog.DebugLevel, level)
	})

	t.Run("rejecting malformed TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "draft.toml")
		require.NoError(t, os.WriteFile(path, []byte("[search\n"), 0o644))

		_, err := Load(path)

		require.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.toml")
	config := DefaultConfig()
	config.Data.Store = "draft.db"
	config.Search.Seed = 42

	require.NoError(t, config.Save(path))
	got, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, config, got)
}

func TestApplyEnv(t *testing.T) {
	t.Run("overriding from the environment", func(t *testing.T) {
		t.Setenv("DRAFT_EPISODES", "75")
		t.Setenv("DRAFT_EXPLORATION", "0.66")
		t.Setenv("DRAFT_SEED", "9")
		t.Setenv("DRAFT_DATA_DIR", "/srv/data")
		t.Setenv("DRAFT_WORKERS", "2")
		t.Setenv("DRAFT_MAX_EPISODES", "900")
		config := DefaultConfig()

		require.NoError(t, config.ApplyEnv())

		require.Equal(t, 75, config.Search.Episodes)
		require.Equal(t, 0.66, config.Search.Exploration)
		require.Equal(t, uint64(9), config.Search.Seed)
		require.Equal(t, "/srv/data", config.Data.Dir)
		require.Equal(t, 2, config.Experiment.Workers)
		require.Equal(t, 900, config.Server.MaxEpisodes)
	})

	t.Run("rejecting a malformed number", func(t *testing.T) {
		t.Setenv("DRAFT_GAMES", "many")

		require.ErrorContains(t, DefaultConfig().ApplyEnv(), "DRAFT_GAMES")
	})
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DRAFT_ADDR=:9090\n"), 0o644))
	t.Setenv("DRAFT_ADDR", "")
	os.Unsetenv("DRAFT_ADDR")

	got := LoadEnvFile(filepath.Join(dir, "missing.env"), path)

	require.Equal(t, path, got)
	config := DefaultConfig()
	require.NoError(t, config.ApplyEnv())
	require.Equal(t, ":9090", config.Server.Addr)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"unknown log level": func(c *Config) { c.Log.Level = "loud" },
		"no data source":    func(c *Config) { c.Data.Dir = "" },
		"negative episodes": func(c *Config) { c.Search.Episodes = -1 },
		"zero episodes":     func(c *Config) { c.Search.Episodes = 0 },
		"cap below default": func(c *Config) { c.Server.MaxEpisodes = c.Search.Episodes - 1 },
		"negative constant": func(c *Config) { c.Search.Exploration = -0.5 },
		"no games":          func(c *Config) { c.Experiment.Games = 0 },
		"no workers":        func(c *Config) { c.Experiment.Workers = 0 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			config := DefaultConfig()
			mutate(config)

			require.Error(t, config.Validate())
		})
	}
}
