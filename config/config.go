package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kozlovskia/Draft-Simulator/experiments"
	"github.com/kozlovskia/Draft-Simulator/meta"
	"github.com/kozlovskia/Draft-Simulator/searcher"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Config represents the application configuration.
type Config struct {
	Log        LogConfig        `toml:"log"`
	Data       DataConfig       `toml:"data"`
	Search     SearchConfig     `toml:"search"`
	Server     ServerConfig     `toml:"server"`
	Experiment ExperimentConfig `toml:"experiment"`
}

type LogConfig struct {
	Level string `toml:"level"` // zerolog level name (e.g., "debug")
}

// DataConfig locates the roster and scoring table. Store wins over Dir when set.
type DataConfig struct {
	Dir   string `toml:"dir"`   // Directory with champions.json and roles.csv
	Store string `toml:"store"` // Path to a sqlite store
}

type SearchConfig struct {
	Episodes    int     `toml:"episodes"`
	Exploration float64 `toml:"exploration"`
	Seed        uint64  `toml:"seed"` // 0 seeds from the clock
}

type ServerConfig struct {
	Addr        string `toml:"addr"`
	MaxEpisodes int    `toml:"max_episodes"` // Cap on the episodes a request may ask for
}

type ExperimentConfig struct {
	Games     int    `toml:"games"` // Per agent config
	Workers   int    `toml:"workers"`
	BaseSeed  uint64 `toml:"base_seed"`
	OutputDir string `toml:"output_dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Data: DataConfig{
			Dir: meta.DATA_DIR,
		},
		Search: SearchConfig{
			Episodes:    searcher.DefaultEpisodes,
			Exploration: searcher.DefaultExploration,
		},
		Server: ServerConfig{
			Addr:        meta.SERVER_ADDR,
			MaxEpisodes: meta.MAX_EPISODES,
		},
		Experiment: ExperimentConfig{
			Games:     experiments.NumGames,
			Workers:   meta.WORKERS,
			BaseSeed:  experiments.BaseSeed,
			OutputDir: meta.OUTPUT_DIR,
		},
	}
}

// Load reads the configuration at path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// LoadEnvFile loads the first .env file found among paths into the environment.
// Variables already set are kept. It returns the loaded path, or "" if none exists.
func LoadEnvFile(paths ...string) string {
	for _, path := range paths {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}

// ApplyEnv overrides fields from DRAFT_* environment variables.
func (c *Config) ApplyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(meta.ENV_PREFIX + key); ok {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		if v, ok := os.LookupEnv(meta.ENV_PREFIX + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", meta.ENV_PREFIX, key, err)
			}
			*dst = n
		}
		return nil
	}
	unsigned := func(key string, dst *uint64) error {
		if v, ok := os.LookupEnv(meta.ENV_PREFIX + key); ok {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", meta.ENV_PREFIX, key, err)
			}
			*dst = n
		}
		return nil
	}

	str("LOG_LEVEL", &c.Log.Level)
	str("DATA_DIR", &c.Data.Dir)
	str("STORE", &c.Data.Store)
	str("ADDR", &c.Server.Addr)
	str("OUTPUT_DIR", &c.Experiment.OutputDir)
	if v, ok := os.LookupEnv(meta.ENV_PREFIX + "EXPLORATION"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sEXPLORATION: %w", meta.ENV_PREFIX, err)
		}
		c.Search.Exploration = f
	}
	for key, dst := range map[string]*int{
		"EPISODES":     &c.Search.Episodes,
		"MAX_EPISODES": &c.Server.MaxEpisodes,
		"GAMES":        &c.Experiment.Games,
		"WORKERS":      &c.Experiment.Workers,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}
	for key, dst := range map[string]*uint64{
		"SEED":      &c.Search.Seed,
		"BASE_SEED": &c.Experiment.BaseSeed,
	} {
		if err := unsigned(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Data.Dir == "" && c.Data.Store == "" {
		return fmt.Errorf("either a data directory or a store is required")
	}
	if c.Search.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive: %d", c.Search.Episodes)
	}
	if c.Server.MaxEpisodes < c.Search.Episodes {
		return fmt.Errorf("max episodes %d is below the default of %d", c.Server.MaxEpisodes, c.Search.Episodes)
	}
	if c.Search.Exploration < 0 {
		return fmt.Errorf("exploration cannot be negative: %g", c.Search.Exploration)
	}
	if c.Experiment.Games <= 0 {
		return fmt.Errorf("games must be positive: %d", c.Experiment.Games)
	}
	if c.Experiment.Workers <= 0 {
		return fmt.Errorf("workers must be positive: %d", c.Experiment.Workers)
	}
	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}
