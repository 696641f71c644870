package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/TobiSchelling/PoCRanker/internal/plan"
	"github.com/TobiSchelling/PoCRanker/internal/ranking"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

// Environment variables that override file settings.
const (
	EnvConfig  = "POCRANKER_CONFIG"
	EnvDataDir = "POCRANKER_DATA_DIR"
)

type Config struct {
	Ranking  Ranking  `yaml:"ranking"`
	Planning Planning `yaml:"planning"`
	Playbook Playbook `yaml:"playbook"`
	Output   Output   `yaml:"output"`
	Server   Server   `yaml:"server"`
	Logging  Logging  `yaml:"logging"`
}

type Ranking struct {
	Weights       ranking.Weights `yaml:"weights"`
	Normalization string          `yaml:"normalization"`
}

type Planning struct {
	Budget   float64 `yaml:"budget"`
	TeamSize int     `yaml:"team_size"`
}

type Playbook struct {
	Path string `yaml:"path"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for pocranker.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "pocranker")
}

// DataDir returns the XDG data directory for pocranker.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "pocranker")
}

// LoadDotEnv loads variables from a .env file in the working directory, if
// one exists. Variables already set in the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// ResolveConfigPath finds the config file following priority:
// explicit path > $POCRANKER_CONFIG > ~/.config/pocranker/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvConfig)
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"%w; searched:\n  %s\n  ./config.yaml\n\nRun 'pocranker init' to create a default config",
		ErrNoConfig, xdgConfig,
	)
}

// ErrNoConfig is returned by ResolveConfigPath when no config file exists.
var ErrNoConfig = errors.New("no config file found")

// Resolve loads the config file ResolveConfigPath finds. When no file exists
// and none was asked for, it returns the defaults and an empty path.
func Resolve(explicit string) (*Config, string, error) {
	path, err := ResolveConfigPath(explicit)
	if errors.Is(err, ErrNoConfig) {
		cfg, err := parse(DefaultConfigYAML)
		return cfg, "", err
	}
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in config is invalid: %v", err))
	}
	return cfg
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults, environment
// overrides and validation.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Ranking: Ranking{
			Weights:       ranking.DefaultWeights(),
			Normalization: string(ranking.NormalizeDerived),
		},
		Planning: Planning{Budget: 50000, TeamSize: 3},
		Server:   Server{Port: 8000},
		Logging:  Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.Output.DataDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the engine cannot work with.
func (c *Config) Validate() error {
	if err := c.Ranking.Weights.Validate(); err != nil {
		return fmt.Errorf("ranking.weights: %w", err)
	}
	if _, err := ranking.ParseNormalization(c.Ranking.Normalization); err != nil {
		return fmt.Errorf("ranking.normalization: %w", err)
	}
	if err := c.Constraints().Validate(); err != nil {
		return fmt.Errorf("planning: %w", err)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// Ranker builds a ranker from the ranking settings.
func (c *Config) Ranker() *ranking.Ranker {
	r := ranking.NewRanker(c.Ranking.Weights)
	// Validate has already accepted the value.
	r.Normalization, _ = ranking.ParseNormalization(c.Ranking.Normalization)
	return r
}

// Constraints returns the planning constraints.
func (c *Config) Constraints() plan.Constraints {
	return plan.Constraints{Budget: c.Planning.Budget, TeamSize: c.Planning.TeamSize}
}

// Debug reports whether the log level asks for debug output.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.Logging.Level, "DEBUG")
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// DBPath returns the backlog database location.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "pocranker.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
