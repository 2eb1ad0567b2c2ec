/*
Package config manages TOML config for anagramserve.

Values resolve in this order, later wins: builtin defaults, the TOML file,
ANAGRAMS_* environment variables, command line flags (applied by the caller).
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/anagramserve/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the entire config structure
type Config struct {
	Solver SolverConfig `toml:"solver"`
	Dict   DictConfig   `toml:"dict"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// SolverConfig bounds the words admitted to the index and the combinations explored per query.
type SolverConfig struct {
	MinWordLength int  `toml:"min_word_length" env:"ANAGRAMS_MIN_WORD_LENGTH"`
	MaxWordLength int  `toml:"max_word_length" env:"ANAGRAMS_MAX_WORD_LENGTH"`
	Unique        bool `toml:"unique"          env:"ANAGRAMS_UNIQUE"`
	Prune         bool `toml:"prune"           env:"ANAGRAMS_PRUNE"`
	Workers       int  `toml:"workers"         env:"ANAGRAMS_WORKERS"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path      string `toml:"path"       env:"ANAGRAMS_DICT"`
	ChunkSize int    `toml:"chunk_size" env:"ANAGRAMS_CHUNK_SIZE"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxQueryLength int `toml:"max_query_length" env:"ANAGRAMS_MAX_QUERY_LENGTH"`
	MaxResults     int `toml:"max_results"      env:"ANAGRAMS_MAX_RESULTS"`
	SolveTimeoutMs int `toml:"solve_timeout_ms" env:"ANAGRAMS_SOLVE_TIMEOUT_MS"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// BoundsValid reports whether the length range can admit any word.
// Invalid bounds are not an error: they produce an empty dictionary.
func (s SolverConfig) BoundsValid() bool {
	return s.MinWordLength >= 0 && s.MaxWordLength >= s.MinWordLength
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/anagramserve
// 2. ~/Library/Application Support/anagramserve (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "anagramserve")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "anagramserve")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/anagramserve/config.toml
// 3. Builtin defaults
// Environment overrides are applied on top of whichever source won.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	config, path := loadFileWithPriority(customConfigPath)
	if err := ApplyEnv(config); err != nil {
		return nil, path, err
	}
	return config, path, nil
}

func loadFileWithPriority(customConfigPath string) (*Config, string) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), ""
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// ApplyEnv overrides config values with any ANAGRAMS_* environment variables that are set
func ApplyEnv(config *Config) error {
	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}
	return nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			MinWordLength: 3,
			MaxWordLength: 8,
			Unique:        false,
			Prune:         false,
			Workers:       1,
		},
		Dict: DictConfig{
			Path:      "data/words_alpha.txt",
			ChunkSize: 10000,
		},
		Server: ServerConfig{
			MaxQueryLength: 20,
			MaxResults:     0,
			SolveTimeoutMs: 5000,
		},
		CLI: CliConfig{
			DefaultLimit:    0,
			DefaultNoFilter: false,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages whatever sections of a broken TOML file still decode
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "solver"); ok {
		extractSolverConfig(section, &config.Solver)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractSolverConfig(data map[string]any, solver *SolverConfig) {
	if val, ok := utils.ExtractInt64(data, "min_word_length"); ok {
		solver.MinWordLength = val
	}
	if val, ok := utils.ExtractInt64(data, "max_word_length"); ok {
		solver.MaxWordLength = val
	}
	if val, ok := utils.ExtractBool(data, "unique"); ok {
		solver.Unique = val
	}
	if val, ok := utils.ExtractBool(data, "prune"); ok {
		solver.Prune = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		solver.Workers = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "chunk_size"); ok {
		dict.ChunkSize = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_query_length"); ok {
		server.MaxQueryLength = val
	}
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		server.MaxResults = val
	}
	if val, ok := utils.ExtractInt64(data, "solve_timeout_ms"); ok {
		server.SolveTimeoutMs = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
