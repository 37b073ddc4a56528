/*
Package config manages TOML config for the langstats binaries.

Values are resolved in three layers: built-in defaults, the TOML file, and
LANGSTATS_* environment variables, e.g. LANGSTATS_STATS_LANGUAGE=de or
LANGSTATS_STATS_ORDERS=3,4,5.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/langstats/internal/utils"
	"github.com/caarlos0/env/v9"
	"github.com/charmbracelet/log"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LANGSTATS_"

// Config holds the entire config structure
type Config struct {
	Stats  StatsConfig  `toml:"stats" envPrefix:"STATS_"`
	Dict   DictConfig   `toml:"dict" envPrefix:"DICT_"`
	Server ServerConfig `toml:"server" envPrefix:"SERVER_"`
	CLI    CliConfig    `toml:"cli" envPrefix:"CLI_"`
}

// StatsConfig selects the statistics files and how models are prepared.
type StatsConfig struct {
	Directory string `toml:"directory" env:"DIRECTORY"`
	Language  string `toml:"language" env:"LANGUAGE"`
	UseSpaces bool   `toml:"use_spaces" env:"USE_SPACES"`
	// Orders are preloaded at startup.
	Orders []int `toml:"orders" env:"ORDERS" envSeparator:","`
	// NormalizeMax is the normalization target; 0 keeps raw frequencies.
	NormalizeMax float64 `toml:"normalize_max" env:"NORMALIZE_MAX"`
	CacheSize    int     `toml:"cache_size" env:"CACHE_SIZE"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Enabled       bool `toml:"enabled" env:"ENABLED"`
	CompleteLimit int  `toml:"complete_limit" env:"COMPLETE_LIMIT"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxTextLength int `toml:"max_text_length" env:"MAX_TEXT_LENGTH"`
	MaxLimit      int `toml:"max_limit" env:"MAX_LIMIT"`
	// MetricsAddr serves /metrics when set, e.g. "127.0.0.1:9464".
	MetricsAddr string `toml:"metrics_addr" env:"METRICS_ADDR"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	ShowWords    bool `toml:"show_words" env:"SHOW_WORDS"`
	DefaultOrder int  `toml:"default_order" env:"DEFAULT_ORDER"`
}

// GetConfigDir returns the first writable config directory of:
//  1. [os.UserConfigDir]/langstats
//  2. ~/.langstats
//  3. the directory of the executable
func GetConfigDir() (string, error) {
	var candidates []string
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "langstats"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".langstats"))
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Dir(exe))
	}

	var errs []error
	for _, dir := range candidates {
		err := utils.WritableDir(dir)
		if err == nil {
			return dir, nil
		}
		log.Debugf("Config dir candidate %s rejected: %v", dir, err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", errors.New("no config directory candidates")
	}
	return "", fmt.Errorf("no writable config directory: %w", errors.Join(errs...))
}

// GetDefaultConfigPath returns the default path for the config file
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, utils.ConfigFileName), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/langstats/langstats.toml
// 3. Builtin defaults
//
// Environment overrides are applied last and the result is validated.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	config, path := loadFile(customConfigPath)
	if err := ApplyEnv(config); err != nil {
		return nil, path, err
	}
	if err := config.Validate(); err != nil {
		return nil, path, err
	}
	return config, path, nil
}

func loadFile(customConfigPath string) (*Config, string) {
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

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Stats: StatsConfig{
			Directory:    "data/",
			Language:     "en",
			UseSpaces:    false,
			Orders:       []int{3, 4},
			NormalizeMax: 1_000_000,
			CacheSize:    16,
		},
		Dict: DictConfig{
			Enabled:       true,
			CompleteLimit: 10,
		},
		Server: ServerConfig{
			MaxTextLength: 1 << 16,
			MaxLimit:      64,
		},
		CLI: CliConfig{
			ShowWords:    true,
			DefaultOrder: 4,
		},
	}
}

// ApplyEnv overrides config values from LANGSTATS_* environment variables.
func ApplyEnv(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("reading %s environment: %w", EnvPrefix, err)
	}
	return nil
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Stats.Language == "" {
		errs = append(errs, errors.New("stats.language must not be empty"))
	}
	for _, o := range c.Stats.Orders {
		if o < 1 || o > 6 {
			errs = append(errs, fmt.Errorf("stats.orders: %d is outside 1..6", o))
		}
	}
	if c.Stats.NormalizeMax < 0 {
		errs = append(errs, fmt.Errorf("stats.normalize_max must not be negative, got %g", c.Stats.NormalizeMax))
	}
	if c.Stats.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("stats.cache_size must not be negative, got %d", c.Stats.CacheSize))
	}
	if c.Dict.CompleteLimit < 0 {
		errs = append(errs, fmt.Errorf("dict.complete_limit must not be negative, got %d", c.Dict.CompleteLimit))
	}
	if c.Server.MaxTextLength < 0 || c.Server.MaxLimit < 0 {
		errs = append(errs, errors.New("server limits must not be negative"))
	}
	if c.CLI.DefaultOrder < 1 || c.CLI.DefaultOrder > 6 {
		errs = append(errs, fmt.Errorf("cli.default_order: %d is outside 1..6", c.CLI.DefaultOrder))
	}
	return errors.Join(errs...)
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.WritableDir(configDir); err != nil {
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

	if err := utils.DecodeTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps the sections and keys of a TOML file whose values
// have the expected types; everything else stays at its default.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	table, err := utils.ReadTOMLTable(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := table.Section("stats"); ok {
		extractStatsConfig(section, &config.Stats)
	}
	if section, ok := table.Section("dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := table.Section("server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := table.Section("cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractStatsConfig(t utils.Table, stats *StatsConfig) {
	if val, ok := t.Str("directory"); ok {
		stats.Directory = val
	}
	if val, ok := t.Str("language"); ok {
		stats.Language = val
	}
	if val, ok := t.Bool("use_spaces"); ok {
		stats.UseSpaces = val
	}
	if val, ok := t.Ints("orders"); ok {
		stats.Orders = val
	}
	if val, ok := t.Float("normalize_max"); ok {
		stats.NormalizeMax = val
	}
	if val, ok := t.Int("cache_size"); ok {
		stats.CacheSize = val
	}
}

func extractDictConfig(t utils.Table, dict *DictConfig) {
	if val, ok := t.Bool("enabled"); ok {
		dict.Enabled = val
	}
	if val, ok := t.Int("complete_limit"); ok {
		dict.CompleteLimit = val
	}
}

func extractServerConfig(t utils.Table, server *ServerConfig) {
	if val, ok := t.Int("max_text_length"); ok {
		server.MaxTextLength = val
	}
	if val, ok := t.Int("max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := t.Str("metrics_addr"); ok {
		server.MetricsAddr = val
	}
}

func extractCliConfig(t utils.Table, cli *CliConfig) {
	if val, ok := t.Bool("show_words"); ok {
		cli.ShowWords = val
	}
	if val, ok := t.Int("default_order"); ok {
		cli.DefaultOrder = val
	}
}

// RebuildConfigFile force creates a new config file at the default path
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.AbsPath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
