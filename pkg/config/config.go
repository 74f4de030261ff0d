/*
Package config manages TOML config for wordtrie.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/charmbracelet/log"
)

// AppName names the config directory.
const AppName = "wordtrie"

// Config holds the entire config structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Dict    DictConfig    `toml:"dict"`
	History HistoryConfig `toml:"history"`
	CLI     CliConfig     `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	DefaultLimit int  `toml:"default_limit"`
	MinPrefix    int  `toml:"min_prefix"`
	MaxPrefix    int  `toml:"max_prefix"`
	EnableFilter bool `toml:"enable_filter"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	// Path is a word list file or a directory of word lists.
	Path string `toml:"path"`
}

// HistoryConfig holds recent-search options.
type HistoryConfig struct {
	Capacity int `toml:"capacity"`
	// Path of the history file; empty keeps history in memory.
	Path string `toml:"path"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", AppName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", AppName)
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
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordtrie/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			DefaultLimit: 10,
			MinPrefix:    1,
			MaxPrefix:    60,
			EnableFilter: true,
		},
		Dict: DictConfig{
			Path: "words.txt",
		},
		History: HistoryConfig{
			Capacity: 5,
			Path:     "",
		},
		CLI: CliConfig{
			DefaultLimit:    24,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultNoFilter: false,
		},
	}
}

// Validate replaces values that make no sense with their defaults.
func (c *Config) Validate() {
	def := DefaultConfig()
	if c.Server.MaxLimit < 1 {
		log.Warnf("server.max_limit %d is invalid, using %d", c.Server.MaxLimit, def.Server.MaxLimit)
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.DefaultLimit < 1 || c.Server.DefaultLimit > c.Server.MaxLimit {
		log.Warnf("server.default_limit %d is out of range, using %d", c.Server.DefaultLimit, min(def.Server.DefaultLimit, c.Server.MaxLimit))
		c.Server.DefaultLimit = min(def.Server.DefaultLimit, c.Server.MaxLimit)
	}
	if c.Server.MinPrefix < 1 {
		c.Server.MinPrefix = def.Server.MinPrefix
	}
	if c.Server.MaxPrefix < c.Server.MinPrefix {
		log.Warnf("server.max_prefix %d is below min_prefix, using %d", c.Server.MaxPrefix, def.Server.MaxPrefix)
		c.Server.MaxPrefix = max(def.Server.MaxPrefix, c.Server.MinPrefix)
	}
	if c.History.Capacity < 1 {
		c.History.Capacity = def.History.Capacity
	}
	if c.CLI.DefaultLimit < 0 {
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
	if c.CLI.DefaultMinLen < 1 {
		c.CLI.DefaultMinLen = def.CLI.DefaultMinLen
	}
	if c.CLI.DefaultMaxLen < c.CLI.DefaultMinLen {
		c.CLI.DefaultMaxLen = max(def.CLI.DefaultMaxLen, c.CLI.DefaultMinLen)
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
	config.Validate()
	return config, nil
}

// tryPartialParse keeps whatever sections of a malformed file still decode.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if serverSection, ok := utils.Lookup[map[string]any](tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if dictSection, ok := utils.Lookup[map[string]any](tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if historySection, ok := utils.Lookup[map[string]any](tempConfig, "history"); ok {
		extractHistoryConfig(historySection, &config.History)
	}
	if cliSection, ok := utils.Lookup[map[string]any](tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	config.Validate()
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.LookupInt(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.LookupInt(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := utils.LookupInt(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.LookupInt(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.Lookup[bool](data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.Lookup[string](data, "path"); ok {
		dict.Path = val
	}
}

func extractHistoryConfig(data map[string]any, history *HistoryConfig) {
	if val, ok := utils.LookupInt(data, "capacity"); ok {
		history.Capacity = val
	}
	if val, ok := utils.Lookup[string](data, "path"); ok {
		history.Path = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.LookupInt(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.LookupInt(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.LookupInt(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.Lookup[bool](data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
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
