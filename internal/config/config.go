package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendGzip   = "gzip"
	BackendSqlite = "sqlite"
)

// Config holds user preferences that apply to all projects.
type Config struct {
	Storage StorageConfig
	Log     LogConfig
	UI      UIConfig
}

// StorageConfig selects how newly initialized boards are persisted.
type StorageConfig struct {
	Backend  string
	Filename string
}

// LogConfig controls the diagnostic log on stderr.
type LogConfig struct {
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	EscapeSequences bool `mapstructure:"escape_sequences"`
}

// Load reads configuration from file and env. Env var overrides use prefix FAVCURATOR_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("storage.backend", BackendGzip)
	v.SetDefault("storage.filename", "favcurator.db")
	v.SetDefault("log.level", "off")
	v.SetDefault("ui.escape_sequences", true)

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("FAVCURATOR_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(defaultConfigDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FAVCURATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, c.validate()
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case BackendGzip, BackendSqlite:
	default:
		return fmt.Errorf("unknown storage backend %q (expected %s or %s)", c.Storage.Backend, BackendGzip, BackendSqlite)
	}
	if c.Storage.Filename == "" || filepath.Base(c.Storage.Filename) != c.Storage.Filename {
		return fmt.Errorf("storage filename must be a plain file name: %q", c.Storage.Filename)
	}
	return nil
}

func defaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "favcurator")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "favcurator")
}
