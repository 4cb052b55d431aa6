package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "brandmgr"

// Config holds everything read from the config file and environment
type Config struct {
	DataDir  string  `mapstructure:"data_dir"`
	Storage  Storage `mapstructure:"storage"`
	LogFile  string  `mapstructure:"log_file"`
	Timezone string  `mapstructure:"timezone"` // empty means detect
}

// Storage selects the persistence backend
type Storage struct {
	Driver string `mapstructure:"driver"` // sqlite3 or gorm
	File   string `mapstructure:"file"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Storage: Storage{
			Driver: "sqlite3",
			File:   appName + ".db",
		},
		LogFile: appName + ".log",
	}
}

// defaultDataDir uses the XDG data directory or falls back to ~/.local/share
func defaultDataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return appName
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appName)
}

// DefaultPath returns where init-config writes and Load looks by default
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return appName + ".yaml"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// Load merges the YAML file at path and BRANDMGR_* environment variables over
// the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("storage.driver", cfg.Storage.Driver)
	v.SetDefault("storage.file", cfg.Storage.File)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("timezone", cfg.Timezone)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// DBPath returns the database file, creating the data directory if needed
func (c *Config) DBPath() (string, error) {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return "", err
	}
	return c.resolve(c.Storage.File), nil
}

// LogPath returns the log file location inside the data directory
func (c *Config) LogPath() (string, error) {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return "", err
	}
	return c.resolve(c.LogFile), nil
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// DefaultTimezone picks the configured zone, then $TZ, then the system zone.
// It falls back to UTC when the system zone has no IANA name.
func (c *Config) DefaultTimezone() string {
	if c.Timezone != "" {
		return c.Timezone
	}
	if tz := strings.TrimPrefix(os.Getenv("TZ"), ":"); tz != "" {
		return tz
	}
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	return "UTC"
}

const defaultFile = `# brandmgr configuration
#
# Every key can also be set from the environment, e.g. BRANDMGR_STORAGE_DRIVER=gorm

# Where the database and log file live
data_dir: %q

storage:
  # sqlite3 (cgo, mattn/go-sqlite3) or gorm (pure Go)
  driver: %s
  file: %s

log_file: %s

# IANA zone used for deadlines, e.g. Europe/Berlin. Empty means detect.
timezone: ""
`

// WriteDefault writes a commented default config to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, defaultFile, cfg.DataDir, cfg.Storage.Driver, cfg.Storage.File, cfg.LogFile)
	return err
}
