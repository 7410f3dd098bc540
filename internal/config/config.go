// Package config loads config.yaml, CHECKLIST_* environment variables and
// command-line flags into a Config, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "CHECKLIST"
)

// Config keys.
const (
	KeyBackend       = "backend"
	KeyDataDir       = "data_dir"
	KeyLogLevel      = "log_level"
	KeyTheme         = "theme"
	KeyColor         = "color"
	KeyDebounce      = "persist.debounce"
	KeyWriteTimeout  = "persist.timeout"
	KeyPostgresDSN   = "postgres.dsn"
	KeyS3Bucket      = "s3.bucket"
	KeyS3Prefix      = "s3.prefix"
	KeyS3Region      = "s3.region"
	KeyS3Endpoint    = "s3.endpoint"
	KeyS3PathStyle   = "s3.path_style"
	KeyS3AccessKeyID = "s3.access_key_id"
	KeyS3SecretKey   = "s3.secret_access_key"
)

// Backend names.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

var ErrUnknownBackend = errors.New("unknown backend")

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# checklist configuration

# Storage backend: json, sqlite, postgres, s3 or memory.
backend: json

# Where the json and sqlite backends keep their files (optional).
# data_dir:

# Coalesce writes per key for this long (0 writes immediately).
persist:
  debounce: 0s
  timeout: 5s

# postgres:
#   dsn: postgres://localhost/checklist?sslmode=disable

# s3:
#   bucket: my-checklists
#   prefix: kitchen/
#   region: us-east-1
#   endpoint: http://localhost:9000
#   path_style: true
`

type S3 struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

type Config struct {
	// Dir is the directory config.yaml was looked up in.
	Dir          string
	Backend      string
	DataDir      string
	LogLevel     string
	Theme        string
	Color        string
	Debounce     time.Duration
	WriteTimeout time.Duration
	PostgresDSN  string
	S3           S3
}

// FlagKeys maps persistent flag names to the config keys they override.
var FlagKeys = map[string]string{
	"backend":   KeyBackend,
	"data-dir":  KeyDataDir,
	"log-level": KeyLogLevel,
	"theme":     KeyTheme,
	"color":     KeyColor,
}

// Load reads configDir/config.yaml, creating the directory and a default
// file on first run. A missing config.yaml is not an error. Flags in fs
// named in FlagKeys override file and environment values when set.
func Load(configDir string, fs *pflag.FlagSet) (*Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	defaultData, err := DefaultDataDir()
	if err != nil {
		return nil, fmt.Errorf("default data dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyBackend, BackendJSON)
	v.SetDefault(KeyDataDir, defaultData)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyTheme, "classic")
	v.SetDefault(KeyColor, "auto")
	v.SetDefault(KeyDebounce, "0s")
	v.SetDefault(KeyWriteTimeout, "5s")
	v.SetDefault(KeyS3Region, "us-east-1")

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range FlagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Dir:          configDir,
		Backend:      strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		DataDir:      v.GetString(KeyDataDir),
		LogLevel:     v.GetString(KeyLogLevel),
		Theme:        v.GetString(KeyTheme),
		Color:        v.GetString(KeyColor),
		Debounce:     v.GetDuration(KeyDebounce),
		WriteTimeout: v.GetDuration(KeyWriteTimeout),
		PostgresDSN:  v.GetString(KeyPostgresDSN),
		S3: S3{
			Bucket:          v.GetString(KeyS3Bucket),
			Prefix:          v.GetString(KeyS3Prefix),
			Region:          v.GetString(KeyS3Region),
			Endpoint:        v.GetString(KeyS3Endpoint),
			PathStyle:       v.GetBool(KeyS3PathStyle),
			AccessKeyID:     v.GetString(KeyS3AccessKeyID),
			SecretAccessKey: v.GetString(KeyS3SecretKey),
		},
	}
	if cfg.DataDir != "" {
		if abs, err := filepath.Abs(cfg.DataDir); err == nil {
			cfg.DataDir = abs
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the backend name and its required settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite, BackendMemory, BackendPostgres:
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("backend s3 needs %s", KeyS3Bucket)
		}
	default:
		return fmt.Errorf("%w: %q (want json, sqlite, postgres, s3 or memory)", ErrUnknownBackend, c.Backend)
	}
	if c.Debounce < 0 || c.WriteTimeout < 0 {
		return fmt.Errorf("persist durations must not be negative")
	}
	return nil
}

// ensureDefaultConfigFile writes config.yaml when it does not exist yet.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
