package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configName = ".etsytrack"
	envPrefix  = "ETSYTRACK"

	// databaseURLEnv is read as a fallback for server.dbPath
	databaseURLEnv = "DATABASE_URL"
)

// Config represents the full etsytrack configuration
type Config struct {
	Server ServerConfig `mapstructure:"server" json:"server" yaml:"server"`
	Client ClientConfig `mapstructure:"client" json:"client" yaml:"client"`
	Log    LogConfig    `mapstructure:"log" json:"log" yaml:"log"`
}

// ServerConfig contains settings for `etsytrack serve`
type ServerConfig struct {
	Addr           string   `mapstructure:"addr" json:"addr" yaml:"addr" validate:"required"`
	DBPath         string   `mapstructure:"dbPath" json:"dbPath" yaml:"dbPath" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowedOrigins" json:"allowedOrigins" yaml:"allowedOrigins" validate:"min=1,dive,required"`
}

// ClientConfig contains settings for the dashboard and scripted commands
type ClientConfig struct {
	BaseURL           string `mapstructure:"baseURL" json:"baseURL" yaml:"baseURL" validate:"required,url"`
	TimeoutMs         int    `mapstructure:"timeoutMs" json:"timeoutMs" yaml:"timeoutMs" validate:"gt=0"`
	HealthIntervalSec int    `mapstructure:"healthIntervalSec" json:"healthIntervalSec" yaml:"healthIntervalSec" validate:"gt=0"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `mapstructure:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Dir   string `mapstructure:"dir" json:"dir" yaml:"dir" validate:"required"`
}

// Timeout returns the client timeout as a duration
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// HealthInterval returns the health check period as a duration
func (c ClientConfig) HealthInterval() time.Duration {
	return time.Duration(c.HealthIntervalSec) * time.Second
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Server: ServerConfig{
			Addr:           ":8000",
			DBPath:         "etsy_tracker.db",
			AllowedOrigins: []string{"*"},
		},
		Client: ClientConfig{
			BaseURL:           "http://localhost:8000",
			TimeoutMs:         5000,
			HealthIntervalSec: 30,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   filepath.Join(homeDir, ".etsytrack", "logs"),
		},
	}
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}
	if cfg.Server.DBPath == "" {
		cfg.Server.DBPath = defaults.Server.DBPath
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = defaults.Server.AllowedOrigins
	}

	if cfg.Client.BaseURL == "" {
		cfg.Client.BaseURL = defaults.Client.BaseURL
	}
	if cfg.Client.TimeoutMs == 0 {
		cfg.Client.TimeoutMs = defaults.Client.TimeoutMs
	}
	if cfg.Client.HealthIntervalSec == 0 {
		cfg.Client.HealthIntervalSec = defaults.Client.HealthIntervalSec
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = defaults.Log.Dir
	}

	return cfg
}

var validate = validator.New()

// Validate checks every field constraint
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Loader reads configuration from files, .env and the environment
type Loader struct {
	Fs    afero.Fs
	Viper *viper.Viper

	// SearchPaths are tried in order for .etsytrack.{yaml,json}
	SearchPaths []string
	// EnvFiles are loaded into the process environment without overriding it
	EnvFiles []string
}

// NewLoader creates a loader searching the working directory then $HOME
func NewLoader(fs afero.Fs) *Loader {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	return &Loader{
		Fs:          fs,
		Viper:       viper.New(),
		SearchPaths: paths,
		EnvFiles:    []string{".env"},
	}
}

// Load resolves the configuration. An explicit configFile must exist;
// otherwise a missing config file just means defaults.
func (l *Loader) Load(configFile string) (*Config, error) {
	if err := l.loadEnvFiles(); err != nil {
		return nil, err
	}

	v := l.Viper
	v.SetFs(l.Fs)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		for _, p := range l.SearchPaths {
			v.AddConfigPath(p)
		}
		v.SetConfigName(configName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if !explicitlySet(v, "server.dbPath") {
		if url := os.Getenv(databaseURLEnv); url != "" {
			cfg.Server.DBPath = DBPathFromURL(url)
		}
	}
	cfg.Log.Dir = expandHome(cfg.Log.Dir)

	MergeWithDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigFileUsed returns the file Load read, if any
func (l *Loader) ConfigFileUsed() string {
	return l.Viper.ConfigFileUsed()
}

func (l *Loader) loadEnvFiles() error {
	for _, name := range l.EnvFiles {
		f, err := l.Fs.Open(name)
		if err != nil {
			continue
		}
		values, err := godotenv.Parse(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		for k, val := range values {
			if _, set := os.LookupEnv(k); !set {
				_ = os.Setenv(k, val)
			}
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.dbPath", d.Server.DBPath)
	v.SetDefault("server.allowedOrigins", d.Server.AllowedOrigins)
	v.SetDefault("client.baseURL", d.Client.BaseURL)
	v.SetDefault("client.timeoutMs", d.Client.TimeoutMs)
	v.SetDefault("client.healthIntervalSec", d.Client.HealthIntervalSec)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.dir", d.Log.Dir)
}

// explicitlySet reports whether key came from the config file or its env var
func explicitlySet(v *viper.Viper, key string) bool {
	if v.InConfig(key) {
		return true
	}
	envName := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if _, ok := os.LookupEnv(envName); ok {
		return true
	}
	return false
}

// DBPathFromURL accepts a plain path or a sqlite:/// URL
func DBPathFromURL(url string) string {
	for _, prefix := range []string{"sqlite:///", "sqlite://", "file:"} {
		if strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix)
		}
	}
	return url
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// SaveConfig writes cfg as YAML
func SaveConfig(fs afero.Fs, cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EnsureLogDir creates the log directory
func EnsureLogDir(fs afero.Fs, cfg *Config) error {
	if err := fs.MkdirAll(cfg.Log.Dir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	return nil
}
