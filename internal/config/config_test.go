package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// newTestLoader searches only /proj on an in-memory filesystem
func newTestLoader(t *testing.T) (*Loader, afero.Fs) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/proj", 0755))

	l := NewLoader(fs)
	l.SearchPaths = []string{"/proj"}
	l.EnvFiles = []string{"/proj/.env"}
	return l, fs
}

// unsetForTest clears an env var and restores it when the test ends
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "etsy_tracker.db", cfg.Server.DBPath)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)

	assert.Equal(t, "http://localhost:8000", cfg.Client.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout())
	assert.Equal(t, 30*time.Second, cfg.Client.HealthInterval())

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Contains(t, cfg.Log.Dir, ".etsytrack")

	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFilesReturnsDefaults(t *testing.T) {
	l, _ := newTestLoader(t)

	cfg, err := l.Load("")
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.Server, cfg.Server)
	assert.Equal(t, defaults.Client, cfg.Client)
	assert.Empty(t, l.ConfigFileUsed())
}

func TestLoad_YAMLFile(t *testing.T) {
	l, fs := newTestLoader(t)

	content := `
server:
  addr: ":9090"
  allowedOrigins: ["http://shop.local"]
client:
  timeoutMs: 1500
log:
  level: debug
  dir: /var/log/etsytrack
`
	require.NoError(t, afero.WriteFile(fs, "/proj/.etsytrack.yaml", []byte(content), 0644))

	cfg, err := l.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"http://shop.local"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 1500, cfg.Client.TimeoutMs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/log/etsytrack", cfg.Log.Dir)

	// untouched keys keep defaults
	assert.Equal(t, "etsy_tracker.db", cfg.Server.DBPath)
	assert.Equal(t, "http://localhost:8000", cfg.Client.BaseURL)
	assert.Equal(t, "/proj/.etsytrack.yaml", l.ConfigFileUsed())
}

func TestLoad_JSONFileExplicit(t *testing.T) {
	l, fs := newTestLoader(t)

	content := `{"server": {"dbPath": "/data/weeks.db"}, "client": {"baseURL": "http://tracker:8000"}}`
	require.NoError(t, afero.WriteFile(fs, "/elsewhere/custom.json", []byte(content), 0644))

	cfg, err := l.Load("/elsewhere/custom.json")
	require.NoError(t, err)

	assert.Equal(t, "/data/weeks.db", cfg.Server.DBPath)
	assert.Equal(t, "http://tracker:8000", cfg.Client.BaseURL)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	l, _ := newTestLoader(t)

	_, err := l.Load("/nope/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_InvalidFile(t *testing.T) {
	l, fs := newTestLoader(t)
	require.NoError(t, afero.WriteFile(fs, "/proj/.etsytrack.json", []byte(`{"server": {`), 0644))

	_, err := l.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_ValidationFailure(t *testing.T) {
	l, fs := newTestLoader(t)
	require.NoError(t, afero.WriteFile(fs, "/proj/.etsytrack.yaml", []byte("log:\n  level: loud\n"), 0644))

	_, err := l.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	l, fs := newTestLoader(t)
	require.NoError(t, afero.WriteFile(fs, "/proj/.etsytrack.yaml", []byte("server:\n  addr: \":9090\"\n"), 0644))
	t.Setenv("ETSYTRACK_SERVER_ADDR", ":7070")
	t.Setenv("ETSYTRACK_CLIENT_HEALTHINTERVALSEC", "5")

	cfg, err := l.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Client.HealthIntervalSec)
}

func TestLoad_DotEnv(t *testing.T) {
	l, fs := newTestLoader(t)
	unsetForTest(t, "ETSYTRACK_CLIENT_BASEURL")
	t.Setenv("ETSYTRACK_LOG_LEVEL", "warn")

	dotenv := "ETSYTRACK_CLIENT_BASEURL=http://dotenv:9000\nETSYTRACK_LOG_LEVEL=debug\n"
	require.NoError(t, afero.WriteFile(fs, "/proj/.env", []byte(dotenv), 0644))

	cfg, err := l.Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://dotenv:9000", cfg.Client.BaseURL)
	// the real environment wins over .env
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_DatabaseURL(t *testing.T) {
	t.Run("used when dbPath not configured", func(t *testing.T) {
		l, _ := newTestLoader(t)
		unsetForTest(t, "ETSYTRACK_SERVER_DBPATH")
		t.Setenv("DATABASE_URL", "sqlite:///./from-env.db")

		cfg, err := l.Load("")
		require.NoError(t, err)
		assert.Equal(t, "./from-env.db", cfg.Server.DBPath)
	})

	t.Run("config file wins", func(t *testing.T) {
		l, fs := newTestLoader(t)
		unsetForTest(t, "ETSYTRACK_SERVER_DBPATH")
		t.Setenv("DATABASE_URL", "sqlite:///./from-env.db")
		require.NoError(t, afero.WriteFile(fs, "/proj/.etsytrack.yaml", []byte("server:\n  dbPath: /data/file.db\n"), 0644))

		cfg, err := l.Load("")
		require.NoError(t, err)
		assert.Equal(t, "/data/file.db", cfg.Server.DBPath)
	})
}

func TestDBPathFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sqlite:///./etsy_tracker.db", "./etsy_tracker.db"},
		{"sqlite:////abs/path.db", "/abs/path.db"},
		{"file:weeks.db", "weeks.db"},
		{"plain.db", "plain.db"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DBPathFromURL(tt.in))
		})
	}
}

func TestLoad_ExpandsHomeInLogDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	l, fs := newTestLoader(t)
	require.NoError(t, afero.WriteFile(fs, "/proj/.etsytrack.yaml", []byte("log:\n  dir: ~/tracker-logs\n"), 0644))

	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tracker-logs"), cfg.Log.Dir)
}

func TestSaveConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := DefaultConfig()
	cfg.Server.Addr = ":9999"
	cfg.Client.BaseURL = "http://saved:1"

	require.NoError(t, SaveConfig(fs, cfg, "/home/me/.etsytrack.yaml"))

	data, err := afero.ReadFile(fs, "/home/me/.etsytrack.yaml")
	require.NoError(t, err)

	var reloaded Config
	require.NoError(t, yaml.Unmarshal(data, &reloaded))
	assert.Equal(t, *cfg, reloaded)
}

func TestSaveConfig_RoundTripThroughLoader(t *testing.T) {
	l, fs := newTestLoader(t)
	cfg := DefaultConfig()
	cfg.Client.TimeoutMs = 2500
	cfg.Server.AllowedOrigins = []string{"http://a.local", "http://b.local"}
	require.NoError(t, SaveConfig(fs, cfg, "/proj/.etsytrack.yaml"))

	loaded, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, 2500, loaded.Client.TimeoutMs)
	assert.Equal(t, cfg.Server.AllowedOrigins, loaded.Server.AllowedOrigins)
}

func TestMergeWithDefaults(t *testing.T) {
	partial := &Config{
		Server: ServerConfig{Addr: ":1234"},
		Client: ClientConfig{TimeoutMs: 100},
	}

	merged := MergeWithDefaults(partial)

	assert.Equal(t, ":1234", merged.Server.Addr)
	assert.Equal(t, 100, merged.Client.TimeoutMs)

	assert.Equal(t, "etsy_tracker.db", merged.Server.DBPath)
	assert.Equal(t, []string{"*"}, merged.Server.AllowedOrigins)
	assert.Equal(t, "http://localhost:8000", merged.Client.BaseURL)
	assert.Equal(t, 30, merged.Client.HealthIntervalSec)
	assert.Equal(t, "info", merged.Log.Level)
	assert.NotEmpty(t, merged.Log.Dir)
}

func TestMergeWithDefaultsEmptyConfig(t *testing.T) {
	merged := MergeWithDefaults(&Config{})
	assert.Equal(t, DefaultConfig(), merged)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad url", func(c *Config) { c.Client.BaseURL = "not a url" }},
		{"zero timeout", func(c *Config) { c.Client.TimeoutMs = 0 }},
		{"no origins", func(c *Config) { c.Server.AllowedOrigins = nil }},
		{"empty origin", func(c *Config) { c.Server.AllowedOrigins = []string{""} }},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEnsureLogDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := DefaultConfig()
	cfg.Log.Dir = "/var/log/etsytrack"

	require.NoError(t, EnsureLogDir(fs, cfg))
	exists, err := afero.DirExists(fs, "/var/log/etsytrack")
	require.NoError(t, err)
	assert.True(t, exists)
}
