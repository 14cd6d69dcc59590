package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/focuswatch/internal/domain"
)

func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "config.toml")
}

func TestLoadFrom_CreatesDefaults(t *testing.T) {
	path := tempConfigPath(t)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Equal(t, "http://localhost:5000", cfg.Server.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Poll.Interval)
	assert.Zero(t, cfg.Poll.RequestTimeout)
	assert.Equal(t, "en", cfg.Locale)
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, DefaultThemeConfig(), cfg.Theme)
}

func TestLoadFrom_ReadsFile(t *testing.T) {
	path := tempConfigPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`
locale = "ar"

[server]
base_url = "https://focus.example.com/api"

[poll]
interval = "2s"
request_timeout = "750ms"

[theme]
icon_left = "<"
`), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "https://focus.example.com/api", cfg.Server.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Poll.Interval)
	assert.Equal(t, 750*time.Millisecond, cfg.Poll.RequestTimeout)

	loc, err := cfg.LocaleTable()
	require.NoError(t, err)
	assert.Equal(t, domain.LocaleAR, loc)

	icons := cfg.Theme.Icons()
	assert.Equal(t, "<", icons.Left)
	assert.Equal(t, domain.DefaultIcons.Center, icons.Center, "missing icons fall back to defaults")
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	path := tempConfigPath(t)
	t.Setenv("FOCUSWATCH_SERVER_BASE_URL", "http://10.0.0.7:8080")
	t.Setenv("FOCUSWATCH_POLL_INTERVAL", "1s")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.7:8080", cfg.Server.BaseURL)
	assert.Equal(t, time.Second, cfg.Poll.Interval)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"relative url", "[server]\nbase_url = \"localhost:5000\"\n"},
		{"zero interval", "[poll]\ninterval = \"0s\"\n"},
		{"negative timeout", "[poll]\nrequest_timeout = \"-1s\"\n"},
		{"unknown locale", "locale = \"fr\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tempConfigPath(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := tempConfigPath(t)
	cfg := DefaultConfig()
	cfg.Server.BaseURL = "http://focus.local:9000"
	cfg.Poll.Interval = 250 * time.Millisecond
	cfg.Notifications.Sound = true
	cfg.Theme.IconCenter = ""

	require.NoError(t, SaveTo(path, cfg))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server, loaded.Server)
	assert.Equal(t, cfg.Poll, loaded.Poll)
	assert.True(t, loaded.Notifications.Sound)
	assert.Equal(t, domain.DefaultIcons.Center, loaded.Theme.IconCenter)
}

func TestSet(t *testing.T) {
	t.Run("typed values", func(t *testing.T) {
		path := tempConfigPath(t)

		cfg, err := Set(path, "poll.interval", "3s")
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, cfg.Poll.Interval)

		cfg, err = Set(path, "Notifications.Enabled", "false")
		require.NoError(t, err)
		assert.False(t, cfg.Notifications.Enabled)

		reloaded, err := LoadFrom(path)
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, reloaded.Poll.Interval)
		assert.False(t, reloaded.Notifications.Enabled)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Set(tempConfigPath(t), "pomodoro.work_duration", "25m")
		assert.ErrorIs(t, err, ErrUnknownKey)
	})

	t.Run("bad value", func(t *testing.T) {
		_, err := Set(tempConfigPath(t), "notifications.sound", "loud")
		assert.Error(t, err)
	})

	t.Run("invalid result is not written", func(t *testing.T) {
		path := tempConfigPath(t)
		_, err := Set(path, "locale", "fr")
		require.Error(t, err)

		cfg, err := LoadFrom(path)
		require.NoError(t, err)
		assert.Equal(t, "en", cfg.Locale)
	})

	t.Run("env override is not persisted", func(t *testing.T) {
		path := tempConfigPath(t)
		t.Setenv("FOCUSWATCH_LOCALE", "ar")

		_, err := Set(path, "log.level", "debug")
		require.NoError(t, err)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "'ar'")
		assert.NotContains(t, string(raw), `"ar"`)
	})

	t.Run("repairs a bad value on disk", func(t *testing.T) {
		path := tempConfigPath(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("locale = 'fr'\n"), 0644))

		_, err := LoadFrom(path)
		require.Error(t, err)

		cfg, err := Set(path, "locale", "en")
		require.NoError(t, err)
		assert.Equal(t, "en", cfg.Locale)

		reloaded, err := LoadFrom(path)
		require.NoError(t, err)
		assert.Equal(t, "en", reloaded.Locale)
	})

	t.Run("bad env override does not block", func(t *testing.T) {
		path := tempConfigPath(t)
		t.Setenv("FOCUSWATCH_SERVER_BASE_URL", "nope")

		cfg, err := Set(path, "notifications.sound", "true")
		require.NoError(t, err)
		assert.True(t, cfg.Notifications.Sound)
		assert.Equal(t, "http://localhost:5000", cfg.Server.BaseURL)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "nope")
	})
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "server.base_url")
	assert.Contains(t, keys, "theme.icon_default")
	assert.IsIncreasing(t, keys)
}

func TestLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())

	cfg.Log.Level = "debug"
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())

	cfg.Log.Level = "chatty"
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.focuswatch/focuswatch.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".focuswatch", "focuswatch.log"), got)

	got, err = ExpandPath("/var/log/focuswatch.log")
	require.NoError(t, err)
	assert.Equal(t, "/var/log/focuswatch.log", got)
}

func TestWatch(t *testing.T) {
	path := tempConfigPath(t)
	_, err := LoadFrom(path)
	require.NoError(t, err)

	changes := make(chan *Config, 16)
	require.NoError(t, Watch(path, func(cfg *Config, _ fsnotify.Event) {
		changes <- cfg
	}, nil))

	_, err = Set(path, "notifications.enabled", "false")
	require.NoError(t, err)

	// A rewrite may surface as several events; wait for the final content.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if !cfg.Notifications.Enabled {
				return
			}
		case <-timeout:
			t.Fatal("no config change observed")
		}
	}
}
