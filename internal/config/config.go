// Package config provides configuration management for focuswatch.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/xvierd/focuswatch/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. FOCUSWATCH_SERVER_BASE_URL.
const EnvPrefix = "FOCUSWATCH"

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "FOCUSWATCH_CONFIG"

// ErrUnknownKey is returned by Set for keys the config does not define.
var ErrUnknownKey = errors.New("unknown config key")

// Config holds all configuration for focuswatch.
type Config struct {
	Server        ServerConfig       `mapstructure:"server"`
	Poll          PollConfig         `mapstructure:"poll"`
	Locale        string             `mapstructure:"locale"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Log           LogConfig          `mapstructure:"log"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// ServerConfig locates the focus service.
type ServerConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// PollConfig holds the live polling cadence. A zero RequestTimeout means
// requests are never cut short.
type PollConfig struct {
	Interval       time.Duration `mapstructure:"interval"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// LogConfig holds the diagnostic log settings. File is only used while the
// fullscreen dashboard owns the terminal.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorHigh    string `mapstructure:"color_high"`
	ColorMedium  string `mapstructure:"color_medium"`
	ColorLow     string `mapstructure:"color_low"`
	ColorFocus   string `mapstructure:"color_focus"`
	ColorUnfocus string `mapstructure:"color_unfocus"`
	ColorWarning string `mapstructure:"color_warning"`
	ColorTitle   string `mapstructure:"color_title"`
	ColorHelp    string `mapstructure:"color_help"`
	IconCenter   string `mapstructure:"icon_center"`
	IconLeft     string `mapstructure:"icon_left"`
	IconRight    string `mapstructure:"icon_right"`
	IconDefault  string `mapstructure:"icon_default"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorHigh:    "#2ECC71",
		ColorMedium:  "#F1C40F",
		ColorLow:     "#E74C3C",
		ColorFocus:   "#4ECDC4",
		ColorUnfocus: "#6B7280",
		ColorWarning: "#E74C3C",
		ColorTitle:   "#7C6FE0",
		ColorHelp:    "#95A5A6",
		IconCenter:   domain.DefaultIcons.Center,
		IconLeft:     domain.DefaultIcons.Left,
		IconRight:    domain.DefaultIcons.Right,
		IconDefault:  domain.DefaultIcons.Default,
	}
}

// Icons returns the status icon table, with blanks filled from the defaults.
func (t ThemeConfig) Icons() domain.Icons {
	t = t.resolve()
	return domain.Icons{
		Center:  t.IconCenter,
		Left:    t.IconLeft,
		Right:   t.IconRight,
		Default: t.IconDefault,
	}
}

// resolve fills empty fields with the defaults.
func (t ThemeConfig) resolve() ThemeConfig {
	d := DefaultThemeConfig()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&t.ColorHigh, d.ColorHigh)
	fill(&t.ColorMedium, d.ColorMedium)
	fill(&t.ColorLow, d.ColorLow)
	fill(&t.ColorFocus, d.ColorFocus)
	fill(&t.ColorUnfocus, d.ColorUnfocus)
	fill(&t.ColorWarning, d.ColorWarning)
	fill(&t.ColorTitle, d.ColorTitle)
	fill(&t.ColorHelp, d.ColorHelp)
	fill(&t.IconCenter, d.IconCenter)
	fill(&t.IconLeft, d.IconLeft)
	fill(&t.IconRight, d.IconRight)
	fill(&t.IconDefault, d.IconDefault)
	return t
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:5000",
		},
		Poll: PollConfig{
			Interval: 500 * time.Millisecond,
		},
		Locale: "en",
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   false,
		},
		Log: LogConfig{
			File:  "~/.focuswatch/focuswatch.log",
			Level: "info",
		},
		Theme: DefaultThemeConfig(),
	}
}

// LocaleTable returns the display language table for c.Locale.
func (c *Config) LocaleTable() (domain.Locale, error) {
	return domain.LookupLocale(c.Locale)
}

// LogLevel parses c.Log.Level, falling back to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server.base_url %q: must be an absolute http(s) URL", c.Server.BaseURL)
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("invalid poll.interval %s: must be positive", c.Poll.Interval)
	}
	if c.Poll.RequestTimeout < 0 {
		return fmt.Errorf("invalid poll.request_timeout %s: must not be negative", c.Poll.RequestTimeout)
	}
	if _, err := c.LocaleTable(); err != nil {
		return fmt.Errorf("invalid locale: %w", err)
	}
	return nil
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration at configPath, creating it with defaults
// when it does not exist yet.
func LoadFrom(configPath string) (*Config, error) {
	if err := ensureFile(configPath); err != nil {
		return nil, err
	}

	v := newViper(configPath, true)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return decode(v)
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes cfg to configPath.
func SaveTo(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")

	v.Set("server.base_url", cfg.Server.BaseURL)
	v.Set("poll.interval", cfg.Poll.Interval.String())
	v.Set("poll.request_timeout", cfg.Poll.RequestTimeout.String())
	v.Set("locale", cfg.Locale)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)

	theme := cfg.Theme.resolve()
	v.Set("theme.color_high", theme.ColorHigh)
	v.Set("theme.color_medium", theme.ColorMedium)
	v.Set("theme.color_low", theme.ColorLow)
	v.Set("theme.color_focus", theme.ColorFocus)
	v.Set("theme.color_unfocus", theme.ColorUnfocus)
	v.Set("theme.color_warning", theme.ColorWarning)
	v.Set("theme.color_title", theme.ColorTitle)
	v.Set("theme.color_help", theme.ColorHelp)
	v.Set("theme.icon_center", theme.IconCenter)
	v.Set("theme.icon_left", theme.IconLeft)
	v.Set("theme.icon_right", theme.IconRight)
	v.Set("theme.icon_default", theme.IconDefault)

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Set changes one key in the file at configPath. The value is parsed with
// the type of the key's default, and the resulting file must validate.
// Environment overrides are neither read nor written, so a bad
// FOCUSWATCH_* variable cannot block an edit and a bad value on disk can
// be repaired.
func Set(configPath, key, value string) (*Config, error) {
	key = strings.ToLower(strings.TrimSpace(key))

	if err := ensureFile(configPath); err != nil {
		return nil, err
	}

	v := newViper(configPath, false)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	def, ok := defaults()[key]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}

	switch def.(type) {
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		v.Set(key, b)
	case time.Duration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		v.Set(key, d.String())
	default:
		v.Set(key, value)
	}

	updated, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := v.WriteConfigAs(configPath); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}
	return updated, nil
}

// Keys returns every settable key, sorted.
func Keys() []string {
	d := defaults()
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Watch re-reads configPath whenever it changes on disk and hands the
// decoded result to onChange. Invalid edits are reported through onError
// and otherwise ignored.
func Watch(configPath string, onChange func(*Config, fsnotify.Event), onError func(error)) error {
	v := newViper(configPath, true)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		onChange(cfg, e)
	})
	v.WatchConfig()
	return nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".focuswatch", "config.toml"), nil
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(p, "~")), nil
}

// ensureFile creates configPath with defaults when it does not exist yet.
func ensureFile(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
	}
	return nil
}

func newViper(configPath string, env bool) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	for key, value := range defaults() {
		if d, ok := value.(time.Duration); ok {
			value = d.String()
		}
		v.SetDefault(key, value)
	}

	if env {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Theme = cfg.Theme.resolve()
	cfg.Server.BaseURL = strings.TrimSpace(cfg.Server.BaseURL)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// defaults returns the default value of every key.
func defaults() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"server.base_url":       d.Server.BaseURL,
		"poll.interval":         d.Poll.Interval,
		"poll.request_timeout":  d.Poll.RequestTimeout,
		"locale":                d.Locale,
		"notifications.enabled": d.Notifications.Enabled,
		"notifications.sound":   d.Notifications.Sound,
		"log.file":              d.Log.File,
		"log.level":             d.Log.Level,
		"theme.color_high":      d.Theme.ColorHigh,
		"theme.color_medium":    d.Theme.ColorMedium,
		"theme.color_low":       d.Theme.ColorLow,
		"theme.color_focus":     d.Theme.ColorFocus,
		"theme.color_unfocus":   d.Theme.ColorUnfocus,
		"theme.color_warning":   d.Theme.ColorWarning,
		"theme.color_title":     d.Theme.ColorTitle,
		"theme.color_help":      d.Theme.ColorHelp,
		"theme.icon_center":     d.Theme.IconCenter,
		"theme.icon_left":       d.Theme.IconLeft,
		"theme.icon_right":      d.Theme.IconRight,
		"theme.icon_default":    d.Theme.IconDefault,
	}
}
