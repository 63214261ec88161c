// Package config provides configuration management for discipline-tracker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName is the directory name used under the local data directory.
const AppName = "disipline-tracker"

// EnvPrefix prefixes environment overrides, e.g. DISCIPLINE_STORAGE_BACKEND.
const EnvPrefix = "DISCIPLINE"

// Config holds all configuration for the application.
type Config struct {
	Storage       StorageConfig      `mapstructure:"storage"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	History       HistoryConfig      `mapstructure:"history"`
	UI            UIConfig           `mapstructure:"ui"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir     string `mapstructure:"data_dir"`
	Backend     string `mapstructure:"backend"`
	AsyncWrites bool   `mapstructure:"async_writes"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// HistoryConfig holds history list settings.
type HistoryConfig struct {
	DisplayLimit int `mapstructure:"display_limit"`
}

// UIConfig holds settings shared by the terminal and desktop interfaces.
type UIConfig struct {
	TickInterval Duration `mapstructure:"tick_interval"`
	Projects     []string `mapstructure:"projects"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorWork   string `mapstructure:"color_work"`
	ColorBreak  string `mapstructure:"color_break"`
	ColorPaused string `mapstructure:"color_paused"`
	ColorTitle  string `mapstructure:"color_title"`
	ColorHelp   string `mapstructure:"color_help"`
	IconApp     string `mapstructure:"icon_app"`
	IconPaused  string `mapstructure:"icon_paused"`
}

// DefaultProjects is the sidebar project list used when none is configured.
var DefaultProjects = []string{"study-tasks", "thesis", "side-project", "courses", "misc"}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorWork:   "#26a641",
		ColorBreak:  "#4ECDC4",
		ColorPaused: "#6B7280",
		ColorTitle:  "#6B7280",
		ColorHelp:   "#95A5A6",
		IconApp:     "🍅",
		IconPaused:  "⏸",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir:     DefaultDataDir(),
			Backend:     "file",
			AsyncWrites: false,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		History: HistoryConfig{
			DisplayLimit: 50,
		},
		UI: UIConfig{
			TickInterval: Duration(time.Second),
			Projects:     append([]string(nil), DefaultProjects...),
		},
		Theme: DefaultThemeConfig(),
	}
}

// LocalDataDir returns the per-user directory for application data that
// should not roam between machines.
func LocalDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
		return os.UserConfigDir()
	case "darwin", "ios":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(dir) {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

// DefaultDataDir returns the application data directory, falling back to
// the working directory when no home directory is known.
func DefaultDataDir() string {
	base, err := LocalDataDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(base, AppName)
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.toml")
}

// Load reads the config at path, creating it with defaults if missing.
// Environment variables with the DISCIPLINE_ prefix override file values;
// a .env file in the working directory is read first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(path, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.DataDir = expandHome(cfg.Storage.DataDir)
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = DefaultDataDir()
	}
	if cfg.History.DisplayLimit <= 0 {
		cfg.History.DisplayLimit = 50
	}
	if cfg.UI.TickInterval <= 0 {
		cfg.UI.TickInterval = Duration(time.Second)
	}
	if len(cfg.UI.Projects) == 0 {
		cfg.UI.Projects = append([]string(nil), DefaultProjects...)
	}

	return &cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.async_writes", cfg.Storage.AsyncWrites)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("history.display_limit", cfg.History.DisplayLimit)
	v.Set("ui.tick_interval", cfg.UI.TickInterval.String())
	v.Set("ui.projects", cfg.UI.Projects)
	v.Set("theme.color_work", cfg.Theme.ColorWork)
	v.Set("theme.color_break", cfg.Theme.ColorBreak)
	v.Set("theme.color_paused", cfg.Theme.ColorPaused)
	v.Set("theme.color_title", cfg.Theme.ColorTitle)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.icon_app", cfg.Theme.IconApp)
	v.Set("theme.icon_paused", cfg.Theme.IconPaused)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.data_dir", DefaultDataDir())
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.async_writes", false)
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("notifications.sound", true)
	v.SetDefault("history.display_limit", 50)
	v.SetDefault("ui.tick_interval", "1s")
	v.SetDefault("ui.projects", DefaultProjects)

	defaults := DefaultThemeConfig()
	v.SetDefault("theme.color_work", defaults.ColorWork)
	v.SetDefault("theme.color_break", defaults.ColorBreak)
	v.SetDefault("theme.color_paused", defaults.ColorPaused)
	v.SetDefault("theme.color_title", defaults.ColorTitle)
	v.SetDefault("theme.color_help", defaults.ColorHelp)
	v.SetDefault("theme.icon_app", defaults.IconApp)
	v.SetDefault("theme.icon_paused", defaults.IconPaused)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// SoundPath returns where the completion sound is looked up.
func (c *Config) SoundPath() string {
	return filepath.Join(c.Storage.DataDir, "sounds", "complete.ogg")
}

// LogPath returns the log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Storage.DataDir, "discipline.log")
}
