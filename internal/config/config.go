package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type TimerConfig struct {
	AutoAdvance    bool `mapstructure:"auto_advance"`     // start the next phase without waiting
	ResumeOnLaunch bool `mapstructure:"resume_on_launch"` // restart a countdown that was running at exit
}

type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Theme         string             `mapstructure:"theme"`    // used until a theme is chosen
	Locale        string             `mapstructure:"locale"`   // "en" | "es", CSV headers
	DataDir       string             `mapstructure:"data_dir"` // defaults to ~/.local/share/pomo
	Timezone      string             `mapstructure:"timezone"` // e.g. "Europe/Madrid" (optional)
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Log           LogConfig          `mapstructure:"log"`
}

func Default() Config {
	return Config{
		Theme:  "default",
		Locale: "en",
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// DefaultPath returns ~/.config/pomo/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pomo", "config.yaml"), nil
}

// Load reads path (DefaultPath when empty). A missing file is fine.
// Environment variables prefixed POMO_ override file values.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("pomo")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("locale", cfg.Locale)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("timer.auto_advance", cfg.Timer.AutoAdvance)
	v.SetDefault("timer.resume_on_launch", cfg.Timer.ResumeOnLaunch)
	v.SetDefault("notifications.enabled", cfg.Notifications.Enabled)
	v.SetDefault("notifications.sound", cfg.Notifications.Sound)
	v.SetDefault("log.level", cfg.Log.Level)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return cfg, fmt.Errorf("config read: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.Locale = strings.ToLower(strings.TrimSpace(cfg.Locale))
	return cfg, nil
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}
