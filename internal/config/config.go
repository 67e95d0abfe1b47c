package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Settings holds application-level configuration.
type Settings struct {
	PageSize    int      `mapstructure:"pageSize"`
	VolumeStep  int      `mapstructure:"volumeStep"`
	PlayerOrder []string `mapstructure:"playerOrder"`
	UserAgent   string   `mapstructure:"userAgent"`
}

// DefaultSettings returns the settings a fresh install runs with.
func DefaultSettings() Settings {
	return Settings{
		PageSize:    50,
		VolumeStep:  5,
		PlayerOrder: []string{"vlc", "mpv", "ffplay"},
		UserAgent:   "cradio/1.0 (terminal radio)",
	}
}

// LoadSettings reads config.yml from ~/.config/cradio, creating it with
// defaults on first run. Any failure falls back to defaults; a broken config
// file must not keep the session from starting.
func LoadSettings() Settings {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return DefaultSettings()
	}

	dir := filepath.Join(configDir, "cradio")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return DefaultSettings()
	}
	return loadSettingsFrom(dir)
}

func loadSettingsFrom(dir string) Settings {
	defaults := DefaultSettings()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)
	v.SetDefault("pageSize", defaults.PageSize)
	v.SetDefault("volumeStep", defaults.VolumeStep)
	v.SetDefault("playerOrder", defaults.PlayerOrder)
	v.SetDefault("userAgent", defaults.UserAgent)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			_ = v.SafeWriteConfig()
		} else {
			return defaults
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return defaults
	}

	if settings.PageSize <= 0 {
		settings.PageSize = defaults.PageSize
	}
	if settings.VolumeStep <= 0 {
		settings.VolumeStep = defaults.VolumeStep
	}
	if len(settings.PlayerOrder) == 0 {
		settings.PlayerOrder = defaults.PlayerOrder
	}
	if settings.UserAgent == "" {
		settings.UserAgent = defaults.UserAgent
	}
	return settings
}
