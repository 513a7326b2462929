package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keeps runtime settings for the dashboard.
type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Timezone string         `mapstructure:"timezone"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Report   ReportConfig   `mapstructure:"report"`
	Plants   PlantsConfig   `mapstructure:"plants"`
}

type HTTPConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type WeatherConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	DefaultCity     string        `mapstructure:"default_city"`
	Units           string        `mapstructure:"units"`
	Lang            string        `mapstructure:"lang"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

type TelegramConfig struct {
	Token   string  `mapstructure:"token"`
	ChatIDs []int64 `mapstructure:"chat_ids"`
}

type ReportConfig struct {
	Time string `mapstructure:"time"`
}

type PlantsConfig struct {
	DefaultWaterInterval int `mapstructure:"default_water_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":3001")
	v.SetDefault("http.cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("database.path", "data/dashboard.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("timezone", "Local")
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("weather.default_city", "Berlin")
	v.SetDefault("weather.units", "metric")
	v.SetDefault("weather.lang", "de")
	v.SetDefault("weather.refresh_interval", 30*time.Minute)
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_ids", []int64{})
	v.SetDefault("report.time", "09:00")
	v.SetDefault("plants.default_water_interval", 7)
}

// Load reads an optional YAML file at path, then DASHBOARD_* environment
// variables (DASHBOARD_WEATHER_API_KEY overrides weather.api_key).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.HTTP.CORSOrigins = splitList(cfg.HTTP.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the scheduler or engine could not use.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("http.addr is required")
	}
	if _, _, err := ParseClock(c.Report.Time); err != nil {
		return fmt.Errorf("report.time: %w", err)
	}
	if c.Weather.RefreshInterval < 0 {
		return fmt.Errorf("weather.refresh_interval must not be negative")
	}
	if c.Plants.DefaultWaterInterval < 1 {
		return fmt.Errorf("plants.default_water_interval must be at least 1")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// TelegramEnabled reports whether the notifier should start.
func (c Config) TelegramEnabled() bool {
	return strings.TrimSpace(c.Telegram.Token) != ""
}

// ParseClock parses an HH:MM string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// splitList accepts both YAML lists and a single comma-separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
