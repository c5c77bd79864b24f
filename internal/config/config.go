package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// DefaultWeather overrides the weather reading substituted when a
	// caller supplies none. Zero-valued fields keep the built-in default
	// (晴, 20°C, 50% humidity).
	DefaultWeather WeatherDefaults `json:"default_weather,omitempty"`

	// DailyMinutesCap limits cultivation minutes credited per day.
	DailyMinutesCap int `json:"daily_minutes_cap"`

	// BaseExpPerMinute is the experience rate before bonuses apply.
	BaseExpPerMinute int `json:"base_exp_per_minute"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are ignored at registration time.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// WeatherDefaults mirrors the overridable fields of the default reading.
type WeatherDefaults struct {
	Condition   string `json:"condition,omitempty"`
	Temperature *int   `json:"temperature,omitempty"`
	Humidity    *int   `json:"humidity,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DailyMinutesCap:  240,
		BaseExpPerMinute: 1,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.tianji.
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs. Overlay values take
// precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.DailyMinutesCap = overlay.DailyMinutesCap
	if result.DailyMinutesCap == 0 {
		result.DailyMinutesCap = base.DailyMinutesCap
	}

	result.BaseExpPerMinute = overlay.BaseExpPerMinute
	if result.BaseExpPerMinute == 0 {
		result.BaseExpPerMinute = base.BaseExpPerMinute
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DefaultWeather = base.DefaultWeather
	if overlay.DefaultWeather.Condition != "" {
		result.DefaultWeather.Condition = overlay.DefaultWeather.Condition
	}
	if overlay.DefaultWeather.Temperature != nil {
		result.DefaultWeather.Temperature = overlay.DefaultWeather.Temperature
	}
	if overlay.DefaultWeather.Humidity != nil {
		result.DefaultWeather.Humidity = overlay.DefaultWeather.Humidity
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
