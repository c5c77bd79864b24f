package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DailyMinutesCap != 240 {
		t.Errorf("DailyMinutesCap = %d, want 240", cfg.DailyMinutesCap)
	}
	if cfg.BaseExpPerMinute != 1 {
		t.Errorf("BaseExpPerMinute = %d, want 1", cfg.BaseExpPerMinute)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `{"daily_minutes_cap": 120, "default_weather": {"condition": "多云"}, "disabled_tools": ["cultivate_start"]}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DailyMinutesCap != 120 {
		t.Errorf("DailyMinutesCap = %d, want 120", cfg.DailyMinutesCap)
	}
	if cfg.BaseExpPerMinute != 1 {
		t.Errorf("BaseExpPerMinute = %d, want default 1", cfg.BaseExpPerMinute)
	}
	if cfg.DefaultWeather.Condition != "多云" {
		t.Errorf("DefaultWeather.Condition = %q, want 多云", cfg.DefaultWeather.Condition)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "cultivate_start" {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestMerge_ArraysDeduplicated(t *testing.T) {
	temp := 25
	base := &Config{DisabledTools: []string{"a", "b"}}
	overlay := &Config{
		DisabledTools:  []string{"b", " c "},
		DefaultWeather: WeatherDefaults{Temperature: &temp},
	}
	merged := Merge(base, overlay)

	want := []string{"a", "b", "c"}
	if len(merged.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", merged.DisabledTools, want)
	}
	for i, s := range want {
		if merged.DisabledTools[i] != s {
			t.Errorf("DisabledTools[%d] = %q, want %q", i, merged.DisabledTools[i], s)
		}
	}
	if merged.DefaultWeather.Temperature == nil || *merged.DefaultWeather.Temperature != 25 {
		t.Errorf("Temperature not merged: %v", merged.DefaultWeather.Temperature)
	}
}
