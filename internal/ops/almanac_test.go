package ops

import (
	"context"
	"strings"
	"testing"
	"time"

	"tianji/internal/bazi"
	"tianji/internal/config"
)

func TestAlmanac_Anonymous(t *testing.T) {
	database := testDB(t)

	at := time.Date(2026, time.June, 22, 9, 0, 0, 0, time.UTC)
	out, err := Almanac(database, config.DefaultConfig(), AlmanacInput{At: at})
	if err != nil {
		t.Fatalf("Almanac failed: %v", err)
	}

	// Anonymous visitors get the neutral earth element
	if out.Snapshot.Element != bazi.Earth {
		t.Errorf("Element = %s, want 土", out.Snapshot.Element)
	}
	if out.Quote.ID == "" {
		t.Error("quote missing")
	}

	md := out.Markdown
	for _, want := range []string{
		"# 天机黄历 · 2026-06-22",
		"夏至", // June 22 is past the solstice threshold
		"## 修炼加成",
		"综合加成",
		"## 今日偈语",
		out.Quote.Content,
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestAlmanac_FromChart(t *testing.T) {
	database := testDB(t)

	if _, err := Divine(context.Background(), database, DivineInput{
		Name: stringPtr("almanac subject"),
		Year: 1990, Month: 5, Day: 15, Hour: 14,
	}); err != nil {
		t.Fatalf("Divine failed: %v", err)
	}

	out, err := Almanac(database, config.DefaultConfig(), AlmanacInput{Name: "almanac subject"})
	if err != nil {
		t.Fatalf("Almanac failed: %v", err)
	}
	if out.Snapshot.Element != bazi.Metal {
		t.Errorf("Element = %s, want chart's 金", out.Snapshot.Element)
	}
	if !strings.Contains(out.Markdown, "本命** 金") {
		t.Errorf("markdown should show the chart element:\n%s", out.Markdown)
	}
}
