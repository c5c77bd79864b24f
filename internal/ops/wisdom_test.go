package ops

import (
	"context"
	"testing"
	"time"

	"tianji/internal/bazi"
	"tianji/internal/errors"
)

func TestWisdom_Daily_Deterministic(t *testing.T) {
	database := testDB(t)

	date := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	first, err := Wisdom(database, WisdomInput{Element: "木", Date: date})
	if err != nil {
		t.Fatalf("Wisdom failed: %v", err)
	}
	second, err := Wisdom(database, WisdomInput{Element: "木", Date: date})
	if err != nil {
		t.Fatalf("Wisdom failed: %v", err)
	}

	if !first.Daily || !second.Daily {
		t.Error("Daily should be true")
	}
	if first.Quote.ID != second.Quote.ID {
		t.Errorf("daily quote not stable: %s vs %s", first.Quote.ID, second.Quote.ID)
	}
}

func TestWisdom_Daily_FromChart(t *testing.T) {
	database := testDB(t)

	if _, err := Divine(context.Background(), database, DivineInput{
		Name: stringPtr("reader"),
		Year: 1990, Month: 5, Day: 15, Hour: 14,
	}); err != nil {
		t.Fatalf("Divine failed: %v", err)
	}

	out, err := Wisdom(database, WisdomInput{Name: "reader"})
	if err != nil {
		t.Fatalf("Wisdom failed: %v", err)
	}
	if out.Element != bazi.Metal {
		t.Errorf("Element = %s, want chart's 金", out.Element)
	}
	// Metal narrows the pool to 金 and 水 quotes
	if out.Quote.Element != bazi.Metal && out.Quote.Element != bazi.Water {
		t.Errorf("quote element = %s, want 金 or 水", out.Quote.Element)
	}
}

func TestWisdom_Random_Seeded(t *testing.T) {
	database := testDB(t)

	seed := int64(42)
	first, err := Wisdom(database, WisdomInput{Random: true, Category: "mind", Seed: &seed})
	if err != nil {
		t.Fatalf("Wisdom failed: %v", err)
	}
	second, err := Wisdom(database, WisdomInput{Random: true, Category: "mind", Seed: &seed})
	if err != nil {
		t.Fatalf("Wisdom failed: %v", err)
	}

	if first.Quote.ID != second.Quote.ID {
		t.Errorf("seeded random not reproducible: %s vs %s", first.Quote.ID, second.Quote.ID)
	}
	if first.Quote.Category != "mind" {
		t.Errorf("Category = %s, want mind", first.Quote.Category)
	}
	if first.Daily {
		t.Error("Daily should be false for random picks")
	}
}

func TestWisdom_InvalidCategory(t *testing.T) {
	database := testDB(t)

	_, err := Wisdom(database, WisdomInput{Random: true, Category: "humor"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("want ErrInvalidRequest, got: %v", err)
	}
}

func TestWisdom_NoElement(t *testing.T) {
	database := testDB(t)

	out, err := Wisdom(database, WisdomInput{Date: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("Wisdom failed: %v", err)
	}
	if out.Element != "" {
		t.Errorf("Element = %s, want empty", out.Element)
	}
	if out.Quote.ID == "" {
		t.Error("quote should still be selected from the full pool")
	}
}
