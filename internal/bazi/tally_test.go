package bazi

import "testing"

func TestTallyChart_SumAlwaysEight(t *testing.T) {
	// Two increments per pillar, four pillars: the basic scheme sums to
	// 8 for every chart.
	dates := []struct{ y, m, d, h int }{
		{1900, 1, 31, 0},
		{1984, 2, 2, 23},
		{1990, 5, 15, 14},
		{2024, 12, 31, 11},
		{1899, 7, 4, 3},
	}
	for _, dt := range dates {
		chart, err := Calculate(dt.y, dt.m, dt.d, dt.h)
		if err != nil {
			t.Fatalf("Calculate(%v) failed: %v", dt, err)
		}
		if sum := TallyChart(chart).Sum(); sum != 8 {
			t.Errorf("tally sum for %v = %v, want 8", dt, sum)
		}
	}
}

func TestTallyChartAdvanced_AddsHiddenStems(t *testing.T) {
	chart, err := Calculate(1990, 5, 15, 14)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	basic := TallyChart(chart)
	advanced := TallyChartAdvanced(chart)

	// Hidden stems only ever add weight.
	for _, e := range Elements {
		if advanced.Count(e) < basic.Count(e) {
			t.Errorf("advanced count for %s = %v below basic %v", e, advanced.Count(e), basic.Count(e))
		}
	}

	// 庚午 甲午 庚子 癸未: hidden stems are 丁己 / 丁己 / 癸 / 己丁乙,
	// seven entries at half weight.
	if want := 8 + 0.5*7; advanced.Sum() != want {
		t.Errorf("advanced sum = %v, want %v", advanced.Sum(), want)
	}
}

func TestTally_RankedStableTieBreak(t *testing.T) {
	// All counts equal: ranking must follow the fixed enumeration order.
	tally := Tally{Metal: 1, Wood: 1, Water: 1, Fire: 1, Earth: 1}
	ranked := tally.Ranked()
	want := []Element{Metal, Wood, Water, Fire, Earth}
	for i, e := range want {
		if ranked[i] != e {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i], e)
		}
	}
}

func TestTally_Count(t *testing.T) {
	tally := Tally{Metal: 2, Wood: 1, Water: 3, Fire: 0, Earth: 2}
	if tally.Count(Water) != 3 {
		t.Errorf("Count(水) = %v, want 3", tally.Count(Water))
	}
	if tally.NonZero() != 4 {
		t.Errorf("NonZero = %d, want 4", tally.NonZero())
	}
}
