package bazi

import "sort"

// Tally is the per-element occurrence count of a chart. Counts are
// float64 because the advanced scheme adds hidden stems at half weight;
// the basic scheme only ever produces whole numbers summing to 8.
type Tally struct {
	Metal float64 `json:"metal"`
	Wood  float64 `json:"wood"`
	Water float64 `json:"water"`
	Fire  float64 `json:"fire"`
	Earth float64 `json:"earth"`
}

// Count returns the tally entry for an element.
func (t Tally) Count(e Element) float64 {
	switch e {
	case Metal:
		return t.Metal
	case Wood:
		return t.Wood
	case Water:
		return t.Water
	case Fire:
		return t.Fire
	default:
		return t.Earth
	}
}

func (t *Tally) add(e Element, weight float64) {
	switch e {
	case Metal:
		t.Metal += weight
	case Wood:
		t.Wood += weight
	case Water:
		t.Water += weight
	case Fire:
		t.Fire += weight
	case Earth:
		t.Earth += weight
	}
}

// Sum returns the total of all five counts.
func (t Tally) Sum() float64 {
	return t.Metal + t.Wood + t.Water + t.Fire + t.Earth
}

// NonZero returns how many elements have a positive count.
func (t Tally) NonZero() int {
	n := 0
	for _, e := range Elements {
		if t.Count(e) > 0 {
			n++
		}
	}
	return n
}

// Ranked returns the five elements sorted by descending count. Ties
// keep the fixed Elements enumeration order, so ranking is stable and
// deterministic for equal counts.
func (t Tally) Ranked() []Element {
	ranked := make([]Element, len(Elements))
	copy(ranked, Elements)
	sort.SliceStable(ranked, func(i, j int) bool {
		return t.Count(ranked[i]) > t.Count(ranked[j])
	})
	return ranked
}

// TallyChart counts each pillar's stem element and branch element once.
// The sum is always exactly 8: two increments per pillar.
func TallyChart(chart Chart) Tally {
	var t Tally
	for _, p := range chart.Pillars() {
		t.add(stemElements[p.Stem], 1)
		t.add(branchElements[p.Branch], 1)
	}
	return t
}

// TallyChartAdvanced refines TallyChart by also counting each branch's
// hidden stems at 0.5 weight.
func TallyChartAdvanced(chart Chart) Tally {
	t := TallyChart(chart)
	for _, p := range chart.Pillars() {
		for _, hidden := range branchHiddenStems[p.Branch] {
			t.add(stemElements[hidden], 0.5)
		}
	}
	return t
}
