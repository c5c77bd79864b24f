package bazi

import (
	"fmt"
	"strings"
	"time"
)

// Pillar is one stem/branch pair of a birth chart. The element is the
// stem's phase, derived at construction and never mutated.
type Pillar struct {
	Stem    string  `json:"stem"`
	Branch  string  `json:"branch"`
	Element Element `json:"element"`
}

// Chart holds the four pillars of one birth instant.
type Chart struct {
	Year  Pillar `json:"year"`
	Month Pillar `json:"month"`
	Day   Pillar `json:"day"`
	Hour  Pillar `json:"hour"`
}

// Pillars returns the four pillars in year/month/day/hour order.
func (c Chart) Pillars() []Pillar {
	return []Pillar{c.Year, c.Month, c.Day, c.Hour}
}

// String formats the chart as the traditional eight characters,
// e.g. "庚午 辛巳 庚辰 癸未".
func (c Chart) String() string {
	parts := make([]string, 0, 4)
	for _, p := range c.Pillars() {
		parts = append(parts, p.Stem+p.Branch)
	}
	return strings.Join(parts, " ")
}

// dayEpoch is the day-pillar anchor: 1900-01-31 is a 甲子 day
// (stem index 0, branch index 0). Dates are treated as plain civil
// dates with no timezone handling.
var dayEpoch = time.Date(1900, time.January, 31, 0, 0, 0, 0, time.UTC)

func pillarFromIndices(stemIdx, branchIdx int) Pillar {
	stem := HeavenlyStems[stemIdx]
	return Pillar{
		Stem:    stem,
		Branch:  EarthlyBranches[branchIdx],
		Element: stemElements[stem],
	}
}

// mod returns x mod n normalized to [0,n), correct for negative x.
func mod(x, n int) int {
	return ((x % n) + n) % n
}

// YearPillar derives the year pillar from the stem-branch cycle
// anchored at year 4 CE (甲子). Any integer year is valid.
func YearPillar(year int) Pillar {
	return pillarFromIndices(mod(year-4, 10), mod(year-4, 12))
}

// MonthPillar derives the month pillar for month in [1,12]. The branch
// comes from the fixed month-branch table; the stem follows the
// five-tiger rule from the year stem.
func MonthPillar(yearStem string, month int) Pillar {
	branch := monthBranches[month-1]
	bIdx := branchIndex(branch)
	sIdx := mod(monthStemStart(stemIndex(yearStem))+bIdx, 10)
	return Pillar{
		Stem:    HeavenlyStems[sIdx],
		Branch:  branch,
		Element: stemElements[HeavenlyStems[sIdx]],
	}
}

// DayPillar derives the day pillar from whole days elapsed since the
// 1900-01-31 甲子 epoch. Dates before the epoch are handled by the
// normalized modulo. The delta is computed on Unix day numbers rather
// than a time.Duration, which would saturate a few centuries out.
func DayPillar(year, month, day int) Pillar {
	target := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	diffDays := int(target.Unix()/86400 - dayEpoch.Unix()/86400)
	return pillarFromIndices(mod(diffDays, 10), mod(diffDays, 12))
}

// HourBranchIndex maps an hour of day in [0,23] to its two-hour branch
// slot. The 子 slot spans 23:00–00:59, wrapping midnight.
func HourBranchIndex(hour int) int {
	if hour >= 23 {
		return 0
	}
	return (hour + 1) / 2
}

// HourPillar derives the hour pillar from the day stem (five-rat rule)
// and the hour's branch slot.
func HourPillar(dayStem string, hour int) Pillar {
	bIdx := HourBranchIndex(hour)
	sIdx := mod(hourStemStart(stemIndex(dayStem))+bIdx, 10)
	return Pillar{
		Stem:    HeavenlyStems[sIdx],
		Branch:  EarthlyBranches[bIdx],
		Element: stemElements[HeavenlyStems[sIdx]],
	}
}

// Calculate composes the four pillar functions: the year pillar feeds
// the month pillar, the day pillar feeds the hour pillar. Callers must
// pre-validate the date via IsValidDate and the hour range; Calculate
// itself never fails for inputs passing those checks.
func Calculate(year, month, day, hour int) (Chart, error) {
	if month < 1 || month > 12 {
		return Chart{}, fmt.Errorf("month %d out of range [1,12]", month)
	}
	if hour < 0 || hour > 23 {
		return Chart{}, fmt.Errorf("hour %d out of range [0,23]", hour)
	}
	if !IsValidDate(year, month, day) {
		return Chart{}, fmt.Errorf("invalid calendar date %d-%02d-%02d", year, month, day)
	}

	yp := YearPillar(year)
	mp := MonthPillar(yp.Stem, month)
	dp := DayPillar(year, month, day)
	hp := HourPillar(dp.Stem, hour)

	return Chart{Year: yp, Month: mp, Day: dp, Hour: hp}, nil
}

// IsValidDate reports whether year/month/day name an existing Gregorian
// date, by round-tripping through calendar construction.
func IsValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Year() == year && int(d.Month()) == month && d.Day() == day
}
