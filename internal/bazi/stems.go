// Package bazi computes Four Pillars (八字) birth charts, five-element
// tallies, and spiritual-root classifications from a Gregorian birth
// date and hour. All functions are pure and read only the static tables
// in this file.
package bazi

// Element is one of the five WuXing phases.
type Element string

const (
	Metal Element = "金"
	Wood  Element = "木"
	Water Element = "水"
	Fire  Element = "火"
	Earth Element = "土"
)

// Elements lists the five phases in fixed enumeration order. This order
// is also the tie-break when ranking tally counts.
var Elements = []Element{Metal, Wood, Water, Fire, Earth}

// Generates returns the element this element produces (相生).
// The cycle is Wood→Fire→Earth→Metal→Water→Wood.
func (e Element) Generates() Element {
	switch e {
	case Wood:
		return Fire
	case Fire:
		return Earth
	case Earth:
		return Metal
	case Metal:
		return Water
	default:
		return Wood
	}
}

// Overcomes returns the element this element restrains (相克),
// two steps ahead in the generative cycle.
func (e Element) Overcomes() Element {
	return e.Generates().Generates()
}

// Valid reports whether e is one of the five phases.
func (e Element) Valid() bool {
	switch e {
	case Metal, Wood, Water, Fire, Earth:
		return true
	}
	return false
}

// HeavenlyStems are the ten cyclical stems, index 0 = 甲.
var HeavenlyStems = []string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

// EarthlyBranches are the twelve cyclical branches, index 0 = 子.
var EarthlyBranches = []string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// stemElements maps each stem to its phase.
var stemElements = map[string]Element{
	"甲": Wood, "乙": Wood,
	"丙": Fire, "丁": Fire,
	"戊": Earth, "己": Earth,
	"庚": Metal, "辛": Metal,
	"壬": Water, "癸": Water,
}

// branchElements maps each branch to its principal phase.
var branchElements = map[string]Element{
	"寅": Wood, "卯": Wood,
	"巳": Fire, "午": Fire,
	"辰": Earth, "戌": Earth, "丑": Earth, "未": Earth,
	"申": Metal, "酉": Metal,
	"亥": Water, "子": Water,
}

// branchHiddenStems maps each branch to its hidden stems (藏干),
// used by the advanced tally at half weight.
var branchHiddenStems = map[string][]string{
	"子": {"癸"},
	"丑": {"己", "癸", "辛"},
	"寅": {"甲", "丙", "戊"},
	"卯": {"乙"},
	"辰": {"戊", "乙", "癸"},
	"巳": {"丙", "庚", "戊"},
	"午": {"丁", "己"},
	"未": {"己", "丁", "乙"},
	"申": {"庚", "壬", "戊"},
	"酉": {"辛"},
	"戌": {"戊", "辛", "丁"},
	"亥": {"壬", "甲"},
}

// monthBranches is the lunar-month-to-branch sequence, month 1 = 寅.
// This ignores solar-term boundaries; the simplification is deliberate.
var monthBranches = []string{"寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥", "子", "丑"}

// monthStemStart implements the five-tiger rule (五虎遁): the year
// stem's parity group fixes the stem that opens the first month.
// 甲己之年丙作首，乙庚之岁戊为头。
func monthStemStart(yearStemIndex int) int {
	switch yearStemIndex % 5 {
	case 0:
		return 2 // 甲/己 → 丙
	case 1:
		return 4 // 乙/庚 → 戊
	case 2:
		return 6 // 丙/辛 → 庚
	case 3:
		return 8 // 丁/壬 → 壬
	default:
		return 0 // 戊/癸 → 甲
	}
}

// hourStemStart implements the five-rat rule (五鼠遁), symmetric to the
// month rule but keyed by the day stem.
// 甲己还加甲，乙庚丙作初。
func hourStemStart(dayStemIndex int) int {
	switch dayStemIndex % 5 {
	case 0:
		return 0 // 甲/己 → 甲
	case 1:
		return 2 // 乙/庚 → 丙
	case 2:
		return 4 // 丙/辛 → 戊
	case 3:
		return 6 // 丁/壬 → 庚
	default:
		return 8 // 戊/癸 → 壬
	}
}

// StemElement returns the phase of a stem.
func StemElement(stem string) Element {
	return stemElements[stem]
}

// BranchElement returns the principal phase of a branch.
func BranchElement(branch string) Element {
	return branchElements[branch]
}

// HiddenStems returns the hidden stems of a branch.
func HiddenStems(branch string) []string {
	return branchHiddenStems[branch]
}

// stemIndex returns the table index of a stem, or -1.
func stemIndex(stem string) int {
	for i, s := range HeavenlyStems {
		if s == stem {
			return i
		}
	}
	return -1
}

// branchIndex returns the table index of a branch, or -1.
func branchIndex(branch string) int {
	for i, b := range EarthlyBranches {
		if b == branch {
			return i
		}
	}
	return -1
}
