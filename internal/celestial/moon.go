package celestial

import "time"

// MoonPhase is the lunar phase at one instant, with its cultivation
// bonus multiplier.
type MoonPhase struct {
	Name  string  `json:"name"`
	Phase float64 `json:"phase"` // fraction of the synodic month, [0,1)
	Bonus float64 `json:"bonus"`
	Desc  string  `json:"desc"`
}

// synodicMonth is the mean period between new moons, in days.
const synodicMonth = 29.53058867

// moonEpoch is a known new moon: 2000-01-06.
var moonEpoch = time.Date(2000, time.January, 6, 0, 0, 0, 0, time.UTC)

// phaseBucket names a [start,end) slice of the synodic cycle.
type phaseBucket struct {
	name       string
	start, end float64
	bonus      float64
	desc       string
}

var phaseBuckets = []phaseBucket{
	{"新月(朔)", 0, 0.05, 1.00, "阴阳交替，适宜静养"},
	{"娥眉月", 0.05, 0.2, 1.05, "阳气初生，修炼渐佳"},
	{"上弦月", 0.2, 0.3, 1.08, "阳气增长，修炼顺利"},
	{"盈凸月", 0.3, 0.45, 1.12, "月华充盈，能量上升"},
	{"满月(望)", 0.45, 0.55, 1.15, "月华最盛，修炼最佳时机"},
	{"亏凸月", 0.55, 0.7, 1.10, "阴气渐生，适宜收摄"},
	{"下弦月", 0.7, 0.8, 1.05, "阴阳平衡，修炼平稳"},
	{"残月", 0.8, 0.95, 0.98, "月华内敛，适宜温养"},
	{"晦月", 0.95, 1.0, 1.00, "月终复始，静待新机"},
}

// MoonPhaseAt computes the lunar phase from days elapsed since the
// epoch new moon, as a fraction of the synodic month normalized into
// [0,1). The bucket lookup falls back to the first entry, which only
// matters at the exact phase=1.0 boundary.
func MoonPhaseAt(t time.Time) MoonPhase {
	// Seconds delta, not t.Sub: a Duration saturates a few centuries out.
	diffDays := float64(t.Unix()-moonEpoch.Unix()) / 86400
	phase := diffDays / synodicMonth
	phase -= float64(int(phase))
	if phase < 0 {
		phase += 1
	}

	bucket := phaseBuckets[0]
	for _, b := range phaseBuckets {
		if phase >= b.start && phase < b.end {
			bucket = b
			break
		}
	}

	return MoonPhase{
		Name:  bucket.name,
		Phase: phase,
		Bonus: bucket.bonus,
		Desc:  bucket.desc,
	}
}
