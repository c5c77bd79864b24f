package celestial

import "tianji/internal/bazi"

// MeridianSlot is one of the twelve two-hour windows of the diurnal
// meridian clock (子午流注).
type MeridianSlot struct {
	Branch   string       `json:"branch"`
	Start    int          `json:"hour"`
	End      int          `json:"endHour"`
	Meridian string       `json:"meridian"`
	Element  bazi.Element `json:"element"`
	YinYang  string       `json:"yinYang"`
}

// meridianSlots covers the full day; the 子 slot wraps midnight.
var meridianSlots = []MeridianSlot{
	{"子", 23, 1, "胆经", bazi.Wood, "阳"},
	{"丑", 1, 3, "肝经", bazi.Wood, "阴"},
	{"寅", 3, 5, "肺经", bazi.Metal, "阴"},
	{"卯", 5, 7, "大肠经", bazi.Metal, "阳"},
	{"辰", 7, 9, "胃经", bazi.Earth, "阳"},
	{"巳", 9, 11, "脾经", bazi.Earth, "阴"},
	{"午", 11, 13, "心经", bazi.Fire, "阴"},
	{"未", 13, 15, "小肠经", bazi.Fire, "阳"},
	{"申", 15, 17, "膀胱经", bazi.Water, "阳"},
	{"酉", 17, 19, "肾经", bazi.Water, "阴"},
	{"戌", 19, 21, "心包经", bazi.Fire, "阴"},
	{"亥", 21, 23, "三焦经", bazi.Fire, "阳"},
}

// SlotForHour returns the meridian slot whose window contains the hour,
// handling the midnight-spanning 子 slot (start > end).
func SlotForHour(hour int) MeridianSlot {
	for _, s := range meridianSlots {
		if s.Start <= s.End {
			if hour >= s.Start && hour < s.End {
				return s
			}
		} else if hour >= s.Start || hour < s.End {
			return s
		}
	}
	return meridianSlots[0]
}
