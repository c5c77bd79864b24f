package celestial

// Solar terms here use a fixed day-of-month threshold per month instead
// of true solar-longitude computation. The approximation is deliberate
// and kept as-is from the almanac model this engine reproduces.

// termThresholdDays holds, per calendar month, the day on which the
// second solar term of that month begins.
var termThresholdDays = [12]int{6, 4, 6, 5, 6, 6, 7, 8, 8, 8, 7, 7}

// monthTerms lists the two solar terms of each calendar month.
var monthTerms = [12][2]string{
	{"小寒", "大寒"}, {"立春", "雨水"}, {"惊蛰", "春分"},
	{"清明", "谷雨"}, {"立夏", "小满"}, {"芒种", "夏至"},
	{"小暑", "大暑"}, {"立秋", "处暑"}, {"白露", "秋分"},
	{"寒露", "霜降"}, {"立冬", "小雪"}, {"大雪", "冬至"},
}

// CurrentSolarTerm resolves the active solar term for a calendar
// month/day. Each month carries exactly two terms; the per-month
// threshold day decides which is active.
func CurrentSolarTerm(month, day int) string {
	if day < termThresholdDays[month-1] {
		return monthTerms[month-1][0]
	}
	return monthTerms[month-1][1]
}
