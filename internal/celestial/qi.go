package celestial

import "tianji/internal/bazi"

// YearLuck is the year circuit (年运) keyed by the year stem.
type YearLuck struct {
	Element bazi.Element `json:"element"`
	Type    string       `json:"type"`
}

// MainQi is one of the six seasonal qi periods.
type MainQi struct {
	Name    string       `json:"name"`
	Element bazi.Element `json:"element"`
}

// GuestQi pairs the controlling (司天) and in-power (在泉) qi for a
// year branch.
type GuestQi struct {
	SiTian  string `json:"siTian"`
	ZaiQuan string `json:"zaiQuan"`
}

// QiState is the five-circuits-six-qi snapshot for one date.
type QiState struct {
	YearLuck         YearLuck `json:"yearLuck"`
	MainQi           MainQi   `json:"mainQi"`
	GuestQi          GuestQi  `json:"guestQi"`
	CurrentSolarTerm string   `json:"currentSolarTerm"`
}

// yearLuckByStem pairs each year stem with its circuit element and
// named circuit type (太/少 across the five tones).
var yearLuckByStem = map[string]YearLuck{
	"甲": {bazi.Earth, "太宫"},
	"己": {bazi.Earth, "少宫"},
	"乙": {bazi.Metal, "太商"},
	"庚": {bazi.Metal, "少商"},
	"丙": {bazi.Water, "太羽"},
	"辛": {bazi.Water, "少羽"},
	"丁": {bazi.Wood, "太角"},
	"壬": {bazi.Wood, "少角"},
	"戊": {bazi.Fire, "太徵"},
	"癸": {bazi.Fire, "少徵"},
}

// mainQiPeriods are the six seasonal qi, each spanning four solar terms.
var mainQiPeriods = []struct {
	qi    MainQi
	terms []string
}{
	{MainQi{"厥阴风木", bazi.Wood}, []string{"大寒", "立春", "雨水", "惊蛰"}},
	{MainQi{"少阴君火", bazi.Fire}, []string{"春分", "清明", "谷雨", "立夏"}},
	{MainQi{"少阳相火", bazi.Fire}, []string{"小满", "芒种", "夏至", "小暑"}},
	{MainQi{"太阴湿土", bazi.Earth}, []string{"大暑", "立秋", "处暑", "白露"}},
	{MainQi{"阳明燥金", bazi.Metal}, []string{"秋分", "寒露", "霜降", "立冬"}},
	{MainQi{"太阳寒水", bazi.Water}, []string{"小雪", "大雪", "冬至", "小寒"}},
}

// guestQiByBranch maps each year branch to its guest qi. Opposite
// branches (子/午, 丑/未, …) share a value by construction.
var guestQiByBranch = map[string]GuestQi{
	"子": {"少阴君火", "阳明燥金"},
	"午": {"少阴君火", "阳明燥金"},
	"丑": {"太阴湿土", "太阳寒水"},
	"未": {"太阴湿土", "太阳寒水"},
	"寅": {"少阳相火", "厥阴风木"},
	"申": {"少阳相火", "厥阴风木"},
	"卯": {"阳明燥金", "少阴君火"},
	"酉": {"阳明燥金", "少阴君火"},
	"辰": {"太阳寒水", "太阴湿土"},
	"戌": {"太阳寒水", "太阴湿土"},
	"巳": {"厥阴风木", "少阳相火"},
	"亥": {"厥阴风木", "少阳相火"},
}

// FiveCircuitsSixQi resolves the qi state for a calendar date: year
// luck from the year stem, main qi from the current solar term's
// period, guest qi from the year branch.
func FiveCircuitsSixQi(year, month, day int) QiState {
	yp := bazi.YearPillar(year)
	term := CurrentSolarTerm(month, day)

	mainQi := mainQiPeriods[0].qi
found:
	for _, p := range mainQiPeriods {
		for _, t := range p.terms {
			if t == term {
				mainQi = p.qi
				break found
			}
		}
	}

	return QiState{
		YearLuck:         yearLuckByStem[yp.Stem],
		MainQi:           mainQi,
		GuestQi:          guestQiByBranch[yp.Branch],
		CurrentSolarTerm: term,
	}
}
