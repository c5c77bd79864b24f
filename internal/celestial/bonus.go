package celestial

import (
	"fmt"
	"math"
	"time"

	"tianji/internal/bazi"
)

// BonusDetail is one factor of the combined bonus: its raw multiplier
// plus a human-readable descriptor for display.
type BonusDetail struct {
	Factor string  `json:"factor"`
	Value  float64 `json:"value"`
	Desc   string  `json:"desc"`
}

// CultivationBonus is the weighted combination of all six factors.
type CultivationBonus struct {
	Total   float64 `json:"total"`
	Details struct {
		Weather     BonusDetail `json:"weather"`
		Temperature BonusDetail `json:"temperature"`
		Qi          BonusDetail `json:"wuYun"`
		Meridian    BonusDetail `json:"ziWu"`
		Hour        BonusDetail `json:"hour"`
		Moon        BonusDetail `json:"moon"`
	} `json:"details"`
}

// Snapshot bundles the full almanac state for one instant and one user
// element.
type Snapshot struct {
	Weather   Reading          `json:"weather"`
	Qi        QiState          `json:"wuYunLiuQi"`
	Meridian  MeridianSlot     `json:"ziWuLiuZhu"`
	MoonPhase MoonPhase        `json:"moonPhase"`
	Bonus     CultivationBonus `json:"bonus"`
}

// Factor weights. They sum to 1 so the total stays centered near the
// individual multipliers.
const (
	weightWeather     = 0.15
	weightTemperature = 0.10
	weightQi          = 0.25
	weightMeridian    = 0.20
	weightHour        = 0.10
	weightMoon        = 0.20
)

// hourBonusByBranchSlot holds one multiplier per two-hour branch window,
// peaking near midnight and dawn and dipping at midday.
var hourBonusByBranchSlot = [12]float64{
	1.10, // 子 23-1
	1.05, // 丑 1-3
	1.08, // 寅 3-5
	1.10, // 卯 5-7
	1.05, // 辰 7-9
	1.00, // 巳 9-11
	0.95, // 午 11-13
	0.98, // 未 13-15
	1.02, // 申 15-17
	1.05, // 酉 17-19
	1.08, // 戌 19-21
	1.10, // 亥 21-23
}

func hourBonus(hour int) float64 {
	return hourBonusByBranchSlot[bazi.HourBranchIndex(hour)]
}

// hourName labels the two-hour window for display, e.g. "子时(23-1)".
func hourName(hour int) string {
	slot := SlotForHour(hour)
	return fmt.Sprintf("%s时(%d-%d)", slot.Branch, slot.Start, slot.End)
}

// affinity scores the user's element against another element:
// boosted when generatively produced-by (相生), reduced when
// overcome-by (相克), neutral otherwise.
func affinity(user, other bazi.Element, boost, penalty float64) float64 {
	if user.Generates() == other {
		return boost
	}
	if user.Overcomes() == other {
		return penalty
	}
	return 1.00
}

// CombineBonus computes the weighted cultivation bonus from all six
// factors. The total is rounded to two decimal places; the breakdown
// keeps each factor's raw value and descriptor.
func CombineBonus(userElement bazi.Element, weather Reading, qi QiState, slot MeridianSlot, hour int, moon MoonPhase) CultivationBonus {
	wb := weatherBonus(weather.Condition)
	tb := temperatureBonus(weather.Temperature)
	qb := affinity(userElement, qi.MainQi.Element, 1.15, 0.85)
	mb := affinity(userElement, slot.Element, 1.12, 0.88)
	hb := hourBonus(hour)
	moonB := moon.Bonus

	total := wb*weightWeather +
		tb*weightTemperature +
		qb*weightQi +
		mb*weightMeridian +
		hb*weightHour +
		moonB*weightMoon

	var bonus CultivationBonus
	bonus.Total = math.Round(total*100) / 100
	bonus.Details.Weather = BonusDetail{"天气", wb, weather.Condition}
	bonus.Details.Temperature = BonusDetail{"温度", tb, fmt.Sprintf("%d°C", weather.Temperature)}
	bonus.Details.Qi = BonusDetail{"五运六气", qb, qi.MainQi.Name}
	bonus.Details.Meridian = BonusDetail{"子午流注", mb, fmt.Sprintf("%s时 %s", slot.Branch, slot.Meridian)}
	bonus.Details.Hour = BonusDetail{"时辰", hb, hourName(hour)}
	bonus.Details.Moon = BonusDetail{"月相", moonB, moon.Name}
	return bonus
}

// SnapshotAt computes the full celestial snapshot for an instant and a
// user element. A nil reading substitutes the documented default so the
// calculation always completes.
func SnapshotAt(userElement bazi.Element, reading *Reading, t time.Time) Snapshot {
	weather := DefaultReading()
	if reading != nil {
		weather = *reading
	}

	qi := FiveCircuitsSixQi(t.Year(), int(t.Month()), t.Day())
	slot := SlotForHour(t.Hour())
	moon := MoonPhaseAt(t)

	return Snapshot{
		Weather:   weather,
		Qi:        qi,
		Meridian:  slot,
		MoonPhase: moon,
		Bonus:     CombineBonus(userElement, weather, qi, slot, t.Hour(), moon),
	}
}
