// Package celestial computes the time-of-day almanac state (lunar
// phase, solar term, five-circuits-six-qi, meridian clock) and combines
// it with weather and a user's element affinity into a cultivation
// bonus. Everything here is a pure function of its inputs; weather
// retrieval belongs to an external collaborator.
package celestial

// Reading is an already-resolved weather observation. The engine never
// fetches weather itself; callers pass a Reading or nil for the
// documented default.
type Reading struct {
	Temperature   int    `json:"temperature"` // °C
	Condition     string `json:"weather"`
	Humidity      int    `json:"humidity"` // percent
	WindDirection string `json:"windDirection,omitempty"`
	WindScale     string `json:"windScale,omitempty"`
	Pressure      int    `json:"pressure,omitempty"`
	Visibility    int    `json:"visibility,omitempty"`
}

// DefaultReading is substituted when no weather is supplied, so the
// bonus calculation never fails outright.
func DefaultReading() Reading {
	return Reading{
		Temperature:   20,
		Condition:     "晴",
		Humidity:      50,
		WindDirection: "东北",
		WindScale:     "2",
		Pressure:      1013,
		Visibility:    10,
	}
}

// conditionBonus maps weather condition strings to multipliers.
// Unrecognized conditions fall back to 1.0.
var conditionBonus = map[string]float64{
	"晴":  1.10,
	"多云": 1.05,
	"阴":  1.00,
	"小雨": 0.95,
	"中雨": 0.90,
	"大雨": 0.85,
	"雪":  0.80,
	"雾霾": 0.75,
	"雷暴": 1.15,
}

func weatherBonus(condition string) float64 {
	if b, ok := conditionBonus[condition]; ok {
		return b
	}
	return 1.00
}

// temperatureBonus favors the 15–25°C band and penalizes extremes.
func temperatureBonus(temp int) float64 {
	switch {
	case temp >= 15 && temp <= 25:
		return 1.05
	case temp < 0 || temp > 35:
		return 0.90
	default:
		return 0.98
	}
}
