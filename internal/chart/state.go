package chart

// CultivationState tracks a chart's progress through the realms.
// One row per chart, created lazily on the first session.
type CultivationState struct {
	ChartID string `json:"chartId"`

	// Realm is the current realm name (炼气, 筑基, ...)
	Realm string `json:"realm"`

	// CurrentExp is progress within the current realm
	CurrentExp float64 `json:"currentExp"`

	// TotalExp is lifetime accumulated experience
	TotalExp float64 `json:"totalExp"`

	// SpiritStones is the lifetime stone balance, 1 per 10 credited minutes
	SpiritStones int `json:"spiritStones"`

	// TodayMinutes counts minutes credited on LastDay, for the daily cap
	TodayMinutes int    `json:"todayMinutes"`
	LastDay      string `json:"lastDay"`

	// SessionStartedAt is the Unix timestamp of the open session,
	// nil when no session is running
	SessionStartedAt *int64 `json:"sessionStartedAt,omitempty"`

	UpdatedAt int64 `json:"updated_at"`
}

// Session is one completed cultivation sitting.
type Session struct {
	ID        string  `json:"id"`
	ChartID   string  `json:"chartId"`
	StartedAt int64   `json:"startedAt"`
	EndedAt   int64   `json:"endedAt"`
	Minutes   int     `json:"minutes"`
	Bonus     float64 `json:"bonus"`
	ExpGained float64 `json:"expGained"`
}
