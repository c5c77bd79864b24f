package ops

import (
	"context"
	"database/sql"
	"time"

	"tianji/internal/celestial"
	"tianji/internal/chart"
	"tianji/internal/config"
	"tianji/internal/db"
	"tianji/internal/errors"
)

// CultivateStartInput contains parameters for the CultivateStart operation.
type CultivateStartInput struct {
	ID   string
	Name string
}

// CultivateStartOutput contains the result of the CultivateStart operation.
type CultivateStartOutput struct {
	ChartID   string `json:"chartId"`
	Realm     Realm  `json:"realm"`
	StartedAt int64  `json:"startedAt"`
}

// CultivateStart opens a cultivation session for a chart. Only one
// session can be open per chart.
func CultivateStart(ctx context.Context, database *sql.DB, input CultivateStartInput) (*CultivateStartOutput, error) {
	record, err := resolveChart(database, input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	state, err := db.GetCultivation(database, record.ID)
	if errors.Is(err, errors.ErrNotFound) {
		state = freshState(record.ID)
	} else if err != nil {
		return nil, err
	}

	if state.SessionStartedAt != nil {
		return nil, errors.NewConflict("a cultivation session is already running for this chart")
	}

	now := time.Now().Unix()
	state.SessionStartedAt = &now
	if err := db.UpsertCultivation(database, state); err != nil {
		return nil, err
	}

	return &CultivateStartOutput{
		ChartID:   record.ID,
		Realm:     realmByName(state.Realm),
		StartedAt: now,
	}, nil
}

// CultivateEndInput contains parameters for the CultivateEnd operation.
type CultivateEndInput struct {
	ID      string
	Name    string
	Weather *celestial.Reading // optional; nil uses configured defaults
}

// CultivateEndOutput contains the result of the CultivateEnd operation.
type CultivateEndOutput struct {
	ChartID           string                     `json:"chartId"`
	Minutes           int                        `json:"minutes"`
	CreditedMinutes   int                        `json:"creditedMinutes"`
	Capped            bool                       `json:"capped"`
	RootBonus         float64                    `json:"rootBonus"`
	CelestialBonus    celestial.CultivationBonus `json:"celestialBonus"`
	ExpGained         float64                    `json:"expGained"`
	SpiritStoneReward int                        `json:"spiritStoneReward"`
	SpiritStones      int                        `json:"spiritStones"`
	Realm             Realm                      `json:"realm"`
	Breakthroughs     int                        `json:"breakthroughs"`
	CurrentExp        float64                    `json:"currentExp"`
	TotalExp          float64                    `json:"totalExp"`
}

// CultivateEnd closes the open session and credits experience:
// minutes × root bonus × celestial bonus × base rate, subject to the
// daily minutes cap. Breakthroughs happen automatically when the
// accumulated exp covers the current realm's requirement.
func CultivateEnd(ctx context.Context, database *sql.DB, cfg *config.Config, input CultivateEndInput) (*CultivateEndOutput, error) {
	record, err := resolveChart(database, input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	state, err := db.GetCultivation(database, record.ID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NewConflict("no cultivation session is running for this chart")
		}
		return nil, err
	}
	if state.SessionStartedAt == nil {
		return nil, errors.NewConflict("no cultivation session is running for this chart")
	}

	now := time.Now()
	started := *state.SessionStartedAt
	minutes := int(now.Unix()-started) / 60
	if minutes < 1 {
		// A completed sitting always counts for something
		minutes = 1
	}

	// Daily cap, resetting at local midnight
	today := now.Format("2006-01-02")
	if state.LastDay != today {
		state.LastDay = today
		state.TodayMinutes = 0
	}
	dailyCap := config.DefaultConfig().DailyMinutesCap
	if cfg != nil && cfg.DailyMinutesCap > 0 {
		dailyCap = cfg.DailyMinutesCap
	}
	credited := minutes
	capped := false
	if state.TodayMinutes+credited > dailyCap {
		credited = dailyCap - state.TodayMinutes
		capped = true
		if credited < 0 {
			credited = 0
		}
	}

	reading := input.Weather
	if reading == nil {
		r := configuredReading(cfg)
		reading = &r
	}
	snap := celestial.SnapshotAt(record.Root.PrimaryElement, reading, now)

	baseRate := config.DefaultConfig().BaseExpPerMinute
	if cfg != nil && cfg.BaseExpPerMinute > 0 {
		baseRate = cfg.BaseExpPerMinute
	}
	expGained := float64(credited) * record.Root.Bonus * snap.Bonus.Total * float64(baseRate)

	realm, currentExp, breakthroughs := advance(realmByName(state.Realm), state.CurrentExp, expGained)

	// One spirit stone per 10 credited minutes
	stoneReward := credited / 10

	state.Realm = realm.Name
	state.CurrentExp = currentExp
	state.TotalExp += expGained
	state.SpiritStones += stoneReward
	state.TodayMinutes += credited
	state.SessionStartedAt = nil
	if err := db.UpsertCultivation(database, state); err != nil {
		return nil, err
	}

	sessionID, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	sess := &chart.Session{
		ID:        sessionID,
		ChartID:   record.ID,
		StartedAt: started,
		EndedAt:   now.Unix(),
		Minutes:   credited,
		Bonus:     record.Root.Bonus * snap.Bonus.Total,
		ExpGained: expGained,
	}
	if err := db.InsertSession(database, sess); err != nil {
		return nil, err
	}

	return &CultivateEndOutput{
		ChartID:           record.ID,
		Minutes:           minutes,
		CreditedMinutes:   credited,
		Capped:            capped,
		RootBonus:         record.Root.Bonus,
		CelestialBonus:    snap.Bonus,
		ExpGained:         expGained,
		SpiritStoneReward: stoneReward,
		SpiritStones:      state.SpiritStones,
		Realm:             realm,
		Breakthroughs:     breakthroughs,
		CurrentExp:        currentExp,
		TotalExp:          state.TotalExp,
	}, nil
}

// CultivateStatusInput contains parameters for the CultivateStatus operation.
type CultivateStatusInput struct {
	ID           string
	Name         string
	SessionLimit int // recent sessions to include, default 10
}

// CultivateStatusOutput contains the result of the CultivateStatus operation.
type CultivateStatusOutput struct {
	ChartID      string          `json:"chartId"`
	Realm        Realm           `json:"realm"`
	NextRealm    *Realm          `json:"nextRealm,omitempty"`
	CurrentExp   float64         `json:"currentExp"`
	TotalExp     float64         `json:"totalExp"`
	SpiritStones int             `json:"spiritStones"`
	TodayMinutes int             `json:"todayMinutes"`
	InSession    bool            `json:"inSession"`
	Sessions     []chart.Session `json:"sessions"`
}

// CultivateStatus reports a chart's realm progress and recent sessions.
// Charts that have never cultivated report the first realm at zero exp.
func CultivateStatus(database *sql.DB, input CultivateStatusInput) (*CultivateStatusOutput, error) {
	record, err := resolveChart(database, input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	state, err := db.GetCultivation(database, record.ID)
	if errors.Is(err, errors.ErrNotFound) {
		state = freshState(record.ID)
	} else if err != nil {
		return nil, err
	}

	limit := input.SessionLimit
	if limit <= 0 {
		limit = DefaultSessionLimit
	}
	sessions, err := db.ListSessions(database, record.ID, limit)
	if err != nil {
		return nil, err
	}

	realm := realmByName(state.Realm)
	out := &CultivateStatusOutput{
		ChartID:      record.ID,
		Realm:        realm,
		CurrentExp:   state.CurrentExp,
		TotalExp:     state.TotalExp,
		SpiritStones: state.SpiritStones,
		TodayMinutes: state.TodayMinutes,
		InSession:    state.SessionStartedAt != nil,
		Sessions:     sessions,
	}
	if next := nextRealm(realm); next.Name != realm.Name {
		out.NextRealm = &next
	}
	return out, nil
}

// resolveChart loads an active chart by ID or name.
func resolveChart(database *sql.DB, id, name string) (*chart.Record, error) {
	addr, err := ValidateAddress(id, name)
	if err != nil {
		return nil, err
	}
	if addr.ByID {
		return db.GetByID(database, addr.ID, false)
	}
	return db.GetByName(database, addr.Name, false)
}

// freshState is the zero progression for a chart's first session.
func freshState(chartID string) *chart.CultivationState {
	return &chart.CultivationState{
		ChartID: chartID,
		Realm:   FirstRealm().Name,
	}
}
