package db

import (
	"database/sql"
	"time"

	"tianji/internal/chart"
	"tianji/internal/errors"
)

// GetCultivation retrieves the cultivation state for a chart.
// Returns NOT_FOUND if the chart has never cultivated.
func GetCultivation(db *sql.DB, chartID string) (*chart.CultivationState, error) {
	query := `
		SELECT chart_id, realm, current_exp, total_exp, spirit_stones,
			today_minutes, last_day, session_started_at, updated_at
		FROM cultivation
		WHERE chart_id = ?
	`

	var (
		s         chart.CultivationState
		startedAt sql.NullInt64
	)
	err := db.QueryRow(query, chartID).Scan(
		&s.ChartID, &s.Realm, &s.CurrentExp, &s.TotalExp, &s.SpiritStones,
		&s.TodayMinutes, &s.LastDay, &startedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(chartID)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	if startedAt.Valid {
		s.SessionStartedAt = &startedAt.Int64
	}

	return &s, nil
}

// UpsertCultivation inserts or replaces the cultivation state for a chart.
// Sets updated_at to the current timestamp.
func UpsertCultivation(db *sql.DB, s *chart.CultivationState) error {
	now := time.Now().Unix()

	var startedAt sql.NullInt64
	if s.SessionStartedAt != nil {
		startedAt = sql.NullInt64{Int64: *s.SessionStartedAt, Valid: true}
	}

	query := `
		INSERT INTO cultivation (
			chart_id, realm, current_exp, total_exp, spirit_stones,
			today_minutes, last_day, session_started_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chart_id) DO UPDATE SET
			realm = excluded.realm,
			current_exp = excluded.current_exp,
			total_exp = excluded.total_exp,
			spirit_stones = excluded.spirit_stones,
			today_minutes = excluded.today_minutes,
			last_day = excluded.last_day,
			session_started_at = excluded.session_started_at,
			updated_at = excluded.updated_at
	`

	_, err := db.Exec(query,
		s.ChartID, s.Realm, s.CurrentExp, s.TotalExp, s.SpiritStones,
		s.TodayMinutes, s.LastDay, startedAt, now,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	s.UpdatedAt = now
	return nil
}

// InsertSession records a completed cultivation session.
func InsertSession(db *sql.DB, sess *chart.Session) error {
	query := `
		INSERT INTO sessions (
			id, chart_id, started_at, ended_at, minutes, bonus, exp_gained
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		sess.ID, sess.ChartID, sess.StartedAt, sess.EndedAt,
		sess.Minutes, sess.Bonus, sess.ExpGained,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// ListSessions retrieves the most recent sessions for a chart,
// newest first.
func ListSessions(db *sql.DB, chartID string, limit int) ([]chart.Session, error) {
	query := `
		SELECT id, chart_id, started_at, ended_at, minutes, bonus, exp_gained
		FROM sessions
		WHERE chart_id = ?
		ORDER BY ended_at DESC
		LIMIT ?
	`

	rows, err := db.Query(query, chartID, limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	sessions := []chart.Session{}
	for rows.Next() {
		var s chart.Session
		if err := rows.Scan(
			&s.ID, &s.ChartID, &s.StartedAt, &s.EndedAt,
			&s.Minutes, &s.Bonus, &s.ExpGained,
		); err != nil {
			return nil, errors.NewInternal(err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return sessions, nil
}
