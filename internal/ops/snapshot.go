package ops

import (
	"database/sql"
	"time"

	"tianji/internal/bazi"
	"tianji/internal/celestial"
	"tianji/internal/chart"
	"tianji/internal/config"
	"tianji/internal/db"
	"tianji/internal/errors"
)

// SnapshotInput contains parameters for the Snapshot operation.
// The user element comes from a stored chart (ID or Name) or is given
// directly as Element; exactly one of the two sources is required.
type SnapshotInput struct {
	ID      string
	Name    string
	Element string // one of 金木水火土, used when no chart is referenced

	Weather *celestial.Reading // optional; nil uses configured defaults
	At      time.Time          // zero value means now
}

// SnapshotOutput contains the result of the Snapshot operation.
type SnapshotOutput struct {
	ChartID string             `json:"chartId,omitempty"`
	Element bazi.Element       `json:"element"`
	At      string             `json:"at"`
	celestial.Snapshot
}

// Snapshot computes the celestial almanac state for an instant: weather
// and temperature factors, five-circuits-six-qi, the meridian clock,
// moon phase, and the combined cultivation bonus.
func Snapshot(database *sql.DB, cfg *config.Config, input SnapshotInput) (*SnapshotOutput, error) {
	element, chartID, err := resolveElement(database, input.ID, input.Name, input.Element)
	if err != nil {
		return nil, err
	}

	at := input.At
	if at.IsZero() {
		at = time.Now()
	}

	reading := input.Weather
	if reading == nil {
		r := configuredReading(cfg)
		reading = &r
	}

	snap := celestial.SnapshotAt(element, reading, at)

	return &SnapshotOutput{
		ChartID:  chartID,
		Element:  element,
		At:       at.Format(time.RFC3339),
		Snapshot: snap,
	}, nil
}

// resolveElement determines the user element from a chart reference or
// an explicit element. Chart reference wins when both are given.
func resolveElement(database *sql.DB, id, name, element string) (bazi.Element, string, error) {
	if id != "" || name != "" {
		addr, err := ValidateAddress(id, name)
		if err != nil {
			return "", "", err
		}
		var r *chart.Record
		if addr.ByID {
			r, err = db.GetByID(database, addr.ID, false)
		} else {
			r, err = db.GetByName(database, addr.Name, false)
		}
		if err != nil {
			return "", "", err
		}
		return r.Root.PrimaryElement, r.ID, nil
	}

	el := bazi.Element(element)
	if !el.Valid() {
		return "", "", errors.NewInvalidRequest("element must be one of 金木水火土")
	}
	return el, "", nil
}

// configuredReading builds the fallback weather reading, applying any
// overrides from config on top of the built-in default.
func configuredReading(cfg *config.Config) celestial.Reading {
	r := celestial.DefaultReading()
	if cfg == nil {
		return r
	}
	if cfg.DefaultWeather.Condition != "" {
		r.Condition = cfg.DefaultWeather.Condition
	}
	if cfg.DefaultWeather.Temperature != nil {
		r.Temperature = *cfg.DefaultWeather.Temperature
	}
	if cfg.DefaultWeather.Humidity != nil {
		r.Humidity = *cfg.DefaultWeather.Humidity
	}
	return r
}
