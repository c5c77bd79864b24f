package ops

import (
	"context"
	"database/sql"
	"time"

	"tianji/internal/bazi"
	"tianji/internal/chart"
	"tianji/internal/db"
	"tianji/internal/errors"
)

// DivineMode controls collision behavior for named charts.
type DivineMode string

const (
	DivineModeError   DivineMode = "error"   // default: fail on name collision
	DivineModeReplace DivineMode = "replace" // retire the existing chart
)

// DivineInput contains parameters for the Divine operation.
type DivineInput struct {
	Name     *string // optional; named charts can be fetched by name
	Year     int
	Month    int
	Day      int
	Hour     int
	Advanced bool       // include hidden-stem weights in the tally
	Mode     DivineMode // default: DivineModeError
	Persist  *bool      // default: true (nil means default)
}

// DivineOutput contains the result of the Divine operation.
type DivineOutput struct {
	ID            string             `json:"id,omitempty"`
	Name          *string            `json:"name,omitempty"`
	Chart         bazi.Chart         `json:"bazi"`
	Pillars       string             `json:"pillars"`
	Tally         bazi.Tally         `json:"wuxing"`
	AdvancedTally *bazi.Tally        `json:"wuxingAdvanced,omitempty"`
	Root          bazi.SpiritualRoot `json:"spiritualRoot"`
}

// Divine computes the four pillars, element tally, and spiritual root
// for a birth instant, and by default persists the result.
func Divine(ctx context.Context, database *sql.DB, input DivineInput) (*DivineOutput, error) {
	if input.Mode == "" {
		input.Mode = DivineModeError
	}
	if input.Mode != DivineModeError && input.Mode != DivineModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace")
	}

	if input.Month < 1 || input.Month > 12 {
		return nil, errors.NewInvalidRequest("month must be between 1 and 12")
	}
	if input.Hour < 0 || input.Hour > 23 {
		return nil, errors.NewInvalidRequest("hour must be between 0 and 23")
	}
	if !bazi.IsValidDate(input.Year, input.Month, input.Day) {
		return nil, errors.NewInvalidDate(input.Year, input.Month, input.Day)
	}

	c, err := bazi.Calculate(input.Year, input.Month, input.Day, input.Hour)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	tally := bazi.TallyChart(c)
	root := bazi.Classify(tally, c)

	output := &DivineOutput{
		Chart:   c,
		Pillars: c.String(),
		Tally:   tally,
		Root:    root,
	}
	if input.Advanced {
		adv := bazi.TallyChartAdvanced(c)
		output.AdvancedTally = &adv
	}

	persist := true
	if input.Persist != nil {
		persist = *input.Persist
	}
	if !persist {
		return output, nil
	}

	var nameRaw, nameNorm *string
	input.Name = cleanOptionalString(input.Name)
	if input.Name != nil {
		normalized := chart.Normalize(*input.Name)
		nameRaw = input.Name
		nameNorm = &normalized
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	now := time.Now().Unix()
	record := &chart.Record{
		ID:         id,
		NameRaw:    nameRaw,
		NameNorm:   nameNorm,
		BirthYear:  input.Year,
		BirthMonth: input.Month,
		BirthDay:   input.Day,
		BirthHour:  input.Hour,
		Chart:      c,
		Tally:      tally,
		Root:       root,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if input.Mode == DivineModeReplace {
		if err := db.ReplaceByName(database, record); err != nil {
			return nil, err
		}
	} else {
		if err := db.Insert(database, record); err != nil {
			if err == db.ErrUniqueConstraint {
				return nil, errors.NewNameAlreadyExists(*nameRaw)
			}
			return nil, err
		}
	}

	output.ID = id
	output.Name = nameRaw
	return output, nil
}
