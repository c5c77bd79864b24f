package ops

import (
	"database/sql"
	"math/rand"
	"time"

	"tianji/internal/bazi"
	"tianji/internal/errors"
	"tianji/internal/wisdom"
)

// WisdomInput contains parameters for the Wisdom operation.
type WisdomInput struct {
	ID      string // chart reference, optional
	Name    string
	Element string // explicit element, used when no chart is referenced

	Category string    // filter for random/collection modes
	Random   bool      // random pick instead of the daily quote
	Date     time.Time // zero value means today (daily mode only)
	Seed     *int64    // fixes the random pick, for reproducible output
}

// WisdomOutput contains the result of the Wisdom operation.
type WisdomOutput struct {
	Quote   wisdom.Quote `json:"quote"`
	Element bazi.Element `json:"element,omitempty"`
	Daily   bool         `json:"daily"`
}

// Wisdom selects a quote: deterministic per-day by default, or a random
// pick filtered by category and element.
func Wisdom(database *sql.DB, input WisdomInput) (*WisdomOutput, error) {
	var element bazi.Element
	if input.ID != "" || input.Name != "" || input.Element != "" {
		el, _, err := resolveElement(database, input.ID, input.Name, input.Element)
		if err != nil {
			return nil, err
		}
		element = el
	}

	category := wisdom.Category(input.Category)
	if input.Category != "" && !validCategory(category) {
		return nil, errors.NewInvalidRequest("category must be one of: philosophy, cultivation, universe, mind, nature")
	}

	if input.Random {
		var rng *rand.Rand
		if input.Seed != nil {
			rng = rand.New(rand.NewSource(*input.Seed))
		} else {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return &WisdomOutput{
			Quote:   wisdom.Random(rng, category, element),
			Element: element,
			Daily:   false,
		}, nil
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	return &WisdomOutput{
		Quote:   wisdom.Daily(date, element),
		Element: element,
		Daily:   true,
	}, nil
}

func validCategory(c wisdom.Category) bool {
	switch c {
	case wisdom.Philosophy, wisdom.Cultivation,
		wisdom.Universe, wisdom.Mind, wisdom.Nature:
		return true
	}
	return false
}
