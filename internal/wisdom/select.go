package wisdom

import (
	"math/rand"
	"time"

	"tianji/internal/bazi"
)

// Daily returns the quote of the day for a date, the same quote for
// every call with the same inputs. With a user element, the pool first
// narrows to quotes tagged with that element or the element it
// generates, falling back to the full corpus when the narrowed pool is
// empty.
func Daily(date time.Time, userElement bazi.Element) Quote {
	pool := corpus
	if userElement.Valid() {
		preferred := userElement.Generates()
		narrowed := make([]Quote, 0, len(pool))
		for _, q := range pool {
			if q.Element == userElement || q.Element == preferred {
				narrowed = append(narrowed, q)
			}
		}
		if len(narrowed) > 0 {
			pool = narrowed
		}
	}

	startOfYear := time.Date(date.Year(), time.January, 0, 0, 0, 0, 0, date.Location())
	dayOfYear := int(date.Sub(startOfYear).Hours() / 24)
	return pool[dayOfYear%len(pool)]
}

// Random picks uniformly from the corpus, optionally filtered by
// category and element. Filtering that empties the pool falls back to
// the full corpus. The rand source is injected so callers needing
// reproducibility can seed it; only the explicitly random API surfaces
// use true randomness.
func Random(rng *rand.Rand, category Category, element bazi.Element) Quote {
	pool := Collection(category, element)
	if len(pool) == 0 {
		pool = corpus
	}
	return pool[rng.Intn(len(pool))]
}

// Collection returns corpus entries matching the optional category and
// element filters. Zero values match everything.
func Collection(category Category, element bazi.Element) []Quote {
	out := make([]Quote, 0, len(corpus))
	for _, q := range corpus {
		if category != "" && q.Category != category {
			continue
		}
		if element != "" && q.Element != element {
			continue
		}
		out = append(out, q)
	}
	return out
}
