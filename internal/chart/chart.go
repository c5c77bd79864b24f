// Package chart defines the persisted birth-chart record and its
// name normalization rules.
package chart

import (
	"regexp"
	"strings"

	"tianji/internal/bazi"
)

// Record is a stored divination: the birth instant, its computed
// pillars, tally, and spiritual root. The computed fields are derived
// values, recomputed on insert and never edited individually.
type Record struct {
	// ID is a ULID that uniquely identifies this record
	ID string `json:"id"`

	// NameRaw is the seeker's name as provided (nullable)
	NameRaw *string `json:"name,omitempty"`

	// NameNorm is the normalized name used for lookups (nullable)
	NameNorm *string `json:"-"`

	// Birth instant as plain civil date plus hour
	BirthYear  int `json:"birthYear"`
	BirthMonth int `json:"birthMonth"`
	BirthDay   int `json:"birthDay"`
	BirthHour  int `json:"birthHour"`

	// Chart holds the four computed pillars
	Chart bazi.Chart `json:"bazi"`

	// Tally is the basic five-element count (sums to 8)
	Tally bazi.Tally `json:"wuxing"`

	// Root is the spiritual-root classification
	Root bazi.SpiritualRoot `json:"spiritualRoot"`

	// CreatedAt is the Unix timestamp when the record was created
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp when the record was last updated
	UpdatedAt int64 `json:"updated_at"`

	// DeletedAt is the Unix timestamp for soft delete (nullable)
	DeletedAt *int64 `json:"deleted_at,omitempty"`
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize lowercases, trims, and collapses internal whitespace so
// name lookups are insensitive to spacing and case.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return s
}

// Summary is the listing projection of a record.
type Summary struct {
	ID             string       `json:"id"`
	Name           *string      `json:"name,omitempty"`
	BirthYear      int          `json:"birthYear"`
	BirthMonth     int          `json:"birthMonth"`
	BirthDay       int          `json:"birthDay"`
	BirthHour      int          `json:"birthHour"`
	Pillars        string       `json:"pillars"`
	RootName       string       `json:"rootName"`
	PrimaryElement bazi.Element `json:"primaryElement"`
	UpdatedAt      int64        `json:"updated_at"`
	DeletedAt      *int64       `json:"deleted_at,omitempty"`
}

// Summarize projects a record into its listing form.
func Summarize(r *Record) Summary {
	return Summary{
		ID:             r.ID,
		Name:           r.NameRaw,
		BirthYear:      r.BirthYear,
		BirthMonth:     r.BirthMonth,
		BirthDay:       r.BirthDay,
		BirthHour:      r.BirthHour,
		Pillars:        r.Chart.String(),
		RootName:       r.Root.Name,
		PrimaryElement: r.Root.PrimaryElement,
		UpdatedAt:      r.UpdatedAt,
		DeletedAt:      r.DeletedAt,
	}
}
