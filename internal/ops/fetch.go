package ops

import (
	"database/sql"

	"tianji/internal/chart"
	"tianji/internal/db"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID             string
	Name           string
	IncludeDeleted bool
}

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	chart.Record // embedded (copy, not pointer)
}

// Fetch retrieves a stored chart by ID or name.
func Fetch(database *sql.DB, input FetchInput) (*FetchOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	var r *chart.Record
	if addr.ByID {
		r, err = db.GetByID(database, addr.ID, input.IncludeDeleted)
	} else {
		r, err = db.GetByName(database, addr.Name, input.IncludeDeleted)
	}
	if err != nil {
		return nil, err
	}

	return &FetchOutput{Record: *r}, nil
}
