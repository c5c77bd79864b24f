package ops

import (
	"context"
	"database/sql"

	"tianji/internal/db"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID   string
	Name string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete soft-deletes a chart. The record stays readable with
// include_deleted, and its name becomes available again.
func Delete(ctx context.Context, database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	addr, err := ValidateAddress(input.ID, input.Name)
	if err != nil {
		return nil, err
	}

	// Resolve the ID if addressed by name (active records only)
	var chartID string
	if addr.ByID {
		chartID = addr.ID
		if _, err := db.GetByID(database, addr.ID, false); err != nil {
			return nil, err
		}
	} else {
		r, err := db.GetByName(database, addr.Name, false)
		if err != nil {
			return nil, err
		}
		chartID = r.ID
	}

	if err := db.SoftDelete(database, chartID); err != nil {
		return nil, err
	}

	return &DeleteOutput{
		Deleted: true,
		ID:      chartID,
	}, nil
}
