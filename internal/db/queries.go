package db

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"tianji/internal/chart"
	"tianji/internal/errors"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.TianjiError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

// Insert stores a new chart record in the database.
func Insert(db *sql.DB, r *chart.Record) error {
	pillarsJSON, err := json.Marshal(r.Chart)
	if err != nil {
		return errors.NewInternal(err)
	}
	tallyJSON, err := json.Marshal(r.Tally)
	if err != nil {
		return errors.NewInternal(err)
	}
	rootJSON, err := json.Marshal(r.Root)
	if err != nil {
		return errors.NewInternal(err)
	}

	nameRaw := toNullString(r.NameRaw)
	nameNorm := toNullString(r.NameNorm)

	query := `
		INSERT INTO charts (
			id, name_raw, name_norm,
			birth_year, birth_month, birth_day, birth_hour,
			pillars_json, tally_json, root_json,
			primary_element, root_bonus,
			created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`

	_, err = db.Exec(query,
		r.ID, nameRaw, nameNorm,
		r.BirthYear, r.BirthMonth, r.BirthDay, r.BirthHour,
		string(pillarsJSON), string(tallyJSON), string(rootJSON),
		string(r.Root.PrimaryElement), r.Root.Bonus,
		r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	return nil
}

// ReplaceByName atomically retires any active chart holding the record's
// normalized name, then inserts the new record. Used by divine mode:replace.
func ReplaceByName(db *sql.DB, r *chart.Record) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	if r.NameNorm != nil {
		now := time.Now().Unix()
		if _, err := tx.Exec(
			`UPDATE charts SET deleted_at = ? WHERE name_norm = ? AND deleted_at IS NULL`,
			now, *r.NameNorm,
		); err != nil {
			return errors.NewInternal(err)
		}
	}

	pillarsJSON, err := json.Marshal(r.Chart)
	if err != nil {
		return errors.NewInternal(err)
	}
	tallyJSON, err := json.Marshal(r.Tally)
	if err != nil {
		return errors.NewInternal(err)
	}
	rootJSON, err := json.Marshal(r.Root)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO charts (
			id, name_raw, name_norm,
			birth_year, birth_month, birth_day, birth_hour,
			pillars_json, tally_json, root_json,
			primary_element, root_bonus,
			created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`
	if _, err := tx.Exec(query,
		r.ID, toNullString(r.NameRaw), toNullString(r.NameNorm),
		r.BirthYear, r.BirthMonth, r.BirthDay, r.BirthHour,
		string(pillarsJSON), string(tallyJSON), string(rootJSON),
		string(r.Root.PrimaryElement), r.Root.Bonus,
		r.CreatedAt, r.UpdatedAt,
	); err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

const chartColumns = `id, name_raw, name_norm,
		birth_year, birth_month, birth_day, birth_hour,
		pillars_json, tally_json, root_json,
		created_at, updated_at, deleted_at`

// GetByID retrieves a chart record by its ULID.
// If includeDeleted is false, soft-deleted records are excluded.
func GetByID(db *sql.DB, id string, includeDeleted bool) (*chart.Record, error) {
	query := `SELECT ` + chartColumns + ` FROM charts WHERE id = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	row := db.QueryRow(query, id)
	r, err := scanChart(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return r, nil
}

// GetByName retrieves a chart record by normalized name.
// If includeDeleted is false, soft-deleted records are excluded.
func GetByName(db *sql.DB, nameNorm string, includeDeleted bool) (*chart.Record, error) {
	query := `SELECT ` + chartColumns + ` FROM charts WHERE name_norm = ?`
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	} else {
		// If both active and soft-deleted records exist for the same name, prefer the active one.
		// If no active record exists, return the most recently updated deleted record.
		query += " ORDER BY (deleted_at IS NULL) DESC, updated_at DESC LIMIT 1"
	}

	row := db.QueryRow(query, nameNorm)
	r, err := scanChart(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(nameNorm)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return r, nil
}

// CheckNameExists checks if an active chart with the given name exists.
func CheckNameExists(db *sql.DB, nameNorm string) (bool, error) {
	query := `
		SELECT 1 FROM charts
		WHERE name_norm = ? AND deleted_at IS NULL
		LIMIT 1
	`

	var exists int
	err := db.QueryRow(query, nameNorm).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}

	return true, nil
}

// List retrieves chart summaries ordered by updated_at descending, with
// pagination. Returns the page of summaries plus the total match count.
func List(db *sql.DB, limit, offset int, includeDeleted bool) ([]chart.Summary, int, error) {
	where := ""
	if !includeDeleted {
		where = " WHERE deleted_at IS NULL"
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM charts` + where
	if err := db.QueryRow(countQuery).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `SELECT ` + chartColumns + ` FROM charts` + where + `
		ORDER BY updated_at DESC, id DESC
		LIMIT ? OFFSET ?`

	rows, err := db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	summaries := []chart.Summary{}
	for rows.Next() {
		r, err := scanChartRows(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		summaries = append(summaries, chart.Summarize(r))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return summaries, total, nil
}

// SoftDelete marks a chart as deleted by setting deleted_at.
func SoftDelete(db *sql.DB, id string) error {
	now := time.Now().Unix()

	query := `
		UPDATE charts
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := db.Exec(query, now, id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanChart.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanChart(row *sql.Row) (*chart.Record, error) {
	return scanChartFrom(row)
}

func scanChartRows(rows *sql.Rows) (*chart.Record, error) {
	return scanChartFrom(rows)
}

// scanChartFrom scans a single row into a Record, decoding the JSON columns.
func scanChartFrom(row rowScanner) (*chart.Record, error) {
	var (
		r           chart.Record
		nameRaw     sql.NullString
		nameNorm    sql.NullString
		pillarsJSON string
		tallyJSON   string
		rootJSON    string
		deletedAt   sql.NullInt64
	)

	err := row.Scan(
		&r.ID, &nameRaw, &nameNorm,
		&r.BirthYear, &r.BirthMonth, &r.BirthDay, &r.BirthHour,
		&pillarsJSON, &tallyJSON, &rootJSON,
		&r.CreatedAt, &r.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	r.NameRaw = fromNullString(nameRaw)
	r.NameNorm = fromNullString(nameNorm)

	if deletedAt.Valid {
		r.DeletedAt = &deletedAt.Int64
	}

	if err := json.Unmarshal([]byte(pillarsJSON), &r.Chart); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tallyJSON), &r.Tally); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rootJSON), &r.Root); err != nil {
		return nil, err
	}

	return &r, nil
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
