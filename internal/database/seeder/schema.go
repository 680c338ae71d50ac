package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"agri-match/internal/database"
)

// migratedColumns mirrors the tables created by migrations/V1__init.sql.
var migratedColumns = map[string][]string{
	"profiles": {
		"id", "role", "full_name", "preferred_region", "specialization",
		"institution_type", "qualification", "is_verified", "created_at", "updated_at",
	},
	"job_postings": {
		"id", "owner_id", "title", "location", "job_type", "required_specialization",
		"required_institution_type", "status", "status_changed_at", "created_at",
	},
	"applications": {
		"id", "job_id", "applicant_id", "match_score", "status", "cover_letter",
		"created_at", "updated_at",
	},
}

var ErrUnknownTable = errors.New("seeder: table is not part of the migrated schema")

// SchemaError lists the columns a migrated table is missing, usually because
// migrate up has not been run.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s is missing columns %s; run migrate up", e.Table, strings.Join(e.Missing, ", "))
}

// CheckSchema verifies that table has every column the migrations create.
func CheckSchema(ctx context.Context, q database.Querier, table string) error {
	want, ok := migratedColumns[table]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	if q == nil {
		return database.ErrNilDB
	}

	rows, err := q.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return fmt.Errorf("read columns of %s: %w", table, err)
	}
	defer rows.Close()

	have := make(map[string]struct{}, len(want))
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return err
		}
		have[col] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range want {
		if _, ok := have[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Table: table, Missing: missing}
	}
	return nil
}
