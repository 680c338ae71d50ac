package seeder

import (
	"context"

	"agri-match/internal/database"
)

// Seeder fills one migrated table with demo rows. Run must be idempotent;
// the runner calls it inside a transaction after checking Table's schema.
type Seeder interface {
	Table() string
	Run(ctx context.Context, q database.Querier) error
}
