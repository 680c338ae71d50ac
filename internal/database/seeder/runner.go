package seeder

import (
	"context"
	"fmt"

	"agri-match/internal/database"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

// Run applies seeders in order, one transaction each, and stops at the
// first failure. Every table is schema-checked before anything is written.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return database.ErrNilDB
	}
	lg := r.Logger
	if lg == nil {
		lg = zap.NewNop()
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := CheckSchema(ctx, db, s.Table()); err != nil {
			return fmt.Errorf("seed %s: %w", s.Table(), err)
		}
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		err := database.InTx(ctx, db, func(q database.Querier) error {
			return s.Run(ctx, q)
		})
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.Table(), err)
		}
		lg.Info("seeded", zap.String("table", s.Table()))
	}
	return nil
}
