package postgres

import (
	"context"

	"gorm.io/gorm"
)

type sequenceRepo struct {
	db *gorm.DB
}

// Next relies on the database to perform the increment-and-fetch in a single
// statement; a read-then-write pair would lose updates under concurrent
// callers.
func (r *sequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	var seq int64
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO counters (name, seq) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		 RETURNING seq`, name).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// EnsureAtLeast uses GREATEST so concurrent seeders can never lower a
// counter that another process already pushed higher.
func (r *sequenceRepo) EnsureAtLeast(ctx context.Context, name string, floor int64) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO counters (name, seq) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET seq = GREATEST(counters.seq, EXCLUDED.seq)`,
		name, floor).Error
}
