package usage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles llm_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Consume atomically checks the monthly quota and deducts one generation.
// It resets the counter to DefaultQuota when last_reset_month is behind the
// current month. Returns ErrQuotaExhausted when 0 rows are updated (quota
// spent or caller absent).
func (s *Store) Consume(ctx context.Context, uid string) error {
	now := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE llm_usage SET
			remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR remaining > 0)
	`, now, DefaultQuota, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// EnsureUser inserts a new llm_usage row for uid with the default allowance.
// If the row already exists the insert is silently skipped.
func (s *Store) EnsureUser(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO llm_usage (uid, remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, DefaultQuota, time.Now().Format("2006-01"))
	return err
}
