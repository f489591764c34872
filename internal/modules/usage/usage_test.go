// README: Usage-quota module tests (lazy reset and quota boundary logic).
package usage

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestConsumeCrossMonthReset verifies that a caller with 0 generations left
// from a previous month is automatically reset and the request succeeds.
func TestConsumeCrossMonthReset(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	// Seed caller with a spent quota from a past month.
	if _, err := db.Exec(ctx, "INSERT INTO llm_usage VALUES ('caller_reset', 0, '2000-01')"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Consume(ctx, "caller_reset"); err != nil {
		t.Fatalf("Consume after cross-month reset: %v", err)
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT remaining FROM llm_usage WHERE uid = 'caller_reset'").Scan(&remaining); err != nil {
		t.Fatalf("query: %v", err)
	}
	if remaining != DefaultQuota-1 {
		t.Fatalf("expected %d remaining, got %d", DefaultQuota-1, remaining)
	}
}

// TestConsumeExhausted verifies that a caller with 0 generations left in the
// current month is blocked.
func TestConsumeExhausted(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if _, err := db.Exec(ctx, "INSERT INTO llm_usage (uid, remaining, last_reset_month) VALUES ('caller_zero', 0, TO_CHAR(NOW(), 'YYYY-MM'))"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Consume(ctx, "caller_zero"); err != ErrQuotaExhausted {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}
}

// TestConsumeNewCaller verifies that a caller absent from the table is
// initialised on first call.
func TestConsumeNewCaller(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	if err := svc.Consume(ctx, "caller_new"); err != nil {
		t.Fatalf("Consume for new caller: %v", err)
	}

	var remaining int
	if err := db.QueryRow(ctx, "SELECT remaining FROM llm_usage WHERE uid = 'caller_new'").Scan(&remaining); err != nil {
		t.Fatalf("query: %v", err)
	}
	if remaining != DefaultQuota-1 {
		t.Fatalf("expected %d remaining after first use, got %d", DefaultQuota-1, remaining)
	}
}

// setupTestService creates a real postgres-backed Service for integration
// tests. It skips the test when TRIPGEN_TEST_DSN is not set.
func setupTestService(t *testing.T) (*Service, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("TRIPGEN_TEST_DSN")
	if dsn == "" {
		t.Skip("TRIPGEN_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `CREATE TABLE IF NOT EXISTS llm_usage (
		uid              TEXT PRIMARY KEY,
		remaining        INT  NOT NULL,
		last_reset_month TEXT NOT NULL
	)`
	if _, err := db.Exec(ctx, schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE llm_usage"); err != nil {
		t.Fatalf("truncate llm_usage: %v", err)
	}

	return NewService(NewStore(db)), db
}
