package membership

import (
	"context"
	"os"
	"testing"
	"time"

	"chiroportaal/internal/domain"
	"chiroportaal/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_EnrollPayAndDelete(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	var memberID, workYearID, groupID int64
	if err := pool.QueryRow(ctx, `
INSERT INTO members (first_name, last_name, date_of_birth, gender)
VALUES ('Lotte', 'Claes', '2015-03-12', 'F') RETURNING id`).Scan(&memberID); err != nil {
		t.Fatalf("insert member: %v", err)
	}
	if err := pool.QueryRow(ctx, `
INSERT INTO work_years (start_date, end_date, fee_cents)
VALUES ('2025-09-01', '2026-08-31', 4500) RETURNING id`).Scan(&workYearID); err != nil {
		t.Fatalf("insert work year: %v", err)
	}
	if err := pool.QueryRow(ctx, `
INSERT INTO groups (name, minimum_age_days)
VALUES ('Speelclub', 2190) RETURNING id`).Scan(&groupID); err != nil {
		t.Fatalf("insert group: %v", err)
	}

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, domain.CreateMembershipInput{
		MemberID: memberID, WorkYearID: workYearID, GroupID: groupID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Payment.Received {
		t.Fatalf("new membership must start unpaid: %+v", created)
	}

	// Second enrollment for the same member and year is rejected.
	_, err = repo.Create(ctx, domain.CreateMembershipInput{
		MemberID: memberID, WorkYearID: workYearID, GroupID: groupID,
	})
	if !domain.IsAlreadyExists(err) {
		t.Fatalf("expected already exists, got %v", err)
	}

	p := created.Payment
	if err := p.MarkReceived("yearly membership", domain.PaymentMethodBankTransfer, time.Now().UTC()); err != nil {
		t.Fatalf("mark received: %v", err)
	}
	stored, err := repo.SetPayment(ctx, memberID, workYearID, p)
	if err != nil {
		t.Fatalf("set payment: %v", err)
	}
	if !stored.Payment.Received || stored.Payment.Method == nil || *stored.Payment.Method != domain.PaymentMethodBankTransfer {
		t.Fatalf("payment not persisted: %+v", stored.Payment)
	}

	if err := repo.Delete(ctx, memberID, workYearID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, memberID, workYearID); !domain.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestPostgres_CreateRejectsMissingReferences(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	_, err := repo.Create(ctx, domain.CreateMembershipInput{MemberID: 1, WorkYearID: 1, GroupID: 1})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	const q = `
TRUNCATE event_registrations, event_groups, events, sponsorship_agreements,
         yearly_memberships, sponsors, member_parents, parents,
         medical_information, emergency_contacts, members, work_years,
         groups, addresses, users
RESTART IDENTITY CASCADE`
	if _, err := pool.Exec(ctx, q); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
