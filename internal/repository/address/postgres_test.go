package address

import (
	"context"
	"os"
	"testing"

	"chiroportaal/internal/domain"
	"chiroportaal/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_CreateDuplicateAndDelete(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, domain.CreateAddressInput{
		Street: "Kerkstraat", HouseNumber: "5", Municipality: "Houthulst", PostalCode: 8650,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id, got %+v", created)
	}

	_, err = repo.Create(ctx, domain.CreateAddressInput{
		Street: "Kerkstraat", HouseNumber: "5", Municipality: "Houthulst", PostalCode: 8650,
	})
	if !domain.IsAlreadyExists(err) {
		t.Fatalf("expected already exists, got %v", err)
	}

	// A box turns it into a different address.
	box := "A"
	boxed, err := repo.Create(ctx, domain.CreateAddressInput{
		Street: "Kerkstraat", HouseNumber: "5", Box: &box, Municipality: "Houthulst", PostalCode: 8650,
	})
	if err != nil {
		t.Fatalf("create with box: %v", err)
	}
	if boxed.ID == created.ID {
		t.Fatalf("expected distinct rows, both got id %d", created.ID)
	}

	if err := repo.Delete(ctx, boxed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, boxed.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestPostgres_DeleteBlockedByParent(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, domain.CreateAddressInput{
		Street: "Kerkstraat", HouseNumber: "5", Municipality: "Houthulst", PostalCode: 8650,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	const insertParent = `
INSERT INTO parents (first_name, last_name, phone_number, email, address_id)
VALUES ('Els', 'Vandamme', '+32470123456', 'els@example.be', $1)`
	if _, err := pool.Exec(ctx, insertParent, created.ID); err != nil {
		t.Fatalf("insert parent: %v", err)
	}

	err = repo.Delete(ctx, created.ID)
	if !domain.IsStillReferenced(err) {
		t.Fatalf("expected still referenced, got %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); err != nil {
		t.Fatalf("address should survive blocked delete: %v", err)
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
