package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type groupSeed struct {
	Name    string
	MinAge  int // years, converted to days below
	MaxAge  int // years, inclusive; 0 means no upper bound
}

// Standard Chiro age bands. Ketis get no upper bound split here; aspi's are
// open-ended so leaders in waiting stay eligible.
var groups = []groupSeed{
	{Name: "Ribbels", MinAge: 6, MaxAge: 7},
	{Name: "Speelclub", MinAge: 8, MaxAge: 9},
	{Name: "Rakwi's", MinAge: 10, MaxAge: 11},
	{Name: "Tito's", MinAge: 12, MaxAge: 13},
	{Name: "Keti's", MinAge: 14, MaxAge: 15},
	{Name: "Aspi's", MinAge: 16, MaxAge: 0},
}

// Apply inserts base data for a fresh chapter: the standard groups, the work
// year containing today and a default admin account. It is idempotent via ON
// CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, g := range groups {
		if err := upsertGroup(ctx, pool, g); err != nil {
			return fmt.Errorf("upsert group %s: %w", g.Name, err)
		}
	}

	if err := ensureCurrentWorkYear(ctx, pool, time.Now().UTC()); err != nil {
		return fmt.Errorf("ensure work year: %w", err)
	}

	if err := ensureAdmin(ctx, pool, "admin@chiro.example", "changeme123"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	return nil
}

func upsertGroup(ctx context.Context, pool *pgxpool.Pool, g groupSeed) error {
	const q = `
INSERT INTO groups (name, minimum_age_days, maximum_age_days, gender, active)
VALUES ($1, $2, $3, NULL, TRUE)
ON CONFLICT (lower(name)) DO UPDATE
SET minimum_age_days = EXCLUDED.minimum_age_days,
    maximum_age_days = EXCLUDED.maximum_age_days
`
	minDays := g.MinAge * 365
	var maxDays *int
	if g.MaxAge > 0 {
		// Inclusive upper bound: eligible until the day before the next band.
		d := (g.MaxAge+1)*365 - 1
		maxDays = &d
	}
	_, err := pool.Exec(ctx, q, g.Name, minDays, maxDays)
	return err
}

// ensureCurrentWorkYear inserts the September-to-August year containing now.
func ensureCurrentWorkYear(ctx context.Context, pool *pgxpool.Pool, now time.Time) error {
	year := now.Year()
	if now.Month() < time.September {
		year--
	}
	start := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.August, 31, 0, 0, 0, 0, time.UTC)

	const q = `
INSERT INTO work_years (start_date, end_date, fee_cents)
VALUES ($1, $2, $3)
ON CONFLICT (start_date, end_date) DO NOTHING
`
	_, err := pool.Exec(ctx, q, start, end, int64(4000))
	return err
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Never overwrite an existing account; the default password is for first
	// login only.
	const q = `
INSERT INTO users (email, password_hash, first_name, last_name, role, active)
VALUES ($1, $2, 'Hoofd', 'Leiding', 'admin', TRUE)
ON CONFLICT (lower(email)) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, string(hash))
	return err
}
