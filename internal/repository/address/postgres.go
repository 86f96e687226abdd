package address

import (
	"context"
	"errors"

	"chiroportaal/internal/domain"
	"chiroportaal/internal/repository/pgerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const addressColumns = `id, street, house_number, box, municipality, postal_code, created_at`

func (r *postgresRepo) Create(ctx context.Context, in domain.CreateAddressInput) (*domain.Address, error) {
	const existsQ = `
SELECT EXISTS (
    SELECT 1 FROM addresses
    WHERE street = $1 AND house_number = $2 AND COALESCE(box, '') = COALESCE($3, '')
      AND municipality = $4 AND postal_code = $5
)`
	var exists bool
	if err := r.pool.QueryRow(ctx, existsQ, in.Street, in.HouseNumber, in.Box, in.Municipality, in.PostalCode).Scan(&exists); err != nil {
		return nil, domain.DatabaseError("check address uniqueness", err)
	}
	if exists {
		return nil, domain.AlreadyExists("address")
	}

	const q = `
INSERT INTO addresses (street, house_number, box, municipality, postal_code)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + addressColumns
	a, err := scanAddress(r.pool.QueryRow(ctx, q, in.Street, in.HouseNumber, in.Box, in.Municipality, in.PostalCode))
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("address")
		}
		return nil, domain.DatabaseError("create address", err)
	}
	return a, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Address, error) {
	const q = `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`
	a, err := scanAddress(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("address")
		}
		return nil, domain.DatabaseError("get address", err)
	}
	return a, nil
}

func (r *postgresRepo) GetByNaturalKey(ctx context.Context, in domain.CreateAddressInput) (*domain.Address, error) {
	const q = `
SELECT ` + addressColumns + ` FROM addresses
WHERE street = $1 AND house_number = $2 AND COALESCE(box, '') = COALESCE($3, '')
  AND municipality = $4 AND postal_code = $5`
	a, err := scanAddress(r.pool.QueryRow(ctx, q, in.Street, in.HouseNumber, in.Box, in.Municipality, in.PostalCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("address")
		}
		return nil, domain.DatabaseError("get address by natural key", err)
	}
	return a, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Address, error) {
	const q = `SELECT ` + addressColumns + ` FROM addresses ORDER BY municipality, street, house_number`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, domain.DatabaseError("list addresses", err)
	}
	defer rows.Close()

	var out []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.Street, &a.HouseNumber, &a.Box, &a.Municipality, &a.PostalCode, &a.CreatedAt); err != nil {
			return nil, domain.DatabaseError("scan address", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("list addresses", err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, in domain.UpdateAddressInput) (*domain.Address, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.DatabaseError("begin update address", err)
	}
	defer tx.Rollback(ctx)

	const lockQ = `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1 FOR UPDATE`
	existing, err := scanAddress(tx.QueryRow(ctx, lockQ, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("address")
		}
		return nil, domain.DatabaseError("lock address", err)
	}

	merged := mergeAddress(*existing, in)

	const collisionQ = `
SELECT EXISTS (
    SELECT 1 FROM addresses
    WHERE street = $1 AND house_number = $2 AND COALESCE(box, '') = COALESCE($3, '')
      AND municipality = $4 AND postal_code = $5 AND id <> $6
)`
	var collision bool
	if err := tx.QueryRow(ctx, collisionQ, merged.Street, merged.HouseNumber, merged.Box, merged.Municipality, merged.PostalCode, id).Scan(&collision); err != nil {
		return nil, domain.DatabaseError("check address uniqueness", err)
	}
	if collision {
		return nil, domain.AlreadyExists("address")
	}

	const q = `
UPDATE addresses
SET street = $1, house_number = $2, box = $3, municipality = $4, postal_code = $5
WHERE id = $6`
	if _, err := tx.Exec(ctx, q, merged.Street, merged.HouseNumber, merged.Box, merged.Municipality, merged.PostalCode, id); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("address")
		}
		return nil, domain.DatabaseError("update address", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.DatabaseError("commit update address", err)
	}
	return &merged, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.DatabaseError("begin delete address", err)
	}
	defer tx.Rollback(ctx)

	const refQ = `
SELECT
    EXISTS (SELECT 1 FROM parents WHERE address_id = $1),
    EXISTS (SELECT 1 FROM sponsors WHERE address_id = $1)`
	var byParents, bySponsors bool
	if err := tx.QueryRow(ctx, refQ, id).Scan(&byParents, &bySponsors); err != nil {
		return domain.DatabaseError("count address references", err)
	}
	var referencedBy []string
	if byParents {
		referencedBy = append(referencedBy, "parents")
	}
	if bySponsors {
		referencedBy = append(referencedBy, "sponsors")
	}
	if len(referencedBy) > 0 {
		return domain.StillReferenced("address", referencedBy...)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return domain.StillReferenced("address")
		}
		return domain.DatabaseError("delete address", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("address")
	}
	return txCommit(ctx, tx, "delete address")
}

func (r *postgresRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM addresses`); err != nil {
		return domain.DatabaseError("delete all addresses", err)
	}
	return nil
}

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	err := row.Scan(&a.ID, &a.Street, &a.HouseNumber, &a.Box, &a.Municipality, &a.PostalCode, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func txCommit(ctx context.Context, tx pgx.Tx, op string) error {
	if err := tx.Commit(ctx); err != nil {
		return domain.DatabaseError("commit "+op, err)
	}
	return nil
}
