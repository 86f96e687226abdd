package parent

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

const parentColumns = `id, first_name, last_name, phone_number, email, address_id, created_at`

func (r *postgresRepo) Create(ctx context.Context, in domain.CreateParentInput) (*domain.Parent, error) {
	var emailTaken, addressExists bool
	const checkQ = `
SELECT EXISTS (SELECT 1 FROM parents WHERE lower(email) = lower($1)),
       EXISTS (SELECT 1 FROM addresses WHERE id = $2)`
	if err := r.pool.QueryRow(ctx, checkQ, in.Email, in.AddressID).Scan(&emailTaken, &addressExists); err != nil {
		return nil, domain.DatabaseError("check parent preconditions", err)
	}
	if emailTaken {
		return nil, domain.AlreadyExists("parent")
	}
	if !addressExists {
		return nil, domain.NotFound("address")
	}

	const q = `
INSERT INTO parents (first_name, last_name, phone_number, email, address_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + parentColumns
	p, err := scanParent(r.pool.QueryRow(ctx, q, in.FirstName, in.LastName, in.PhoneNumber, in.Email, in.AddressID))
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("parent")
		}
		if pgerr.IsForeignKeyViolation(err) {
			return nil, domain.NotFound("address")
		}
		return nil, domain.DatabaseError("create parent", err)
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Parent, error) {
	p, err := scanParent(r.pool.QueryRow(ctx, `SELECT `+parentColumns+` FROM parents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("parent")
		}
		return nil, domain.DatabaseError("get parent", err)
	}
	return p, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Parent, error) {
	p, err := scanParent(r.pool.QueryRow(ctx, `SELECT `+parentColumns+` FROM parents WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("parent")
		}
		return nil, domain.DatabaseError("get parent by email", err)
	}
	return p, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Parent, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+parentColumns+` FROM parents ORDER BY last_name, first_name`)
	if err != nil {
		return nil, domain.DatabaseError("list parents", err)
	}
	defer rows.Close()

	var out []domain.Parent
	for rows.Next() {
		var p domain.Parent
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.PhoneNumber, &p.Email, &p.AddressID, &p.CreatedAt); err != nil {
			return nil, domain.DatabaseError("scan parent", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("list parents", err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, in domain.UpdateParentInput) (*domain.Parent, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.DatabaseError("begin update parent", err)
	}
	defer tx.Rollback(ctx)

	existing, err := scanParent(tx.QueryRow(ctx, `SELECT `+parentColumns+` FROM parents WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("parent")
		}
		return nil, domain.DatabaseError("lock parent", err)
	}

	merged := mergeParent(*existing, in)

	var emailTaken, addressExists bool
	const checkQ = `
SELECT EXISTS (SELECT 1 FROM parents WHERE lower(email) = lower($1) AND id <> $2),
       EXISTS (SELECT 1 FROM addresses WHERE id = $3)`
	if err := tx.QueryRow(ctx, checkQ, merged.Email, id, merged.AddressID).Scan(&emailTaken, &addressExists); err != nil {
		return nil, domain.DatabaseError("check parent preconditions", err)
	}
	if emailTaken {
		return nil, domain.AlreadyExists("parent")
	}
	if !addressExists {
		return nil, domain.NotFound("address")
	}

	const q = `
UPDATE parents
SET first_name = $1, last_name = $2, phone_number = $3, email = $4, address_id = $5
WHERE id = $6`
	if _, err := tx.Exec(ctx, q, merged.FirstName, merged.LastName, merged.PhoneNumber, merged.Email, merged.AddressID, id); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("parent")
		}
		if pgerr.IsForeignKeyViolation(err) {
			return nil, domain.NotFound("address")
		}
		return nil, domain.DatabaseError("update parent", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.DatabaseError("commit update parent", err)
	}
	return &merged, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.DatabaseError("begin delete parent", err)
	}
	defer tx.Rollback(ctx)

	var linked bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM member_parents WHERE parent_id = $1)`, id).Scan(&linked); err != nil {
		return domain.DatabaseError("count parent references", err)
	}
	if linked {
		return domain.StillReferenced("parent", "member links")
	}

	tag, err := tx.Exec(ctx, `DELETE FROM parents WHERE id = $1`, id)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return domain.StillReferenced("parent")
		}
		return domain.DatabaseError("delete parent", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("parent")
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.DatabaseError("commit delete parent", err)
	}
	return nil
}

func (r *postgresRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM parents`); err != nil {
		return domain.DatabaseError("delete all parents", err)
	}
	return nil
}

func scanParent(row pgx.Row) (*domain.Parent, error) {
	var p domain.Parent
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.PhoneNumber, &p.Email, &p.AddressID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
