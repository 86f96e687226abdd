package group

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

const groupColumns = `id, name, minimum_age_days, maximum_age_days, gender, active`

func (r *postgresRepo) Create(ctx context.Context, in domain.CreateGroupInput) (*domain.Group, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM groups WHERE lower(name) = lower($1))`, in.Name).Scan(&exists); err != nil {
		return nil, domain.DatabaseError("check group uniqueness", err)
	}
	if exists {
		return nil, domain.AlreadyExists("group")
	}

	const q = `
INSERT INTO groups (name, minimum_age_days, maximum_age_days, gender, active)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + groupColumns
	g, err := scanGroup(r.pool.QueryRow(ctx, q, in.Name, in.MinimumAgeDays, in.MaximumAgeDays, in.Gender, in.Active))
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("group")
		}
		return nil, domain.DatabaseError("create group", err)
	}
	return g, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	g, err := scanGroup(r.pool.QueryRow(ctx, `SELECT `+groupColumns+` FROM groups WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("group")
		}
		return nil, domain.DatabaseError("get group", err)
	}
	return g, nil
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	g, err := scanGroup(r.pool.QueryRow(ctx, `SELECT `+groupColumns+` FROM groups WHERE lower(name) = lower($1)`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("group")
		}
		return nil, domain.DatabaseError("get group by name", err)
	}
	return g, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+groupColumns+` FROM groups ORDER BY minimum_age_days`)
	if err != nil {
		return nil, domain.DatabaseError("list groups", err)
	}
	defer rows.Close()

	var out []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.MinimumAgeDays, &g.MaximumAgeDays, &g.Gender, &g.Active); err != nil {
			return nil, domain.DatabaseError("scan group", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("list groups", err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, in domain.UpdateGroupInput) (*domain.Group, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.DatabaseError("begin update group", err)
	}
	defer tx.Rollback(ctx)

	existing, err := scanGroup(tx.QueryRow(ctx, `SELECT `+groupColumns+` FROM groups WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("group")
		}
		return nil, domain.DatabaseError("lock group", err)
	}

	merged := mergeGroup(*existing, in)

	var collision bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM groups WHERE lower(name) = lower($1) AND id <> $2)`, merged.Name, id).Scan(&collision); err != nil {
		return nil, domain.DatabaseError("check group uniqueness", err)
	}
	if collision {
		return nil, domain.AlreadyExists("group")
	}

	const q = `
UPDATE groups
SET name = $1, minimum_age_days = $2, maximum_age_days = $3, gender = $4, active = $5
WHERE id = $6`
	if _, err := tx.Exec(ctx, q, merged.Name, merged.MinimumAgeDays, merged.MaximumAgeDays, merged.Gender, merged.Active, id); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("group")
		}
		return nil, domain.DatabaseError("update group", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.DatabaseError("commit update group", err)
	}
	return &merged, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.DatabaseError("begin delete group", err)
	}
	defer tx.Rollback(ctx)

	const refQ = `
SELECT
    EXISTS (SELECT 1 FROM yearly_memberships WHERE group_id = $1),
    EXISTS (SELECT 1 FROM event_groups WHERE group_id = $1)`
	var byMemberships, byEvents bool
	if err := tx.QueryRow(ctx, refQ, id).Scan(&byMemberships, &byEvents); err != nil {
		return domain.DatabaseError("count group references", err)
	}
	var referencedBy []string
	if byMemberships {
		referencedBy = append(referencedBy, "yearly memberships")
	}
	if byEvents {
		referencedBy = append(referencedBy, "events")
	}
	if len(referencedBy) > 0 {
		return domain.StillReferenced("group", referencedBy...)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return domain.StillReferenced("group")
		}
		return domain.DatabaseError("delete group", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("group")
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.DatabaseError("commit delete group", err)
	}
	return nil
}

func (r *postgresRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM groups`); err != nil {
		return domain.DatabaseError("delete all groups", err)
	}
	return nil
}

func scanGroup(row pgx.Row) (*domain.Group, error) {
	var g domain.Group
	err := row.Scan(&g.ID, &g.Name, &g.MinimumAgeDays, &g.MaximumAgeDays, &g.Gender, &g.Active)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
