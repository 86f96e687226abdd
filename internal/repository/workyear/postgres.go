package workyear

import (
	"context"
	"errors"
	"time"

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

const workYearColumns = `id, start_date, end_date, fee_cents`

func (r *postgresRepo) Create(ctx context.Context, in domain.CreateWorkYearInput) (*domain.WorkYear, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM work_years WHERE start_date = $1 AND end_date = $2)`, in.StartDate, in.EndDate).Scan(&exists); err != nil {
		return nil, domain.DatabaseError("check work year uniqueness", err)
	}
	if exists {
		return nil, domain.AlreadyExists("work year")
	}

	const q = `
INSERT INTO work_years (start_date, end_date, fee_cents)
VALUES ($1, $2, $3)
RETURNING ` + workYearColumns
	w, err := scanWorkYear(r.pool.QueryRow(ctx, q, in.StartDate, in.EndDate, in.FeeCents))
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("work year")
		}
		return nil, domain.DatabaseError("create work year", err)
	}
	return w, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.WorkYear, error) {
	w, err := scanWorkYear(r.pool.QueryRow(ctx, `SELECT `+workYearColumns+` FROM work_years WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("work year")
		}
		return nil, domain.DatabaseError("get work year", err)
	}
	return w, nil
}

func (r *postgresRepo) GetByPeriod(ctx context.Context, start, end time.Time) (*domain.WorkYear, error) {
	w, err := scanWorkYear(r.pool.QueryRow(ctx, `SELECT `+workYearColumns+` FROM work_years WHERE start_date = $1 AND end_date = $2`, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("work year")
		}
		return nil, domain.DatabaseError("get work year by period", err)
	}
	return w, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.WorkYear, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+workYearColumns+` FROM work_years ORDER BY start_date DESC`)
	if err != nil {
		return nil, domain.DatabaseError("list work years", err)
	}
	defer rows.Close()

	var out []domain.WorkYear
	for rows.Next() {
		var w domain.WorkYear
		if err := rows.Scan(&w.ID, &w.StartDate, &w.EndDate, &w.FeeCents); err != nil {
			return nil, domain.DatabaseError("scan work year", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("list work years", err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, in domain.UpdateWorkYearInput) (*domain.WorkYear, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.DatabaseError("begin update work year", err)
	}
	defer tx.Rollback(ctx)

	existing, err := scanWorkYear(tx.QueryRow(ctx, `SELECT `+workYearColumns+` FROM work_years WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("work year")
		}
		return nil, domain.DatabaseError("lock work year", err)
	}

	merged := mergeWorkYear(*existing, in)
	if !merged.EndDate.After(merged.StartDate) {
		return nil, domain.ErrInvalidPeriod
	}

	var collision bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM work_years WHERE start_date = $1 AND end_date = $2 AND id <> $3)`, merged.StartDate, merged.EndDate, id).Scan(&collision); err != nil {
		return nil, domain.DatabaseError("check work year uniqueness", err)
	}
	if collision {
		return nil, domain.AlreadyExists("work year")
	}

	if _, err := tx.Exec(ctx, `UPDATE work_years SET start_date = $1, end_date = $2, fee_cents = $3 WHERE id = $4`, merged.StartDate, merged.EndDate, merged.FeeCents, id); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("work year")
		}
		return nil, domain.DatabaseError("update work year", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.DatabaseError("commit update work year", err)
	}
	return &merged, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.DatabaseError("begin delete work year", err)
	}
	defer tx.Rollback(ctx)

	const refQ = `
SELECT
    EXISTS (SELECT 1 FROM yearly_memberships WHERE work_year_id = $1),
    EXISTS (SELECT 1 FROM sponsorship_agreements WHERE work_year_id = $1)`
	var byMemberships, byAgreements bool
	if err := tx.QueryRow(ctx, refQ, id).Scan(&byMemberships, &byAgreements); err != nil {
		return domain.DatabaseError("count work year references", err)
	}
	var referencedBy []string
	if byMemberships {
		referencedBy = append(referencedBy, "yearly memberships")
	}
	if byAgreements {
		referencedBy = append(referencedBy, "sponsorship agreements")
	}
	if len(referencedBy) > 0 {
		return domain.StillReferenced("work year", referencedBy...)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM work_years WHERE id = $1`, id)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return domain.StillReferenced("work year")
		}
		return domain.DatabaseError("delete work year", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("work year")
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.DatabaseError("commit delete work year", err)
	}
	return nil
}

func (r *postgresRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM work_years`); err != nil {
		return domain.DatabaseError("delete all work years", err)
	}
	return nil
}

func scanWorkYear(row pgx.Row) (*domain.WorkYear, error) {
	var w domain.WorkYear
	err := row.Scan(&w.ID, &w.StartDate, &w.EndDate, &w.FeeCents)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
