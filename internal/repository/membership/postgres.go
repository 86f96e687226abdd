package membership

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

const membershipColumns = `member_id, work_year_id, group_id, payment_received, payment_method, payment_date, created_at`

func (r *postgresRepo) Create(ctx context.Context, in domain.CreateMembershipInput) (*domain.YearlyMembership, error) {
	var memberExists, workYearExists, groupExists, taken bool
	const checkQ = `
SELECT EXISTS (SELECT 1 FROM members WHERE id = $1),
       EXISTS (SELECT 1 FROM work_years WHERE id = $2),
       EXISTS (SELECT 1 FROM groups WHERE id = $3),
       EXISTS (SELECT 1 FROM yearly_memberships WHERE member_id = $1 AND work_year_id = $2)`
	if err := r.pool.QueryRow(ctx, checkQ, in.MemberID, in.WorkYearID, in.GroupID).Scan(&memberExists, &workYearExists, &groupExists, &taken); err != nil {
		return nil, domain.DatabaseError("check membership preconditions", err)
	}
	if !memberExists {
		return nil, domain.NotFound("member")
	}
	if !workYearExists {
		return nil, domain.NotFound("work year")
	}
	if !groupExists {
		return nil, domain.NotFound("group")
	}
	if taken {
		return nil, domain.AlreadyExists("yearly membership")
	}

	const q = `
INSERT INTO yearly_memberships (member_id, work_year_id, group_id)
VALUES ($1, $2, $3)
RETURNING ` + membershipColumns
	m, err := scanMembership(r.pool.QueryRow(ctx, q, in.MemberID, in.WorkYearID, in.GroupID))
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("yearly membership")
		}
		if pgerr.IsForeignKeyViolation(err) {
			return nil, domain.NotFound("yearly membership reference")
		}
		return nil, domain.DatabaseError("create membership", err)
	}
	return m, nil
}

func (r *postgresRepo) Get(ctx context.Context, memberID, workYearID int64) (*domain.YearlyMembership, error) {
	const q = `SELECT ` + membershipColumns + ` FROM yearly_memberships WHERE member_id = $1 AND work_year_id = $2`
	m, err := scanMembership(r.pool.QueryRow(ctx, q, memberID, workYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("yearly membership")
		}
		return nil, domain.DatabaseError("get membership", err)
	}
	return m, nil
}

func (r *postgresRepo) ListByWorkYear(ctx context.Context, workYearID int64) ([]domain.YearlyMembership, error) {
	const q = `SELECT ` + membershipColumns + ` FROM yearly_memberships WHERE work_year_id = $1 ORDER BY member_id`
	return r.list(ctx, q, workYearID)
}

func (r *postgresRepo) ListByMember(ctx context.Context, memberID int64) ([]domain.YearlyMembership, error) {
	const q = `SELECT ` + membershipColumns + ` FROM yearly_memberships WHERE member_id = $1 ORDER BY work_year_id`
	return r.list(ctx, q, memberID)
}

func (r *postgresRepo) list(ctx context.Context, q string, arg int64) ([]domain.YearlyMembership, error) {
	rows, err := r.pool.Query(ctx, q, arg)
	if err != nil {
		return nil, domain.DatabaseError("list memberships", err)
	}
	defer rows.Close()

	var out []domain.YearlyMembership
	for rows.Next() {
		var m domain.YearlyMembership
		if err := rows.Scan(&m.MemberID, &m.WorkYearID, &m.GroupID, &m.Payment.Received, &m.Payment.Method, &m.Payment.Date, &m.CreatedAt); err != nil {
			return nil, domain.DatabaseError("scan membership", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("list memberships", err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, memberID, workYearID int64, in domain.UpdateMembershipInput) (*domain.YearlyMembership, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.DatabaseError("begin update membership", err)
	}
	defer tx.Rollback(ctx)

	const lockQ = `SELECT ` + membershipColumns + ` FROM yearly_memberships WHERE member_id = $1 AND work_year_id = $2 FOR UPDATE`
	existing, err := scanMembership(tx.QueryRow(ctx, lockQ, memberID, workYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("yearly membership")
		}
		return nil, domain.DatabaseError("lock membership", err)
	}

	if in.GroupID != nil {
		var groupExists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM groups WHERE id = $1)`, *in.GroupID).Scan(&groupExists); err != nil {
			return nil, domain.DatabaseError("check membership group", err)
		}
		if !groupExists {
			return nil, domain.NotFound("group")
		}
		existing.GroupID = *in.GroupID
	}

	const q = `UPDATE yearly_memberships SET group_id = $1 WHERE member_id = $2 AND work_year_id = $3`
	if _, err := tx.Exec(ctx, q, existing.GroupID, memberID, workYearID); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, domain.NotFound("group")
		}
		return nil, domain.DatabaseError("update membership", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.DatabaseError("commit update membership", err)
	}
	return existing, nil
}

func (r *postgresRepo) SetPayment(ctx context.Context, memberID, workYearID int64, p domain.Payment) (*domain.YearlyMembership, error) {
	const q = `
UPDATE yearly_memberships
SET payment_received = $1, payment_method = $2, payment_date = $3
WHERE member_id = $4 AND work_year_id = $5
RETURNING ` + membershipColumns
	m, err := scanMembership(r.pool.QueryRow(ctx, q, p.Received, p.Method, p.Date, memberID, workYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("yearly membership")
		}
		return nil, domain.DatabaseError("set membership payment", err)
	}
	return m, nil
}

func (r *postgresRepo) Delete(ctx context.Context, memberID, workYearID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM yearly_memberships WHERE member_id = $1 AND work_year_id = $2`, memberID, workYearID)
	if err != nil {
		return domain.DatabaseError("delete membership", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("yearly membership")
	}
	return nil
}

func (r *postgresRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM yearly_memberships`); err != nil {
		return domain.DatabaseError("delete all memberships", err)
	}
	return nil
}

func scanMembership(row pgx.Row) (*domain.YearlyMembership, error) {
	var m domain.YearlyMembership
	err := row.Scan(&m.MemberID, &m.WorkYearID, &m.GroupID, &m.Payment.Received, &m.Payment.Method, &m.Payment.Date, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
