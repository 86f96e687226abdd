package agreement

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

const agreementColumns = `sponsor_id, work_year_id, amount_cents, payment_received, payment_method, payment_date, created_at`

func (r *postgresRepo) Create(ctx context.Context, in domain.CreateAgreementInput) (*domain.SponsorshipAgreement, error) {
	var sponsorExists, workYearExists, taken bool
	const checkQ = `
SELECT EXISTS (SELECT 1 FROM sponsors WHERE id = $1),
       EXISTS (SELECT 1 FROM work_years WHERE id = $2),
       EXISTS (SELECT 1 FROM sponsorship_agreements WHERE sponsor_id = $1 AND work_year_id = $2)`
	if err := r.pool.QueryRow(ctx, checkQ, in.SponsorID, in.WorkYearID).Scan(&sponsorExists, &workYearExists, &taken); err != nil {
		return nil, domain.DatabaseError("check agreement preconditions", err)
	}
	if !sponsorExists {
		return nil, domain.NotFound("sponsor")
	}
	if !workYearExists {
		return nil, domain.NotFound("work year")
	}
	if taken {
		return nil, domain.AlreadyExists("sponsorship agreement")
	}

	const q = `
INSERT INTO sponsorship_agreements (sponsor_id, work_year_id, amount_cents)
VALUES ($1, $2, $3)
RETURNING ` + agreementColumns
	a, err := scanAgreement(r.pool.QueryRow(ctx, q, in.SponsorID, in.WorkYearID, in.AmountCents))
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("sponsorship agreement")
		}
		if pgerr.IsForeignKeyViolation(err) {
			return nil, domain.NotFound("sponsorship agreement reference")
		}
		return nil, domain.DatabaseError("create agreement", err)
	}
	return a, nil
}

func (r *postgresRepo) Get(ctx context.Context, sponsorID, workYearID int64) (*domain.SponsorshipAgreement, error) {
	const q = `SELECT ` + agreementColumns + ` FROM sponsorship_agreements WHERE sponsor_id = $1 AND work_year_id = $2`
	a, err := scanAgreement(r.pool.QueryRow(ctx, q, sponsorID, workYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("sponsorship agreement")
		}
		return nil, domain.DatabaseError("get agreement", err)
	}
	return a, nil
}

func (r *postgresRepo) ListByWorkYear(ctx context.Context, workYearID int64) ([]domain.SponsorshipAgreement, error) {
	const q = `SELECT ` + agreementColumns + ` FROM sponsorship_agreements WHERE work_year_id = $1 ORDER BY sponsor_id`
	return r.list(ctx, q, workYearID)
}

func (r *postgresRepo) ListBySponsor(ctx context.Context, sponsorID int64) ([]domain.SponsorshipAgreement, error) {
	const q = `SELECT ` + agreementColumns + ` FROM sponsorship_agreements WHERE sponsor_id = $1 ORDER BY work_year_id`
	return r.list(ctx, q, sponsorID)
}

func (r *postgresRepo) list(ctx context.Context, q string, arg int64) ([]domain.SponsorshipAgreement, error) {
	rows, err := r.pool.Query(ctx, q, arg)
	if err != nil {
		return nil, domain.DatabaseError("list agreements", err)
	}
	defer rows.Close()

	var out []domain.SponsorshipAgreement
	for rows.Next() {
		var a domain.SponsorshipAgreement
		if err := rows.Scan(&a.SponsorID, &a.WorkYearID, &a.AmountCents, &a.Payment.Received, &a.Payment.Method, &a.Payment.Date, &a.CreatedAt); err != nil {
			return nil, domain.DatabaseError("scan agreement", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("list agreements", err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, sponsorID, workYearID int64, in domain.UpdateAgreementInput) (*domain.SponsorshipAgreement, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.DatabaseError("begin update agreement", err)
	}
	defer tx.Rollback(ctx)

	const lockQ = `SELECT ` + agreementColumns + ` FROM sponsorship_agreements WHERE sponsor_id = $1 AND work_year_id = $2 FOR UPDATE`
	existing, err := scanAgreement(tx.QueryRow(ctx, lockQ, sponsorID, workYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("sponsorship agreement")
		}
		return nil, domain.DatabaseError("lock agreement", err)
	}

	if in.AmountCents != nil {
		existing.AmountCents = *in.AmountCents
	}

	const q = `UPDATE sponsorship_agreements SET amount_cents = $1 WHERE sponsor_id = $2 AND work_year_id = $3`
	if _, err := tx.Exec(ctx, q, existing.AmountCents, sponsorID, workYearID); err != nil {
		return nil, domain.DatabaseError("update agreement", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.DatabaseError("commit update agreement", err)
	}
	return existing, nil
}

func (r *postgresRepo) SetPayment(ctx context.Context, sponsorID, workYearID int64, p domain.Payment) (*domain.SponsorshipAgreement, error) {
	const q = `
UPDATE sponsorship_agreements
SET payment_received = $1, payment_method = $2, payment_date = $3
WHERE sponsor_id = $4 AND work_year_id = $5
RETURNING ` + agreementColumns
	a, err := scanAgreement(r.pool.QueryRow(ctx, q, p.Received, p.Method, p.Date, sponsorID, workYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("sponsorship agreement")
		}
		return nil, domain.DatabaseError("set agreement payment", err)
	}
	return a, nil
}

func (r *postgresRepo) Delete(ctx context.Context, sponsorID, workYearID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sponsorship_agreements WHERE sponsor_id = $1 AND work_year_id = $2`, sponsorID, workYearID)
	if err != nil {
		return domain.DatabaseError("delete agreement", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("sponsorship agreement")
	}
	return nil
}

func (r *postgresRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM sponsorship_agreements`); err != nil {
		return domain.DatabaseError("delete all agreements", err)
	}
	return nil
}

func scanAgreement(row pgx.Row) (*domain.SponsorshipAgreement, error) {
	var a domain.SponsorshipAgreement
	err := row.Scan(&a.SponsorID, &a.WorkYearID, &a.AmountCents, &a.Payment.Received, &a.Payment.Method, &a.Payment.Date, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
