package sponsor

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

const sponsorColumns = `id, company_name, address_id, logo_url, website_url, active, created_at`

func (r *postgresRepo) Create(ctx context.Context, in domain.CreateSponsorInput) (*domain.Sponsor, error) {
	var nameTaken bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sponsors WHERE lower(company_name) = lower($1))`, in.CompanyName).Scan(&nameTaken); err != nil {
		return nil, domain.DatabaseError("check sponsor uniqueness", err)
	}
	if nameTaken {
		return nil, domain.AlreadyExists("sponsor")
	}
	if in.AddressID != nil {
		var addressExists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM addresses WHERE id = $1)`, *in.AddressID).Scan(&addressExists); err != nil {
			return nil, domain.DatabaseError("check sponsor address", err)
		}
		if !addressExists {
			return nil, domain.NotFound("address")
		}
	}

	const q = `
INSERT INTO sponsors (company_name, address_id, logo_url, website_url, active)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + sponsorColumns
	s, err := scanSponsor(r.pool.QueryRow(ctx, q, in.CompanyName, in.AddressID, in.LogoURL, in.WebsiteURL, in.Active))
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("sponsor")
		}
		if pgerr.IsForeignKeyViolation(err) {
			return nil, domain.NotFound("address")
		}
		return nil, domain.DatabaseError("create sponsor", err)
	}
	return s, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Sponsor, error) {
	s, err := scanSponsor(r.pool.QueryRow(ctx, `SELECT `+sponsorColumns+` FROM sponsors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("sponsor")
		}
		return nil, domain.DatabaseError("get sponsor", err)
	}
	return s, nil
}

func (r *postgresRepo) GetByCompanyName(ctx context.Context, name string) (*domain.Sponsor, error) {
	s, err := scanSponsor(r.pool.QueryRow(ctx, `SELECT `+sponsorColumns+` FROM sponsors WHERE lower(company_name) = lower($1)`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("sponsor")
		}
		return nil, domain.DatabaseError("get sponsor by company name", err)
	}
	return s, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Sponsor, error) {
	return r.list(ctx, `SELECT `+sponsorColumns+` FROM sponsors ORDER BY lower(company_name)`)
}

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.Sponsor, error) {
	return r.list(ctx, `SELECT `+sponsorColumns+` FROM sponsors WHERE active ORDER BY lower(company_name)`)
}

func (r *postgresRepo) list(ctx context.Context, q string) ([]domain.Sponsor, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, domain.DatabaseError("list sponsors", err)
	}
	defer rows.Close()

	var out []domain.Sponsor
	for rows.Next() {
		var s domain.Sponsor
		if err := rows.Scan(&s.ID, &s.CompanyName, &s.AddressID, &s.LogoURL, &s.WebsiteURL, &s.Active, &s.CreatedAt); err != nil {
			return nil, domain.DatabaseError("scan sponsor", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("list sponsors", err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, in domain.UpdateSponsorInput) (*domain.Sponsor, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.DatabaseError("begin update sponsor", err)
	}
	defer tx.Rollback(ctx)

	existing, err := scanSponsor(tx.QueryRow(ctx, `SELECT `+sponsorColumns+` FROM sponsors WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("sponsor")
		}
		return nil, domain.DatabaseError("lock sponsor", err)
	}

	merged := mergeSponsor(*existing, in)

	var nameTaken bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sponsors WHERE lower(company_name) = lower($1) AND id <> $2)`, merged.CompanyName, id).Scan(&nameTaken); err != nil {
		return nil, domain.DatabaseError("check sponsor uniqueness", err)
	}
	if nameTaken {
		return nil, domain.AlreadyExists("sponsor")
	}
	if merged.AddressID != nil {
		var addressExists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM addresses WHERE id = $1)`, *merged.AddressID).Scan(&addressExists); err != nil {
			return nil, domain.DatabaseError("check sponsor address", err)
		}
		if !addressExists {
			return nil, domain.NotFound("address")
		}
	}

	const q = `
UPDATE sponsors
SET company_name = $1, address_id = $2, logo_url = $3, website_url = $4, active = $5
WHERE id = $6`
	if _, err := tx.Exec(ctx, q, merged.CompanyName, merged.AddressID, merged.LogoURL, merged.WebsiteURL, merged.Active, id); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("sponsor")
		}
		if pgerr.IsForeignKeyViolation(err) {
			return nil, domain.NotFound("address")
		}
		return nil, domain.DatabaseError("update sponsor", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.DatabaseError("commit update sponsor", err)
	}
	return &merged, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.DatabaseError("begin delete sponsor", err)
	}
	defer tx.Rollback(ctx)

	var hasAgreements bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sponsorship_agreements WHERE sponsor_id = $1)`, id).Scan(&hasAgreements); err != nil {
		return domain.DatabaseError("count sponsor references", err)
	}
	if hasAgreements {
		return domain.StillReferenced("sponsor", "sponsorship agreements")
	}

	tag, err := tx.Exec(ctx, `DELETE FROM sponsors WHERE id = $1`, id)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return domain.StillReferenced("sponsor")
		}
		return domain.DatabaseError("delete sponsor", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("sponsor")
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.DatabaseError("commit delete sponsor", err)
	}
	return nil
}

func (r *postgresRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM sponsors`); err != nil {
		return domain.DatabaseError("delete all sponsors", err)
	}
	return nil
}

func scanSponsor(row pgx.Row) (*domain.Sponsor, error) {
	var s domain.Sponsor
	err := row.Scan(&s.ID, &s.CompanyName, &s.AddressID, &s.LogoURL, &s.WebsiteURL, &s.Active, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
