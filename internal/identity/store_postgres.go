package identity

import (
	"context"
	"errors"

	"chiroportaal/internal/domain"
	"chiroportaal/internal/repository/pgerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on the users table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const userColumns = `id, email, password_hash, first_name, last_name, role, active, created_at`

func (s *PostgresStore) Create(ctx context.Context, u User) (*User, error) {
	var emailTaken bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, u.Email).Scan(&emailTaken); err != nil {
		return nil, domain.DatabaseError("check user uniqueness", err)
	}
	if emailTaken {
		return nil, domain.AlreadyExists("user")
	}

	const q = `
INSERT INTO users (email, password_hash, first_name, last_name, role, active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + userColumns
	created, err := scanUser(s.pool.QueryRow(ctx, q, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.Active))
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("user")
		}
		return nil, domain.DatabaseError("create user", err)
	}
	return created, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("user")
		}
		return nil, domain.DatabaseError("get user", err)
	}
	return u, nil
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("user")
		}
		return nil, domain.DatabaseError("get user by email", err)
	}
	return u, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, domain.DatabaseError("list users", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.Active, &u.CreatedAt); err != nil {
			return nil, domain.DatabaseError("scan user", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("list users", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, u User) (*User, error) {
	var emailTaken bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1) AND id <> $2)`, u.Email, u.ID).Scan(&emailTaken); err != nil {
		return nil, domain.DatabaseError("check user uniqueness", err)
	}
	if emailTaken {
		return nil, domain.AlreadyExists("user")
	}

	const q = `
UPDATE users
SET email = $1, password_hash = $2, first_name = $3, last_name = $4, role = $5, active = $6
WHERE id = $7
RETURNING ` + userColumns
	updated, err := scanUser(s.pool.QueryRow(ctx, q, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.Active, u.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("user")
		}
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("user")
		}
		return nil, domain.DatabaseError("update user", err)
	}
	return updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return domain.DatabaseError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("user")
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.Active, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
