package event

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

const eventColumns = `id, title, description, location, starts_at, ends_at, price_cents, created_at`

func (r *postgresRepo) Create(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.DatabaseError("begin create event", err)
	}
	defer tx.Rollback(ctx)

	if err := checkGroupsExist(ctx, tx, in.GroupIDs); err != nil {
		return nil, err
	}

	const q = `
INSERT INTO events (title, description, location, starts_at, ends_at, price_cents)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + eventColumns
	e, err := scanEvent(tx.QueryRow(ctx, q, in.Title, in.Description, in.Location, in.StartsAt, in.EndsAt, in.PriceCents))
	if err != nil {
		return nil, domain.DatabaseError("create event", err)
	}

	if err := replaceGroupLinks(ctx, tx, e.ID, in.GroupIDs); err != nil {
		return nil, err
	}
	e.GroupIDs = append([]int64(nil), in.GroupIDs...)

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.DatabaseError("commit create event", err)
	}
	return e, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("event")
		}
		return nil, domain.DatabaseError("get event", err)
	}
	if err := r.loadGroupLinks(ctx, []*domain.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY starts_at, id`)
}

func (r *postgresRepo) ListUpcoming(ctx context.Context, after time.Time) ([]domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE ends_at >= $1 ORDER BY starts_at, id`, after)
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, domain.DatabaseError("list events", err)
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt, &e.PriceCents, &e.CreatedAt); err != nil {
			return nil, domain.DatabaseError("scan event", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("list events", err)
	}

	ptrs := make([]*domain.Event, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	if err := r.loadGroupLinks(ctx, ptrs); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) loadGroupLinks(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]int64, len(events))
	byID := make(map[int64]*domain.Event, len(events))
	for i, e := range events {
		ids[i] = e.ID
		byID[e.ID] = e
	}

	rows, err := r.pool.Query(ctx, `SELECT event_id, group_id FROM event_groups WHERE event_id = ANY($1) ORDER BY group_id`, ids)
	if err != nil {
		return domain.DatabaseError("load event group links", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, groupID int64
		if err := rows.Scan(&eventID, &groupID); err != nil {
			return domain.DatabaseError("scan event group link", err)
		}
		if e, ok := byID[eventID]; ok {
			e.GroupIDs = append(e.GroupIDs, groupID)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.DatabaseError("load event group links", err)
	}
	return nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, in domain.UpdateEventInput) (*domain.Event, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.DatabaseError("begin update event", err)
	}
	defer tx.Rollback(ctx)

	existing, err := scanEvent(tx.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("event")
		}
		return nil, domain.DatabaseError("lock event", err)
	}

	rows, err := tx.Query(ctx, `SELECT group_id FROM event_groups WHERE event_id = $1 ORDER BY group_id`, id)
	if err != nil {
		return nil, domain.DatabaseError("load event group links", err)
	}
	for rows.Next() {
		var gid int64
		if err := rows.Scan(&gid); err != nil {
			rows.Close()
			return nil, domain.DatabaseError("scan event group link", err)
		}
		existing.GroupIDs = append(existing.GroupIDs, gid)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("load event group links", err)
	}

	merged := mergeEvent(*existing, in)
	if merged.EndsAt.Before(merged.StartsAt) {
		return nil, domain.ErrInvalidPeriod
	}
	if in.GroupIDs != nil {
		if err := checkGroupsExist(ctx, tx, merged.GroupIDs); err != nil {
			return nil, err
		}
	}

	const q = `
UPDATE events
SET title = $1, description = $2, location = $3, starts_at = $4, ends_at = $5, price_cents = $6
WHERE id = $7`
	if _, err := tx.Exec(ctx, q, merged.Title, merged.Description, merged.Location, merged.StartsAt, merged.EndsAt, merged.PriceCents, id); err != nil {
		return nil, domain.DatabaseError("update event", err)
	}
	if in.GroupIDs != nil {
		if err := replaceGroupLinks(ctx, tx, id, merged.GroupIDs); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.DatabaseError("commit update event", err)
	}
	return &merged, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.DatabaseError("begin delete event", err)
	}
	defer tx.Rollback(ctx)

	var hasRegistrations bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM event_registrations WHERE event_id = $1)`, id).Scan(&hasRegistrations); err != nil {
		return domain.DatabaseError("count event references", err)
	}
	if hasRegistrations {
		return domain.StillReferenced("event", "event registrations")
	}

	// Group links are owned by the event and go with it.
	if _, err := tx.Exec(ctx, `DELETE FROM event_groups WHERE event_id = $1`, id); err != nil {
		return domain.DatabaseError("delete event group links", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return domain.StillReferenced("event")
		}
		return domain.DatabaseError("delete event", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("event")
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.DatabaseError("commit delete event", err)
	}
	return nil
}

func (r *postgresRepo) DeleteAll(ctx context.Context) error {
	for _, q := range []string{
		`DELETE FROM event_registrations`,
		`DELETE FROM event_groups`,
		`DELETE FROM events`,
	} {
		if _, err := r.pool.Exec(ctx, q); err != nil {
			return domain.DatabaseError("delete all events", err)
		}
	}
	return nil
}

const registrationColumns = `event_id, member_id, payment_received, payment_method, payment_date, created_at`

func (r *postgresRepo) Register(ctx context.Context, in domain.CreateRegistrationInput) (*domain.EventRegistration, error) {
	var eventExists, memberExists, taken bool
	const checkQ = `
SELECT EXISTS (SELECT 1 FROM events WHERE id = $1),
       EXISTS (SELECT 1 FROM members WHERE id = $2),
       EXISTS (SELECT 1 FROM event_registrations WHERE event_id = $1 AND member_id = $2)`
	if err := r.pool.QueryRow(ctx, checkQ, in.EventID, in.MemberID).Scan(&eventExists, &memberExists, &taken); err != nil {
		return nil, domain.DatabaseError("check registration preconditions", err)
	}
	if !eventExists {
		return nil, domain.NotFound("event")
	}
	if !memberExists {
		return nil, domain.NotFound("member")
	}
	if taken {
		return nil, domain.AlreadyExists("event registration")
	}

	const q = `
INSERT INTO event_registrations (event_id, member_id)
VALUES ($1, $2)
RETURNING ` + registrationColumns
	reg, err := scanRegistration(r.pool.QueryRow(ctx, q, in.EventID, in.MemberID))
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.AlreadyExists("event registration")
		}
		if pgerr.IsForeignKeyViolation(err) {
			return nil, domain.NotFound("event registration reference")
		}
		return nil, domain.DatabaseError("create registration", err)
	}
	return reg, nil
}

func (r *postgresRepo) GetRegistration(ctx context.Context, eventID, memberID int64) (*domain.EventRegistration, error) {
	const q = `SELECT ` + registrationColumns + ` FROM event_registrations WHERE event_id = $1 AND member_id = $2`
	reg, err := scanRegistration(r.pool.QueryRow(ctx, q, eventID, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("event registration")
		}
		return nil, domain.DatabaseError("get registration", err)
	}
	return reg, nil
}

func (r *postgresRepo) ListRegistrations(ctx context.Context, eventID int64) ([]domain.EventRegistration, error) {
	const q = `SELECT ` + registrationColumns + ` FROM event_registrations WHERE event_id = $1 ORDER BY member_id`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, domain.DatabaseError("list registrations", err)
	}
	defer rows.Close()

	var out []domain.EventRegistration
	for rows.Next() {
		var reg domain.EventRegistration
		if err := rows.Scan(&reg.EventID, &reg.MemberID, &reg.Payment.Received, &reg.Payment.Method, &reg.Payment.Date, &reg.CreatedAt); err != nil {
			return nil, domain.DatabaseError("scan registration", err)
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("list registrations", err)
	}
	return out, nil
}

func (r *postgresRepo) SetRegistrationPayment(ctx context.Context, eventID, memberID int64, p domain.Payment) (*domain.EventRegistration, error) {
	const q = `
UPDATE event_registrations
SET payment_received = $1, payment_method = $2, payment_date = $3
WHERE event_id = $4 AND member_id = $5
RETURNING ` + registrationColumns
	reg, err := scanRegistration(r.pool.QueryRow(ctx, q, p.Received, p.Method, p.Date, eventID, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("event registration")
		}
		return nil, domain.DatabaseError("set registration payment", err)
	}
	return reg, nil
}

func (r *postgresRepo) Unregister(ctx context.Context, eventID, memberID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM event_registrations WHERE event_id = $1 AND member_id = $2`, eventID, memberID)
	if err != nil {
		return domain.DatabaseError("delete registration", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("event registration")
	}
	return nil
}

func checkGroupsExist(ctx context.Context, tx pgx.Tx, groupIDs []int64) error {
	if len(groupIDs) == 0 {
		return nil
	}
	var count int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM groups WHERE id = ANY($1)`, groupIDs).Scan(&count); err != nil {
		return domain.DatabaseError("check event groups", err)
	}
	if count != len(groupIDs) {
		return domain.NotFound("group")
	}
	return nil
}

func replaceGroupLinks(ctx context.Context, tx pgx.Tx, eventID int64, groupIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM event_groups WHERE event_id = $1`, eventID); err != nil {
		return domain.DatabaseError("replace event group links", err)
	}
	for _, gid := range groupIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO event_groups (event_id, group_id) VALUES ($1, $2)`, eventID, gid); err != nil {
			if pgerr.IsForeignKeyViolation(err) {
				return domain.NotFound("group")
			}
			return domain.DatabaseError("replace event group links", err)
		}
	}
	return nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt, &e.PriceCents, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanRegistration(row pgx.Row) (*domain.EventRegistration, error) {
	var reg domain.EventRegistration
	err := row.Scan(&reg.EventID, &reg.MemberID, &reg.Payment.Received, &reg.Payment.Method, &reg.Payment.Date, &reg.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}
