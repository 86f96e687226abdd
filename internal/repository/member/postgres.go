package member

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

// memberSelect pulls the member row together with its owned records in one
// round trip.
const memberSelect = `
SELECT m.id, m.first_name, m.last_name, m.date_of_birth, m.gender, m.phone_number, m.email, m.created_at,
       ec.name, ec.phone_number, ec.relationship,
       mi.doctor_name, mi.doctor_phone_number, mi.allergies, mi.medications, mi.conditions,
       mi.tetanus_vaccinated, mi.can_swim, mi.notes
FROM members m
LEFT JOIN emergency_contacts ec ON ec.member_id = m.id
LEFT JOIN medical_information mi ON mi.member_id = m.id`

func (r *postgresRepo) Create(ctx context.Context, in domain.CreateMemberInput) (*domain.Member, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.DatabaseError("begin create member", err)
	}
	defer tx.Rollback(ctx)

	m := domain.Member{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
	}
	const q = `
INSERT INTO members (first_name, last_name, date_of_birth, gender, phone_number, email)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`
	if err := tx.QueryRow(ctx, q, in.FirstName, in.LastName, in.DateOfBirth, string(in.Gender), in.PhoneNumber, in.Email).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, domain.DatabaseError("create member", err)
	}

	if in.EmergencyContact != nil {
		if err := upsertEmergencyContact(ctx, tx, m.ID, *in.EmergencyContact); err != nil {
			return nil, err
		}
		c := *in.EmergencyContact
		m.EmergencyContact = &c
	}
	if in.MedicalInfo != nil {
		if err := upsertMedicalInformation(ctx, tx, m.ID, *in.MedicalInfo); err != nil {
			return nil, err
		}
		mi := *in.MedicalInfo
		m.MedicalInfo = &mi
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.DatabaseError("commit create member", err)
	}
	return &m, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	m, err := scanMember(r.pool.QueryRow(ctx, memberSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("member")
		}
		return nil, domain.DatabaseError("get member", err)
	}
	return m, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Member, error) {
	rows, err := r.pool.Query(ctx, memberSelect+` ORDER BY m.last_name, m.first_name`)
	if err != nil {
		return nil, domain.DatabaseError("list members", err)
	}
	defer rows.Close()

	var out []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, domain.DatabaseError("scan member", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("list members", err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, in domain.UpdateMemberInput) (*domain.Member, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.DatabaseError("begin update member", err)
	}
	defer tx.Rollback(ctx)

	existing, err := scanMember(tx.QueryRow(ctx, memberSelect+` WHERE m.id = $1 FOR UPDATE OF m`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("member")
		}
		return nil, domain.DatabaseError("lock member", err)
	}

	merged := mergeMember(*existing, in)

	const q = `
UPDATE members
SET first_name = $1, last_name = $2, date_of_birth = $3, gender = $4, phone_number = $5, email = $6
WHERE id = $7`
	if _, err := tx.Exec(ctx, q, merged.FirstName, merged.LastName, merged.DateOfBirth, string(merged.Gender), merged.PhoneNumber, merged.Email, id); err != nil {
		return nil, domain.DatabaseError("update member", err)
	}

	if in.EmergencyContact != nil {
		if err := upsertEmergencyContact(ctx, tx, id, *in.EmergencyContact); err != nil {
			return nil, err
		}
	}
	if in.MedicalInfo != nil {
		if err := upsertMedicalInformation(ctx, tx, id, *in.MedicalInfo); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.DatabaseError("commit update member", err)
	}
	return &merged, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.DatabaseError("begin delete member", err)
	}
	defer tx.Rollback(ctx)

	const refQ = `
SELECT
    EXISTS (SELECT 1 FROM yearly_memberships WHERE member_id = $1),
    EXISTS (SELECT 1 FROM event_registrations WHERE member_id = $1),
    EXISTS (SELECT 1 FROM member_parents WHERE member_id = $1)`
	var byMemberships, byRegistrations, byLinks bool
	if err := tx.QueryRow(ctx, refQ, id).Scan(&byMemberships, &byRegistrations, &byLinks); err != nil {
		return domain.DatabaseError("count member references", err)
	}
	var referencedBy []string
	if byMemberships {
		referencedBy = append(referencedBy, "yearly memberships")
	}
	if byRegistrations {
		referencedBy = append(referencedBy, "event registrations")
	}
	if byLinks {
		referencedBy = append(referencedBy, "parent links")
	}
	if len(referencedBy) > 0 {
		return domain.StillReferenced("member", referencedBy...)
	}

	// Owned records go with the member; they are not independent entities.
	if _, err := tx.Exec(ctx, `DELETE FROM emergency_contacts WHERE member_id = $1`, id); err != nil {
		return domain.DatabaseError("delete emergency contact", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM medical_information WHERE member_id = $1`, id); err != nil {
		return domain.DatabaseError("delete medical information", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return domain.StillReferenced("member")
		}
		return domain.DatabaseError("delete member", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("member")
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.DatabaseError("commit delete member", err)
	}
	return nil
}

func (r *postgresRepo) DeleteAll(ctx context.Context) error {
	for _, q := range []string{
		`DELETE FROM emergency_contacts`,
		`DELETE FROM medical_information`,
		`DELETE FROM members`,
	} {
		if _, err := r.pool.Exec(ctx, q); err != nil {
			return domain.DatabaseError("delete all members", err)
		}
	}
	return nil
}

func (r *postgresRepo) LinkParent(ctx context.Context, memberID, parentID int64, isPrimary bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.DatabaseError("begin link parent", err)
	}
	defer tx.Rollback(ctx)

	var memberExists, parentExists bool
	const existsQ = `
SELECT EXISTS (SELECT 1 FROM members WHERE id = $1), EXISTS (SELECT 1 FROM parents WHERE id = $2)`
	if err := tx.QueryRow(ctx, existsQ, memberID, parentID).Scan(&memberExists, &parentExists); err != nil {
		return domain.DatabaseError("check link parent references", err)
	}
	if !memberExists {
		return domain.NotFound("member")
	}
	if !parentExists {
		return domain.NotFound("parent")
	}

	if isPrimary {
		if _, err := tx.Exec(ctx, `UPDATE member_parents SET is_primary = FALSE WHERE member_id = $1 AND is_primary`, memberID); err != nil {
			return domain.DatabaseError("demote primary parent", err)
		}
	}

	_, err = tx.Exec(ctx, `INSERT INTO member_parents (member_id, parent_id, is_primary) VALUES ($1, $2, $3)`, memberID, parentID, isPrimary)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return domain.AlreadyExists("parent link")
		}
		if pgerr.IsForeignKeyViolation(err) {
			return domain.NotFound("parent")
		}
		return domain.DatabaseError("link parent", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.DatabaseError("commit link parent", err)
	}
	return nil
}

func (r *postgresRepo) UnlinkParent(ctx context.Context, memberID, parentID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM member_parents WHERE member_id = $1 AND parent_id = $2`, memberID, parentID)
	if err != nil {
		return domain.DatabaseError("unlink parent", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("parent link")
	}
	return nil
}

func (r *postgresRepo) ListParentLinks(ctx context.Context, memberID int64) ([]domain.MemberParentLink, error) {
	rows, err := r.pool.Query(ctx, `SELECT member_id, parent_id, is_primary FROM member_parents WHERE member_id = $1 ORDER BY parent_id`, memberID)
	if err != nil {
		return nil, domain.DatabaseError("list parent links", err)
	}
	defer rows.Close()

	var out []domain.MemberParentLink
	for rows.Next() {
		var l domain.MemberParentLink
		if err := rows.Scan(&l.MemberID, &l.ParentID, &l.IsPrimary); err != nil {
			return nil, domain.DatabaseError("scan parent link", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("list parent links", err)
	}
	return out, nil
}

func upsertEmergencyContact(ctx context.Context, tx pgx.Tx, memberID int64, c domain.EmergencyContact) error {
	const q = `
INSERT INTO emergency_contacts (member_id, name, phone_number, relationship)
VALUES ($1, $2, $3, $4)
ON CONFLICT (member_id) DO UPDATE
SET name = EXCLUDED.name, phone_number = EXCLUDED.phone_number, relationship = EXCLUDED.relationship`
	if _, err := tx.Exec(ctx, q, memberID, c.Name, c.PhoneNumber, c.Relationship); err != nil {
		return domain.DatabaseError("upsert emergency contact", err)
	}
	return nil
}

func upsertMedicalInformation(ctx context.Context, tx pgx.Tx, memberID int64, mi domain.MedicalInformation) error {
	const q = `
INSERT INTO medical_information (member_id, doctor_name, doctor_phone_number, allergies, medications, conditions, tetanus_vaccinated, can_swim, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (member_id) DO UPDATE
SET doctor_name = EXCLUDED.doctor_name, doctor_phone_number = EXCLUDED.doctor_phone_number,
    allergies = EXCLUDED.allergies, medications = EXCLUDED.medications, conditions = EXCLUDED.conditions,
    tetanus_vaccinated = EXCLUDED.tetanus_vaccinated, can_swim = EXCLUDED.can_swim, notes = EXCLUDED.notes`
	if _, err := tx.Exec(ctx, q, memberID, mi.DoctorName, mi.DoctorPhoneNumber, mi.Allergies, mi.Medications, mi.Conditions, mi.TetanusVaccinated, mi.CanSwim, mi.Notes); err != nil {
		return domain.DatabaseError("upsert medical information", err)
	}
	return nil
}

// scanMember reads the joined row; the owned records come back as nullable
// column groups.
func scanMember(row pgx.Row) (*domain.Member, error) {
	var (
		m          domain.Member
		gender     string
		ecName     *string
		ecPhone    *string
		ecRelation *string
		doctorName *string
		doctorTel  *string
		allergies  *string
		medication *string
		conditions *string
		tetanus    *bool
		canSwim    *bool
		notes      *string
	)
	err := row.Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.DateOfBirth, &gender, &m.PhoneNumber, &m.Email, &m.CreatedAt,
		&ecName, &ecPhone, &ecRelation,
		&doctorName, &doctorTel, &allergies, &medication, &conditions, &tetanus, &canSwim, &notes,
	)
	if err != nil {
		return nil, err
	}
	m.Gender = domain.Gender(gender)
	if ecName != nil {
		m.EmergencyContact = &domain.EmergencyContact{Name: *ecName, PhoneNumber: *ecPhone, Relationship: *ecRelation}
	}
	if doctorName != nil {
		m.MedicalInfo = &domain.MedicalInformation{
			DoctorName:        *doctorName,
			DoctorPhoneNumber: *doctorTel,
			Allergies:         allergies,
			Medications:       medication,
			Conditions:        conditions,
			TetanusVaccinated: tetanus != nil && *tetanus,
			CanSwim:           canSwim != nil && *canSwim,
			Notes:             notes,
		}
	}
	return &m, nil
}
