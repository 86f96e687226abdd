package member

import (
	"context"
	"sort"
	"time"

	"chiroportaal/internal/domain"
	"chiroportaal/internal/repository/memdb"
)

// Memory implements Repository on a memdb.DB.
type Memory struct {
	db *memdb.DB
}

// NewMemory returns a Repository backed by the given in-memory database.
func NewMemory(db *memdb.DB) *Memory {
	return &Memory{db: db}
}

// cloneMember copies the owned pointers so callers never alias the stored
// record.
func cloneMember(m domain.Member) domain.Member {
	if m.EmergencyContact != nil {
		c := *m.EmergencyContact
		m.EmergencyContact = &c
	}
	if m.MedicalInfo != nil {
		mi := *m.MedicalInfo
		m.MedicalInfo = &mi
	}
	return m
}

func (r *Memory) Create(_ context.Context, in domain.CreateMemberInput) (*domain.Member, error) {
	r.db.Lock()
	defer r.db.Unlock()

	m := domain.Member{
		ID:          r.db.NextID("members"),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		CreatedAt:   time.Now().UTC(),
	}
	if in.EmergencyContact != nil {
		c := *in.EmergencyContact
		m.EmergencyContact = &c
	}
	if in.MedicalInfo != nil {
		mi := *in.MedicalInfo
		m.MedicalInfo = &mi
	}
	r.db.Members[m.ID] = m
	out := cloneMember(m)
	return &out, nil
}

func (r *Memory) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	r.db.Lock()
	defer r.db.Unlock()

	m, ok := r.db.Members[id]
	if !ok {
		return nil, domain.NotFound("member")
	}
	out := cloneMember(m)
	return &out, nil
}

func (r *Memory) List(_ context.Context) ([]domain.Member, error) {
	r.db.Lock()
	defer r.db.Unlock()

	out := make([]domain.Member, 0, len(r.db.Members))
	for _, m := range r.db.Members {
		out = append(out, cloneMember(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Memory) Update(_ context.Context, id int64, in domain.UpdateMemberInput) (*domain.Member, error) {
	r.db.Lock()
	defer r.db.Unlock()

	existing, ok := r.db.Members[id]
	if !ok {
		return nil, domain.NotFound("member")
	}

	merged := mergeMember(cloneMember(existing), in)
	r.db.Members[id] = merged
	out := cloneMember(merged)
	return &out, nil
}

func (r *Memory) Delete(_ context.Context, id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	var referencedBy []string
	for _, m := range r.db.Memberships {
		if m.MemberID == id {
			referencedBy = append(referencedBy, "yearly memberships")
			break
		}
	}
	for _, reg := range r.db.Registrations {
		if reg.MemberID == id {
			referencedBy = append(referencedBy, "event registrations")
			break
		}
	}
	for _, l := range r.db.ParentLinks {
		if l.MemberID == id {
			referencedBy = append(referencedBy, "parent links")
			break
		}
	}
	if len(referencedBy) > 0 {
		return domain.StillReferenced("member", referencedBy...)
	}

	if _, ok := r.db.Members[id]; !ok {
		return domain.NotFound("member")
	}
	delete(r.db.Members, id)
	return nil
}

func (r *Memory) DeleteAll(_ context.Context) error {
	r.db.Lock()
	defer r.db.Unlock()

	r.db.Members = make(map[int64]domain.Member)
	return nil
}

func (r *Memory) LinkParent(_ context.Context, memberID, parentID int64, isPrimary bool) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, ok := r.db.Members[memberID]; !ok {
		return domain.NotFound("member")
	}
	if _, ok := r.db.Parents[parentID]; !ok {
		return domain.NotFound("parent")
	}
	key := memdb.PairKey{memberID, parentID}
	if _, ok := r.db.ParentLinks[key]; ok {
		return domain.AlreadyExists("parent link")
	}

	if isPrimary {
		for k, l := range r.db.ParentLinks {
			if l.MemberID == memberID && l.IsPrimary {
				l.IsPrimary = false
				r.db.ParentLinks[k] = l
			}
		}
	}
	r.db.ParentLinks[key] = domain.MemberParentLink{MemberID: memberID, ParentID: parentID, IsPrimary: isPrimary}
	return nil
}

func (r *Memory) UnlinkParent(_ context.Context, memberID, parentID int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	key := memdb.PairKey{memberID, parentID}
	if _, ok := r.db.ParentLinks[key]; !ok {
		return domain.NotFound("parent link")
	}
	delete(r.db.ParentLinks, key)
	return nil
}

func (r *Memory) ListParentLinks(_ context.Context, memberID int64) ([]domain.MemberParentLink, error) {
	r.db.Lock()
	defer r.db.Unlock()

	var out []domain.MemberParentLink
	for _, l := range r.db.ParentLinks {
		if l.MemberID == memberID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ParentID < out[j].ParentID })
	return out, nil
}

// mergeMember lays the partial input over the existing record. Owned records
// are replaced wholesale when present; PhoneNumber or Email set to the empty
// string clears the field.
func mergeMember(existing domain.Member, in domain.UpdateMemberInput) domain.Member {
	if in.FirstName != nil {
		existing.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		existing.LastName = *in.LastName
	}
	if in.DateOfBirth != nil {
		existing.DateOfBirth = *in.DateOfBirth
	}
	if in.Gender != nil {
		existing.Gender = *in.Gender
	}
	if in.PhoneNumber != nil {
		if *in.PhoneNumber == "" {
			existing.PhoneNumber = nil
		} else {
			v := *in.PhoneNumber
			existing.PhoneNumber = &v
		}
	}
	if in.Email != nil {
		if *in.Email == "" {
			existing.Email = nil
		} else {
			v := *in.Email
			existing.Email = &v
		}
	}
	if in.EmergencyContact != nil {
		c := *in.EmergencyContact
		existing.EmergencyContact = &c
	}
	if in.MedicalInfo != nil {
		mi := *in.MedicalInfo
		existing.MedicalInfo = &mi
	}
	return existing
}
