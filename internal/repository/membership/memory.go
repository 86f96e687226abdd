package membership

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

func (r *Memory) Create(_ context.Context, in domain.CreateMembershipInput) (*domain.YearlyMembership, error) {
	r.db.Lock()
	defer r.db.Unlock()

	if _, ok := r.db.Members[in.MemberID]; !ok {
		return nil, domain.NotFound("member")
	}
	if _, ok := r.db.WorkYears[in.WorkYearID]; !ok {
		return nil, domain.NotFound("work year")
	}
	if _, ok := r.db.Groups[in.GroupID]; !ok {
		return nil, domain.NotFound("group")
	}
	key := memdb.PairKey{in.MemberID, in.WorkYearID}
	if _, ok := r.db.Memberships[key]; ok {
		return nil, domain.AlreadyExists("yearly membership")
	}

	m := domain.YearlyMembership{
		MemberID:   in.MemberID,
		WorkYearID: in.WorkYearID,
		GroupID:    in.GroupID,
		CreatedAt:  time.Now().UTC(),
	}
	r.db.Memberships[key] = m
	return &m, nil
}

func (r *Memory) Get(_ context.Context, memberID, workYearID int64) (*domain.YearlyMembership, error) {
	r.db.Lock()
	defer r.db.Unlock()

	m, ok := r.db.Memberships[memdb.PairKey{memberID, workYearID}]
	if !ok {
		return nil, domain.NotFound("yearly membership")
	}
	return &m, nil
}

func (r *Memory) ListByWorkYear(_ context.Context, workYearID int64) ([]domain.YearlyMembership, error) {
	return r.list(func(m domain.YearlyMembership) bool { return m.WorkYearID == workYearID })
}

func (r *Memory) ListByMember(_ context.Context, memberID int64) ([]domain.YearlyMembership, error) {
	return r.list(func(m domain.YearlyMembership) bool { return m.MemberID == memberID })
}

func (r *Memory) list(keep func(domain.YearlyMembership) bool) ([]domain.YearlyMembership, error) {
	r.db.Lock()
	defer r.db.Unlock()

	var out []domain.YearlyMembership
	for _, m := range r.db.Memberships {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WorkYearID != out[j].WorkYearID {
			return out[i].WorkYearID < out[j].WorkYearID
		}
		return out[i].MemberID < out[j].MemberID
	})
	return out, nil
}

func (r *Memory) Update(_ context.Context, memberID, workYearID int64, in domain.UpdateMembershipInput) (*domain.YearlyMembership, error) {
	r.db.Lock()
	defer r.db.Unlock()

	key := memdb.PairKey{memberID, workYearID}
	existing, ok := r.db.Memberships[key]
	if !ok {
		return nil, domain.NotFound("yearly membership")
	}
	if in.GroupID != nil {
		if _, ok := r.db.Groups[*in.GroupID]; !ok {
			return nil, domain.NotFound("group")
		}
		existing.GroupID = *in.GroupID
	}
	r.db.Memberships[key] = existing
	return &existing, nil
}

func (r *Memory) SetPayment(_ context.Context, memberID, workYearID int64, p domain.Payment) (*domain.YearlyMembership, error) {
	r.db.Lock()
	defer r.db.Unlock()

	key := memdb.PairKey{memberID, workYearID}
	existing, ok := r.db.Memberships[key]
	if !ok {
		return nil, domain.NotFound("yearly membership")
	}
	existing.Payment = p
	r.db.Memberships[key] = existing
	return &existing, nil
}

func (r *Memory) Delete(_ context.Context, memberID, workYearID int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	key := memdb.PairKey{memberID, workYearID}
	if _, ok := r.db.Memberships[key]; !ok {
		return domain.NotFound("yearly membership")
	}
	delete(r.db.Memberships, key)
	return nil
}

func (r *Memory) DeleteAll(_ context.Context) error {
	r.db.Lock()
	defer r.db.Unlock()

	r.db.Memberships = make(map[memdb.PairKey]domain.YearlyMembership)
	return nil
}
