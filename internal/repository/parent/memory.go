package parent

import (
	"context"
	"sort"
	"strings"
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

func (r *Memory) Create(_ context.Context, in domain.CreateParentInput) (*domain.Parent, error) {
	r.db.Lock()
	defer r.db.Unlock()

	for _, p := range r.db.Parents {
		if strings.EqualFold(p.Email, in.Email) {
			return nil, domain.AlreadyExists("parent")
		}
	}
	if _, ok := r.db.Addresses[in.AddressID]; !ok {
		return nil, domain.NotFound("address")
	}

	p := domain.Parent{
		ID:          r.db.NextID("parents"),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		AddressID:   in.AddressID,
		CreatedAt:   time.Now().UTC(),
	}
	r.db.Parents[p.ID] = p
	return &p, nil
}

func (r *Memory) GetByID(_ context.Context, id int64) (*domain.Parent, error) {
	r.db.Lock()
	defer r.db.Unlock()

	p, ok := r.db.Parents[id]
	if !ok {
		return nil, domain.NotFound("parent")
	}
	return &p, nil
}

func (r *Memory) GetByEmail(_ context.Context, email string) (*domain.Parent, error) {
	r.db.Lock()
	defer r.db.Unlock()

	for _, p := range r.db.Parents {
		if strings.EqualFold(p.Email, email) {
			parent := p
			return &parent, nil
		}
	}
	return nil, domain.NotFound("parent")
}

func (r *Memory) List(_ context.Context) ([]domain.Parent, error) {
	r.db.Lock()
	defer r.db.Unlock()

	out := make([]domain.Parent, 0, len(r.db.Parents))
	for _, p := range r.db.Parents {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Memory) Update(_ context.Context, id int64, in domain.UpdateParentInput) (*domain.Parent, error) {
	r.db.Lock()
	defer r.db.Unlock()

	existing, ok := r.db.Parents[id]
	if !ok {
		return nil, domain.NotFound("parent")
	}

	merged := mergeParent(existing, in)

	for otherID, p := range r.db.Parents {
		if otherID != id && strings.EqualFold(p.Email, merged.Email) {
			return nil, domain.AlreadyExists("parent")
		}
	}
	if _, ok := r.db.Addresses[merged.AddressID]; !ok {
		return nil, domain.NotFound("address")
	}

	r.db.Parents[id] = merged
	return &merged, nil
}

func (r *Memory) Delete(_ context.Context, id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	for _, l := range r.db.ParentLinks {
		if l.ParentID == id {
			return domain.StillReferenced("parent", "member links")
		}
	}

	if _, ok := r.db.Parents[id]; !ok {
		return domain.NotFound("parent")
	}
	delete(r.db.Parents, id)
	return nil
}

func (r *Memory) DeleteAll(_ context.Context) error {
	r.db.Lock()
	defer r.db.Unlock()

	r.db.Parents = make(map[int64]domain.Parent)
	return nil
}

func mergeParent(existing domain.Parent, in domain.UpdateParentInput) domain.Parent {
	if in.FirstName != nil {
		existing.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		existing.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		existing.PhoneNumber = *in.PhoneNumber
	}
	if in.Email != nil {
		existing.Email = *in.Email
	}
	if in.AddressID != nil {
		existing.AddressID = *in.AddressID
	}
	return existing
}
