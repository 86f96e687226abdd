package address

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

func (r *Memory) Create(_ context.Context, in domain.CreateAddressInput) (*domain.Address, error) {
	r.db.Lock()
	defer r.db.Unlock()

	candidate := domain.Address{
		Street:       in.Street,
		HouseNumber:  in.HouseNumber,
		Box:          in.Box,
		Municipality: in.Municipality,
		PostalCode:   in.PostalCode,
	}
	for _, a := range r.db.Addresses {
		if a.NaturalKey() == candidate.NaturalKey() {
			return nil, domain.AlreadyExists("address")
		}
	}

	candidate.ID = r.db.NextID("addresses")
	candidate.CreatedAt = time.Now().UTC()
	r.db.Addresses[candidate.ID] = candidate
	return &candidate, nil
}

func (r *Memory) GetByID(_ context.Context, id int64) (*domain.Address, error) {
	r.db.Lock()
	defer r.db.Unlock()

	a, ok := r.db.Addresses[id]
	if !ok {
		return nil, domain.NotFound("address")
	}
	return &a, nil
}

func (r *Memory) GetByNaturalKey(_ context.Context, in domain.CreateAddressInput) (*domain.Address, error) {
	r.db.Lock()
	defer r.db.Unlock()

	key := domain.Address{
		Street:       in.Street,
		HouseNumber:  in.HouseNumber,
		Box:          in.Box,
		Municipality: in.Municipality,
		PostalCode:   in.PostalCode,
	}.NaturalKey()
	for _, a := range r.db.Addresses {
		if a.NaturalKey() == key {
			addr := a
			return &addr, nil
		}
	}
	return nil, domain.NotFound("address")
}

func (r *Memory) List(_ context.Context) ([]domain.Address, error) {
	r.db.Lock()
	defer r.db.Unlock()

	out := make([]domain.Address, 0, len(r.db.Addresses))
	for _, a := range r.db.Addresses {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Memory) Update(_ context.Context, id int64, in domain.UpdateAddressInput) (*domain.Address, error) {
	r.db.Lock()
	defer r.db.Unlock()

	existing, ok := r.db.Addresses[id]
	if !ok {
		return nil, domain.NotFound("address")
	}

	merged := mergeAddress(existing, in)

	for otherID, a := range r.db.Addresses {
		if otherID != id && a.NaturalKey() == merged.NaturalKey() {
			return nil, domain.AlreadyExists("address")
		}
	}

	r.db.Addresses[id] = merged
	return &merged, nil
}

func (r *Memory) Delete(_ context.Context, id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	var referencedBy []string
	for _, p := range r.db.Parents {
		if p.AddressID == id {
			referencedBy = append(referencedBy, "parents")
			break
		}
	}
	for _, s := range r.db.Sponsors {
		if s.AddressID != nil && *s.AddressID == id {
			referencedBy = append(referencedBy, "sponsors")
			break
		}
	}
	if len(referencedBy) > 0 {
		return domain.StillReferenced("address", referencedBy...)
	}

	if _, ok := r.db.Addresses[id]; !ok {
		return domain.NotFound("address")
	}
	delete(r.db.Addresses, id)
	return nil
}

func (r *Memory) DeleteAll(_ context.Context) error {
	r.db.Lock()
	defer r.db.Unlock()

	r.db.Addresses = make(map[int64]domain.Address)
	return nil
}

// mergeAddress lays the partial input over the existing record. Nil fields
// keep their stored value; Box set to the empty string clears it.
func mergeAddress(existing domain.Address, in domain.UpdateAddressInput) domain.Address {
	if in.Street != nil {
		existing.Street = *in.Street
	}
	if in.HouseNumber != nil {
		existing.HouseNumber = *in.HouseNumber
	}
	if in.Box != nil {
		if *in.Box == "" {
			existing.Box = nil
		} else {
			box := *in.Box
			existing.Box = &box
		}
	}
	if in.Municipality != nil {
		existing.Municipality = *in.Municipality
	}
	if in.PostalCode != nil {
		existing.PostalCode = *in.PostalCode
	}
	return existing
}
