package sponsor

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

func (r *Memory) Create(_ context.Context, in domain.CreateSponsorInput) (*domain.Sponsor, error) {
	r.db.Lock()
	defer r.db.Unlock()

	for _, s := range r.db.Sponsors {
		if strings.EqualFold(s.CompanyName, in.CompanyName) {
			return nil, domain.AlreadyExists("sponsor")
		}
	}
	if in.AddressID != nil {
		if _, ok := r.db.Addresses[*in.AddressID]; !ok {
			return nil, domain.NotFound("address")
		}
	}

	s := domain.Sponsor{
		ID:          r.db.NextID("sponsors"),
		CompanyName: in.CompanyName,
		AddressID:   in.AddressID,
		LogoURL:     in.LogoURL,
		WebsiteURL:  in.WebsiteURL,
		Active:      in.Active,
		CreatedAt:   time.Now().UTC(),
	}
	r.db.Sponsors[s.ID] = s
	return &s, nil
}

func (r *Memory) GetByID(_ context.Context, id int64) (*domain.Sponsor, error) {
	r.db.Lock()
	defer r.db.Unlock()

	s, ok := r.db.Sponsors[id]
	if !ok {
		return nil, domain.NotFound("sponsor")
	}
	return &s, nil
}

func (r *Memory) GetByCompanyName(_ context.Context, name string) (*domain.Sponsor, error) {
	r.db.Lock()
	defer r.db.Unlock()

	for _, s := range r.db.Sponsors {
		if strings.EqualFold(s.CompanyName, name) {
			sp := s
			return &sp, nil
		}
	}
	return nil, domain.NotFound("sponsor")
}

func (r *Memory) List(_ context.Context) ([]domain.Sponsor, error) {
	return r.list(false)
}

func (r *Memory) ListActive(_ context.Context) ([]domain.Sponsor, error) {
	return r.list(true)
}

func (r *Memory) list(activeOnly bool) ([]domain.Sponsor, error) {
	r.db.Lock()
	defer r.db.Unlock()

	out := make([]domain.Sponsor, 0, len(r.db.Sponsors))
	for _, s := range r.db.Sponsors {
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].CompanyName) < strings.ToLower(out[j].CompanyName)
	})
	return out, nil
}

func (r *Memory) Update(_ context.Context, id int64, in domain.UpdateSponsorInput) (*domain.Sponsor, error) {
	r.db.Lock()
	defer r.db.Unlock()

	existing, ok := r.db.Sponsors[id]
	if !ok {
		return nil, domain.NotFound("sponsor")
	}

	merged := mergeSponsor(existing, in)

	for otherID, s := range r.db.Sponsors {
		if otherID != id && strings.EqualFold(s.CompanyName, merged.CompanyName) {
			return nil, domain.AlreadyExists("sponsor")
		}
	}
	if merged.AddressID != nil {
		if _, ok := r.db.Addresses[*merged.AddressID]; !ok {
			return nil, domain.NotFound("address")
		}
	}

	r.db.Sponsors[id] = merged
	return &merged, nil
}

func (r *Memory) Delete(_ context.Context, id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	for _, a := range r.db.Agreements {
		if a.SponsorID == id {
			return domain.StillReferenced("sponsor", "sponsorship agreements")
		}
	}

	if _, ok := r.db.Sponsors[id]; !ok {
		return domain.NotFound("sponsor")
	}
	delete(r.db.Sponsors, id)
	return nil
}

func (r *Memory) DeleteAll(_ context.Context) error {
	r.db.Lock()
	defer r.db.Unlock()

	r.db.Sponsors = make(map[int64]domain.Sponsor)
	return nil
}

// mergeSponsor lays the partial input over the existing record. AddressID set
// to zero detaches the address; LogoURL or WebsiteURL set to the empty string
// clears the field.
func mergeSponsor(existing domain.Sponsor, in domain.UpdateSponsorInput) domain.Sponsor {
	if in.CompanyName != nil {
		existing.CompanyName = *in.CompanyName
	}
	if in.AddressID != nil {
		if *in.AddressID == 0 {
			existing.AddressID = nil
		} else {
			v := *in.AddressID
			existing.AddressID = &v
		}
	}
	if in.LogoURL != nil {
		if *in.LogoURL == "" {
			existing.LogoURL = nil
		} else {
			v := *in.LogoURL
			existing.LogoURL = &v
		}
	}
	if in.WebsiteURL != nil {
		if *in.WebsiteURL == "" {
			existing.WebsiteURL = nil
		} else {
			v := *in.WebsiteURL
			existing.WebsiteURL = &v
		}
	}
	if in.Active != nil {
		existing.Active = *in.Active
	}
	return existing
}
