package agreement

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

func (r *Memory) Create(_ context.Context, in domain.CreateAgreementInput) (*domain.SponsorshipAgreement, error) {
	r.db.Lock()
	defer r.db.Unlock()

	if _, ok := r.db.Sponsors[in.SponsorID]; !ok {
		return nil, domain.NotFound("sponsor")
	}
	if _, ok := r.db.WorkYears[in.WorkYearID]; !ok {
		return nil, domain.NotFound("work year")
	}
	key := memdb.PairKey{in.SponsorID, in.WorkYearID}
	if _, ok := r.db.Agreements[key]; ok {
		return nil, domain.AlreadyExists("sponsorship agreement")
	}

	a := domain.SponsorshipAgreement{
		SponsorID:   in.SponsorID,
		WorkYearID:  in.WorkYearID,
		AmountCents: in.AmountCents,
		CreatedAt:   time.Now().UTC(),
	}
	r.db.Agreements[key] = a
	return &a, nil
}

func (r *Memory) Get(_ context.Context, sponsorID, workYearID int64) (*domain.SponsorshipAgreement, error) {
	r.db.Lock()
	defer r.db.Unlock()

	a, ok := r.db.Agreements[memdb.PairKey{sponsorID, workYearID}]
	if !ok {
		return nil, domain.NotFound("sponsorship agreement")
	}
	return &a, nil
}

func (r *Memory) ListByWorkYear(_ context.Context, workYearID int64) ([]domain.SponsorshipAgreement, error) {
	return r.list(func(a domain.SponsorshipAgreement) bool { return a.WorkYearID == workYearID })
}

func (r *Memory) ListBySponsor(_ context.Context, sponsorID int64) ([]domain.SponsorshipAgreement, error) {
	return r.list(func(a domain.SponsorshipAgreement) bool { return a.SponsorID == sponsorID })
}

func (r *Memory) list(keep func(domain.SponsorshipAgreement) bool) ([]domain.SponsorshipAgreement, error) {
	r.db.Lock()
	defer r.db.Unlock()

	var out []domain.SponsorshipAgreement
	for _, a := range r.db.Agreements {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WorkYearID != out[j].WorkYearID {
			return out[i].WorkYearID < out[j].WorkYearID
		}
		return out[i].SponsorID < out[j].SponsorID
	})
	return out, nil
}

func (r *Memory) Update(_ context.Context, sponsorID, workYearID int64, in domain.UpdateAgreementInput) (*domain.SponsorshipAgreement, error) {
	r.db.Lock()
	defer r.db.Unlock()

	key := memdb.PairKey{sponsorID, workYearID}
	existing, ok := r.db.Agreements[key]
	if !ok {
		return nil, domain.NotFound("sponsorship agreement")
	}
	if in.AmountCents != nil {
		existing.AmountCents = *in.AmountCents
	}
	r.db.Agreements[key] = existing
	return &existing, nil
}

func (r *Memory) SetPayment(_ context.Context, sponsorID, workYearID int64, p domain.Payment) (*domain.SponsorshipAgreement, error) {
	r.db.Lock()
	defer r.db.Unlock()

	key := memdb.PairKey{sponsorID, workYearID}
	existing, ok := r.db.Agreements[key]
	if !ok {
		return nil, domain.NotFound("sponsorship agreement")
	}
	existing.Payment = p
	r.db.Agreements[key] = existing
	return &existing, nil
}

func (r *Memory) Delete(_ context.Context, sponsorID, workYearID int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	key := memdb.PairKey{sponsorID, workYearID}
	if _, ok := r.db.Agreements[key]; !ok {
		return domain.NotFound("sponsorship agreement")
	}
	delete(r.db.Agreements, key)
	return nil
}

func (r *Memory) DeleteAll(_ context.Context) error {
	r.db.Lock()
	defer r.db.Unlock()

	r.db.Agreements = make(map[memdb.PairKey]domain.SponsorshipAgreement)
	return nil
}
