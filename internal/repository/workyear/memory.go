package workyear

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

func samePeriod(w domain.WorkYear, start, end time.Time) bool {
	return w.StartDate.Equal(start) && w.EndDate.Equal(end)
}

func (r *Memory) Create(_ context.Context, in domain.CreateWorkYearInput) (*domain.WorkYear, error) {
	r.db.Lock()
	defer r.db.Unlock()

	for _, w := range r.db.WorkYears {
		if samePeriod(w, in.StartDate, in.EndDate) {
			return nil, domain.AlreadyExists("work year")
		}
	}

	w := domain.WorkYear{
		ID:        r.db.NextID("work_years"),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		FeeCents:  in.FeeCents,
	}
	r.db.WorkYears[w.ID] = w
	return &w, nil
}

func (r *Memory) GetByID(_ context.Context, id int64) (*domain.WorkYear, error) {
	r.db.Lock()
	defer r.db.Unlock()

	w, ok := r.db.WorkYears[id]
	if !ok {
		return nil, domain.NotFound("work year")
	}
	return &w, nil
}

func (r *Memory) GetByPeriod(_ context.Context, start, end time.Time) (*domain.WorkYear, error) {
	r.db.Lock()
	defer r.db.Unlock()

	for _, w := range r.db.WorkYears {
		if samePeriod(w, start, end) {
			wy := w
			return &wy, nil
		}
	}
	return nil, domain.NotFound("work year")
}

func (r *Memory) List(_ context.Context) ([]domain.WorkYear, error) {
	r.db.Lock()
	defer r.db.Unlock()

	out := make([]domain.WorkYear, 0, len(r.db.WorkYears))
	for _, w := range r.db.WorkYears {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *Memory) Update(_ context.Context, id int64, in domain.UpdateWorkYearInput) (*domain.WorkYear, error) {
	r.db.Lock()
	defer r.db.Unlock()

	existing, ok := r.db.WorkYears[id]
	if !ok {
		return nil, domain.NotFound("work year")
	}

	merged := mergeWorkYear(existing, in)
	if !merged.EndDate.After(merged.StartDate) {
		return nil, domain.ErrInvalidPeriod
	}

	for otherID, w := range r.db.WorkYears {
		if otherID != id && samePeriod(w, merged.StartDate, merged.EndDate) {
			return nil, domain.AlreadyExists("work year")
		}
	}

	r.db.WorkYears[id] = merged
	return &merged, nil
}

func (r *Memory) Delete(_ context.Context, id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	var referencedBy []string
	for _, m := range r.db.Memberships {
		if m.WorkYearID == id {
			referencedBy = append(referencedBy, "yearly memberships")
			break
		}
	}
	for _, a := range r.db.Agreements {
		if a.WorkYearID == id {
			referencedBy = append(referencedBy, "sponsorship agreements")
			break
		}
	}
	if len(referencedBy) > 0 {
		return domain.StillReferenced("work year", referencedBy...)
	}

	if _, ok := r.db.WorkYears[id]; !ok {
		return domain.NotFound("work year")
	}
	delete(r.db.WorkYears, id)
	return nil
}

func (r *Memory) DeleteAll(_ context.Context) error {
	r.db.Lock()
	defer r.db.Unlock()

	r.db.WorkYears = make(map[int64]domain.WorkYear)
	return nil
}

func mergeWorkYear(existing domain.WorkYear, in domain.UpdateWorkYearInput) domain.WorkYear {
	if in.StartDate != nil {
		existing.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		existing.EndDate = *in.EndDate
	}
	if in.FeeCents != nil {
		existing.FeeCents = *in.FeeCents
	}
	return existing
}
