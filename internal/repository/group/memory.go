package group

import (
	"context"
	"sort"
	"strings"

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

func (r *Memory) Create(_ context.Context, in domain.CreateGroupInput) (*domain.Group, error) {
	r.db.Lock()
	defer r.db.Unlock()

	for _, g := range r.db.Groups {
		if strings.EqualFold(g.Name, in.Name) {
			return nil, domain.AlreadyExists("group")
		}
	}

	g := domain.Group{
		ID:             r.db.NextID("groups"),
		Name:           in.Name,
		MinimumAgeDays: in.MinimumAgeDays,
		MaximumAgeDays: in.MaximumAgeDays,
		Gender:         in.Gender,
		Active:         in.Active,
	}
	r.db.Groups[g.ID] = g
	return &g, nil
}

func (r *Memory) GetByID(_ context.Context, id int64) (*domain.Group, error) {
	r.db.Lock()
	defer r.db.Unlock()

	g, ok := r.db.Groups[id]
	if !ok {
		return nil, domain.NotFound("group")
	}
	return &g, nil
}

func (r *Memory) GetByName(_ context.Context, name string) (*domain.Group, error) {
	r.db.Lock()
	defer r.db.Unlock()

	for _, g := range r.db.Groups {
		if strings.EqualFold(g.Name, name) {
			grp := g
			return &grp, nil
		}
	}
	return nil, domain.NotFound("group")
}

func (r *Memory) List(_ context.Context) ([]domain.Group, error) {
	r.db.Lock()
	defer r.db.Unlock()

	out := make([]domain.Group, 0, len(r.db.Groups))
	for _, g := range r.db.Groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MinimumAgeDays < out[j].MinimumAgeDays })
	return out, nil
}

func (r *Memory) Update(_ context.Context, id int64, in domain.UpdateGroupInput) (*domain.Group, error) {
	r.db.Lock()
	defer r.db.Unlock()

	existing, ok := r.db.Groups[id]
	if !ok {
		return nil, domain.NotFound("group")
	}

	merged := mergeGroup(existing, in)

	for otherID, g := range r.db.Groups {
		if otherID != id && strings.EqualFold(g.Name, merged.Name) {
			return nil, domain.AlreadyExists("group")
		}
	}

	r.db.Groups[id] = merged
	return &merged, nil
}

func (r *Memory) Delete(_ context.Context, id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	var referencedBy []string
	for _, m := range r.db.Memberships {
		if m.GroupID == id {
			referencedBy = append(referencedBy, "yearly memberships")
			break
		}
	}
events:
	for _, e := range r.db.Events {
		for _, gid := range e.GroupIDs {
			if gid == id {
				referencedBy = append(referencedBy, "events")
				break events
			}
		}
	}
	if len(referencedBy) > 0 {
		return domain.StillReferenced("group", referencedBy...)
	}

	if _, ok := r.db.Groups[id]; !ok {
		return domain.NotFound("group")
	}
	delete(r.db.Groups, id)
	return nil
}

func (r *Memory) DeleteAll(_ context.Context) error {
	r.db.Lock()
	defer r.db.Unlock()

	r.db.Groups = make(map[int64]domain.Group)
	return nil
}

// mergeGroup lays the partial input over the existing record. A negative
// MaximumAgeDays clears the upper bound; an empty Gender clears the
// restriction.
func mergeGroup(existing domain.Group, in domain.UpdateGroupInput) domain.Group {
	if in.Name != nil {
		existing.Name = *in.Name
	}
	if in.MinimumAgeDays != nil {
		existing.MinimumAgeDays = *in.MinimumAgeDays
	}
	if in.MaximumAgeDays != nil {
		if *in.MaximumAgeDays < 0 {
			existing.MaximumAgeDays = nil
		} else {
			v := *in.MaximumAgeDays
			existing.MaximumAgeDays = &v
		}
	}
	if in.Gender != nil {
		if *in.Gender == "" {
			existing.Gender = nil
		} else {
			g := *in.Gender
			existing.Gender = &g
		}
	}
	if in.Active != nil {
		existing.Active = *in.Active
	}
	return existing
}
