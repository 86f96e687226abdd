package event

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

func (r *Memory) Create(_ context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	r.db.Lock()
	defer r.db.Unlock()

	for _, gid := range in.GroupIDs {
		if _, ok := r.db.Groups[gid]; !ok {
			return nil, domain.NotFound("group")
		}
	}

	e := domain.Event{
		ID:          r.db.NextID("events"),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		PriceCents:  in.PriceCents,
		GroupIDs:    append([]int64(nil), in.GroupIDs...),
		CreatedAt:   time.Now().UTC(),
	}
	r.db.Events[e.ID] = e
	return cloneEvent(e), nil
}

func (r *Memory) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	r.db.Lock()
	defer r.db.Unlock()

	e, ok := r.db.Events[id]
	if !ok {
		return nil, domain.NotFound("event")
	}
	return cloneEvent(e), nil
}

func (r *Memory) List(_ context.Context) ([]domain.Event, error) {
	return r.list(func(domain.Event) bool { return true })
}

func (r *Memory) ListUpcoming(_ context.Context, after time.Time) ([]domain.Event, error) {
	return r.list(func(e domain.Event) bool { return !e.EndsAt.Before(after) })
}

func (r *Memory) list(keep func(domain.Event) bool) ([]domain.Event, error) {
	r.db.Lock()
	defer r.db.Unlock()

	var out []domain.Event
	for _, e := range r.db.Events {
		if keep(e) {
			out = append(out, *cloneEvent(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Memory) Update(_ context.Context, id int64, in domain.UpdateEventInput) (*domain.Event, error) {
	r.db.Lock()
	defer r.db.Unlock()

	existing, ok := r.db.Events[id]
	if !ok {
		return nil, domain.NotFound("event")
	}

	merged := mergeEvent(existing, in)
	if merged.EndsAt.Before(merged.StartsAt) {
		return nil, domain.ErrInvalidPeriod
	}
	for _, gid := range merged.GroupIDs {
		if _, ok := r.db.Groups[gid]; !ok {
			return nil, domain.NotFound("group")
		}
	}

	r.db.Events[id] = merged
	return cloneEvent(merged), nil
}

func (r *Memory) Delete(_ context.Context, id int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	for key := range r.db.Registrations {
		if key[0] == id {
			return domain.StillReferenced("event", "event registrations")
		}
	}

	if _, ok := r.db.Events[id]; !ok {
		return domain.NotFound("event")
	}
	delete(r.db.Events, id)
	return nil
}

func (r *Memory) DeleteAll(_ context.Context) error {
	r.db.Lock()
	defer r.db.Unlock()

	r.db.Events = make(map[int64]domain.Event)
	r.db.Registrations = make(map[memdb.PairKey]domain.EventRegistration)
	return nil
}

func (r *Memory) Register(_ context.Context, in domain.CreateRegistrationInput) (*domain.EventRegistration, error) {
	r.db.Lock()
	defer r.db.Unlock()

	if _, ok := r.db.Events[in.EventID]; !ok {
		return nil, domain.NotFound("event")
	}
	if _, ok := r.db.Members[in.MemberID]; !ok {
		return nil, domain.NotFound("member")
	}
	key := memdb.PairKey{in.EventID, in.MemberID}
	if _, ok := r.db.Registrations[key]; ok {
		return nil, domain.AlreadyExists("event registration")
	}

	reg := domain.EventRegistration{
		EventID:   in.EventID,
		MemberID:  in.MemberID,
		CreatedAt: time.Now().UTC(),
	}
	r.db.Registrations[key] = reg
	return &reg, nil
}

func (r *Memory) GetRegistration(_ context.Context, eventID, memberID int64) (*domain.EventRegistration, error) {
	r.db.Lock()
	defer r.db.Unlock()

	reg, ok := r.db.Registrations[memdb.PairKey{eventID, memberID}]
	if !ok {
		return nil, domain.NotFound("event registration")
	}
	return &reg, nil
}

func (r *Memory) ListRegistrations(_ context.Context, eventID int64) ([]domain.EventRegistration, error) {
	r.db.Lock()
	defer r.db.Unlock()

	var out []domain.EventRegistration
	for _, reg := range r.db.Registrations {
		if reg.EventID == eventID {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemberID < out[j].MemberID })
	return out, nil
}

func (r *Memory) SetRegistrationPayment(_ context.Context, eventID, memberID int64, p domain.Payment) (*domain.EventRegistration, error) {
	r.db.Lock()
	defer r.db.Unlock()

	key := memdb.PairKey{eventID, memberID}
	existing, ok := r.db.Registrations[key]
	if !ok {
		return nil, domain.NotFound("event registration")
	}
	existing.Payment = p
	r.db.Registrations[key] = existing
	return &existing, nil
}

func (r *Memory) Unregister(_ context.Context, eventID, memberID int64) error {
	r.db.Lock()
	defer r.db.Unlock()

	key := memdb.PairKey{eventID, memberID}
	if _, ok := r.db.Registrations[key]; !ok {
		return domain.NotFound("event registration")
	}
	delete(r.db.Registrations, key)
	return nil
}

// cloneEvent deep-copies the group link slice so callers cannot alias stored
// state.
func cloneEvent(e domain.Event) *domain.Event {
	e.GroupIDs = append([]int64(nil), e.GroupIDs...)
	return &e
}

// mergeEvent lays the partial input over the existing record. A non-nil empty
// GroupIDs slice clears the group restriction; nil keeps it.
func mergeEvent(existing domain.Event, in domain.UpdateEventInput) domain.Event {
	if in.Title != nil {
		existing.Title = *in.Title
	}
	if in.Description != nil {
		if *in.Description == "" {
			existing.Description = nil
		} else {
			v := *in.Description
			existing.Description = &v
		}
	}
	if in.Location != nil {
		if *in.Location == "" {
			existing.Location = nil
		} else {
			v := *in.Location
			existing.Location = &v
		}
	}
	if in.StartsAt != nil {
		existing.StartsAt = *in.StartsAt
	}
	if in.EndsAt != nil {
		existing.EndsAt = *in.EndsAt
	}
	if in.PriceCents != nil {
		existing.PriceCents = *in.PriceCents
	}
	if in.GroupIDs != nil {
		existing.GroupIDs = append([]int64(nil), in.GroupIDs...)
	}
	return existing
}
