package identity

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"chiroportaal/internal/domain"
)

// Store is the persistence boundary for user accounts. Emails are unique
// case-insensitively.
type Store interface {
	Create(ctx context.Context, u User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) (*User, error)
	Delete(ctx context.Context, id int64) error
}

// MemoryStore keeps accounts in memory. Tests and the demo seed use it.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[int64]User)}
}

func (s *MemoryStore) Create(_ context.Context, u User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.users {
		if strings.EqualFold(other.Email, u.Email) {
			return nil, domain.AlreadyExists("user")
		}
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = u
	return &u, nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.NotFound("user")
	}
	return &u, nil
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user, nil
		}
	}
	return nil, domain.NotFound("user")
}

func (s *MemoryStore) List(_ context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, u User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return nil, domain.NotFound("user")
	}
	for id, other := range s.users {
		if id != u.ID && strings.EqualFold(other.Email, u.Email) {
			return nil, domain.AlreadyExists("user")
		}
	}
	s.users[u.ID] = u
	return &u, nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return domain.NotFound("user")
	}
	delete(s.users, id)
	return nil
}
