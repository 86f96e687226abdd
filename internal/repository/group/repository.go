package group

import (
	"context"

	"chiroportaal/internal/domain"
)

// Repository is the persistence boundary for groups. Group names are unique
// case-insensitively; a group may not be deleted while yearly memberships or
// event links point at it.
type Repository interface {
	Create(ctx context.Context, in domain.CreateGroupInput) (*domain.Group, error)
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	GetByName(ctx context.Context, name string) (*domain.Group, error)
	List(ctx context.Context) ([]domain.Group, error)
	Update(ctx context.Context, id int64, in domain.UpdateGroupInput) (*domain.Group, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
