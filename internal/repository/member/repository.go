package member

import (
	"context"

	"chiroportaal/internal/domain"
)

// Repository is the persistence boundary for members, their owned emergency
// contact and medical information records, and their parent links. The owned
// records live and die with the member inside one transaction; parent links
// block deletion like any other live reference.
type Repository interface {
	Create(ctx context.Context, in domain.CreateMemberInput) (*domain.Member, error)
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	Update(ctx context.Context, id int64, in domain.UpdateMemberInput) (*domain.Member, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error

	// LinkParent ties a parent to the member. Marking a link primary demotes
	// any existing primary link in the same write.
	LinkParent(ctx context.Context, memberID, parentID int64, isPrimary bool) error
	UnlinkParent(ctx context.Context, memberID, parentID int64) error
	ListParentLinks(ctx context.Context, memberID int64) ([]domain.MemberParentLink, error)
}
