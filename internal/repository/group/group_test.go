package group

import (
	"context"
	"testing"

	"chiroportaal/internal/domain"
	"chiroportaal/internal/repository/memdb"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func TestMemoryNameUniquenessIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(memdb.New())

	_, err := repo.Create(ctx, domain.CreateGroupInput{Name: "Ribbels", MinimumAgeDays: 2190, Active: true})
	require.NoError(t, err)

	_, err = repo.Create(ctx, domain.CreateGroupInput{Name: "RIBBELS", MinimumAgeDays: 2190})
	require.True(t, domain.IsAlreadyExists(err))

	got, err := repo.GetByName(ctx, "ribbels")
	require.NoError(t, err)
	require.Equal(t, "Ribbels", got.Name)
}

func TestMemoryUpdateMergeAndClearing(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(memdb.New())

	created, err := repo.Create(ctx, domain.CreateGroupInput{
		Name:           "Tippers",
		MinimumAgeDays: 4380,
		MaximumAgeDays: intPtr(5110),
		Gender:         genderPtr(domain.GenderF),
		Active:         true,
	})
	require.NoError(t, err)

	// Partial update touches only the named fields.
	updated, err := repo.Update(ctx, created.ID, domain.UpdateGroupInput{Name: strPtr("Tiptiens")})
	require.NoError(t, err)
	require.Equal(t, "Tiptiens", updated.Name)
	require.Equal(t, 4380, updated.MinimumAgeDays)
	require.NotNil(t, updated.Gender)

	// Clearing sentinels: empty gender and negative maximum drop the bounds.
	cleared, err := repo.Update(ctx, created.ID, domain.UpdateGroupInput{
		MaximumAgeDays: intPtr(-1),
		Gender:         genderPtr(domain.Gender("")),
	})
	require.NoError(t, err)
	require.Nil(t, cleared.MaximumAgeDays)
	require.Nil(t, cleared.Gender)
}

func TestMemoryUpdateNameCollision(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(memdb.New())

	_, err := repo.Create(ctx, domain.CreateGroupInput{Name: "Kerels", MinimumAgeDays: 5110})
	require.NoError(t, err)
	second, err := repo.Create(ctx, domain.CreateGroupInput{Name: "Aspis", MinimumAgeDays: 5840})
	require.NoError(t, err)

	_, err = repo.Update(ctx, second.ID, domain.UpdateGroupInput{Name: strPtr("kerels")})
	require.True(t, domain.IsAlreadyExists(err))
}

func TestMemoryDeleteBlockedByMembership(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)

	created, err := repo.Create(ctx, domain.CreateGroupInput{Name: "Speelclub", MinimumAgeDays: 2920})
	require.NoError(t, err)

	db.Memberships[memdb.PairKey{1, 1}] = domain.YearlyMembership{MemberID: 1, WorkYearID: 1, GroupID: created.ID}

	err = repo.Delete(ctx, created.ID)
	require.True(t, domain.IsStillReferenced(err))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestMemoryDeleteBlockedByEventLink(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)

	created, err := repo.Create(ctx, domain.CreateGroupInput{Name: "Rakwis", MinimumAgeDays: 3650})
	require.NoError(t, err)

	db.Events[1] = domain.Event{ID: 1, Title: "Groepsfeest", GroupIDs: []int64{created.ID}}

	err = repo.Delete(ctx, created.ID)
	require.True(t, domain.IsStillReferenced(err))
}

func TestMemoryDeleteNonexistent(t *testing.T) {
	repo := NewMemory(memdb.New())
	require.True(t, domain.IsNotFound(repo.Delete(context.Background(), 9)))
}

func genderPtr(g domain.Gender) *domain.Gender { return &g }
