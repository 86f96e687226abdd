package workyear

import (
	"context"
	"testing"
	"time"

	"chiroportaal/internal/domain"
	"chiroportaal/internal/repository/memdb"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func year2425() domain.CreateWorkYearInput {
	return domain.CreateWorkYearInput{
		StartDate: date(2024, time.September, 1),
		EndDate:   date(2025, time.August, 31),
		FeeCents:  4000,
	}
}

func TestMemoryPeriodIsTheNaturalKey(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(memdb.New())

	created, err := repo.Create(ctx, year2425())
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	_, err = repo.Create(ctx, year2425())
	require.True(t, domain.IsAlreadyExists(err))

	// A different period is a different work-year.
	_, err = repo.Create(ctx, domain.CreateWorkYearInput{
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2026, time.August, 31),
		FeeCents:  4500,
	})
	require.NoError(t, err)

	got, err := repo.GetByPeriod(ctx, date(2024, time.September, 1), date(2025, time.August, 31))
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestMemoryUpdateKeepsPeriodConsistent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(memdb.New())

	created, err := repo.Create(ctx, year2425())
	require.NoError(t, err)

	// Moving the end before the start is rejected on the merged record.
	bad := date(2024, time.August, 1)
	_, err = repo.Update(ctx, created.ID, domain.UpdateWorkYearInput{EndDate: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)

	// Fee-only update leaves the period untouched.
	fee := int64(4500)
	updated, err := repo.Update(ctx, created.ID, domain.UpdateWorkYearInput{FeeCents: &fee})
	require.NoError(t, err)
	require.Equal(t, int64(4500), updated.FeeCents)
	require.True(t, updated.StartDate.Equal(date(2024, time.September, 1)))
}

func TestMemoryDeleteBlockedByMembershipAndAgreement(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)

	created, err := repo.Create(ctx, year2425())
	require.NoError(t, err)

	db.Memberships[memdb.PairKey{7, created.ID}] = domain.YearlyMembership{MemberID: 7, WorkYearID: created.ID, GroupID: 1}
	db.Agreements[memdb.PairKey{3, created.ID}] = domain.SponsorshipAgreement{SponsorID: 3, WorkYearID: created.ID, AmountCents: 10000}

	err = repo.Delete(ctx, created.ID)
	require.True(t, domain.IsStillReferenced(err))
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	require.ElementsMatch(t, []string{"yearly memberships", "sponsorship agreements"}, de.ReferencedBy)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.FeeCents, got.FeeCents)
}

func TestMemoryDeleteNonexistent(t *testing.T) {
	repo := NewMemory(memdb.New())
	require.True(t, domain.IsNotFound(repo.Delete(context.Background(), 1)))
}
