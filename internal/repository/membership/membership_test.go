package membership

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

func seedWorld(db *memdb.DB) (memberID, workYearID, groupID int64) {
	memberID = db.NextID("members")
	db.Members[memberID] = domain.Member{
		ID: memberID, FirstName: "Lotte", LastName: "Claes",
		DateOfBirth: date(2015, time.March, 12), Gender: domain.GenderF,
	}
	workYearID = db.NextID("work_years")
	db.WorkYears[workYearID] = domain.WorkYear{
		ID: workYearID, StartDate: date(2025, time.September, 1), EndDate: date(2026, time.August, 31), FeeCents: 4500,
	}
	groupID = db.NextID("groups")
	db.Groups[groupID] = domain.Group{ID: groupID, Name: "Speelclub", MinimumAgeDays: 2190, Active: true}
	return memberID, workYearID, groupID
}

func TestMemoryCreateRequiresAllReferences(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)
	memberID, workYearID, groupID := seedWorld(db)

	_, err := repo.Create(ctx, domain.CreateMembershipInput{MemberID: 99, WorkYearID: workYearID, GroupID: groupID})
	require.ErrorIs(t, err, domain.NotFound("member"))
	_, err = repo.Create(ctx, domain.CreateMembershipInput{MemberID: memberID, WorkYearID: 99, GroupID: groupID})
	require.ErrorIs(t, err, domain.NotFound("work year"))
	_, err = repo.Create(ctx, domain.CreateMembershipInput{MemberID: memberID, WorkYearID: workYearID, GroupID: 99})
	require.ErrorIs(t, err, domain.NotFound("group"))

	created, err := repo.Create(ctx, domain.CreateMembershipInput{MemberID: memberID, WorkYearID: workYearID, GroupID: groupID})
	require.NoError(t, err)
	require.False(t, created.Payment.Received)

	// One group per member per work-year.
	_, err = repo.Create(ctx, domain.CreateMembershipInput{MemberID: memberID, WorkYearID: workYearID, GroupID: groupID})
	require.True(t, domain.IsAlreadyExists(err))
}

func TestMemoryListByWorkYearAndMember(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)
	memberID, workYearID, groupID := seedWorld(db)

	otherMember := db.NextID("members")
	db.Members[otherMember] = domain.Member{ID: otherMember, FirstName: "Wout", LastName: "Claes", DateOfBirth: date(2013, time.May, 2), Gender: domain.GenderM}
	otherYear := db.NextID("work_years")
	db.WorkYears[otherYear] = domain.WorkYear{ID: otherYear, StartDate: date(2026, time.September, 1), EndDate: date(2027, time.August, 31), FeeCents: 4500}

	for _, in := range []domain.CreateMembershipInput{
		{MemberID: memberID, WorkYearID: workYearID, GroupID: groupID},
		{MemberID: otherMember, WorkYearID: workYearID, GroupID: groupID},
		{MemberID: memberID, WorkYearID: otherYear, GroupID: groupID},
	} {
		_, err := repo.Create(ctx, in)
		require.NoError(t, err)
	}

	byYear, err := repo.ListByWorkYear(ctx, workYearID)
	require.NoError(t, err)
	require.Len(t, byYear, 2)

	byMember, err := repo.ListByMember(ctx, memberID)
	require.NoError(t, err)
	require.Len(t, byMember, 2)
	require.Equal(t, workYearID, byMember[0].WorkYearID)
	require.Equal(t, otherYear, byMember[1].WorkYearID)
}

func TestMemoryUpdateMovesGroup(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)
	memberID, workYearID, groupID := seedWorld(db)

	_, err := repo.Create(ctx, domain.CreateMembershipInput{MemberID: memberID, WorkYearID: workYearID, GroupID: groupID})
	require.NoError(t, err)

	other := db.NextID("groups")
	db.Groups[other] = domain.Group{ID: other, Name: "Rakwi's", MinimumAgeDays: 2920, Active: true}

	missing := int64(99)
	_, err = repo.Update(ctx, memberID, workYearID, domain.UpdateMembershipInput{GroupID: &missing})
	require.ErrorIs(t, err, domain.NotFound("group"))

	updated, err := repo.Update(ctx, memberID, workYearID, domain.UpdateMembershipInput{GroupID: &other})
	require.NoError(t, err)
	require.Equal(t, other, updated.GroupID)
}

func TestMemorySetPaymentAndDelete(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)
	memberID, workYearID, groupID := seedWorld(db)

	created, err := repo.Create(ctx, domain.CreateMembershipInput{MemberID: memberID, WorkYearID: workYearID, GroupID: groupID})
	require.NoError(t, err)

	p := created.Payment
	require.NoError(t, p.MarkReceived("yearly membership", domain.PaymentMethodCash, date(2025, time.September, 15)))
	stored, err := repo.SetPayment(ctx, memberID, workYearID, p)
	require.NoError(t, err)
	require.True(t, stored.Payment.Received)
	require.Equal(t, domain.PaymentMethodCash, *stored.Payment.Method)

	// The payment event is not idempotent.
	err = stored.Payment.MarkReceived("yearly membership", domain.PaymentMethodBankTransfer, date(2025, time.September, 16))
	require.True(t, domain.IsAlreadyPaid(err))

	require.NoError(t, repo.Delete(ctx, memberID, workYearID))
	require.True(t, domain.IsNotFound(repo.Delete(ctx, memberID, workYearID)))
}
