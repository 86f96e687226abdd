package membership

import (
	"context"
	"testing"
	"time"

	"chiroportaal/internal/domain"
	"chiroportaal/internal/repository/group"
	"chiroportaal/internal/repository/member"
	"chiroportaal/internal/repository/memdb"
	membershiprepo "chiroportaal/internal/repository/membership"
	"chiroportaal/internal/repository/workyear"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testService(db *memdb.DB) *Service {
	return New(
		membershiprepo.NewMemory(db),
		member.NewMemory(db),
		group.NewMemory(db),
		workyear.NewMemory(db),
	)
}

func seed(t *testing.T, db *memdb.DB) (memberID, workYearID, groupID int64) {
	t.Helper()
	ctx := context.Background()

	m, err := member.NewMemory(db).Create(ctx, domain.CreateMemberInput{
		FirstName: "Lotte", LastName: "Claes",
		DateOfBirth: date(2017, time.April, 2), Gender: domain.GenderF,
	})
	require.NoError(t, err)

	wy, err := workyear.NewMemory(db).Create(ctx, domain.CreateWorkYearInput{
		StartDate: date(2025, time.September, 1), EndDate: date(2026, time.August, 31), FeeCents: 4500,
	})
	require.NoError(t, err)

	// Speelclub takes roughly six to eight year olds.
	maxDays := 3285
	g, err := group.NewMemory(db).Create(ctx, domain.CreateGroupInput{
		Name: "Speelclub", MinimumAgeDays: 2190, MaximumAgeDays: &maxDays, Active: true,
	})
	require.NoError(t, err)
	return m.ID, wy.ID, g.ID
}

func TestEnrollChecksEligibility(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	svc := testService(db)
	memberID, workYearID, groupID := seed(t, db)

	created, err := svc.Enroll(ctx, domain.CreateMembershipInput{
		MemberID: memberID, WorkYearID: workYearID, GroupID: groupID,
	})
	require.NoError(t, err)
	require.Equal(t, groupID, created.GroupID)

	// A member too old for the band is refused before anything is written.
	old, err := member.NewMemory(db).Create(ctx, domain.CreateMemberInput{
		FirstName: "Wout", LastName: "Claes",
		DateOfBirth: date(2005, time.January, 1), Gender: domain.GenderM,
	})
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, domain.CreateMembershipInput{
		MemberID: old.ID, WorkYearID: workYearID, GroupID: groupID,
	})
	require.ErrorIs(t, err, ErrNotEligible)
	_, getErr := svc.Get(ctx, old.ID, workYearID)
	require.True(t, domain.IsNotFound(getErr))
}

func TestEnrollValidatesInputAndReferences(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	svc := testService(db)
	memberID, workYearID, groupID := seed(t, db)

	_, err := svc.Enroll(ctx, domain.CreateMembershipInput{MemberID: 0, WorkYearID: workYearID, GroupID: groupID})
	require.Error(t, err)

	_, err = svc.Enroll(ctx, domain.CreateMembershipInput{MemberID: 99, WorkYearID: workYearID, GroupID: groupID})
	require.True(t, domain.IsNotFound(err))

	_, err = svc.Enroll(ctx, domain.CreateMembershipInput{MemberID: memberID, WorkYearID: workYearID, GroupID: groupID})
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, domain.CreateMembershipInput{MemberID: memberID, WorkYearID: workYearID, GroupID: groupID})
	require.True(t, domain.IsAlreadyExists(err))
}

func TestMoveGroupRechecksEligibility(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	svc := testService(db)
	memberID, workYearID, groupID := seed(t, db)

	_, err := svc.Enroll(ctx, domain.CreateMembershipInput{
		MemberID: memberID, WorkYearID: workYearID, GroupID: groupID,
	})
	require.NoError(t, err)

	// A girls-only group for the same ages accepts her.
	maxDays := 3285
	gender := domain.GenderF
	girls, err := group.NewMemory(db).Create(ctx, domain.CreateGroupInput{
		Name: "Sloebers meisjes", MinimumAgeDays: 2190, MaximumAgeDays: &maxDays, Gender: &gender, Active: true,
	})
	require.NoError(t, err)

	moved, err := svc.MoveGroup(ctx, memberID, workYearID, domain.UpdateMembershipInput{GroupID: &girls.ID})
	require.NoError(t, err)
	require.Equal(t, girls.ID, moved.GroupID)

	// An older band refuses her.
	older, err := group.NewMemory(db).Create(ctx, domain.CreateGroupInput{
		Name: "Aspi's", MinimumAgeDays: 5840, Active: true,
	})
	require.NoError(t, err)
	_, err = svc.MoveGroup(ctx, memberID, workYearID, domain.UpdateMembershipInput{GroupID: &older.ID})
	require.ErrorIs(t, err, ErrNotEligible)
}

func TestMarkPaidIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	svc := testService(db)
	memberID, workYearID, groupID := seed(t, db)

	_, err := svc.Enroll(ctx, domain.CreateMembershipInput{
		MemberID: memberID, WorkYearID: workYearID, GroupID: groupID,
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(ctx, memberID, workYearID, domain.MarkPaidInput{Method: domain.PaymentMethodBankTransfer})
	require.NoError(t, err)
	require.True(t, paid.Payment.Received)
	require.Equal(t, domain.PaymentMethodBankTransfer, *paid.Payment.Method)

	_, err = svc.MarkPaid(ctx, memberID, workYearID, domain.MarkPaidInput{Method: domain.PaymentMethodCash})
	require.True(t, domain.IsAlreadyPaid(err))

	// The stored payment keeps the first event's method.
	stored, err := svc.Get(ctx, memberID, workYearID)
	require.NoError(t, err)
	require.Equal(t, domain.PaymentMethodBankTransfer, *stored.Payment.Method)

	_, err = svc.MarkPaid(ctx, memberID, workYearID, domain.MarkPaidInput{Method: "CHEQUE"})
	require.Error(t, err)
}
