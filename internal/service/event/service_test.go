package event

import (
	"context"
	"testing"
	"time"

	"chiroportaal/internal/domain"
	eventrepo "chiroportaal/internal/repository/event"
	"chiroportaal/internal/repository/memdb"
	membershiprepo "chiroportaal/internal/repository/membership"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testService(db *memdb.DB) *Service {
	return New(eventrepo.NewMemory(db), membershiprepo.NewMemory(db))
}

func seedMember(db *memdb.DB) int64 {
	id := db.NextID("members")
	db.Members[id] = domain.Member{ID: id, FirstName: "Lotte", LastName: "Claes", DateOfBirth: date(2015, time.March, 12), Gender: domain.GenderF}
	return id
}

func seedGroup(db *memdb.DB, name string) int64 {
	id := db.NextID("groups")
	db.Groups[id] = domain.Group{ID: id, Name: name, MinimumAgeDays: 2190, Active: true}
	return id
}

func TestRegisterOpenEvent(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	svc := testService(db)
	memberID := seedMember(db)

	e, err := svc.Create(ctx, domain.CreateEventInput{
		Title: "Groepsfeest", StartsAt: date(2026, time.March, 7), EndsAt: date(2026, time.March, 7),
	})
	require.NoError(t, err)

	reg, err := svc.Register(ctx, domain.CreateRegistrationInput{EventID: e.ID, MemberID: memberID})
	require.NoError(t, err)
	require.False(t, reg.Payment.Received)
}

func TestRegisterRestrictedEventRequiresGroupMembership(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	svc := testService(db)
	memberID := seedMember(db)
	groupID := seedGroup(db, "Speelclub")

	e, err := svc.Create(ctx, domain.CreateEventInput{
		Title:    "Speelclubweekend",
		StartsAt: date(2026, time.May, 8),
		EndsAt:   date(2026, time.May, 10),
		GroupIDs: []int64{groupID},
	})
	require.NoError(t, err)

	// Not enrolled in the group yet.
	_, err = svc.Register(ctx, domain.CreateRegistrationInput{EventID: e.ID, MemberID: memberID})
	require.ErrorIs(t, err, ErrNotEligible)

	workYearID := db.NextID("work_years")
	db.WorkYears[workYearID] = domain.WorkYear{ID: workYearID, StartDate: date(2025, time.September, 1), EndDate: date(2026, time.August, 31)}
	db.Memberships[memdb.PairKey{memberID, workYearID}] = domain.YearlyMembership{
		MemberID: memberID, WorkYearID: workYearID, GroupID: groupID,
	}

	reg, err := svc.Register(ctx, domain.CreateRegistrationInput{EventID: e.ID, MemberID: memberID})
	require.NoError(t, err)
	require.Equal(t, e.ID, reg.EventID)
}

func TestMarkRegistrationPaidOnce(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	svc := testService(db)
	memberID := seedMember(db)

	e, err := svc.Create(ctx, domain.CreateEventInput{
		Title: "Kamp", StartsAt: date(2026, time.July, 21), EndsAt: date(2026, time.July, 31), PriceCents: 12000,
	})
	require.NoError(t, err)
	_, err = svc.Register(ctx, domain.CreateRegistrationInput{EventID: e.ID, MemberID: memberID})
	require.NoError(t, err)

	paid, err := svc.MarkRegistrationPaid(ctx, e.ID, memberID, domain.MarkPaidInput{Method: domain.PaymentMethodPayconiq})
	require.NoError(t, err)
	require.True(t, paid.Payment.Received)

	_, err = svc.MarkRegistrationPaid(ctx, e.ID, memberID, domain.MarkPaidInput{Method: domain.PaymentMethodCash})
	require.True(t, domain.IsAlreadyPaid(err))
}

func TestDeleteBlockedUntilUnregistered(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	svc := testService(db)
	memberID := seedMember(db)

	e, err := svc.Create(ctx, domain.CreateEventInput{
		Title: "Kerstfeest", StartsAt: date(2025, time.December, 20), EndsAt: date(2025, time.December, 20),
	})
	require.NoError(t, err)
	_, err = svc.Register(ctx, domain.CreateRegistrationInput{EventID: e.ID, MemberID: memberID})
	require.NoError(t, err)

	err = svc.Delete(ctx, e.ID)
	require.True(t, domain.IsStillReferenced(err))

	require.NoError(t, svc.Unregister(ctx, e.ID, memberID))
	require.NoError(t, svc.Delete(ctx, e.ID))
}
