package member

import (
	"context"
	"testing"
	"time"

	"chiroportaal/internal/domain"
	"chiroportaal/internal/repository/memdb"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func wardInput() domain.CreateMemberInput {
	return domain.CreateMemberInput{
		FirstName:   "Ward",
		LastName:    "Vandamme",
		DateOfBirth: time.Date(2014, time.March, 12, 0, 0, 0, 0, time.UTC),
		Gender:      domain.GenderM,
		EmergencyContact: &domain.EmergencyContact{
			Name:         "Els Vandamme",
			PhoneNumber:  "+32470123456",
			Relationship: "moeder",
		},
		MedicalInfo: &domain.MedicalInformation{
			DoctorName:        "Dr. Maes",
			DoctorPhoneNumber: "+3251123456",
			Allergies:         strPtr("noten"),
			TetanusVaccinated: true,
			CanSwim:           false,
		},
	}
}

func TestMemoryCreateWithOwnedRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(memdb.New())

	created, err := repo.Create(ctx, wardInput())
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EmergencyContact)
	require.Equal(t, "Els Vandamme", got.EmergencyContact.Name)
	require.NotNil(t, got.MedicalInfo)
	require.Equal(t, "noten", *got.MedicalInfo.Allergies)
}

func TestMemoryReturnedRecordsDoNotAliasTheStore(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(memdb.New())

	created, err := repo.Create(ctx, wardInput())
	require.NoError(t, err)

	created.EmergencyContact.Name = "scribbled over"

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Els Vandamme", got.EmergencyContact.Name)
}

func TestMemoryUpdateMergesAndReplacesOwnedRecords(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory(memdb.New())

	created, err := repo.Create(ctx, wardInput())
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, domain.UpdateMemberInput{
		PhoneNumber: strPtr("+32471111111"),
		MedicalInfo: &domain.MedicalInformation{
			DoctorName:        "Dr. Claeys",
			DoctorPhoneNumber: "+3251654321",
			CanSwim:           true,
		},
	})
	require.NoError(t, err)
	// Untouched fields survive; the owned record is replaced wholesale.
	require.Equal(t, "Ward", updated.FirstName)
	require.Equal(t, "+32471111111", *updated.PhoneNumber)
	require.Equal(t, "Dr. Claeys", updated.MedicalInfo.DoctorName)
	require.Nil(t, updated.MedicalInfo.Allergies)
	require.Equal(t, "Els Vandamme", updated.EmergencyContact.Name)

	// Clearing an optional field with an explicit empty value.
	cleared, err := repo.Update(ctx, created.ID, domain.UpdateMemberInput{PhoneNumber: strPtr("")})
	require.NoError(t, err)
	require.Nil(t, cleared.PhoneNumber)
}

func TestMemoryDeleteBlockedByReferences(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)

	created, err := repo.Create(ctx, wardInput())
	require.NoError(t, err)

	db.Memberships[memdb.PairKey{created.ID, 1}] = domain.YearlyMembership{MemberID: created.ID, WorkYearID: 1, GroupID: 1}

	err = repo.Delete(ctx, created.ID)
	require.True(t, domain.IsStillReferenced(err))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestMemoryParentLinks(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)

	created, err := repo.Create(ctx, wardInput())
	require.NoError(t, err)
	db.Parents[1] = domain.Parent{ID: 1, FirstName: "Els", LastName: "Vandamme", AddressID: 1}
	db.Parents[2] = domain.Parent{ID: 2, FirstName: "Jan", LastName: "Vandamme", AddressID: 1}

	require.NoError(t, repo.LinkParent(ctx, created.ID, 1, true))
	require.NoError(t, repo.LinkParent(ctx, created.ID, 2, false))

	// Linking the same parent twice is a collision.
	err = repo.LinkParent(ctx, created.ID, 1, false)
	require.True(t, domain.IsAlreadyExists(err))

	// Linking an unknown parent reports which side is missing.
	require.ErrorIs(t, repo.LinkParent(ctx, created.ID, 99, false), domain.NotFound("parent"))
	require.ErrorIs(t, repo.LinkParent(ctx, 99, 1, false), domain.NotFound("member"))

	// Promoting another parent to primary demotes the current one.
	require.NoError(t, repo.UnlinkParent(ctx, created.ID, 2))
	require.NoError(t, repo.LinkParent(ctx, created.ID, 2, true))
	links, err := repo.ListParentLinks(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	for _, l := range links {
		require.Equal(t, l.ParentID == 2, l.IsPrimary)
	}

	// A linked member cannot be deleted.
	require.True(t, domain.IsStillReferenced(repo.Delete(ctx, created.ID)))
}
