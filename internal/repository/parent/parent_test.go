package parent

import (
	"context"
	"testing"

	"chiroportaal/internal/domain"
	"chiroportaal/internal/repository/memdb"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func seedAddress(db *memdb.DB) int64 {
	id := db.NextID("addresses")
	db.Addresses[id] = domain.Address{ID: id, Street: "Kerkstraat", HouseNumber: "5", Municipality: "Houthulst", PostalCode: 8650}
	return id
}

func TestMemoryCreateChecksAddressAndEmail(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)
	addrID := seedAddress(db)

	in := domain.CreateParentInput{
		FirstName:   "Els",
		LastName:    "Vandamme",
		PhoneNumber: "+32470123456",
		Email:       "els@example.be",
		AddressID:   addrID,
	}
	created, err := repo.Create(ctx, in)
	require.NoError(t, err)

	// Email uniqueness is case-insensitive.
	dup := in
	dup.Email = "ELS@Example.BE"
	_, err = repo.Create(ctx, dup)
	require.True(t, domain.IsAlreadyExists(err))

	// A parent cannot point at a missing address.
	orphan := in
	orphan.Email = "jan@example.be"
	orphan.AddressID = 999
	_, err = repo.Create(ctx, orphan)
	require.ErrorIs(t, err, domain.NotFound("address"))

	got, err := repo.GetByEmail(ctx, "els@EXAMPLE.be")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestMemoryUpdateRevalidatesMergedRecord(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)
	addrID := seedAddress(db)

	first, err := repo.Create(ctx, domain.CreateParentInput{
		FirstName: "Els", LastName: "Vandamme", PhoneNumber: "+32470123456",
		Email: "els@example.be", AddressID: addrID,
	})
	require.NoError(t, err)
	second, err := repo.Create(ctx, domain.CreateParentInput{
		FirstName: "Jan", LastName: "Vandamme", PhoneNumber: "+32470654321",
		Email: "jan@example.be", AddressID: addrID,
	})
	require.NoError(t, err)

	// Merging in a colliding email is rejected.
	email := "ELS@example.be"
	_, err = repo.Update(ctx, second.ID, domain.UpdateParentInput{Email: &email})
	require.True(t, domain.IsAlreadyExists(err))

	// Merging in a dangling address reference is rejected.
	_, err = repo.Update(ctx, first.ID, domain.UpdateParentInput{AddressID: int64Ptr(999)})
	require.ErrorIs(t, err, domain.NotFound("address"))

	// Valid partial update only touches the named field.
	phone := "+32478000000"
	updated, err := repo.Update(ctx, first.ID, domain.UpdateParentInput{PhoneNumber: &phone})
	require.NoError(t, err)
	require.Equal(t, phone, updated.PhoneNumber)
	require.Equal(t, "els@example.be", updated.Email)
}

func TestMemoryDeleteBlockedByMemberLink(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)
	addrID := seedAddress(db)

	created, err := repo.Create(ctx, domain.CreateParentInput{
		FirstName: "Els", LastName: "Vandamme", PhoneNumber: "+32470123456",
		Email: "els@example.be", AddressID: addrID,
	})
	require.NoError(t, err)

	db.ParentLinks[memdb.PairKey{4, created.ID}] = domain.MemberParentLink{MemberID: 4, ParentID: created.ID, IsPrimary: true}

	err = repo.Delete(ctx, created.ID)
	require.True(t, domain.IsStillReferenced(err))

	require.True(t, domain.IsNotFound(repo.Delete(ctx, 123)))
}
