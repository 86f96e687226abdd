package sponsor

import (
	"context"
	"testing"

	"chiroportaal/internal/domain"
	"chiroportaal/internal/repository/memdb"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestMemoryCreateCompanyNameUnique(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)

	created, err := repo.Create(ctx, domain.CreateSponsorInput{CompanyName: "Bakkerij Pauwels", Active: true})
	require.NoError(t, err)

	// Uniqueness is case-insensitive.
	_, err = repo.Create(ctx, domain.CreateSponsorInput{CompanyName: "BAKKERIJ PAUWELS", Active: true})
	require.True(t, domain.IsAlreadyExists(err))

	got, err := repo.GetByCompanyName(ctx, "bakkerij pauwels")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestMemoryCreateOptionalAddressMustExist(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)

	_, err := repo.Create(ctx, domain.CreateSponsorInput{CompanyName: "Garage Maes", AddressID: int64Ptr(99)})
	require.ErrorIs(t, err, domain.NotFound("address"))

	addrID := db.NextID("addresses")
	db.Addresses[addrID] = domain.Address{ID: addrID, Street: "Dorpsstraat", HouseNumber: "1", Municipality: "Houthulst", PostalCode: 8650}

	created, err := repo.Create(ctx, domain.CreateSponsorInput{CompanyName: "Garage Maes", AddressID: &addrID})
	require.NoError(t, err)
	require.Equal(t, addrID, *created.AddressID)
}

func TestMemoryListActiveFilters(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)

	_, err := repo.Create(ctx, domain.CreateSponsorInput{CompanyName: "Zaal Elckerlyc", Active: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.CreateSponsorInput{CompanyName: "Bakkerij Pauwels", Active: false})
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Sorted case-insensitively on company name.
	require.Equal(t, "Bakkerij Pauwels", all[0].CompanyName)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "Zaal Elckerlyc", active[0].CompanyName)
}

func TestMemoryUpdateMergeAndClear(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)

	addrID := db.NextID("addresses")
	db.Addresses[addrID] = domain.Address{ID: addrID, Street: "Dorpsstraat", HouseNumber: "1", Municipality: "Houthulst", PostalCode: 8650}

	created, err := repo.Create(ctx, domain.CreateSponsorInput{
		CompanyName: "Garage Maes",
		AddressID:   &addrID,
		LogoURL:     strPtr("https://example.be/maes.png"),
		Active:      true,
	})
	require.NoError(t, err)

	// Partial update touches only named fields.
	updated, err := repo.Update(ctx, created.ID, domain.UpdateSponsorInput{WebsiteURL: strPtr("https://maes.example.be")})
	require.NoError(t, err)
	require.Equal(t, "Garage Maes", updated.CompanyName)
	require.Equal(t, "https://maes.example.be", *updated.WebsiteURL)
	require.Equal(t, "https://example.be/maes.png", *updated.LogoURL)

	// Zero address id detaches, empty URL clears.
	updated, err = repo.Update(ctx, created.ID, domain.UpdateSponsorInput{
		AddressID: int64Ptr(0),
		LogoURL:   strPtr(""),
		Active:    boolPtr(false),
	})
	require.NoError(t, err)
	require.Nil(t, updated.AddressID)
	require.Nil(t, updated.LogoURL)
	require.False(t, updated.Active)

	// Renaming onto another sponsor's name is rejected.
	_, err = repo.Create(ctx, domain.CreateSponsorInput{CompanyName: "Bakkerij Pauwels"})
	require.NoError(t, err)
	_, err = repo.Update(ctx, created.ID, domain.UpdateSponsorInput{CompanyName: strPtr("bakkerij PAUWELS")})
	require.True(t, domain.IsAlreadyExists(err))
}

func TestMemoryDeleteBlockedByAgreement(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	repo := NewMemory(db)

	created, err := repo.Create(ctx, domain.CreateSponsorInput{CompanyName: "Garage Maes", Active: true})
	require.NoError(t, err)

	db.Agreements[memdb.PairKey{created.ID, 1}] = domain.SponsorshipAgreement{SponsorID: created.ID, WorkYearID: 1, AmountCents: 15000}

	err = repo.Delete(ctx, created.ID)
	require.True(t, domain.IsStillReferenced(err))
	_, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	delete(db.Agreements, memdb.PairKey{created.ID, 1})
	require.NoError(t, repo.Delete(ctx, created.ID))
	require.True(t, domain.IsNotFound(repo.Delete(ctx, created.ID)))
}
