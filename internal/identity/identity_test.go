package identity

import (
	"context"
	"testing"
	"time"

	"chiroportaal/internal/domain"
	"github.com/stretchr/testify/require"
)

func testService() *Service {
	return NewService(NewMemoryStore(), "test-signing-key", time.Hour)
}

func TestCreateUserHashesPasswordAndChecksEmail(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	created, err := svc.CreateUser(ctx, CreateUserInput{
		Email: "hoofdleiding@chiro.be", Password: "wachtwoord1", FirstName: "An", LastName: "Peeters", Role: RoleAdmin,
	})
	require.NoError(t, err)
	require.NotEqual(t, "wachtwoord1", created.PasswordHash)
	require.True(t, created.Active)

	_, err = svc.CreateUser(ctx, CreateUserInput{
		Email: "HOOFDLEIDING@chiro.be", Password: "wachtwoord2", FirstName: "Jan", LastName: "Maes", Role: RoleLeiding,
	})
	require.True(t, domain.IsAlreadyExists(err))

	// Weak input never reaches the store.
	_, err = svc.CreateUser(ctx, CreateUserInput{Email: "x@chiro.be", Password: "kort", FirstName: "A", LastName: "B", Role: RoleLeiding})
	require.Error(t, err)
}

func TestLoginAndVerifyRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	created, err := svc.CreateUser(ctx, CreateUserInput{
		Email: "leiding@chiro.be", Password: "wachtwoord1", FirstName: "An", LastName: "Peeters", Role: RoleLeiding,
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "leiding@chiro.be", "verkeerd")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "onbekend@chiro.be", "wachtwoord1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	user, token, err := svc.Login(ctx, "LEIDING@chiro.be", "wachtwoord1")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, created.ID, id)
	require.Equal(t, RoleLeiding, claims.Role)

	_, err = svc.Verify(token + "x")
	require.ErrorIs(t, err, ErrAuthenticationRequired)

	// A token signed with another key is rejected.
	other := NewService(NewMemoryStore(), "other-key", time.Hour)
	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestLockedAccountCannotLogin(t *testing.T) {
	ctx := context.Background()
	svc := testService()

	created, err := svc.CreateUser(ctx, CreateUserInput{
		Email: "leiding@chiro.be", Password: "wachtwoord1", FirstName: "An", LastName: "Peeters", Role: RoleLeiding,
	})
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateUser(ctx, created.ID, UpdateUserInput{Active: &inactive})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "leiding@chiro.be", "wachtwoord1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRequireRole(t *testing.T) {
	admin := &Claims{Role: RoleAdmin}
	leiding := &Claims{Role: RoleLeiding}

	require.NoError(t, admin.RequireRole(RoleAdmin))
	require.NoError(t, admin.RequireRole(RoleLeiding))
	require.NoError(t, leiding.RequireRole(RoleLeiding))
	require.ErrorIs(t, leiding.RequireRole(RoleAdmin), ErrAuthorizationDenied)
}
