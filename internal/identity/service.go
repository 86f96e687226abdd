package identity

import (
	"context"
	"errors"
	"strconv"
	"time"

	"chiroportaal/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the token payload: subject holds the user id, Role gates the
// staff and admin routes.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Service handles accounts, login and token verification.
type Service struct {
	store      Store
	signingKey []byte
	tokenTTL   time.Duration
}

func NewService(store Store, signingKey string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &Service{store: store, signingKey: []byte(signingKey), tokenTTL: tokenTTL}
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.store.Create(ctx, User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		Active:       true,
	})
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

func (s *Service) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	return s.store.Update(ctx, *u)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// Login checks the credentials and hands out a signed token. An unknown
// email, wrong password and locked account all come back as
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !u.Active {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return nil, "", err
	}
	return u, signed, nil
}

// Verify parses and validates a token. Any failure comes back as
// ErrAuthenticationRequired.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrAuthenticationRequired
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrAuthenticationRequired
	}
	return claims, nil
}

// UserID returns the subject as the numeric account id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, errors.New("malformed subject claim")
	}
	return id, nil
}

// RequireRole checks the claims carry the needed role. Admin implies leiding.
func (c *Claims) RequireRole(role Role) error {
	if c.Role == role {
		return nil
	}
	if role == RoleLeiding && c.Role == RoleAdmin {
		return nil
	}
	return ErrAuthorizationDenied
}
