package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"salesops_backend/internal/auth/repository"
	"salesops_backend/internal/auth/transport"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/logger"
)

type fakeUserRepo struct {
	byEmail map[string]repository.User
	byID    map[uuid.UUID]repository.User
}

func (f *fakeUserRepo) CreateUser(_ context.Context, params repository.CreateUserParams) (repository.User, error) {
	user := repository.User{
		ID:           uuid.New(),
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: params.PasswordHash,
		Roles:        params.Roles,
		VendorID:     params.VendorID,
		Active:       true,
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (f *fakeUserRepo) ListUsers(context.Context) ([]repository.User, error) { return nil, nil }

func (f *fakeUserRepo) SetUserActive(context.Context, uuid.UUID, bool) error { return nil }

func (f *fakeUserRepo) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }

type stubAuthConfig struct{}

func (stubAuthConfig) GetJWTAccessSecret() string        { return "test-secret" }
func (stubAuthConfig) GetAccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (stubAuthConfig) GetRefreshTokenTTL() time.Duration { return 24 * time.Hour }

func seedUser(t *testing.T, repo *fakeUserRepo, vendorID *uuid.UUID) repository.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := repository.User{
		ID:           uuid.New(),
		Email:        "vendor@example.com",
		Name:         "Vendor One",
		PasswordHash: string(hash),
		Roles:        []string{RoleVendor},
		VendorID:     vendorID,
		Active:       true,
	}
	repo.byEmail[user.Email] = user
	repo.byID[user.ID] = user
	return user
}

func newRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]repository.User{}, byID: map[uuid.UUID]repository.User{}}
}

func TestLoginIssuesTokensWithVendorClaim(t *testing.T) {
	repo := newRepo()
	vendorID := uuid.New()
	user := seedUser(t, repo, &vendorID)

	svc := New(repo, stubAuthConfig{}, logger.New("test"), nil)

	resp, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    user.Email,
		Password: "hunter2secret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	parsed, err := jwt.Parse(resp.Tokens.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse access token: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["type"] != "access" {
		t.Fatalf("type claim = %v", claims["type"])
	}
	if claims["sub"] != user.ID.String() {
		t.Fatalf("sub claim = %v", claims["sub"])
	}
	if claims["vendor_id"] != vendorID.String() {
		t.Fatalf("vendor_id claim = %v", claims["vendor_id"])
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newRepo()
	user := seedUser(t, repo, nil)

	svc := New(repo, stubAuthConfig{}, logger.New("test"), nil)

	_, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    user.Email,
		Password: "not-the-password",
	})
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newRepo()
	user := seedUser(t, repo, nil)

	svc := New(repo, stubAuthConfig{}, logger.New("test"), nil)

	resp, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    user.Email,
		Password: "hunter2secret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), resp.Tokens.AccessToken); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized for access token, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), resp.Tokens.RefreshToken); err != nil {
		t.Fatalf("refresh with refresh token: %v", err)
	}
}

func TestCreateUserRequiresVendorBinding(t *testing.T) {
	svc := New(newRepo(), stubAuthConfig{}, logger.New("test"), nil)

	_, err := svc.CreateUser(context.Background(), transport.CreateUserRequest{
		Email:    "new@example.com",
		Name:     "New Vendor",
		Password: "longenoughpw",
		Roles:    []string{RoleVendor},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
