package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"salesops_backend/internal/auth/repository"
	"salesops_backend/internal/auth/transport"
	"salesops_backend/platform/apperr"
	"salesops_backend/platform/config"
	"salesops_backend/platform/logger"
)

const (
	// RoleAdmin is the back-office role with full access.
	RoleAdmin = "admin"
	// RoleVendor is the field role, scoped to the user's vendor binding.
	RoleVendor = "vendor"
)

const msgInvalidCredentials = "invalid email or password"

var errInvalidRefresh = apperr.Unauthorized("invalid refresh token")

// Service provides authentication and account management.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new auth service.
func New(repo repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, cfg: cfg, log: log, now: now}
}

// Login verifies credentials and issues a token pair. Lookup failures and
// password mismatches are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.LoginResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		s.log.AuthEvent("login", req.Email, false, "unknown email")
		return transport.LoginResponse{}, apperr.Unauthorized(msgInvalidCredentials)
	}
	if !user.Active {
		s.log.AuthEvent("login", req.Email, false, "account disabled")
		return transport.LoginResponse{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.AuthEvent("login", req.Email, false, "password mismatch")
		return transport.LoginResponse{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	tokens, err := s.issueTokens(user, s.now())
	if err != nil {
		return transport.LoginResponse{}, err
	}

	s.log.AuthEvent("login", req.Email, true, "")
	return transport.LoginResponse{User: user, Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *Service) Refresh(ctx context.Context, rawToken string) (transport.LoginResponse, error) {
	userID, err := s.parseRefreshToken(rawToken)
	if err != nil {
		return transport.LoginResponse{}, err
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return transport.LoginResponse{}, errInvalidRefresh
	}
	if !user.Active {
		return transport.LoginResponse{}, errInvalidRefresh
	}

	tokens, err := s.issueTokens(user, s.now())
	if err != nil {
		return transport.LoginResponse{}, err
	}
	return transport.LoginResponse{User: user, Tokens: tokens}, nil
}

// Me returns the account behind an authenticated request.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// CreateUser registers an account. Vendor-role users must carry a vendor
// binding so list scoping has something to pin to.
func (s *Service) CreateUser(ctx context.Context, req transport.CreateUserRequest) (repository.User, error) {
	hasVendorRole := false
	for _, role := range req.Roles {
		if role != RoleAdmin && role != RoleVendor {
			return repository.User{}, apperr.Validation("unknown role: " + role)
		}
		if role == RoleVendor {
			hasVendorRole = true
		}
	}
	if hasVendorRole && req.VendorID == nil {
		return repository.User{}, apperr.Validation("vendor users require a vendor binding")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return repository.User{}, err
	}

	return s.repo.CreateUser(ctx, repository.CreateUserParams{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Roles:        req.Roles,
		VendorID:     req.VendorID,
	})
}

// ListUsers returns all accounts.
func (s *Service) ListUsers(ctx context.Context) ([]repository.User, error) {
	return s.repo.ListUsers(ctx)
}

// SetUserActive enables or disables an account.
func (s *Service) SetUserActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetUserActive(ctx, id, active)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req transport.ChangePasswordRequest) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperr.Unauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}
