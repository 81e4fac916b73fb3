package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/seshu362/kristalball-backend/internal/application/dto"
	"github.com/seshu362/kristalball-backend/internal/domain"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
	"github.com/seshu362/kristalball-backend/internal/domain/repository"
	"github.com/seshu362/kristalball-backend/pkg/jwt"
)

// Profile is what a credential verifier returns on success.
type Profile struct {
	UserID   string
	FullName string
	Role     string
}

// CredentialVerifier checks a username/password pair. Implementations:
// the local bcrypt check below, or the remote auth-service client in
// internal/infrastructure/authsvc. Must return domain.ErrInvalidCredentials
// on rejection.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*Profile, error)
}

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase handles login and user creation.
type UseCase struct {
	verifier CredentialVerifier
	userRepo repository.UserRepository
	policy   Policy
	jwtCfg   JWTConfig
}

// NewUseCase builds the auth use case.
func NewUseCase(verifier CredentialVerifier, userRepo repository.UserRepository, policy Policy, jwtCfg JWTConfig) *UseCase {
	return &UseCase{verifier: verifier, userRepo: userRepo, policy: policy, jwtCfg: jwtCfg}
}

// Login verifies credentials via the injected verifier, then issues a JWT
// carrying the user's role.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	profile, err := uc.verifier.Verify(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, profile.UserID, profile.FullName, profile.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:       profile.UserID,
			Username: in.Username,
			FullName: profile.FullName,
			Role:     profile.Role,
		},
	}, nil
}

// CreateUser hashes the password with bcrypt and persists the user.
// Admin-only per the policy. Returns ErrDuplicate on a taken username.
func (uc *UseCase) CreateUser(actorRole string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !uc.policy.Allow(actorRole, ActionCreateUser) {
		return nil, domain.ErrPermissionDenied
	}
	switch in.Role {
	case entity.RoleAdmin, entity.RoleBaseCommander, entity.RoleLogisticsOfficer:
	default:
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         in.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return &dto.UserResponse{ID: user.ID, Username: user.Username, FullName: user.FullName, Role: user.Role}, nil
}

// ListUsers returns the user directory (any authenticated role; the
// assignment form needs assignee ids).
func (uc *UseCase) ListUsers(limit, offset int) ([]dto.UserRow, error) {
	users, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, dto.UserRow{
			UserID:    u.ID,
			Username:  u.Username,
			FullName:  u.FullName,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	return rows, nil
}

// LocalVerifier checks credentials against the users table with bcrypt.
type LocalVerifier struct {
	userRepo repository.UserRepository
}

// NewLocalVerifier builds the local credential verifier.
func NewLocalVerifier(userRepo repository.UserRepository) *LocalVerifier {
	return &LocalVerifier{userRepo: userRepo}
}

// Verify implements CredentialVerifier.
func (v *LocalVerifier) Verify(_ context.Context, username, password string) (*Profile, error) {
	user, err := v.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Status != "active" {
		return nil, domain.ErrPermissionDenied
	}
	return &Profile{UserID: user.ID, FullName: user.FullName, Role: user.Role}, nil
}
