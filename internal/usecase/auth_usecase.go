package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/BitSparkCode/online-shop-api/internal/domain"
	"github.com/sirupsen/logrus"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

type AuthUseCase interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ResetPassword(ctx context.Context, username, newPassword string) (int64, error)
	SeedAdmin(ctx context.Context, password string) error
}

type authUseCase struct {
	userRepo domain.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	log      *logrus.Logger
}

func NewAuthUseCase(repo domain.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *logrus.Logger) AuthUseCase {
	return &authUseCase{
		userRepo: repo,
		hasher:   hasher,
		tokens:   tokens,
		log:      logger,
	}
}

// Register stores a new user. Usernames are not unique; registering an
// existing name creates a second row.
func (uc *authUseCase) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for user '%s': %v", username, err)
		return nil, err
	}

	user, err := uc.userRepo.CreateUser(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create user '%s': %v", username, err)
		return nil, err
	}

	uc.log.Infof("Use Case: User '%s' registered with ID %d, role %s", user.Username, user.ID, user.Role)
	return user, nil
}

func (uc *authUseCase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := uc.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: Login attempt for unknown user '%s'", username)
			return "", domain.ErrInvalidCredentials
		}
		uc.log.Errorf("Use Case: Repository failed to look up user '%s': %v", username, err)
		return "", err
	}

	if !uc.hasher.Verify(password, user.PasswordHash) {
		uc.log.Warnf("Use Case: Wrong password for user '%s'", username)
		return "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(domain.Identity{Username: user.Username, Role: user.Role})
	if err != nil {
		uc.log.Errorf("Use Case: Failed to issue token for user '%s': %v", username, err)
		return "", err
	}

	uc.log.Infof("Use Case: User '%s' logged in", username)
	return token, nil
}

// ResetPassword sets the password of every user named username and returns how
// many rows changed. The caller only has to hold some valid token.
func (uc *authUseCase) ResetPassword(ctx context.Context, username, newPassword string) (int64, error) {
	hash, err := uc.hasher.Hash(newPassword)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash new password for user '%s': %v", username, err)
		return 0, err
	}

	affected, err := uc.userRepo.UpdatePassword(ctx, username, hash)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to reset password for '%s': %v", username, err)
		return 0, err
	}

	uc.log.Infof("Use Case: Password reset for '%s' (%d users updated)", username, affected)
	return affected, nil
}

// SeedAdmin creates the admin account unless one already exists.
func (uc *authUseCase) SeedAdmin(ctx context.Context, password string) error {
	_, err := uc.userRepo.GetUserByUsername(ctx, domain.AdminUsername)
	switch {
	case err == nil:
		uc.log.Info("Use Case: Admin user already present, skipping seed")
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("check admin user: %w", err)
	}

	user, err := uc.Register(ctx, domain.AdminUsername, password, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	uc.log.Infof("Use Case: Admin user seeded with ID %d", user.ID)
	return nil
}
